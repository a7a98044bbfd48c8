package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderTransitions(t *testing.T) {
	assert.True(t, OrderPending.CanTransitionTo(OrderPaid))
	assert.True(t, OrderPending.CanTransitionTo(OrderCancelled))
	assert.True(t, OrderPaid.CanTransitionTo(OrderShipped))
	assert.True(t, OrderShipped.CanTransitionTo(OrderDelivered))

	assert.False(t, OrderPending.CanTransitionTo(OrderDelivered))
	assert.False(t, OrderShipped.CanTransitionTo(OrderCancelled))
	assert.False(t, OrderDelivered.CanTransitionTo(OrderPending))
	assert.False(t, OrderCancelled.CanTransitionTo(OrderPaid))
}

func TestAdoptionTransitions(t *testing.T) {
	assert.True(t, AdoptionPending.CanTransitionTo(AdoptionApproved))
	assert.True(t, AdoptionPending.CanTransitionTo(AdoptionRejected))
	assert.True(t, AdoptionApproved.CanTransitionTo(AdoptionCompleted))
	assert.False(t, AdoptionRejected.CanTransitionTo(AdoptionApproved))
	assert.False(t, AdoptionPending.CanTransitionTo(AdoptionCompleted))

	assert.True(t, AdoptionPending.Active())
	assert.True(t, AdoptionApproved.Active())
	assert.False(t, AdoptionCompleted.Active())
}

func TestAppointmentTransitions(t *testing.T) {
	assert.True(t, AppointmentScheduled.CanTransitionTo(AppointmentConfirmed))
	assert.True(t, AppointmentConfirmed.CanTransitionTo(AppointmentCompleted))
	assert.False(t, AppointmentScheduled.CanTransitionTo(AppointmentCompleted))
	assert.False(t, AppointmentCancelled.CanTransitionTo(AppointmentScheduled))

	assert.True(t, AppointmentConfirmed.Open())
	assert.False(t, AppointmentCompleted.Open())
}

func TestOrderTotal(t *testing.T) {
	items := []OrderItem{
		{ProductName: "Kibble", Quantity: 2, UnitPrice: 19.99},
		{ProductName: "Leash", Quantity: 1, UnitPrice: 7.5},
		{ProductName: "Treats", Quantity: 3, UnitPrice: 0.333},
	}
	assert.Equal(t, 48.48, OrderTotal(items))
	assert.Equal(t, 0.0, OrderTotal(nil))
}

func TestStatusValid(t *testing.T) {
	assert.True(t, OrderShipped.Valid())
	assert.False(t, OrderStatus("lost").Valid())
	assert.True(t, AdoptionCancelled.Valid())
	assert.False(t, AdoptionStatus("").Valid())
	assert.True(t, AppointmentConfirmed.Valid())
	assert.False(t, AppointmentStatus("missed").Valid())
}
