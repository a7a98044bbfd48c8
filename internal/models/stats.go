package models

import "time"

// KeyCount is one bucket of a $group by a single field.
type KeyCount struct {
	Key   string `json:"key" bson:"_id"`
	Count int64  `json:"count" bson:"count"`
}

// StatsWindow restricts the summary to documents created in [From, To).
type StatsWindow struct {
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`
}

// StatsSummary is the dashboard payload of GET /api/stats.
type StatsSummary struct {
	Window               StatsWindow `json:"window"`
	Users                int64       `json:"users"`
	UsersByRole          []KeyCount  `json:"users_by_role"`
	PetsByStatus         []KeyCount  `json:"pets_by_status"`
	PetsBySpecies        []KeyCount  `json:"pets_by_species"`
	OrdersByStatus       []KeyCount  `json:"orders_by_status"`
	Revenue              float64     `json:"revenue"`
	AdoptionsByStatus    []KeyCount  `json:"adoptions_by_status"`
	AppointmentsByStatus []KeyCount  `json:"appointments_by_status"`
	Visits               int64       `json:"visits"`
}

// RevenueStatuses are the order states whose totals count as revenue.
var RevenueStatuses = []OrderStatus{OrderPaid, OrderShipped, OrderDelivered}
