package models

import "time"

type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentScheduled: {AppointmentConfirmed, AppointmentCancelled},
	AppointmentConfirmed: {AppointmentCompleted, AppointmentCancelled},
}

func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	return canTransition(appointmentTransitions, s, next)
}

// Open reports whether the appointment can still be changed.
func (s AppointmentStatus) Open() bool {
	return s == AppointmentScheduled || s == AppointmentConfirmed
}

type AppointmentService string

const (
	ServiceConsultation AppointmentService = "consultation"
	ServiceVaccination  AppointmentService = "vaccination"
	ServiceGrooming     AppointmentService = "grooming"
	ServiceSurgery      AppointmentService = "surgery"
	ServiceDental       AppointmentService = "dental"
	ServiceCheckup      AppointmentService = "checkup"
	ServiceOther        AppointmentService = "other"
)

const DefaultAppointmentMinutes = 30

type Appointment struct {
	Base            `bson:",inline"`
	PetID           ID                 `json:"pet_id" bson:"pet_id" validate:"required"`
	UserID          ID                 `json:"user_id" bson:"user_id" validate:"required"`
	Veterinarian    string             `json:"veterinarian,omitempty" bson:"veterinarian,omitempty" validate:"omitempty,max=100"`
	Service         AppointmentService `json:"service" bson:"service" validate:"required,oneof=consultation vaccination grooming surgery dental checkup other"`
	ScheduledAt     time.Time          `json:"scheduled_at" bson:"scheduled_at" validate:"required"`
	DurationMinutes int                `json:"duration_minutes" bson:"duration_minutes" validate:"omitempty,min=5,max=480"`
	Notes           string             `json:"notes,omitempty" bson:"notes,omitempty" validate:"omitempty,max=2000"`
	Status          AppointmentStatus  `json:"status" bson:"status"`
}

type AppointmentUpdate struct {
	Veterinarian    *string             `json:"veterinarian,omitempty" validate:"omitempty,max=100"`
	Service         *AppointmentService `json:"service,omitempty" validate:"omitempty,oneof=consultation vaccination grooming surgery dental checkup other"`
	ScheduledAt     *time.Time          `json:"scheduled_at,omitempty"`
	DurationMinutes *int                `json:"duration_minutes,omitempty" validate:"omitempty,min=5,max=480"`
	Notes           *string             `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

type AppointmentFilter struct {
	PetID  *ID
	UserID *ID
	Status AppointmentStatus
	From   *time.Time
	To     *time.Time
}

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentScheduled, AppointmentConfirmed, AppointmentCompleted, AppointmentCancelled:
		return true
	}
	return false
}
