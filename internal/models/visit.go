package models

import "time"

type Prescription struct {
	Medication   string `json:"medication" bson:"medication" validate:"required,max=200"`
	Dosage       string `json:"dosage,omitempty" bson:"dosage,omitempty" validate:"omitempty,max=100"`
	Frequency    string `json:"frequency,omitempty" bson:"frequency,omitempty" validate:"omitempty,max=100"`
	DurationDays int    `json:"duration_days,omitempty" bson:"duration_days,omitempty" validate:"omitempty,min=1,max=365"`
}

// Visit is a clinic record written by a veterinarian.
type Visit struct {
	Base          `bson:",inline"`
	PetID         ID             `json:"pet_id" bson:"pet_id" validate:"required"`
	AppointmentID *ID            `json:"appointment_id,omitempty" bson:"appointment_id,omitempty"`
	Veterinarian  string         `json:"veterinarian" bson:"veterinarian" validate:"required,max=100"`
	VisitDate     time.Time      `json:"visit_date" bson:"visit_date"`
	Reason        string         `json:"reason" bson:"reason" validate:"required,max=500"`
	Diagnosis     string         `json:"diagnosis,omitempty" bson:"diagnosis,omitempty" validate:"omitempty,max=2000"`
	Treatment     string         `json:"treatment,omitempty" bson:"treatment,omitempty" validate:"omitempty,max=2000"`
	Prescriptions []Prescription `json:"prescriptions,omitempty" bson:"prescriptions,omitempty" validate:"omitempty,dive"`
	WeightKg      float64        `json:"weight_kg,omitempty" bson:"weight_kg,omitempty" validate:"gte=0"`
	TemperatureC  float64        `json:"temperature_c,omitempty" bson:"temperature_c,omitempty" validate:"omitempty,gte=30,lte=45"`
	FollowUpDate  *time.Time     `json:"follow_up_date,omitempty" bson:"follow_up_date,omitempty"`
	Notes         string         `json:"notes,omitempty" bson:"notes,omitempty" validate:"omitempty,max=2000"`
}

type VisitUpdate struct {
	Veterinarian  *string         `json:"veterinarian,omitempty" validate:"omitempty,max=100"`
	VisitDate     *time.Time      `json:"visit_date,omitempty"`
	Reason        *string         `json:"reason,omitempty" validate:"omitempty,max=500"`
	Diagnosis     *string         `json:"diagnosis,omitempty" validate:"omitempty,max=2000"`
	Treatment     *string         `json:"treatment,omitempty" validate:"omitempty,max=2000"`
	Prescriptions *[]Prescription `json:"prescriptions,omitempty" validate:"omitempty,dive"`
	WeightKg      *float64        `json:"weight_kg,omitempty" validate:"omitempty,gte=0"`
	TemperatureC  *float64        `json:"temperature_c,omitempty" validate:"omitempty,gte=30,lte=45"`
	FollowUpDate  *time.Time      `json:"follow_up_date,omitempty"`
	Notes         *string         `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

type VisitFilter struct {
	PetID         *ID
	AppointmentID *ID
}
