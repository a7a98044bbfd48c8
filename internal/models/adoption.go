package models

import "time"

type AdoptionStatus string

const (
	AdoptionPending   AdoptionStatus = "pending"
	AdoptionApproved  AdoptionStatus = "approved"
	AdoptionRejected  AdoptionStatus = "rejected"
	AdoptionCompleted AdoptionStatus = "completed"
	AdoptionCancelled AdoptionStatus = "cancelled"
)

var adoptionTransitions = map[AdoptionStatus][]AdoptionStatus{
	AdoptionPending:  {AdoptionApproved, AdoptionRejected, AdoptionCancelled},
	AdoptionApproved: {AdoptionCompleted, AdoptionCancelled},
}

func (s AdoptionStatus) CanTransitionTo(next AdoptionStatus) bool {
	return canTransition(adoptionTransitions, s, next)
}

// Active reports whether the application still holds a claim on the pet.
func (s AdoptionStatus) Active() bool {
	return s == AdoptionPending || s == AdoptionApproved
}

type Adoption struct {
	Base        `bson:",inline"`
	PetID       ID             `json:"pet_id" bson:"pet_id" validate:"required"`
	UserID      ID             `json:"user_id" bson:"user_id" validate:"required"`
	Message     string         `json:"message,omitempty" bson:"message,omitempty" validate:"omitempty,max=2000"`
	Status      AdoptionStatus `json:"status" bson:"status"`
	ReviewNotes string         `json:"review_notes,omitempty" bson:"review_notes,omitempty"`
	DecidedAt   *time.Time     `json:"decided_at,omitempty" bson:"decided_at,omitempty"`
}

type AdoptionUpdate struct {
	Message *string `json:"message,omitempty" validate:"omitempty,max=2000"`
}

type AdoptionFilter struct {
	PetID  *ID
	UserID *ID
	Status AdoptionStatus
}

func (s AdoptionStatus) Valid() bool {
	switch s {
	case AdoptionPending, AdoptionApproved, AdoptionRejected, AdoptionCompleted, AdoptionCancelled:
		return true
	}
	return false
}
