package models

import "time"

type PetSpecies string

const (
	SpeciesDog     PetSpecies = "dog"
	SpeciesCat     PetSpecies = "cat"
	SpeciesBird    PetSpecies = "bird"
	SpeciesRabbit  PetSpecies = "rabbit"
	SpeciesFish    PetSpecies = "fish"
	SpeciesReptile PetSpecies = "reptile"
	SpeciesOther   PetSpecies = "other"
)

type PetSex string

const (
	SexMale    PetSex = "male"
	SexFemale  PetSex = "female"
	SexUnknown PetSex = "unknown"
)

type PetStatus string

const (
	PetAvailable PetStatus = "available"
	PetReserved  PetStatus = "reserved"
	PetAdopted   PetStatus = "adopted"
	PetOwned     PetStatus = "owned"
)

type Pet struct {
	Base        `bson:",inline"`
	Name        string     `json:"name" bson:"name" validate:"required,min=1,max=100"`
	Species     PetSpecies `json:"species" bson:"species" validate:"required,oneof=dog cat bird rabbit fish reptile other"`
	Breed       string     `json:"breed,omitempty" bson:"breed,omitempty" validate:"omitempty,max=100"`
	Sex         PetSex     `json:"sex,omitempty" bson:"sex,omitempty" validate:"omitempty,oneof=male female unknown"`
	BirthDate   *time.Time `json:"birth_date,omitempty" bson:"birth_date,omitempty"`
	WeightKg    float64    `json:"weight_kg,omitempty" bson:"weight_kg,omitempty" validate:"gte=0"`
	Color       string     `json:"color,omitempty" bson:"color,omitempty" validate:"omitempty,max=50"`
	Microchip   string     `json:"microchip,omitempty" bson:"microchip,omitempty" validate:"omitempty,max=50"`
	Description string     `json:"description,omitempty" bson:"description,omitempty" validate:"omitempty,max=2000"`
	PhotoURL    string     `json:"photo_url,omitempty" bson:"photo_url,omitempty" validate:"omitempty,url"`
	AdoptionFee float64    `json:"adoption_fee" bson:"adoption_fee" validate:"gte=0"`
	Status      PetStatus  `json:"status" bson:"status" validate:"omitempty,oneof=available reserved adopted owned"`
	OwnerID     *ID        `json:"owner_id,omitempty" bson:"owner_id,omitempty"`
}

type PetUpdate struct {
	Name        *string     `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Species     *PetSpecies `json:"species,omitempty" validate:"omitempty,oneof=dog cat bird rabbit fish reptile other"`
	Breed       *string     `json:"breed,omitempty" validate:"omitempty,max=100"`
	Sex         *PetSex     `json:"sex,omitempty" validate:"omitempty,oneof=male female unknown"`
	BirthDate   *time.Time  `json:"birth_date,omitempty"`
	WeightKg    *float64    `json:"weight_kg,omitempty" validate:"omitempty,gte=0"`
	Color       *string     `json:"color,omitempty" validate:"omitempty,max=50"`
	Microchip   *string     `json:"microchip,omitempty" validate:"omitempty,max=50"`
	Description *string     `json:"description,omitempty" validate:"omitempty,max=2000"`
	PhotoURL    *string     `json:"photo_url,omitempty" validate:"omitempty,url"`
	AdoptionFee *float64    `json:"adoption_fee,omitempty" validate:"omitempty,gte=0"`
	Status      *PetStatus  `json:"status,omitempty" validate:"omitempty,oneof=available reserved adopted owned"`
	OwnerID     *ID         `json:"owner_id,omitempty"`
}

type PetFilter struct {
	Species PetSpecies
	Status  PetStatus
	OwnerID *ID
}
