package services

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"

	"petlove/internal/errs"
	"petlove/internal/metrics"
	"petlove/internal/models"
	"petlove/internal/repositories"
)

type PetService interface {
	CreatePet(ctx context.Context, pet *models.Pet) (*models.Pet, error)
	GetPet(ctx context.Context, petID models.ID) (*models.Pet, error)
	ListPets(ctx context.Context, filter models.PetFilter, page models.Pagination) ([]models.Pet, int64, error)
	UpdatePet(ctx context.Context, petID models.ID, updatePayload *models.PetUpdate) (*models.Pet, error)
	DeletePet(ctx context.Context, petID models.ID) error
}

type petService struct {
	petRepo  repositories.PetRepository
	userRepo repositories.UserRepository
}

func NewPetService(petRepo repositories.PetRepository, userRepo repositories.UserRepository) PetService {
	return &petService{petRepo: petRepo, userRepo: userRepo}
}

func (s *petService) CreatePet(ctx context.Context, pet *models.Pet) (*models.Pet, error) {
	if pet.OwnerID != nil {
		if _, err := resolveReference[models.User](ctx, s.userRepo, *pet.OwnerID, "owner_id"); err != nil {
			log.Warn().Err(err).Msg("Rejected pet with unknown owner")
			return nil, err
		}
	}

	pet.Base = models.NewBase()
	if pet.Status == "" {
		if pet.OwnerID != nil {
			pet.Status = models.PetOwned
		} else {
			pet.Status = models.PetAvailable
		}
	}

	createdPet, err := s.petRepo.Create(ctx, pet)
	if err != nil {
		log.Error().Err(err).Str("name", pet.Name).Msg("Failed to create pet")
		return nil, err
	}

	log.Info().Str("pet_id", createdPet.ID.Hex()).Str("species", string(createdPet.Species)).Msg("Pet created successfully")
	metrics.PetsCreatedTotal.WithLabelValues(string(createdPet.Species)).Inc()
	return createdPet, nil
}

func (s *petService) GetPet(ctx context.Context, petID models.ID) (*models.Pet, error) {
	pet, err := s.petRepo.FindByID(ctx, petID)
	if err != nil {
		return nil, notFound(err, "pet")
	}
	return pet, nil
}

func (s *petService) ListPets(ctx context.Context, filter models.PetFilter, page models.Pagination) ([]models.Pet, int64, error) {
	query := bson.M{}
	if filter.Species != "" {
		query["species"] = filter.Species
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.OwnerID != nil {
		query["owner_id"] = *filter.OwnerID
	}

	pets, err := s.petRepo.Find(ctx, query, page)
	if err != nil {
		log.Error().Err(err).Msg("Error listing pets")
		return nil, 0, err
	}
	total, err := s.petRepo.Count(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	return pets, total, nil
}

func (s *petService) UpdatePet(ctx context.Context, petID models.ID, updatePayload *models.PetUpdate) (*models.Pet, error) {
	updateFields := bson.M{}
	if updatePayload.Name != nil {
		updateFields["name"] = *updatePayload.Name
	}
	if updatePayload.Species != nil {
		updateFields["species"] = *updatePayload.Species
	}
	if updatePayload.Breed != nil {
		updateFields["breed"] = *updatePayload.Breed
	}
	if updatePayload.Sex != nil {
		updateFields["sex"] = *updatePayload.Sex
	}
	if updatePayload.BirthDate != nil {
		updateFields["birth_date"] = updatePayload.BirthDate.UTC()
	}
	if updatePayload.WeightKg != nil {
		updateFields["weight_kg"] = *updatePayload.WeightKg
	}
	if updatePayload.Color != nil {
		updateFields["color"] = *updatePayload.Color
	}
	if updatePayload.Microchip != nil {
		updateFields["microchip"] = *updatePayload.Microchip
	}
	if updatePayload.Description != nil {
		updateFields["description"] = *updatePayload.Description
	}
	if updatePayload.PhotoURL != nil {
		updateFields["photo_url"] = *updatePayload.PhotoURL
	}
	if updatePayload.AdoptionFee != nil {
		updateFields["adoption_fee"] = *updatePayload.AdoptionFee
	}
	if updatePayload.Status != nil {
		updateFields["status"] = *updatePayload.Status
	}
	if updatePayload.OwnerID != nil {
		if _, err := resolveReference[models.User](ctx, s.userRepo, *updatePayload.OwnerID, "owner_id"); err != nil {
			return nil, err
		}
		updateFields["owner_id"] = *updatePayload.OwnerID
	}

	if len(updateFields) == 0 {
		log.Warn().Str("pet_id", petID.Hex()).Msg("No valid fields provided for pet update")
		return nil, errs.ErrNoFieldsToUpdate
	}

	result, err := s.petRepo.Update(ctx, petID, updateFields)
	if err != nil {
		log.Error().Err(err).Str("pet_id", petID.Hex()).Msg("Failed to update pet")
		return nil, err
	}
	if err := matchedOrNotFound(result, "pet"); err != nil {
		return nil, err
	}

	log.Info().Str("pet_id", petID.Hex()).Msg("Pet updated successfully")
	return s.GetPet(ctx, petID)
}

func (s *petService) DeletePet(ctx context.Context, petID models.ID) error {
	result, err := s.petRepo.Delete(ctx, petID)
	if err != nil {
		log.Error().Err(err).Str("pet_id", petID.Hex()).Msg("Failed to delete pet")
		return err
	}
	if result.DeletedCount == 0 {
		return notFoundErr("pet")
	}

	log.Info().Str("pet_id", petID.Hex()).Msg("Pet deleted successfully")
	return nil
}
