package services

import (
	"context"
	"fmt"
	"html"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"

	"petlove/internal/errs"
	"petlove/internal/metrics"
	"petlove/internal/models"
	"petlove/internal/repositories"
)

type AdoptionService interface {
	CreateAdoption(ctx context.Context, adoption *models.Adoption) (*models.Adoption, error)
	GetAdoption(ctx context.Context, adoptionID models.ID) (*models.Adoption, error)
	ListAdoptions(ctx context.Context, filter models.AdoptionFilter, page models.Pagination) ([]models.Adoption, int64, error)
	UpdateAdoption(ctx context.Context, adoptionID models.ID, updatePayload *models.AdoptionUpdate) (*models.Adoption, error)
	UpdateAdoptionStatus(ctx context.Context, adoptionID models.ID, status models.AdoptionStatus, notes string) (*models.Adoption, error)
	DeleteAdoption(ctx context.Context, adoptionID models.ID) error
}

type adoptionService struct {
	adoptionRepo repositories.AdoptionRepository
	petRepo      repositories.PetRepository
	userRepo     repositories.UserRepository
	email        EmailService
}

func NewAdoptionService(adoptionRepo repositories.AdoptionRepository, petRepo repositories.PetRepository, userRepo repositories.UserRepository, email EmailService) AdoptionService {
	return &adoptionService{
		adoptionRepo: adoptionRepo,
		petRepo:      petRepo,
		userRepo:     userRepo,
		email:        email,
	}
}

func (s *adoptionService) CreateAdoption(ctx context.Context, adoption *models.Adoption) (*models.Adoption, error) {
	pet, err := resolveReference[models.Pet](ctx, s.petRepo, adoption.PetID, "pet_id")
	if err != nil {
		return nil, err
	}
	if _, err := resolveReference[models.User](ctx, s.userRepo, adoption.UserID, "user_id"); err != nil {
		return nil, err
	}
	if pet.Status != models.PetAvailable {
		log.Warn().Str("pet_id", pet.ID.Hex()).Str("status", string(pet.Status)).Msg("Adoption requested for a pet that is not available")
		return nil, fmt.Errorf("pet is %s: %w", pet.Status, errs.ErrUnavailable)
	}

	active, err := s.adoptionRepo.ExistsActive(ctx, adoption.PetID, adoption.UserID)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, fmt.Errorf("active adoption application %w", errs.ErrAlreadyExists)
	}

	adoption.Base = models.NewBase()
	adoption.Status = models.AdoptionPending
	adoption.ReviewNotes = ""
	adoption.DecidedAt = nil

	createdAdoption, err := s.adoptionRepo.Create(ctx, adoption)
	if err != nil {
		log.Error().Err(err).Str("pet_id", adoption.PetID.Hex()).Msg("Failed to create adoption")
		return nil, err
	}

	log.Info().Str("adoption_id", createdAdoption.ID.Hex()).Str("pet_id", createdAdoption.PetID.Hex()).Msg("Adoption application submitted")
	metrics.AdoptionsCreatedTotal.Inc()
	return createdAdoption, nil
}

func (s *adoptionService) GetAdoption(ctx context.Context, adoptionID models.ID) (*models.Adoption, error) {
	adoption, err := s.adoptionRepo.FindByID(ctx, adoptionID)
	if err != nil {
		return nil, notFound(err, "adoption")
	}
	return adoption, nil
}

func (s *adoptionService) ListAdoptions(ctx context.Context, filter models.AdoptionFilter, page models.Pagination) ([]models.Adoption, int64, error) {
	query := bson.M{}
	if filter.PetID != nil {
		query["pet_id"] = *filter.PetID
	}
	if filter.UserID != nil {
		query["user_id"] = *filter.UserID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	adoptions, err := s.adoptionRepo.Find(ctx, query, page)
	if err != nil {
		log.Error().Err(err).Msg("Error listing adoptions")
		return nil, 0, err
	}
	total, err := s.adoptionRepo.Count(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	return adoptions, total, nil
}

func (s *adoptionService) UpdateAdoption(ctx context.Context, adoptionID models.ID, updatePayload *models.AdoptionUpdate) (*models.Adoption, error) {
	if updatePayload.Message == nil {
		return nil, errs.ErrNoFieldsToUpdate
	}

	adoption, err := s.GetAdoption(ctx, adoptionID)
	if err != nil {
		return nil, err
	}
	if adoption.Status != models.AdoptionPending {
		return nil, fmt.Errorf("%w: adoption is %s, only pending applications can be edited", errs.ErrInvalidStatusTransition, adoption.Status)
	}

	result, err := s.adoptionRepo.UpdateIf(ctx, adoptionID, bson.M{"status": models.AdoptionPending}, bson.M{"message": *updatePayload.Message})
	if err != nil {
		return nil, err
	}
	if err := matchedOrChanged(result, "adoption", models.AdoptionPending); err != nil {
		return nil, err
	}
	return s.GetAdoption(ctx, adoptionID)
}

// UpdateAdoptionStatus moves an application through its lifecycle and keeps
// the pet's status in step with it.
func (s *adoptionService) UpdateAdoptionStatus(ctx context.Context, adoptionID models.ID, status models.AdoptionStatus, notes string) (*models.Adoption, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown adoption status %q", errs.ErrInvalidInput, status)
	}

	adoption, err := s.GetAdoption(ctx, adoptionID)
	if err != nil {
		return nil, err
	}
	previous := adoption.Status
	if !previous.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: adoption cannot move from %s to %s", errs.ErrInvalidStatusTransition, previous, status)
	}

	if status == models.AdoptionApproved {
		if err := s.reservePet(ctx, adoption.PetID); err != nil {
			return nil, err
		}
	}

	updateFields := bson.M{"status": status, "decided_at": time.Now().UTC()}
	if notes != "" {
		updateFields["review_notes"] = notes
	}
	result, err := s.adoptionRepo.UpdateIf(ctx, adoptionID, bson.M{"status": previous}, updateFields)
	if err == nil {
		err = matchedOrChanged(result, "adoption", previous)
	}
	if err != nil {
		if status == models.AdoptionApproved {
			s.releaseReservation(ctx, adoption.PetID)
		}
		return nil, err
	}

	if err := s.syncPet(ctx, adoption, previous, status); err != nil {
		log.Error().Err(err).Str("adoption_id", adoptionID.Hex()).Str("pet_id", adoption.PetID.Hex()).Msg("Failed to update pet after adoption decision")
		return nil, err
	}

	log.Info().Str("adoption_id", adoptionID.Hex()).Str("from", string(previous)).Str("to", string(status)).Msg("Adoption status changed")
	metrics.AdoptionDecisionsTotal.WithLabelValues(string(status)).Inc()

	updated, err := s.GetAdoption(ctx, adoptionID)
	if err != nil {
		return nil, err
	}
	s.notifyApplicant(ctx, updated)
	return updated, nil
}

// reservePet moves an available pet to reserved in a single guarded write,
// so only one approval can take the pet.
func (s *adoptionService) reservePet(ctx context.Context, petID models.ID) error {
	result, err := s.petRepo.UpdateIf(ctx, petID, bson.M{"status": models.PetAvailable}, bson.M{"status": models.PetReserved})
	if err != nil {
		return err
	}
	if result.MatchedCount == 1 {
		return nil
	}

	pet, err := s.petRepo.FindByID(ctx, petID)
	if err != nil {
		return notFound(err, "pet")
	}
	return fmt.Errorf("pet is %s: %w", pet.Status, errs.ErrUnavailable)
}

func (s *adoptionService) releaseReservation(ctx context.Context, petID models.ID) {
	_, err := s.petRepo.UpdateIf(ctx, petID, bson.M{"status": models.PetReserved}, bson.M{"status": models.PetAvailable})
	if err != nil {
		log.Error().Err(err).Str("pet_id", petID.Hex()).Msg("Failed to release pet after a lost adoption update")
	}
}

// syncPet applies the pet side of a decision other than approval.
func (s *adoptionService) syncPet(ctx context.Context, adoption *models.Adoption, from, to models.AdoptionStatus) error {
	var petFields bson.M
	switch {
	case to == models.AdoptionCompleted:
		petFields = bson.M{"status": models.PetAdopted, "owner_id": adoption.UserID}
	case from == models.AdoptionApproved && (to == models.AdoptionRejected || to == models.AdoptionCancelled):
		petFields = bson.M{"status": models.PetAvailable}
	default:
		return nil
	}

	result, err := s.petRepo.Update(ctx, adoption.PetID, petFields)
	if err != nil {
		return err
	}
	return matchedOrNotFound(result, "pet")
}

func (s *adoptionService) notifyApplicant(ctx context.Context, adoption *models.Adoption) {
	if adoption.Status == models.AdoptionPending {
		return
	}
	user, err := s.userRepo.FindByID(ctx, adoption.UserID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", adoption.UserID.Hex()).Msg("Could not load applicant for adoption email")
		return
	}

	subject := fmt.Sprintf("Your adoption application is %s", adoption.Status)
	body := fmt.Sprintf("<p>Hi %s,</p><p>Your adoption application <b>%s</b> is now <b>%s</b>.</p>",
		html.EscapeString(user.Name), adoption.ID.Hex(), adoption.Status)
	if adoption.ReviewNotes != "" {
		body += fmt.Sprintf("<p>%s</p>", html.EscapeString(adoption.ReviewNotes))
	}
	if err := s.email.SendEmail(user.Email, subject, body); err != nil {
		log.Warn().Err(err).Str("adoption_id", adoption.ID.Hex()).Msg("Failed to send adoption email")
	}
}

// DeleteAdoption removes an application. Deleting an approved application
// releases the reserved pet.
func (s *adoptionService) DeleteAdoption(ctx context.Context, adoptionID models.ID) error {
	adoption, err := s.GetAdoption(ctx, adoptionID)
	if err != nil {
		return err
	}

	result, err := s.adoptionRepo.Delete(ctx, adoptionID)
	if err != nil {
		log.Error().Err(err).Str("adoption_id", adoptionID.Hex()).Msg("Failed to delete adoption")
		return err
	}
	if result.DeletedCount == 0 {
		return notFoundErr("adoption")
	}

	if adoption.Status == models.AdoptionApproved {
		if err := s.syncPet(ctx, adoption, models.AdoptionApproved, models.AdoptionCancelled); err != nil {
			log.Error().Err(err).Str("pet_id", adoption.PetID.Hex()).Msg("Failed to release pet after adoption delete")
			return err
		}
	}

	log.Info().Str("adoption_id", adoptionID.Hex()).Msg("Adoption deleted successfully")
	return nil
}
