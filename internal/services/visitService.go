package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"

	"petlove/internal/errs"
	"petlove/internal/metrics"
	"petlove/internal/models"
	"petlove/internal/repositories"
)

type VisitService interface {
	CreateVisit(ctx context.Context, visit *models.Visit) (*models.Visit, error)
	GetVisit(ctx context.Context, visitID models.ID) (*models.Visit, error)
	ListVisits(ctx context.Context, filter models.VisitFilter, page models.Pagination) ([]models.Visit, int64, error)
	UpdateVisit(ctx context.Context, visitID models.ID, updatePayload *models.VisitUpdate) (*models.Visit, error)
	DeleteVisit(ctx context.Context, visitID models.ID) error
}

type visitService struct {
	visitRepo       repositories.VisitRepository
	petRepo         repositories.PetRepository
	appointmentRepo repositories.AppointmentRepository
}

func NewVisitService(visitRepo repositories.VisitRepository, petRepo repositories.PetRepository, appointmentRepo repositories.AppointmentRepository) VisitService {
	return &visitService{
		visitRepo:       visitRepo,
		petRepo:         petRepo,
		appointmentRepo: appointmentRepo,
	}
}

func (s *visitService) CreateVisit(ctx context.Context, visit *models.Visit) (*models.Visit, error) {
	if _, err := resolveReference[models.Pet](ctx, s.petRepo, visit.PetID, "pet_id"); err != nil {
		return nil, err
	}

	var appointment *models.Appointment
	if visit.AppointmentID != nil {
		var err error
		appointment, err = resolveReference[models.Appointment](ctx, s.appointmentRepo, *visit.AppointmentID, "appointment_id")
		if err != nil {
			return nil, err
		}
		if appointment.PetID != visit.PetID {
			return nil, fmt.Errorf("%w: appointment %s belongs to another pet", errs.ErrInvalidReference, appointment.ID.Hex())
		}
		if appointment.Status == models.AppointmentCancelled {
			return nil, fmt.Errorf("%w: appointment %s was cancelled", errs.ErrInvalidStatusTransition, appointment.ID.Hex())
		}
	}

	visit.Base = models.NewBase()
	if visit.VisitDate.IsZero() {
		visit.VisitDate = visit.CreatedAt
	}
	visit.VisitDate = visit.VisitDate.UTC()

	completed := appointment != nil && appointment.Status != models.AppointmentCompleted
	if completed {
		if err := s.completeAppointment(ctx, appointment); err != nil {
			return nil, err
		}
	}

	created, err := s.visitRepo.Create(ctx, visit)
	if err != nil {
		log.Error().Err(err).Str("pet_id", visit.PetID.Hex()).Msg("Failed to record visit")
		if completed {
			s.reopenAppointment(ctx, appointment)
		}
		return nil, err
	}

	log.Info().Str("visit_id", created.ID.Hex()).Str("pet_id", created.PetID.Hex()).Msg("Visit recorded")
	metrics.VisitsRecordedTotal.Inc()
	return created, nil
}

// completeAppointment moves the appointment to completed unless its status
// changed since it was read.
func (s *visitService) completeAppointment(ctx context.Context, appointment *models.Appointment) error {
	result, err := s.appointmentRepo.UpdateIf(ctx, appointment.ID,
		bson.M{"status": appointment.Status}, bson.M{"status": models.AppointmentCompleted})
	if err != nil {
		log.Error().Err(err).Str("appointment_id", appointment.ID.Hex()).Msg("Failed to complete appointment for visit")
		return err
	}
	if err := matchedOrChanged(result, "appointment", appointment.Status); err != nil {
		return err
	}
	log.Debug().Str("appointment_id", appointment.ID.Hex()).Msg("Appointment marked completed")
	return nil
}

func (s *visitService) reopenAppointment(ctx context.Context, appointment *models.Appointment) {
	_, err := s.appointmentRepo.UpdateIf(ctx, appointment.ID,
		bson.M{"status": models.AppointmentCompleted}, bson.M{"status": appointment.Status})
	if err != nil {
		log.Error().Err(err).Str("appointment_id", appointment.ID.Hex()).Msg("Failed to reopen appointment after visit insert failed")
	}
}

func (s *visitService) GetVisit(ctx context.Context, visitID models.ID) (*models.Visit, error) {
	visit, err := s.visitRepo.FindByID(ctx, visitID)
	if err != nil {
		return nil, notFound(err, "visit")
	}
	return visit, nil
}

func (s *visitService) ListVisits(ctx context.Context, filter models.VisitFilter, page models.Pagination) ([]models.Visit, int64, error) {
	query := bson.M{}
	if filter.PetID != nil {
		query["pet_id"] = *filter.PetID
	}
	if filter.AppointmentID != nil {
		query["appointment_id"] = *filter.AppointmentID
	}

	visits, err := s.visitRepo.Find(ctx, query, page)
	if err != nil {
		log.Error().Err(err).Msg("Error listing visits")
		return nil, 0, err
	}
	total, err := s.visitRepo.Count(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	return visits, total, nil
}

func (s *visitService) UpdateVisit(ctx context.Context, visitID models.ID, updatePayload *models.VisitUpdate) (*models.Visit, error) {
	updateFields := bson.M{}
	if updatePayload.Veterinarian != nil {
		updateFields["veterinarian"] = *updatePayload.Veterinarian
	}
	if updatePayload.VisitDate != nil {
		updateFields["visit_date"] = updatePayload.VisitDate.UTC()
	}
	if updatePayload.Reason != nil {
		updateFields["reason"] = *updatePayload.Reason
	}
	if updatePayload.Diagnosis != nil {
		updateFields["diagnosis"] = *updatePayload.Diagnosis
	}
	if updatePayload.Treatment != nil {
		updateFields["treatment"] = *updatePayload.Treatment
	}
	if updatePayload.Prescriptions != nil {
		updateFields["prescriptions"] = *updatePayload.Prescriptions
	}
	if updatePayload.WeightKg != nil {
		updateFields["weight_kg"] = *updatePayload.WeightKg
	}
	if updatePayload.TemperatureC != nil {
		updateFields["temperature_c"] = *updatePayload.TemperatureC
	}
	if updatePayload.FollowUpDate != nil {
		updateFields["follow_up_date"] = updatePayload.FollowUpDate.UTC()
	}
	if updatePayload.Notes != nil {
		updateFields["notes"] = *updatePayload.Notes
	}
	if len(updateFields) == 0 {
		return nil, errs.ErrNoFieldsToUpdate
	}

	result, err := s.visitRepo.Update(ctx, visitID, updateFields)
	if err != nil {
		log.Error().Err(err).Str("visit_id", visitID.Hex()).Msg("Failed to update visit")
		return nil, err
	}
	if err := matchedOrNotFound(result, "visit"); err != nil {
		return nil, err
	}
	return s.GetVisit(ctx, visitID)
}

func (s *visitService) DeleteVisit(ctx context.Context, visitID models.ID) error {
	result, err := s.visitRepo.Delete(ctx, visitID)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return notFoundErr("visit")
	}

	log.Info().Str("visit_id", visitID.Hex()).Msg("Visit deleted successfully")
	return nil
}
