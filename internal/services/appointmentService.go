package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"

	"petlove/internal/errs"
	"petlove/internal/metrics"
	"petlove/internal/models"
	"petlove/internal/repositories"
)

type AppointmentService interface {
	CreateAppointment(ctx context.Context, appointment *models.Appointment) (*models.Appointment, error)
	GetAppointment(ctx context.Context, appointmentID models.ID) (*models.Appointment, error)
	ListAppointments(ctx context.Context, filter models.AppointmentFilter, page models.Pagination) ([]models.Appointment, int64, error)
	UpdateAppointment(ctx context.Context, appointmentID models.ID, updatePayload *models.AppointmentUpdate) (*models.Appointment, error)
	UpdateAppointmentStatus(ctx context.Context, appointmentID models.ID, status models.AppointmentStatus) (*models.Appointment, error)
	DeleteAppointment(ctx context.Context, appointmentID models.ID) error
}

type appointmentService struct {
	appointmentRepo repositories.AppointmentRepository
	petRepo         repositories.PetRepository
	userRepo        repositories.UserRepository
	now             func() time.Time
}

func NewAppointmentService(appointmentRepo repositories.AppointmentRepository, petRepo repositories.PetRepository, userRepo repositories.UserRepository) AppointmentService {
	return &appointmentService{
		appointmentRepo: appointmentRepo,
		petRepo:         petRepo,
		userRepo:        userRepo,
		now:             time.Now,
	}
}

func (s *appointmentService) CreateAppointment(ctx context.Context, appointment *models.Appointment) (*models.Appointment, error) {
	if !appointment.ScheduledAt.After(s.now()) {
		return nil, fmt.Errorf("%w: scheduled_at must be in the future", errs.ErrInvalidInput)
	}
	if _, err := resolveReference[models.Pet](ctx, s.petRepo, appointment.PetID, "pet_id"); err != nil {
		return nil, err
	}
	if _, err := resolveReference[models.User](ctx, s.userRepo, appointment.UserID, "user_id"); err != nil {
		return nil, err
	}

	appointment.Base = models.NewBase()
	appointment.Status = models.AppointmentScheduled
	appointment.ScheduledAt = appointment.ScheduledAt.UTC()
	if appointment.DurationMinutes == 0 {
		appointment.DurationMinutes = models.DefaultAppointmentMinutes
	}

	created, err := s.appointmentRepo.Create(ctx, appointment)
	if err != nil {
		log.Error().Err(err).Str("pet_id", appointment.PetID.Hex()).Msg("Failed to create appointment")
		return nil, err
	}

	log.Info().Str("appointment_id", created.ID.Hex()).Time("scheduled_at", created.ScheduledAt).Msg("Appointment booked")
	metrics.AppointmentsCreatedTotal.WithLabelValues(string(created.Service)).Inc()
	return created, nil
}

func (s *appointmentService) GetAppointment(ctx context.Context, appointmentID models.ID) (*models.Appointment, error) {
	appointment, err := s.appointmentRepo.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, notFound(err, "appointment")
	}
	return appointment, nil
}

func (s *appointmentService) ListAppointments(ctx context.Context, filter models.AppointmentFilter, page models.Pagination) ([]models.Appointment, int64, error) {
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
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, 0, fmt.Errorf("%w: from must not be after to", errs.ErrInvalidInput)
	}
	if filter.From != nil || filter.To != nil {
		window := bson.M{}
		if filter.From != nil {
			window["$gte"] = filter.From.UTC()
		}
		if filter.To != nil {
			window["$lte"] = filter.To.UTC()
		}
		query["scheduled_at"] = window
	}

	appointments, err := s.appointmentRepo.Find(ctx, query, page)
	if err != nil {
		log.Error().Err(err).Msg("Error listing appointments")
		return nil, 0, err
	}
	total, err := s.appointmentRepo.Count(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	return appointments, total, nil
}

func (s *appointmentService) UpdateAppointment(ctx context.Context, appointmentID models.ID, updatePayload *models.AppointmentUpdate) (*models.Appointment, error) {
	updateFields := bson.M{}
	if updatePayload.Veterinarian != nil {
		updateFields["veterinarian"] = *updatePayload.Veterinarian
	}
	if updatePayload.Service != nil {
		updateFields["service"] = *updatePayload.Service
	}
	if updatePayload.ScheduledAt != nil {
		if !updatePayload.ScheduledAt.After(s.now()) {
			return nil, fmt.Errorf("%w: scheduled_at must be in the future", errs.ErrInvalidInput)
		}
		updateFields["scheduled_at"] = updatePayload.ScheduledAt.UTC()
	}
	if updatePayload.DurationMinutes != nil {
		updateFields["duration_minutes"] = *updatePayload.DurationMinutes
	}
	if updatePayload.Notes != nil {
		updateFields["notes"] = *updatePayload.Notes
	}
	if len(updateFields) == 0 {
		return nil, errs.ErrNoFieldsToUpdate
	}

	appointment, err := s.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if !appointment.Status.Open() {
		return nil, fmt.Errorf("%w: appointment is %s and can no longer be changed", errs.ErrInvalidStatusTransition, appointment.Status)
	}

	result, err := s.appointmentRepo.UpdateIf(ctx, appointmentID, bson.M{"status": appointment.Status}, updateFields)
	if err != nil {
		return nil, err
	}
	if err := matchedOrChanged(result, "appointment", appointment.Status); err != nil {
		return nil, err
	}

	log.Info().Str("appointment_id", appointmentID.Hex()).Msg("Appointment updated successfully")
	return s.GetAppointment(ctx, appointmentID)
}

func (s *appointmentService) UpdateAppointmentStatus(ctx context.Context, appointmentID models.ID, status models.AppointmentStatus) (*models.Appointment, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown appointment status %q", errs.ErrInvalidInput, status)
	}

	appointment, err := s.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if !appointment.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: appointment cannot move from %s to %s", errs.ErrInvalidStatusTransition, appointment.Status, status)
	}

	result, err := s.appointmentRepo.UpdateIf(ctx, appointmentID, bson.M{"status": appointment.Status}, bson.M{"status": status})
	if err != nil {
		return nil, err
	}
	if err := matchedOrChanged(result, "appointment", appointment.Status); err != nil {
		return nil, err
	}

	log.Info().Str("appointment_id", appointmentID.Hex()).Str("from", string(appointment.Status)).Str("to", string(status)).Msg("Appointment status changed")
	return s.GetAppointment(ctx, appointmentID)
}

func (s *appointmentService) DeleteAppointment(ctx context.Context, appointmentID models.ID) error {
	result, err := s.appointmentRepo.Delete(ctx, appointmentID)
	if err != nil {
		log.Error().Err(err).Str("appointment_id", appointmentID.Hex()).Msg("Failed to delete appointment")
		return err
	}
	if result.DeletedCount == 0 {
		return notFoundErr("appointment")
	}

	log.Info().Str("appointment_id", appointmentID.Hex()).Msg("Appointment deleted successfully")
	return nil
}
