package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"petlove/internal/errs"
	"petlove/internal/models"
)

func TestAppointmentRules(t *testing.T) {
	appointments, pets, users := newFakeAppointmentRepo(), newFakePetRepo(), newFakeUserRepo()
	svc := NewAppointmentService(appointments, pets, users)
	ctx := context.Background()
	user := seedUser(users, "ana@example.com")
	pet := seedPet(pets, models.PetOwned)

	_, err := svc.CreateAppointment(ctx, &models.Appointment{
		PetID: pet.ID, UserID: user.ID, Service: models.ServiceCheckup,
		ScheduledAt: time.Now().Add(-time.Hour),
	})
	assert.ErrorIs(t, err, errs.ErrInvalidInput)

	_, err = svc.CreateAppointment(ctx, &models.Appointment{
		PetID: models.NewID(), UserID: user.ID, Service: models.ServiceCheckup,
		ScheduledAt: time.Now().Add(time.Hour),
	})
	assert.ErrorIs(t, err, errs.ErrInvalidReference)

	appointment, err := svc.CreateAppointment(ctx, &models.Appointment{
		PetID: pet.ID, UserID: user.ID, Service: models.ServiceVaccination,
		ScheduledAt: time.Now().Add(48 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentScheduled, appointment.Status)
	assert.Equal(t, models.DefaultAppointmentMinutes, appointment.DurationMinutes)

	past := time.Now().Add(-time.Minute)
	_, err = svc.UpdateAppointment(ctx, appointment.ID, &models.AppointmentUpdate{ScheduledAt: &past})
	assert.ErrorIs(t, err, errs.ErrInvalidInput)

	vet := "Dr. Silva"
	updated, err := svc.UpdateAppointment(ctx, appointment.ID, &models.AppointmentUpdate{Veterinarian: &vet})
	require.NoError(t, err)
	assert.Equal(t, vet, updated.Veterinarian)

	_, err = svc.UpdateAppointmentStatus(ctx, appointment.ID, models.AppointmentCompleted)
	assert.ErrorIs(t, err, errs.ErrInvalidStatusTransition)

	cancelled, err := svc.UpdateAppointmentStatus(ctx, appointment.ID, models.AppointmentCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentCancelled, cancelled.Status)

	_, err = svc.UpdateAppointment(ctx, appointment.ID, &models.AppointmentUpdate{Veterinarian: &vet})
	assert.ErrorIs(t, err, errs.ErrInvalidStatusTransition)

	require.NoError(t, svc.DeleteAppointment(ctx, appointment.ID))
	assert.ErrorIs(t, svc.DeleteAppointment(ctx, appointment.ID), errs.ErrNotFound)
}

func TestCreateVisitCompletesAppointment(t *testing.T) {
	visits, pets, appointments := newFakeVisitRepo(), newFakePetRepo(), newFakeAppointmentRepo()
	svc := NewVisitService(visits, pets, appointments)
	ctx := context.Background()
	pet := seedPet(pets, models.PetOwned)
	other := seedPet(pets, models.PetOwned)

	appointment := &models.Appointment{
		Base: models.NewBase(), PetID: pet.ID, UserID: models.NewID(),
		Service: models.ServiceCheckup, ScheduledAt: time.Now().Add(time.Hour), Status: models.AppointmentConfirmed,
	}
	_, err := appointments.Create(ctx, appointment)
	require.NoError(t, err)

	_, err = svc.CreateVisit(ctx, &models.Visit{PetID: other.ID, AppointmentID: &appointment.ID, Veterinarian: "Dr. Silva", Reason: "checkup"})
	assert.ErrorIs(t, err, errs.ErrInvalidReference)

	missing := models.NewID()
	_, err = svc.CreateVisit(ctx, &models.Visit{PetID: pet.ID, AppointmentID: &missing, Veterinarian: "Dr. Silva", Reason: "checkup"})
	assert.ErrorIs(t, err, errs.ErrInvalidReference)

	visit, err := svc.CreateVisit(ctx, &models.Visit{PetID: pet.ID, AppointmentID: &appointment.ID, Veterinarian: "Dr. Silva", Reason: "checkup"})
	require.NoError(t, err)
	assert.False(t, visit.VisitDate.IsZero())

	stored, err := appointments.FindByID(ctx, appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentCompleted, stored.Status)

	diagnosis := "healthy"
	updated, err := svc.UpdateVisit(ctx, visit.ID, &models.VisitUpdate{Diagnosis: &diagnosis})
	require.NoError(t, err)
	assert.Equal(t, "healthy", updated.Diagnosis)

	_, err = svc.UpdateVisit(ctx, visit.ID, &models.VisitUpdate{})
	assert.ErrorIs(t, err, errs.ErrNoFieldsToUpdate)
}

func TestPetOwnerMustExist(t *testing.T) {
	pets, users := newFakePetRepo(), newFakeUserRepo()
	svc := NewPetService(pets, users)
	ctx := context.Background()

	ghost := models.NewID()
	_, err := svc.CreatePet(ctx, &models.Pet{Name: "Rex", Species: models.SpeciesDog, OwnerID: &ghost})
	assert.ErrorIs(t, err, errs.ErrInvalidReference)

	owner := seedUser(users, "ana@example.com")
	pet, err := svc.CreatePet(ctx, &models.Pet{Name: "Rex", Species: models.SpeciesDog, OwnerID: &owner.ID})
	require.NoError(t, err)
	assert.Equal(t, models.PetOwned, pet.Status)

	stray, err := svc.CreatePet(ctx, &models.Pet{Name: "Mia", Species: models.SpeciesCat})
	require.NoError(t, err)
	assert.Equal(t, models.PetAvailable, stray.Status)

	_, err = svc.GetPet(ctx, models.NewID())
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

type failingVisitRepo struct{ *fakeVisitRepo }

func (failingVisitRepo) Create(context.Context, *models.Visit) (*models.Visit, error) {
	return nil, errors.New("insert failed")
}

type failingAppointmentRepo struct{ *fakeAppointmentRepo }

func (failingAppointmentRepo) UpdateIf(context.Context, models.ID, bson.M, bson.M) (*mongo.UpdateResult, error) {
	return nil, errors.New("update failed")
}

func TestCreateVisitKeepsAppointmentAndVisitInStep(t *testing.T) {
	ctx := context.Background()
	seed := func(t *testing.T, pets *fakePetRepo, appointments *fakeAppointmentRepo) (*models.Pet, *models.Appointment) {
		pet := seedPet(pets, models.PetOwned)
		appointment := &models.Appointment{
			Base: models.NewBase(), PetID: pet.ID, UserID: models.NewID(),
			Service: models.ServiceCheckup, ScheduledAt: time.Now().Add(time.Hour), Status: models.AppointmentConfirmed,
		}
		_, err := appointments.Create(ctx, appointment)
		require.NoError(t, err)
		return pet, appointment
	}

	t.Run("visit insert fails", func(t *testing.T) {
		visits, pets, appointments := newFakeVisitRepo(), newFakePetRepo(), newFakeAppointmentRepo()
		svc := NewVisitService(failingVisitRepo{visits}, pets, appointments)
		pet, appointment := seed(t, pets, appointments)

		_, err := svc.CreateVisit(ctx, &models.Visit{PetID: pet.ID, AppointmentID: &appointment.ID, Veterinarian: "Dr. Silva", Reason: "checkup"})
		require.Error(t, err)

		stored, err := appointments.FindByID(ctx, appointment.ID)
		require.NoError(t, err)
		assert.Equal(t, models.AppointmentConfirmed, stored.Status)
	})

	t.Run("completing the appointment fails", func(t *testing.T) {
		visits, pets, appointments := newFakeVisitRepo(), newFakePetRepo(), newFakeAppointmentRepo()
		svc := NewVisitService(visits, pets, failingAppointmentRepo{appointments})
		pet, appointment := seed(t, pets, appointments)

		_, err := svc.CreateVisit(ctx, &models.Visit{PetID: pet.ID, AppointmentID: &appointment.ID, Veterinarian: "Dr. Silva", Reason: "checkup"})
		require.Error(t, err)
		assert.Empty(t, visits.all(), "no visit without a completed appointment")
	})

	t.Run("appointment cancelled after it was read", func(t *testing.T) {
		visits, pets, appointments := newFakeVisitRepo(), newFakePetRepo(), newFakeAppointmentRepo()
		pet, appointment := seed(t, pets, appointments)
		stale := *appointment
		_, err := appointments.Update(ctx, appointment.ID, bson.M{"status": models.AppointmentCancelled})
		require.NoError(t, err)
		svc := NewVisitService(visits, pets, &staleAppointmentRepo{appointments, &stale})

		_, err = svc.CreateVisit(ctx, &models.Visit{PetID: pet.ID, AppointmentID: &appointment.ID, Veterinarian: "Dr. Silva", Reason: "checkup"})
		assert.ErrorIs(t, err, errs.ErrInvalidStatusTransition)
		assert.Empty(t, visits.all())
	})
}

type staleAppointmentRepo struct {
	*fakeAppointmentRepo
	snapshot *models.Appointment
}

func (r *staleAppointmentRepo) FindByID(context.Context, models.ID) (*models.Appointment, error) {
	cp := *r.snapshot
	return &cp, nil
}

func TestVisitUpdateAndDelete(t *testing.T) {
	visits, pets, appointments := newFakeVisitRepo(), newFakePetRepo(), newFakeAppointmentRepo()
	svc := NewVisitService(visits, pets, appointments)
	ctx := context.Background()
	pet := seedPet(pets, models.PetOwned)

	visit, err := svc.CreateVisit(ctx, &models.Visit{PetID: pet.ID, Veterinarian: "Dr. Silva", Reason: "vaccine"})
	require.NoError(t, err)

	reason := "follow-up"
	_, err = svc.UpdateVisit(ctx, models.NewID(), &models.VisitUpdate{Reason: &reason})
	assert.ErrorIs(t, err, errs.ErrNotFound)

	require.NoError(t, svc.DeleteVisit(ctx, visit.ID))
	assert.ErrorIs(t, svc.DeleteVisit(ctx, visit.ID), errs.ErrNotFound)
	_, err = svc.GetVisit(ctx, visit.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestListAppointmentsRejectsInvertedWindow(t *testing.T) {
	svc := NewAppointmentService(newFakeAppointmentRepo(), newFakePetRepo(), newFakeUserRepo())
	from := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	to := from.Add(-time.Hour)

	_, _, err := svc.ListAppointments(context.Background(), models.AppointmentFilter{From: &from, To: &to}, models.DefaultPagination())
	assert.ErrorIs(t, err, errs.ErrInvalidInput)
}
