package repositories

import (
	"petlove/internal/database"
	"petlove/internal/models"
)

type AppointmentRepository interface {
	CRUDRepository[models.Appointment]
}

type appointmentRepository struct {
	*documentStore[models.Appointment]
}

func NewAppointmentRepository(db database.Service) AppointmentRepository {
	return &appointmentRepository{newDocumentStore[models.Appointment](db, database.AppointmentsCollection, "appointment")}
}
