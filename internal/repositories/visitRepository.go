package repositories

import (
	"petlove/internal/database"
	"petlove/internal/models"
)

type VisitRepository interface {
	CRUDRepository[models.Visit]
}

type visitRepository struct {
	*documentStore[models.Visit]
}

func NewVisitRepository(db database.Service) VisitRepository {
	return &visitRepository{newDocumentStore[models.Visit](db, database.VisitsCollection, "visit")}
}
