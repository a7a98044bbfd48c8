package repositories

import (
	"petlove/internal/database"
	"petlove/internal/models"
)

type PetRepository interface {
	CRUDRepository[models.Pet]
}

type petRepository struct {
	*documentStore[models.Pet]
}

func NewPetRepository(db database.Service) PetRepository {
	return &petRepository{newDocumentStore[models.Pet](db, database.PetsCollection, "pet")}
}
