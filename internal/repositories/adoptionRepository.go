package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"petlove/internal/database"
	"petlove/internal/models"
)

type AdoptionRepository interface {
	CRUDRepository[models.Adoption]
	// ExistsActive reports whether the user already has a pending or approved
	// application for the pet.
	ExistsActive(ctx context.Context, petID, userID models.ID) (bool, error)
}

type adoptionRepository struct {
	*documentStore[models.Adoption]
}

func NewAdoptionRepository(db database.Service) AdoptionRepository {
	return &adoptionRepository{newDocumentStore[models.Adoption](db, database.AdoptionsCollection, "adoption")}
}

func (r *adoptionRepository) ExistsActive(ctx context.Context, petID, userID models.ID) (bool, error) {
	return r.exists(ctx, bson.M{
		"pet_id":  petID,
		"user_id": userID,
		"status":  bson.M{"$in": []models.AdoptionStatus{models.AdoptionPending, models.AdoptionApproved}},
	})
}
