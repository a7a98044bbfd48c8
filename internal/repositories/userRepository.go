package repositories

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"petlove/internal/database"
	"petlove/internal/models"
)

type UserRepository interface {
	CRUDRepository[models.User]
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type userRepository struct {
	*documentStore[models.User]
}

func NewUserRepository(db database.Service) UserRepository {
	return &userRepository{newDocumentStore[models.User](db, database.UsersCollection, "user")}
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, "findByEmail", bson.M{"email": strings.ToLower(email)})
}
