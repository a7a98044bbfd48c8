package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"petlove/internal/database"
	"petlove/internal/models"
)

type PasswordResetRepository interface {
	Create(ctx context.Context, reset *models.PasswordReset) (*models.PasswordReset, error)
	// FindActive returns an unused, unexpired, unlocked reset for the user and code.
	FindActive(ctx context.Context, userID models.ID, code string, now time.Time) (*models.PasswordReset, error)
	// MarkUsed consumes the reset; it reports false if it was already used.
	MarkUsed(ctx context.Context, id models.ID, now time.Time) (bool, error)
	// RecordFailedAttempt counts a wrong code against every open reset of
	// the user.
	RecordFailedAttempt(ctx context.Context, userID models.ID, now time.Time) error
	// InvalidateForUser consumes every open reset of the user.
	InvalidateForUser(ctx context.Context, userID models.ID, now time.Time) error
}

type passwordResetRepository struct {
	*documentStore[models.PasswordReset]
}

func NewPasswordResetRepository(db database.Service) PasswordResetRepository {
	return &passwordResetRepository{newDocumentStore[models.PasswordReset](db, database.PasswordResetsCollection, "password_reset")}
}

func (r *passwordResetRepository) FindActive(ctx context.Context, userID models.ID, code string, now time.Time) (*models.PasswordReset, error) {
	return r.findOne(ctx, "findActive", bson.M{
		"user_id":    userID,
		"code":       code,
		"used_at":    bson.M{"$exists": false},
		"expires_at": bson.M{"$gt": now},
		"attempts":   bson.M{"$lt": models.MaxResetAttempts},
	})
}

func (r *passwordResetRepository) RecordFailedAttempt(ctx context.Context, userID models.ID, now time.Time) (err error) {
	defer r.observe("recordFailedAttempt", &err)()

	_, err = r.coll().UpdateMany(ctx,
		bson.M{"user_id": userID, "used_at": bson.M{"$exists": false}, "expires_at": bson.M{"$gt": now}},
		bson.M{"$inc": bson.M{"attempts": 1}, "$set": bson.M{"updated_at": now}},
	)
	return err
}

func (r *passwordResetRepository) MarkUsed(ctx context.Context, id models.ID, now time.Time) (_ bool, err error) {
	defer r.observe("markUsed", &err)()

	var result *mongo.UpdateResult
	result, err = r.coll().UpdateOne(ctx,
		bson.M{"_id": id, "used_at": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"used_at": now, "updated_at": now}},
	)
	if err != nil {
		return false, err
	}
	return result.ModifiedCount == 1, nil
}

func (r *passwordResetRepository) InvalidateForUser(ctx context.Context, userID models.ID, now time.Time) (err error) {
	defer r.observe("invalidateForUser", &err)()

	_, err = r.coll().UpdateMany(ctx,
		bson.M{"user_id": userID, "used_at": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"used_at": now, "updated_at": now}},
	)
	return err
}
