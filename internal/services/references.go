package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"petlove/internal/errs"
	"petlove/internal/models"
	"petlove/internal/repositories"
)

// notFound maps a missing document to errs.ErrNotFound for the named entity.
func notFound(err error, entity string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return notFoundErr(entity)
	}
	return err
}

// resolveReference loads a document another document points at. A missing
// target is an invalid reference rather than a missing resource.
func resolveReference[T any](ctx context.Context, repo repositories.CRUDRepository[T], id models.ID, field string) (*T, error) {
	doc, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s %s does not exist", errs.ErrInvalidReference, field, id.Hex())
		}
		return nil, err
	}
	return doc, nil
}

func notFoundErr(entity string) error {
	return fmt.Errorf("%s %w", entity, errs.ErrNotFound)
}

func matchedOrNotFound(result *mongo.UpdateResult, entity string) error {
	if result.MatchedCount == 0 {
		return notFoundErr(entity)
	}
	return nil
}

// matchedOrChanged maps a guarded update that matched nothing to a status
// conflict: the document no longer had the status it was read with.
func matchedOrChanged(result *mongo.UpdateResult, entity string, observed any) error {
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s is no longer %v", errs.ErrInvalidStatusTransition, entity, observed)
	}
	return nil
}
