package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"petlove/internal/database"
	"petlove/internal/models"
	"petlove/internal/utils"
)

// CRUDRepository is the set of operations every collection supports.
type CRUDRepository[T any] interface {
	Create(ctx context.Context, doc *T) (*T, error)
	FindByID(ctx context.Context, id models.ID) (*T, error)
	Find(ctx context.Context, filter bson.M, page models.Pagination) ([]T, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
	Update(ctx context.Context, id models.ID, updateFields bson.M) (*mongo.UpdateResult, error)
	// UpdateIf applies updateFields only while the document still matches
	// expect; MatchedCount is 0 when it no longer does.
	UpdateIf(ctx context.Context, id models.ID, expect, updateFields bson.M) (*mongo.UpdateResult, error)
	Delete(ctx context.Context, id models.ID) (*mongo.DeleteResult, error)
}

// documentStore implements CRUDRepository on one collection and records a
// duration sample for every query.
type documentStore[T any] struct {
	db         database.Service
	collection string
	repository string
}

func newDocumentStore[T any](db database.Service, collection, repository string) *documentStore[T] {
	return &documentStore[T]{db: db, collection: collection, repository: repository}
}

func (s *documentStore[T]) coll() *mongo.Collection {
	return s.db.Database().Collection(s.collection)
}

// observe starts a query timer; the returned func records the outcome of *err.
func (s *documentStore[T]) observe(queryType string, err *error) func() {
	start := time.Now()
	return func() {
		status := "success"
		switch {
		case *err == nil:
		case errors.Is(*err, mongo.ErrNoDocuments):
			status = "not_found"
		default:
			status = "error"
			utils.DBQueryErrorsTotal.WithLabelValues(queryType, s.repository).Inc()
		}
		utils.DBQueryDurationSeconds.WithLabelValues(queryType, s.repository, status).Observe(time.Since(start).Seconds())
	}
}

func (s *documentStore[T]) Create(ctx context.Context, doc *T) (_ *T, err error) {
	defer s.observe("create", &err)()

	if _, err = s.coll().InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to insert %s: %w", s.repository, err)
	}
	return doc, nil
}

func (s *documentStore[T]) FindByID(ctx context.Context, id models.ID) (_ *T, err error) {
	defer s.observe("findByID", &err)()

	var doc T
	if err = s.coll().FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return nil, err // Can be mongo.ErrNoDocuments
	}
	return &doc, nil
}

func (s *documentStore[T]) findOne(ctx context.Context, queryType string, filter bson.M) (_ *T, err error) {
	defer s.observe(queryType, &err)()

	var doc T
	if err = s.coll().FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *documentStore[T]) Find(ctx context.Context, filter bson.M, page models.Pagination) (_ []T, err error) {
	defer s.observe("find", &err)()

	if filter == nil {
		filter = bson.M{}
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(page.Skip).
		SetLimit(page.Limit)

	cursor, err := s.coll().Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching %s documents: %w", s.repository, err)
	}
	defer cursor.Close(ctx)

	docs := make([]T, 0)
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("error decoding %s documents: %w", s.repository, err)
	}
	return docs, nil
}

func (s *documentStore[T]) Count(ctx context.Context, filter bson.M) (_ int64, err error) {
	defer s.observe("count", &err)()

	if filter == nil {
		filter = bson.M{}
	}
	count, err := s.coll().CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s documents: %w", s.repository, err)
	}
	return count, nil
}

func (s *documentStore[T]) exists(ctx context.Context, filter bson.M) (bool, error) {
	var err error
	defer s.observe("exists", &err)()

	count, err := s.coll().CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check %s existence: %w", s.repository, err)
	}
	return count > 0, nil
}

// Update applies updateFields with $set and always refreshes updated_at.
func (s *documentStore[T]) Update(ctx context.Context, id models.ID, updateFields bson.M) (*mongo.UpdateResult, error) {
	return s.update(ctx, "update", id, nil, updateFields)
}

func (s *documentStore[T]) UpdateIf(ctx context.Context, id models.ID, expect, updateFields bson.M) (*mongo.UpdateResult, error) {
	return s.update(ctx, "updateIf", id, expect, updateFields)
}

func (s *documentStore[T]) update(ctx context.Context, queryType string, id models.ID, expect, updateFields bson.M) (_ *mongo.UpdateResult, err error) {
	defer s.observe(queryType, &err)()

	filter := bson.M{"_id": id}
	for k, v := range expect {
		filter[k] = v
	}
	set := bson.M{"updated_at": time.Now().UTC()}
	for k, v := range updateFields {
		set[k] = v
	}

	result, err := s.coll().UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", s.repository, err)
	}
	return result, nil
}

func (s *documentStore[T]) Delete(ctx context.Context, id models.ID) (_ *mongo.DeleteResult, err error) {
	defer s.observe("delete", &err)()

	result, err := s.coll().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to delete %s: %w", s.repository, err)
	}
	return result, nil
}
