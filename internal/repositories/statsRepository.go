package repositories

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"petlove/internal/database"
	"petlove/internal/models"
	"petlove/internal/utils"
)

// StatsRepository runs read-only aggregations across collections.
type StatsRepository interface {
	Count(ctx context.Context, collection string, match bson.M) (int64, error)
	CountBy(ctx context.Context, collection, field string, match bson.M) ([]models.KeyCount, error)
	Sum(ctx context.Context, collection, field string, match bson.M) (float64, error)
}

type statsRepository struct {
	db database.Service
}

func NewStatsRepository(db database.Service) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) timer(queryType string, err *error) *prometheus.Timer {
	return prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		status := "success"
		if *err != nil {
			status = "error"
			utils.DBQueryErrorsTotal.WithLabelValues(queryType, "stats").Inc()
		}
		utils.DBQueryDurationSeconds.WithLabelValues(queryType, "stats", status).Observe(v)
	}))
}

func matchOrAll(match bson.M) bson.M {
	if match == nil {
		return bson.M{}
	}
	return match
}

func (r *statsRepository) Count(ctx context.Context, collection string, match bson.M) (_ int64, err error) {
	defer r.timer("count", &err).ObserveDuration()

	count, err := r.db.Database().Collection(collection).CountDocuments(ctx, matchOrAll(match))
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", collection, err)
	}
	return count, nil
}

// CountBy groups the matching documents by field, largest bucket first.
func (r *statsRepository) CountBy(ctx context.Context, collection, field string, match bson.M) (_ []models.KeyCount, err error) {
	defer r.timer("countBy", &err).ObserveDuration()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: matchOrAll(match)}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + field},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
	}

	cursor, err := r.db.Database().Collection(collection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to group %s by %s: %w", collection, field, err)
	}
	defer cursor.Close(ctx)

	buckets := make([]models.KeyCount, 0)
	if err = cursor.All(ctx, &buckets); err != nil {
		return nil, fmt.Errorf("failed to decode %s buckets: %w", collection, err)
	}
	return buckets, nil
}

func (r *statsRepository) Sum(ctx context.Context, collection, field string, match bson.M) (_ float64, err error) {
	defer r.timer("sum", &err).ObserveDuration()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: matchOrAll(match)}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$" + field}}},
		}}},
	}

	cursor, err := r.db.Database().Collection(collection).Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to sum %s.%s: %w", collection, field, err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return 0, fmt.Errorf("failed to decode %s sum: %w", collection, err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}
