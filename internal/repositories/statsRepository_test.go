package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"petlove/internal/models"
)

func TestStatsRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test in short mode.")
	}

	ctx := context.Background()
	const collection = "stats_orders"
	coll := testDB.Database().Collection(collection)
	docs := []any{
		bson.M{"status": models.OrderPending, "total": 10.0},
		bson.M{"status": models.OrderPaid, "total": 20.5},
		bson.M{"status": models.OrderPaid, "total": 4.5},
		bson.M{"status": models.OrderDelivered, "total": 100.0},
	}
	_, err := coll.InsertMany(ctx, docs)
	require.NoError(t, err)
	t.Cleanup(func() { _ = coll.Drop(context.Background()) })

	repo := NewStatsRepository(testDB)

	count, err := repo.Count(ctx, collection, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)

	buckets, err := repo.CountBy(ctx, collection, "status", nil)
	require.NoError(t, err)
	assert.Equal(t, []models.KeyCount{
		{Key: "paid", Count: 2},
		{Key: "delivered", Count: 1},
		{Key: "pending", Count: 1},
	}, buckets)

	revenue, err := repo.Sum(ctx, collection, "total", bson.M{"status": bson.M{"$in": models.RevenueStatuses}})
	require.NoError(t, err)
	assert.InDelta(t, 125.0, revenue, 0.001)

	empty, err := repo.Sum(ctx, collection, "total", bson.M{"status": "nope"})
	require.NoError(t, err)
	assert.Zero(t, empty)

	none, err := repo.CountBy(ctx, "stats_missing", "status", nil)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}
