package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"petlove/internal/config"
	"petlove/internal/utils"
)

var ErrFailedToConnect = errors.New("failed to connect to mongodb")

// Collection names.
const (
	UsersCollection        = "users"
	PetsCollection         = "pets"
	OrdersCollection       = "orders"
	AdoptionsCollection    = "adoptions"
	AppointmentsCollection = "appointments"
	VisitsCollection       = "visits"

	PasswordResetsCollection = "password_resets"
)

type Service interface {
	Health() map[string]string
	Client() *mongo.Client
	Database() *mongo.Database
	EnsureIndexes(ctx context.Context) error
	Close(ctx context.Context) error
}

type service struct {
	db     *mongo.Client
	dbName string
}

// New opens the shared client, retrying until the server answers a ping.
func New(ctx context.Context, cfg *config.Config) (Service, error) {
	opts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetConnectTimeout(cfg.MongoConnectTimeout).
		SetServerSelectionTimeout(cfg.MongoConnectTimeout).
		SetPoolMonitor(poolMonitor(cfg.MongoDatabase))

	var lastErr error
	for attempt := 1; attempt <= cfg.MongoRetryAttempts; attempt++ {
		client, err := mongo.Connect(ctx, opts)
		if err == nil {
			pingCtx, cancel := context.WithTimeout(ctx, cfg.MongoConnectTimeout)
			err = client.Ping(pingCtx, nil)
			cancel()
			if err == nil {
				log.Info().Str("database", cfg.MongoDatabase).Int("attempt", attempt).Msg("Connected to MongoDB")
				return &service{db: client, dbName: cfg.MongoDatabase}, nil
			}
			_ = client.Disconnect(context.Background())
		}

		lastErr = err
		log.Warn().Err(err).Int("attempt", attempt).Int("max_attempts", cfg.MongoRetryAttempts).Msg("MongoDB connection attempt failed")

		if attempt < cfg.MongoRetryAttempts {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %w", ErrFailedToConnect, ctx.Err())
			case <-time.After(cfg.MongoRetryInterval):
			}
		}
	}

	return nil, fmt.Errorf("%w: %w", ErrFailedToConnect, lastErr)
}

func poolMonitor(dbName string) *event.PoolMonitor {
	open := utils.DBConnectionsOpen.WithLabelValues(dbName)
	inUse := utils.DBConnectionsInUse.WithLabelValues(dbName)
	return &event.PoolMonitor{
		Event: func(e *event.PoolEvent) {
			switch e.Type {
			case event.ConnectionCreated:
				open.Inc()
			case event.ConnectionClosed:
				open.Dec()
			case event.GetSucceeded:
				inUse.Inc()
			case event.ConnectionReturned:
				inUse.Dec()
			}
		},
	}
}

func (s *service) Health() map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	err := s.db.Ping(ctx, nil)
	if err != nil {
		log.Error().Err(err).Msg("Database health check failed")
		return map[string]string{
			"status":  "down",
			"message": "db down",
			"error":   err.Error(),
		}
	}

	return map[string]string{
		"status":  "up",
		"message": "It's healthy",
	}
}

func (s *service) Client() *mongo.Client {
	return s.db
}

func (s *service) Database() *mongo.Database {
	return s.db.Database(s.dbName)
}

// EnsureIndexes creates the unique email index, the lookup indexes used
// by the list filters and the TTL index that purges expired reset codes.
// Creating an existing index is a no-op.
func (s *service) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		UsersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_email")},
			{Keys: bson.D{{Key: "role", Value: 1}}},
		},
		PetsCollection: {
			{Keys: bson.D{{Key: "species", Value: 1}, {Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		},
		OrdersCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "status", Value: 1}}},
		},
		AdoptionsCollection: {
			{Keys: bson.D{{Key: "pet_id", Value: 1}, {Key: "user_id", Value: 1}, {Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "user_id", Value: 1}}},
		},
		AppointmentsCollection: {
			{Keys: bson.D{{Key: "pet_id", Value: 1}, {Key: "scheduled_at", Value: 1}}},
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "scheduled_at", Value: 1}}},
		},
		VisitsCollection: {
			{Keys: bson.D{{Key: "pet_id", Value: 1}, {Key: "visit_date", Value: -1}}},
			{Keys: bson.D{{Key: "appointment_id", Value: 1}}},
		},
		PasswordResetsCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "code", Value: 1}}},
			{Keys: bson.D{{Key: "expires_at", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(0).SetName("ttl_expires_at")},
		},
	}

	db := s.Database()
	for collection, models := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes for %s: %w", collection, err)
		}
	}
	log.Info().Int("collections", len(indexes)).Msg("Database indexes ensured")
	return nil
}

func (s *service) Close(ctx context.Context) error {
	log.Info().Msg("Disconnecting from MongoDB")
	return s.db.Disconnect(ctx)
}
