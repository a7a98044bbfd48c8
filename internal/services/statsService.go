package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/sync/errgroup"

	"petlove/internal/database"
	"petlove/internal/errs"
	"petlove/internal/models"
	"petlove/internal/repositories"
)

type StatsService interface {
	Summary(ctx context.Context, window models.StatsWindow) (*models.StatsSummary, error)
}

type statsService struct {
	statsRepo repositories.StatsRepository
}

func NewStatsService(statsRepo repositories.StatsRepository) StatsService {
	return &statsService{statsRepo: statsRepo}
}

// createdWithin builds a created_at range filter; nil bounds are open.
func createdWithin(window models.StatsWindow) (bson.M, error) {
	if window.From != nil && window.To != nil && !window.From.Before(*window.To) {
		return nil, fmt.Errorf("%w: from must be before to", errs.ErrInvalidInput)
	}
	bounds := bson.M{}
	if window.From != nil {
		bounds["$gte"] = window.From.UTC()
	}
	if window.To != nil {
		bounds["$lt"] = window.To.UTC()
	}
	if len(bounds) == 0 {
		return bson.M{}, nil
	}
	return bson.M{"created_at": bounds}, nil
}

func withFilter(base bson.M, key string, value any) bson.M {
	m := bson.M{key: value}
	for k, v := range base {
		m[k] = v
	}
	return m
}

// Summary aggregates every collection over documents created in the window.
// The aggregations run concurrently and the first failure cancels the rest.
func (s *statsService) Summary(ctx context.Context, window models.StatsWindow) (*models.StatsSummary, error) {
	match, err := createdWithin(window)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	summary := &models.StatsSummary{Window: window}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		summary.Users, err = s.statsRepo.Count(gctx, database.UsersCollection, match)
		return err
	})
	g.Go(func() (err error) {
		summary.UsersByRole, err = s.statsRepo.CountBy(gctx, database.UsersCollection, "role", match)
		return err
	})
	g.Go(func() (err error) {
		summary.PetsByStatus, err = s.statsRepo.CountBy(gctx, database.PetsCollection, "status", match)
		return err
	})
	g.Go(func() (err error) {
		summary.PetsBySpecies, err = s.statsRepo.CountBy(gctx, database.PetsCollection, "species", match)
		return err
	})
	g.Go(func() (err error) {
		summary.OrdersByStatus, err = s.statsRepo.CountBy(gctx, database.OrdersCollection, "status", match)
		return err
	})
	g.Go(func() (err error) {
		revenueMatch := withFilter(match, "status", bson.M{"$in": models.RevenueStatuses})
		summary.Revenue, err = s.statsRepo.Sum(gctx, database.OrdersCollection, "total", revenueMatch)
		return err
	})
	g.Go(func() (err error) {
		summary.AdoptionsByStatus, err = s.statsRepo.CountBy(gctx, database.AdoptionsCollection, "status", match)
		return err
	})
	g.Go(func() (err error) {
		summary.AppointmentsByStatus, err = s.statsRepo.CountBy(gctx, database.AppointmentsCollection, "status", match)
		return err
	})
	g.Go(func() (err error) {
		summary.Visits, err = s.statsRepo.Count(gctx, database.VisitsCollection, match)
		return err
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Failed to build stats summary")
		return nil, fmt.Errorf("failed to build stats summary: %w", err)
	}

	log.Debug().Dur("took", time.Since(start)).Msg("Stats summary built")
	return summary, nil
}
