package server

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"petlove/internal/config"
	"petlove/internal/database"
	"petlove/internal/middlewares"
	"petlove/internal/repositories"
	"petlove/internal/services"
)

type Server struct {
	port       int
	cfg        *config.Config
	httpServer *http.Server
	db         database.Service
	limiter    *middlewares.RateLimiter

	stopCleanup context.CancelFunc

	userService        services.UserService
	petService         services.PetService
	orderService       services.OrderService
	adoptionService    services.AdoptionService
	appointmentService services.AppointmentService
	visitService       services.VisitService

	passwordResetService services.PasswordResetService
	statsService         services.StatsService
}

// NewServer connects to MongoDB, builds the repositories and services and
// prepares the HTTP server.
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	db, err := database.New(ctx, cfg)
	if err != nil {
		return nil, err
	}

	indexCtx, cancel := context.WithTimeout(ctx, cfg.MongoConnectTimeout)
	defer cancel()
	if err := db.EnsureIndexes(indexCtx); err != nil {
		log.Warn().Err(err).Msg("Failed to ensure MongoDB indexes")
	}

	s := newServer(cfg, db)
	cleanupCtx, stop := context.WithCancel(context.Background())
	s.stopCleanup = stop
	go s.limiter.CleanupVisitors(cleanupCtx)

	return s, nil
}

func newServer(cfg *config.Config, db database.Service) *Server {
	userRepo := repositories.NewUserRepository(db)
	petRepo := repositories.NewPetRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	adoptionRepo := repositories.NewAdoptionRepository(db)
	appointmentRepo := repositories.NewAppointmentRepository(db)
	visitRepo := repositories.NewVisitRepository(db)

	emailService := services.NewEmailService(cfg)

	s := &Server{
		port:               cfg.Port,
		cfg:                cfg,
		db:                 db,
		limiter:            middlewares.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.JWTSecret),
		stopCleanup:        func() {},
		userService:        services.NewUserService(userRepo, emailService, cfg.JWTSecret, cfg.JWTExpiry),
		petService:         services.NewPetService(petRepo, userRepo),
		orderService:       services.NewOrderService(orderRepo, userRepo),
		adoptionService:    services.NewAdoptionService(adoptionRepo, petRepo, userRepo, emailService),
		appointmentService: services.NewAppointmentService(appointmentRepo, petRepo, userRepo),
		visitService:       services.NewVisitService(visitRepo, petRepo, appointmentRepo),

		passwordResetService: services.NewPasswordResetService(userRepo, repositories.NewPasswordResetRepository(db), emailService),
		statsService:         services.NewStatsService(repositories.NewStatsRepository(db)),
	}

	if cfg.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET is not set, login and authenticated routes will answer 500")
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return s
}

func (s *Server) Start() error {
	log.Info().Int("port", s.port).Str("env", s.cfg.Env).Msg("Starting server")
	return s.httpServer.ListenAndServe()
}

func (s *Server) GracefulShutdown(done chan bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Info().Msg("Shutting down gracefully, press Ctrl+C again to force")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown with error")
	}

	s.stopCleanup()
	if err := s.db.Close(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to close MongoDB connection")
	}

	log.Info().Msg("Server exiting")
	done <- true
}
