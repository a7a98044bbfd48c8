package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	_ "github.com/joho/godotenv/autoload" // Import godotenv/autoload
	"petlove/internal/config"
	"petlove/internal/logger"
	"petlove/internal/server"
)

// @title PetLove API
// @version 1.0.0
// @description REST API for the PetLove pet shop and veterinary clinic: accounts, pets, orders, adoptions, appointments and clinic visits.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logger.Setup(cfg.LogLevel, cfg.IsDevelopment())

	s, err := server.NewServer(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize server")
	}

	done := make(chan bool, 1)

	go s.GracefulShutdown(done)

	err = s.Start()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("HTTP server error")
	}

	<-done
	log.Info().Msg("Graceful shutdown complete.")
}
