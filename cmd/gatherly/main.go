package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/gatherly-dev/gatherly/internal/auth"
	"github.com/gatherly-dev/gatherly/internal/config"
	"github.com/gatherly-dev/gatherly/internal/router"
	"github.com/gatherly-dev/gatherly/internal/services"
	"github.com/gatherly-dev/gatherly/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	logger := config.NewLogger(cfg.Logging)

	if err := auth.Init(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiry); err != nil {
		logger.Fatal().Err(err).Msg("auth init failed")
	}

	mailer, err := services.NewMailer(cfg.Email, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("mailer init failed")
	}

	// All state lives in this one store instance; it is passed into the
	// router and lost on process exit.
	st := store.New()

	r := router.New(cfg, st, mailer, logger)

	logger.Info().Str("port", cfg.Server.Port).Str("env", cfg.Environment).Msg("starting server")

	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal().Err(err).Msg("server exited")
	}
}
