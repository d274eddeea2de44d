package main

import (
	"context"
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/fitkz/fitcoach/internal/advice"
	"github.com/fitkz/fitcoach/internal/config"
	"github.com/fitkz/fitcoach/internal/http/routes"
	"github.com/fitkz/fitcoach/internal/repository"
	"github.com/fitkz/fitcoach/internal/seed"
	"github.com/fitkz/fitcoach/internal/service"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	ctx := context.Background()
	pool, err := repository.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect database")
	}
	defer pool.Close()

	store := repository.NewStore(pool)
	uow := repository.NewUnitOfWork(pool)

	// Reseeding is idempotent, so every start converges the catalog.
	seeder := seed.Seeder{Store: store, Log: logger}
	if _, err := seeder.Run(ctx); err != nil {
		logger.Fatal().Err(err).Msg("seed catalog")
	}

	coach := service.NewCoach(store, uow, logger, service.WithWeeklyGoal(cfg.WeeklyGoal))
	gen := advice.New(cfg.Advice.APIKey, cfg.Advice.BaseURL, cfg.Advice.Model, cfg.Advice.Timeout, logger)

	s := routes.New(routes.ServerOptions{
		Coach:         coach,
		Advice:        gen,
		APIToken:      cfg.APIToken,
		AdviceTimeout: cfg.Advice.Timeout,
		Log:           logger,
	})
	h := hlog.NewHandler(logger)(s.Router)

	logger.Info().Str("port", cfg.Port).Msg("api listening")
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: h}
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
