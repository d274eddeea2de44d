package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"github.com/fitkz/fitcoach/internal/config"
	"github.com/fitkz/fitcoach/internal/repository"
	"github.com/fitkz/fitcoach/internal/seed"
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

	seeder := seed.Seeder{Store: repository.NewStore(pool), Log: logger}
	if _, err := seeder.Run(ctx); err != nil {
		logger.Fatal().Err(err).Msg("seed")
	}
}
