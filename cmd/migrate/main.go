package main

import (
	"errors"
	"flag"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"

	"github.com/fitkz/fitcoach/internal/config"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	source := flag.String("source", "file://migrations", "migrations source URL")
	down := flag.Bool("down", false, "roll back one migration instead of migrating up")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	m, err := migrate.New(*source, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("open migrations")
	}
	defer m.Close() //nolint:errcheck

	if *down {
		err = m.Steps(-1)
	} else {
		err = m.Up()
	}
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info().Msg("no migrations to apply")
	case err != nil:
		logger.Fatal().Err(err).Msg("migrate")
	default:
		logger.Info().Msg("migrations applied")
	}
}
