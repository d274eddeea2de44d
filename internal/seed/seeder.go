package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/fitkz/fitcoach/internal/domain"
)

// Seeder loads the built-in catalogs into a store. Running it twice is a
// no-op: existing codes are skipped, never overwritten.
type Seeder struct {
	Store domain.Store
	Log   zerolog.Logger
}

// Result counts what a seeding run actually created.
type Result struct {
	TemplatesCreated    int
	TemplatesSkipped    int
	AchievementsCreated int
	AchievementsSkipped int
}

// Run seeds workout templates and achievements.
func (s Seeder) Run(ctx context.Context) (Result, error) {
	var res Result

	for _, t := range Templates() {
		t := t
		created, err := s.Store.CreateTemplate(ctx, &t)
		if err != nil {
			return res, fmt.Errorf("seed template %s: %w", t.Code, err)
		}
		if created {
			res.TemplatesCreated++
		} else {
			res.TemplatesSkipped++
		}
	}

	for _, a := range Achievements() {
		a := a
		created, err := s.Store.SeedAchievement(ctx, &a)
		if err != nil {
			return res, fmt.Errorf("seed achievement %s: %w", a.Code, err)
		}
		if created {
			res.AchievementsCreated++
		} else {
			res.AchievementsSkipped++
		}
	}

	s.Log.Info().
		Int("templates_created", res.TemplatesCreated).
		Int("templates_skipped", res.TemplatesSkipped).
		Int("achievements_created", res.AchievementsCreated).
		Int("achievements_skipped", res.AchievementsSkipped).
		Msg("seed complete")
	return res, nil
}
