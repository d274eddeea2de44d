package seed_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitkz/fitcoach/internal/repository/memory"
	"github.com/fitkz/fitcoach/internal/seed"
)

func TestRunSeedsBothCatalogs(t *testing.T) {
	db := memory.New()
	s := seed.Seeder{Store: db, Log: zerolog.Nop()}

	res, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, len(seed.Templates()), res.TemplatesCreated)
	assert.Zero(t, res.TemplatesSkipped)
	assert.Equal(t, len(seed.Achievements()), res.AchievementsCreated)
	assert.Zero(t, res.AchievementsSkipped)

	n, err := db.CountTemplates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(seed.Templates()), n)
}

func TestRunTwiceIsANoOp(t *testing.T) {
	db := memory.New()
	s := seed.Seeder{Store: db, Log: zerolog.Nop()}

	_, err := s.Run(context.Background())
	require.NoError(t, err)

	res, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, res.TemplatesCreated)
	assert.Equal(t, len(seed.Templates()), res.TemplatesSkipped)
	assert.Zero(t, res.AchievementsCreated)
	assert.Equal(t, len(seed.Achievements()), res.AchievementsSkipped)
}

func TestCatalogCodesAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, tpl := range seed.Templates() {
		assert.False(t, seen[tpl.Code], "duplicate template code %s", tpl.Code)
		seen[tpl.Code] = true
		assert.GreaterOrEqual(t, tpl.DayIndex, 0)
		assert.LessOrEqual(t, tpl.DayIndex, 6)
		assert.NotEmpty(t, tpl.Exercises, "template %s has no exercises", tpl.Code)
	}

	codes := make(map[string]bool)
	for _, a := range seed.Achievements() {
		assert.False(t, codes[a.Code], "duplicate achievement code %s", a.Code)
		codes[a.Code] = true
	}
	assert.Len(t, codes, 9)
}
