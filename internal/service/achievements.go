package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fitkz/fitcoach/internal/domain"
)

// Rule is one achievement predicate. Predicates read already-computed state
// and never mutate it.
type Rule struct {
	Code   string
	Earned func(totalCompletions, currentStreak int) bool
}

// DefaultRules is the fixed badge rule table, in evaluation order. New
// achievements are added here and in the seed catalog; nothing mutates the
// table at runtime.
func DefaultRules() []Rule {
	atLeast := func(n int) func(total, _ int) bool {
		return func(total, _ int) bool { return total >= n }
	}
	streakAtLeast := func(n int) func(_, streak int) bool {
		return func(_, streak int) bool { return streak >= n }
	}
	return []Rule{
		{Code: "first_workout", Earned: atLeast(1)},
		{Code: "workouts_10", Earned: atLeast(10)},
		{Code: "workouts_25", Earned: atLeast(25)},
		{Code: "workouts_50", Earned: atLeast(50)},
		{Code: "workouts_100", Earned: atLeast(100)},
		{Code: "streak_3", Earned: streakAtLeast(3)},
		{Code: "streak_7", Earned: streakAtLeast(7)},
		{Code: "streak_14", Earned: streakAtLeast(14)},
		{Code: "streak_30", Earned: streakAtLeast(30)},
	}
}

// evaluateAchievements runs the rule table and grants whatever the user
// newly qualifies for. Granting is conditional on the store's uniqueness
// check, so evaluating twice in a row returns nothing the second time.
func (c *Coach) evaluateAchievements(ctx context.Context, s domain.Store, u *domain.User, now time.Time) ([]domain.EarnedAchievement, error) {
	total, err := s.CountCompletions(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("count completions: %w", err)
	}

	var earned []domain.EarnedAchievement
	for _, rule := range c.rules {
		if !rule.Earned(total, u.CurrentStreak) {
			continue
		}
		ach, err := s.AchievementByCode(ctx, rule.Code)
		if errors.Is(err, domain.ErrNotFound) {
			// Rule without a seeded catalog entry; nothing to grant.
			continue
		}
		if err != nil {
			return nil, err
		}
		granted, err := s.GrantAchievement(ctx, u.ID, ach.ID, now)
		if err != nil {
			return nil, err
		}
		if granted {
			earned = append(earned, domain.EarnedAchievement{Achievement: *ach, EarnedAt: now})
		}
	}
	return earned, nil
}
