// Package service implements the workout-assignment and progress engine:
// selection, the completion pipeline, streaks, achievements and reports.
package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fitkz/fitcoach/internal/domain"
	"github.com/fitkz/fitcoach/internal/metrics"
	"github.com/fitkz/fitcoach/internal/validate"
)

// Coach is the engine facade consumed by the HTTP layer and the worker.
type Coach struct {
	store      domain.Store
	uow        domain.UnitOfWork
	rules      []Rule
	rng        *rand.Rand
	weeklyGoal int
	log        zerolog.Logger
}

// Option configures a Coach.
type Option func(*Coach)

// WithRules replaces the default achievement rule table.
func WithRules(rules []Rule) Option {
	return func(c *Coach) { c.rules = rules }
}

// WithRand injects the randomness source used for reminder message variants.
func WithRand(rng *rand.Rand) Option {
	return func(c *Coach) { c.rng = rng }
}

// WithWeeklyGoal sets the workouts-per-week target used in weekly reports.
func WithWeeklyGoal(goal int) Option {
	return func(c *Coach) { c.weeklyGoal = goal }
}

// NewCoach creates the engine over a store and a unit of work.
func NewCoach(store domain.Store, uow domain.UnitOfWork, log zerolog.Logger, opts ...Option) *Coach {
	c := &Coach{
		store:      store,
		uow:        uow,
		rules:      DefaultRules(),
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		weeklyGoal: 4,
		log:        log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ProfileInput carries the onboarding questionnaire answers.
type ProfileInput struct {
	Gender      string
	Age         int
	HeightCM    int
	WeightKG    float64
	Goal        domain.Goal
	Level       domain.Level
	WorkoutType domain.WorkoutType
}

func (in ProfileInput) validate() error {
	if in.Age < validate.MinAge || in.Age > validate.MaxAge {
		return fmt.Errorf("%w: age must be between %d and %d", domain.ErrValidation, validate.MinAge, validate.MaxAge)
	}
	if in.HeightCM < validate.MinHeight || in.HeightCM > validate.MaxHeight {
		return fmt.Errorf("%w: height must be between %d and %d cm", domain.ErrValidation, validate.MinHeight, validate.MaxHeight)
	}
	if in.WeightKG < validate.MinWeight || in.WeightKG > validate.MaxWeight {
		return fmt.Errorf("%w: weight must be between %d and %d kg", domain.ErrValidation, validate.MinWeight, validate.MaxWeight)
	}
	switch in.Goal {
	case domain.GoalLoseWeight, domain.GoalGainMuscle, domain.GoalStayFit:
	default:
		return fmt.Errorf("%w: unknown goal %q", domain.ErrValidation, in.Goal)
	}
	switch in.Level {
	case domain.LevelBeginner, domain.LevelIntermediate:
	default:
		return fmt.Errorf("%w: unknown level %q", domain.ErrValidation, in.Level)
	}
	switch in.WorkoutType {
	case domain.WorkoutHome, domain.WorkoutGym:
	default:
		return fmt.Errorf("%w: unknown workout type %q", domain.ErrValidation, in.WorkoutType)
	}
	return nil
}

// SaveProfile creates the profile on first onboarding confirmation and
// overwrites the questionnaire fields on later edits. Streak counters are
// never touched here.
func (c *Coach) SaveProfile(ctx context.Context, chatID int64, in ProfileInput) (*domain.User, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	u, err := c.store.UserByChatID(ctx, chatID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		u = &domain.User{ChatID: chatID}
	case err != nil:
		return nil, fmt.Errorf("load user: %w", err)
	}

	u.Gender = in.Gender
	u.Age = in.Age
	u.HeightCM = in.HeightCM
	u.WeightKG = in.WeightKG
	u.Goal = in.Goal
	u.Level = in.Level
	u.WorkoutType = in.WorkoutType

	if u.ID == uuid.Nil {
		if err := c.store.CreateUser(ctx, u); err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		c.log.Info().Int64("chat_id", chatID).Msg("user onboarded")
		return u, nil
	}
	if err := c.store.UpdateProfile(ctx, u); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return u, nil
}

// Profile returns the user's profile.
func (c *Coach) Profile(ctx context.Context, chatID int64) (*domain.User, error) {
	return c.store.UserByChatID(ctx, chatID)
}

// SetReminder updates the reminder settings. An empty time keeps the stored
// one; nil days keep the stored set.
func (c *Coach) SetReminder(ctx context.Context, chatID int64, enabled bool, timeText string, days []string) (*domain.User, error) {
	timeHHMM := ""
	if timeText != "" {
		var err error
		timeHHMM, err = validate.ReminderTime(timeText)
		if err != nil {
			return nil, err
		}
	}
	if err := validate.ReminderDays(days); err != nil {
		return nil, err
	}
	return c.store.UpdateReminder(ctx, chatID, enabled, timeHHMM, days)
}

// TodaysWorkout selects the template for the user on the given date. A nil
// template with nil error is a rest day, not a failure.
func (c *Coach) TodaysWorkout(ctx context.Context, chatID int64, today time.Time) (*domain.WorkoutTemplate, error) {
	u, err := c.store.UserByChatID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !u.ProfileComplete() {
		return nil, fmt.Errorf("%w: profile incomplete", domain.ErrValidation)
	}
	return c.selectWorkout(ctx, u, weekdayIndex(today))
}

// WeekPlan selects the template (or rest day) for every weekday, Monday
// first. Selection is a pure function of the catalog and profile, so the
// view is stable across calls.
func (c *Coach) WeekPlan(ctx context.Context, chatID int64) ([7]*domain.WorkoutTemplate, error) {
	var plan [7]*domain.WorkoutTemplate
	u, err := c.store.UserByChatID(ctx, chatID)
	if err != nil {
		return plan, err
	}
	if !u.ProfileComplete() {
		return plan, fmt.Errorf("%w: profile incomplete", domain.ErrValidation)
	}
	for day := 0; day < 7; day++ {
		tpl, err := c.selectWorkout(ctx, u, day)
		if err != nil {
			return plan, err
		}
		plan[day] = tpl
	}
	return plan, nil
}

func (c *Coach) selectWorkout(ctx context.Context, u *domain.User, dayIndex int) (*domain.WorkoutTemplate, error) {
	tpl, err := c.store.TemplateForAxes(ctx, u.Level, u.WorkoutType, u.Goal, dayIndex)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil // rest day
	}
	if err != nil {
		return nil, fmt.Errorf("select workout: %w", err)
	}
	return tpl, nil
}

// CompletionResult is what a completion event produces.
type CompletionResult struct {
	Record          domain.CompletionRecord
	Streak          domain.StreakInfo
	NewAchievements []domain.EarnedAchievement
}

// CompleteWorkout records a completion, advances the streak and evaluates
// achievements as one atomic unit. The ledger is append-only: a second
// completion of the same workout on the same day adds a second record, and
// only the streak's same-day no-op keeps the counters honest.
func (c *Coach) CompleteWorkout(ctx context.Context, chatID int64, workoutID uuid.UUID, feeling domain.Feeling, comment string, today time.Time) (*CompletionResult, error) {
	switch feeling {
	case "", domain.FeelingEasy, domain.FeelingNormal, domain.FeelingHard:
	default:
		return nil, fmt.Errorf("%w: unknown feeling %q", domain.ErrValidation, feeling)
	}
	day := dateOnly(today)

	var res CompletionResult
	err := c.uow.WithinTx(ctx, func(ctx context.Context, s domain.Store) error {
		u, err := s.UserByChatIDForUpdate(ctx, chatID)
		if err != nil {
			return err
		}
		tpl, err := s.TemplateByID(ctx, workoutID)
		if err != nil {
			return err
		}

		rec := domain.CompletionRecord{
			UserID:    u.ID,
			WorkoutID: tpl.ID,
			Date:      day,
			Completed: true,
			Feeling:   feeling,
			Comment:   comment,
		}
		if err := s.AppendCompletion(ctx, &rec); err != nil {
			return fmt.Errorf("append completion: %w", err)
		}

		info := advanceStreak(u, day)
		if err := s.SaveStreak(ctx, u); err != nil {
			return fmt.Errorf("save streak: %w", err)
		}

		earned, err := c.evaluateAchievements(ctx, s, u, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("evaluate achievements: %w", err)
		}

		res = CompletionResult{Record: rec, Streak: info, NewAchievements: earned}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.CompletionsRecorded.Inc()
	c.log.Info().
		Int64("chat_id", chatID).
		Str("workout_id", workoutID.String()).
		Int("streak", res.Streak.Streak).
		Int("new_achievements", len(res.NewAchievements)).
		Msg("workout completed")
	return &res, nil
}

// Stats aggregates completions over a trailing window ending today.
func (c *Coach) Stats(ctx context.Context, chatID int64, windowDays int, today time.Time) (*domain.Stats, error) {
	u, err := c.store.UserByChatID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	day := dateOnly(today)
	recs, err := c.store.CompletionsSince(ctx, u.ID, day.AddDate(0, 0, -windowDays))
	if err != nil {
		return nil, fmt.Errorf("load completions: %w", err)
	}

	weekStart := day.AddDate(0, 0, -7)
	stats := domain.Stats{Total: len(recs), Last30Days: len(recs)}
	var feelingSum, feelingCount int
	for _, rec := range recs {
		if !rec.Date.Before(weekStart) {
			stats.Last7Days++
		}
		if rec.Feeling != "" {
			feelingSum += feelingValue(rec.Feeling)
			feelingCount++
		}
	}
	if feelingCount > 0 {
		stats.AverageFeeling = bucketFeeling(float64(feelingSum) / float64(feelingCount))
	}
	return &stats, nil
}

// History lists recent completions with their templates, most recent first.
func (c *Coach) History(ctx context.Context, chatID int64, windowDays, limit int, today time.Time) ([]domain.HistoryEntry, error) {
	u, err := c.store.UserByChatID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	since := dateOnly(today).AddDate(0, 0, -windowDays)
	return c.store.History(ctx, u.ID, since, limit)
}

// Achievements lists the badges the user has earned, newest first.
func (c *Coach) Achievements(ctx context.Context, chatID int64) ([]domain.EarnedAchievement, error) {
	u, err := c.store.UserByChatID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	return c.store.AchievementsForUser(ctx, u.ID)
}

func feelingValue(f domain.Feeling) int {
	switch f {
	case domain.FeelingEasy:
		return 1
	case domain.FeelingHard:
		return 3
	default:
		return 2
	}
}

func bucketFeeling(avg float64) domain.Feeling {
	switch {
	case avg < 1.5:
		return domain.FeelingEasy
	case avg < 2.5:
		return domain.FeelingNormal
	default:
		return domain.FeelingHard
	}
}

// dateOnly truncates to a UTC calendar date. All ledger and streak math
// works on these.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// weekdayIndex maps time.Weekday to the catalog's Monday=0 indexing.
func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
