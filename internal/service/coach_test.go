package service_test

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitkz/fitcoach/internal/domain"
	"github.com/fitkz/fitcoach/internal/repository/memory"
	"github.com/fitkz/fitcoach/internal/seed"
	"github.com/fitkz/fitcoach/internal/service"
)

var (
	monday    = time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	wednesday = time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC)
)

func newCoach(t *testing.T) (*service.Coach, *memory.DB) {
	t.Helper()
	db := memory.New()
	_, err := seed.Seeder{Store: db, Log: zerolog.Nop()}.Run(context.Background())
	require.NoError(t, err)
	coach := service.NewCoach(db, db, zerolog.Nop(), service.WithRand(rand.New(rand.NewSource(1))))
	return coach, db
}

func profile(goal domain.Goal) service.ProfileInput {
	return service.ProfileInput{
		Gender:      "male",
		Age:         30,
		HeightCM:    180,
		WeightKG:    80,
		Goal:        goal,
		Level:       domain.LevelBeginner,
		WorkoutType: domain.WorkoutHome,
	}
}

func TestSaveProfileValidatesRanges(t *testing.T) {
	coach, _ := newCoach(t)

	in := profile(domain.GoalLoseWeight)
	in.Age = 9
	_, err := coach.SaveProfile(context.Background(), 1, in)
	assert.ErrorIs(t, err, domain.ErrValidation)

	in = profile(domain.GoalLoseWeight)
	in.WeightKG = 301
	_, err = coach.SaveProfile(context.Background(), 1, in)
	assert.ErrorIs(t, err, domain.ErrValidation)

	in = profile("run_marathon")
	_, err = coach.SaveProfile(context.Background(), 1, in)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSaveProfileUpdateKeepsStreak(t *testing.T) {
	coach, db := newCoach(t)
	ctx := context.Background()

	u, err := coach.SaveProfile(ctx, 1, profile(domain.GoalLoseWeight))
	require.NoError(t, err)

	u.CurrentStreak, u.BestStreak = 3, 5
	require.NoError(t, db.SaveStreak(ctx, u))

	u, err = coach.SaveProfile(ctx, 1, profile(domain.GoalGainMuscle))
	require.NoError(t, err)
	assert.Equal(t, domain.GoalGainMuscle, u.Goal)

	u, err = coach.Profile(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, u.CurrentStreak)
	assert.Equal(t, 5, u.BestStreak)
}

func TestTodaysWorkoutIsDeterministic(t *testing.T) {
	coach, _ := newCoach(t)
	ctx := context.Background()
	_, err := coach.SaveProfile(ctx, 1, profile(domain.GoalLoseWeight))
	require.NoError(t, err)

	first, err := coach.TodaysWorkout(ctx, 1, monday)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, 0, first.DayIndex)

	for i := 0; i < 5; i++ {
		again, err := coach.TodaysWorkout(ctx, 1, monday)
		require.NoError(t, err)
		require.NotNil(t, again)
		assert.Equal(t, first.Code, again.Code)
	}
}

func TestTodaysWorkoutRestDay(t *testing.T) {
	coach, _ := newCoach(t)
	ctx := context.Background()
	// The home/beginner stay_fit plan trains Mon, Tue, Thu and Sat.
	_, err := coach.SaveProfile(ctx, 1, profile(domain.GoalStayFit))
	require.NoError(t, err)

	tpl, err := coach.TodaysWorkout(ctx, 1, wednesday)
	require.NoError(t, err)
	assert.Nil(t, tpl)
}

func TestTodaysWorkoutRequiresProfile(t *testing.T) {
	coach, db := newCoach(t)
	ctx := context.Background()
	require.NoError(t, db.CreateUser(ctx, &domain.User{ChatID: 1}))

	_, err := coach.TodaysWorkout(ctx, 1, monday)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestWeekPlanCoversAllDays(t *testing.T) {
	coach, _ := newCoach(t)
	ctx := context.Background()
	_, err := coach.SaveProfile(ctx, 1, profile(domain.GoalLoseWeight))
	require.NoError(t, err)

	plan, err := coach.WeekPlan(ctx, 1)
	require.NoError(t, err)
	for day, tpl := range plan {
		require.NotNil(t, tpl, "day %d", day)
		assert.Equal(t, day, tpl.DayIndex)
	}
}

func TestCompleteWorkoutAdvancesStreak(t *testing.T) {
	coach, _ := newCoach(t)
	ctx := context.Background()
	_, err := coach.SaveProfile(ctx, 1, profile(domain.GoalLoseWeight))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		day := monday.AddDate(0, 0, i)
		tpl, err := coach.TodaysWorkout(ctx, 1, day)
		require.NoError(t, err)
		require.NotNil(t, tpl)

		res, err := coach.CompleteWorkout(ctx, 1, tpl.ID, domain.FeelingNormal, "", day)
		require.NoError(t, err)
		assert.Equal(t, i+1, res.Streak.Streak)
		assert.True(t, res.Streak.Increased)
		assert.True(t, res.Streak.NewRecord)
	}

	u, err := coach.Profile(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, u.CurrentStreak)
	assert.Equal(t, 3, u.BestStreak)
}

func TestCompleteWorkoutSameDayAppendsButKeepsStreak(t *testing.T) {
	coach, _ := newCoach(t)
	ctx := context.Background()
	_, err := coach.SaveProfile(ctx, 1, profile(domain.GoalLoseWeight))
	require.NoError(t, err)

	tpl, err := coach.TodaysWorkout(ctx, 1, monday)
	require.NoError(t, err)

	first, err := coach.CompleteWorkout(ctx, 1, tpl.ID, domain.FeelingEasy, "", monday)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Streak.Streak)

	second, err := coach.CompleteWorkout(ctx, 1, tpl.ID, domain.FeelingHard, "", monday)
	require.NoError(t, err)
	assert.Equal(t, 1, second.Streak.Streak)
	assert.False(t, second.Streak.Increased)

	stats, err := coach.Stats(ctx, 1, 30, monday)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
}

func TestCompleteWorkoutStreakResetsAfterGap(t *testing.T) {
	coach, _ := newCoach(t)
	ctx := context.Background()
	_, err := coach.SaveProfile(ctx, 1, profile(domain.GoalLoseWeight))
	require.NoError(t, err)

	tpl, err := coach.TodaysWorkout(ctx, 1, monday)
	require.NoError(t, err)
	_, err = coach.CompleteWorkout(ctx, 1, tpl.ID, "", "", monday)
	require.NoError(t, err)

	tpl, err = coach.TodaysWorkout(ctx, 1, wednesday)
	require.NoError(t, err)
	res, err := coach.CompleteWorkout(ctx, 1, tpl.ID, "", "", wednesday)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Streak.Streak)
	assert.False(t, res.Streak.Increased)
	assert.Equal(t, 1, res.Streak.Best)
}

func TestCompleteWorkoutRejectsBadFeeling(t *testing.T) {
	coach, _ := newCoach(t)
	ctx := context.Background()
	_, err := coach.SaveProfile(ctx, 1, profile(domain.GoalLoseWeight))
	require.NoError(t, err)

	tpl, err := coach.TodaysWorkout(ctx, 1, monday)
	require.NoError(t, err)

	_, err = coach.CompleteWorkout(ctx, 1, tpl.ID, "exhausted", "", monday)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestStatsWindows(t *testing.T) {
	coach, db := newCoach(t)
	ctx := context.Background()
	u, err := coach.SaveProfile(ctx, 1, profile(domain.GoalLoseWeight))
	require.NoError(t, err)

	tpl, err := coach.TodaysWorkout(ctx, 1, monday)
	require.NoError(t, err)

	for _, offset := range []int{0, -5, -10, -40} {
		rec := domain.CompletionRecord{
			UserID:    u.ID,
			WorkoutID: tpl.ID,
			Date:      monday.AddDate(0, 0, offset),
			Completed: true,
			Feeling:   domain.FeelingEasy,
		}
		require.NoError(t, db.AppendCompletion(ctx, &rec))
	}

	stats, err := coach.Stats(ctx, 1, 30, monday)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Last7Days)
	assert.Equal(t, 3, stats.Last30Days)
	assert.Equal(t, domain.FeelingEasy, stats.AverageFeeling)
}

func TestStatsAverageFeelingBuckets(t *testing.T) {
	coach, db := newCoach(t)
	ctx := context.Background()
	u, err := coach.SaveProfile(ctx, 1, profile(domain.GoalLoseWeight))
	require.NoError(t, err)
	tpl, err := coach.TodaysWorkout(ctx, 1, monday)
	require.NoError(t, err)

	for _, f := range []domain.Feeling{domain.FeelingEasy, domain.FeelingHard, ""} {
		rec := domain.CompletionRecord{
			UserID: u.ID, WorkoutID: tpl.ID, Date: monday, Completed: true, Feeling: f,
		}
		require.NoError(t, db.AppendCompletion(ctx, &rec))
	}

	// easy=1 and hard=3 average to normal; the blank feeling is ignored.
	stats, err := coach.Stats(ctx, 1, 30, monday)
	require.NoError(t, err)
	assert.Equal(t, domain.FeelingNormal, stats.AverageFeeling)
}

func TestHistoryNewestFirstWithLimit(t *testing.T) {
	coach, _ := newCoach(t)
	ctx := context.Background()
	_, err := coach.SaveProfile(ctx, 1, profile(domain.GoalLoseWeight))
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		day := monday.AddDate(0, 0, i)
		tpl, err := coach.TodaysWorkout(ctx, 1, day)
		require.NoError(t, err)
		_, err = coach.CompleteWorkout(ctx, 1, tpl.ID, "", "", day)
		require.NoError(t, err)
	}

	entries, err := coach.History(ctx, 1, 30, 3, monday.AddDate(0, 0, 3))
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.True(t, entries[0].Record.Date.After(entries[1].Record.Date))
	assert.True(t, entries[1].Record.Date.After(entries[2].Record.Date))
	assert.NotEmpty(t, entries[0].Template.Title)
}
