package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitkz/fitcoach/internal/advice"
	"github.com/fitkz/fitcoach/internal/domain"
	"github.com/fitkz/fitcoach/internal/http/routes"
	"github.com/fitkz/fitcoach/internal/repository/memory"
	"github.com/fitkz/fitcoach/internal/seed"
	"github.com/fitkz/fitcoach/internal/service"
)

type fixedAdvice struct{}

func (fixedAdvice) WorkoutAdvice(context.Context, advice.Profile, string, domain.Feeling) string {
	return "well done"
}
func (fixedAdvice) NutritionAdvice(context.Context, advice.Profile) string { return "eat greens" }
func (fixedAdvice) Ask(context.Context, string, advice.Profile) string     { return "42" }

func newTestServer(t *testing.T) (*routes.Server, *memory.DB) {
	t.Helper()
	db := memory.New()
	seeder := seed.Seeder{Store: db, Log: zerolog.Nop()}
	_, err := seeder.Run(context.Background())
	require.NoError(t, err)

	coach := service.NewCoach(db, db, zerolog.Nop())
	srv := routes.New(routes.ServerOptions{
		Coach:  coach,
		Advice: fixedAdvice{},
		Log:    zerolog.Nop(),
	})
	return srv, db
}

func doJSON(t *testing.T, srv http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func onboard(t *testing.T, srv http.Handler, chatID int64) {
	t.Helper()
	rec := doJSON(t, srv, http.MethodPost, "/users", map[string]any{
		"chat_id":      chatID,
		"gender":       "male",
		"age":          30,
		"height_cm":    180,
		"weight_kg":    80.5,
		"goal":         "lose_weight",
		"level":        "beginner",
		"workout_type": "home",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestCreateAndGetUser(t *testing.T) {
	srv, _ := newTestServer(t)
	onboard(t, srv, 42)

	rec := doJSON(t, srv, http.MethodGet, "/users/42/", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.EqualValues(t, 42, got["chat_id"])
	assert.Equal(t, "lose_weight", got["goal"])
	assert.EqualValues(t, 0, got["current_streak"])
}

func TestCreateUserRejectsBadAge(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/users", map[string]any{
		"chat_id":      7,
		"gender":       "female",
		"age":          8,
		"height_cm":    160,
		"weight_kg":    55,
		"goal":         "stay_fit",
		"level":        "beginner",
		"workout_type": "home",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetUnknownUser(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/users/999/", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPatchUserKeepsUnsetFields(t *testing.T) {
	srv, _ := newTestServer(t)
	onboard(t, srv, 42)

	rec := doJSON(t, srv, http.MethodPatch, "/users/42/", map[string]any{"goal": "gain_muscle"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "gain_muscle", got["goal"])
	assert.EqualValues(t, 30, got["age"])
	assert.Equal(t, "home", got["workout_type"])
}

func TestSetReminder(t *testing.T) {
	srv, _ := newTestServer(t)
	onboard(t, srv, 42)

	rec := doJSON(t, srv, http.MethodPut, "/users/42/reminder", map[string]any{
		"enabled": true,
		"time":    "07:30",
		"days":    []string{"monday", "wednesday"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, true, got["reminder_enabled"])
	assert.Equal(t, "07:30", got["reminder_time"])
}

func TestSetReminderRejectsBadTime(t *testing.T) {
	srv, _ := newTestServer(t)
	onboard(t, srv, 42)

	rec := doJSON(t, srv, http.MethodPut, "/users/42/reminder", map[string]any{
		"enabled": true,
		"time":    "25:99",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTodayWorkoutAndWeekPlan(t *testing.T) {
	srv, _ := newTestServer(t)
	onboard(t, srv, 42)

	// 2026-08-24 is a Monday.
	rec := doJSON(t, srv, http.MethodGet, "/users/42/workouts/today?date=2026-08-24", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var today struct {
		DayIndex int  `json:"day_index"`
		RestDay  bool `json:"rest_day"`
		Workout  *struct {
			ID       string `json:"id"`
			Code     string `json:"code"`
			DayIndex int    `json:"day_index"`
		}
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &today))
	assert.Equal(t, 0, today.DayIndex)
	require.NotNil(t, today.Workout)
	assert.Equal(t, 0, today.Workout.DayIndex)

	rec = doJSON(t, srv, http.MethodGet, "/users/42/workouts/week", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var week struct {
		Days []struct {
			DayIndex int  `json:"day_index"`
			RestDay  bool `json:"rest_day"`
		}
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &week))
	require.Len(t, week.Days, 7)
	assert.False(t, week.Days[0].RestDay)
	// The home/beginner/lose_weight plan covers the whole week.
	assert.False(t, week.Days[6].RestDay)
}

func TestCompleteWorkoutFlow(t *testing.T) {
	srv, _ := newTestServer(t)
	onboard(t, srv, 42)

	// The lose_weight/home/beginner plan trains every day, so whatever
	// today is there is a workout to complete.
	today := time.Now().UTC().Format("2006-01-02")
	rec := doJSON(t, srv, http.MethodGet, "/users/42/workouts/today?date="+today, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var plan struct {
		Workout struct {
			ID string `json:"id"`
		}
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &plan))

	rec = doJSON(t, srv, http.MethodPost, "/users/42/completions", map[string]any{
		"workout_id": plan.Workout.ID,
		"feeling":    "normal",
		"date":       today,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var got struct {
		Date   string `json:"date"`
		Streak struct {
			Streak    int  `json:"streak"`
			Increased bool `json:"increased"`
		}
		NewAchievements []struct {
			Code string `json:"code"`
		} `json:"new_achievements"`
		Advice string `json:"advice"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, today, got.Date)
	assert.Equal(t, 1, got.Streak.Streak)
	assert.True(t, got.Streak.Increased)
	require.Len(t, got.NewAchievements, 1)
	assert.Equal(t, "first_workout", got.NewAchievements[0].Code)
	assert.Equal(t, "well done", got.Advice)

	rec = doJSON(t, srv, http.MethodGet, "/users/42/stats?days=30", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var stats domain.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.Total)

	rec = doJSON(t, srv, http.MethodGet, "/users/42/achievements", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var ach struct {
		Achievements []struct {
			Code string `json:"code"`
		}
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ach))
	require.Len(t, ach.Achievements, 1)
	assert.Equal(t, "first_workout", ach.Achievements[0].Code)

	rec = doJSON(t, srv, http.MethodGet, "/users/42/history", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var hist struct {
		History []struct {
			Date    string `json:"date"`
			Feeling string `json:"feeling"`
		}
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &hist))
	require.Len(t, hist.History, 1)
	assert.Equal(t, "normal", hist.History[0].Feeling)
}

func TestCompleteWorkoutRejectsUnknownWorkout(t *testing.T) {
	srv, _ := newTestServer(t)
	onboard(t, srv, 42)

	rec := doJSON(t, srv, http.MethodPost, "/users/42/completions", map[string]any{
		"workout_id": "5a1f5b33-2c24-4a8b-9a40-000000000000",
		"date":       "2026-08-24",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWeeklyReport(t *testing.T) {
	srv, _ := newTestServer(t)
	onboard(t, srv, 42)

	rec := doJSON(t, srv, http.MethodGet, "/users/42/report/weekly?date=2026-08-24", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Contains(t, got["report"], "Апталық есеп")
}

func TestAskQuestionAndNutrition(t *testing.T) {
	srv, _ := newTestServer(t)
	onboard(t, srv, 42)

	rec := doJSON(t, srv, http.MethodPost, "/users/42/advice/question", map[string]any{"question": "how often?"})
	require.Equal(t, http.StatusOK, rec.Code)
	var ans map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ans))
	assert.Equal(t, "42", ans["answer"])

	rec = doJSON(t, srv, http.MethodGet, "/users/42/advice/nutrition", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ans))
	assert.Equal(t, "eat greens", ans["advice"])
}

func TestBearerTokenRequired(t *testing.T) {
	db := memory.New()
	coach := service.NewCoach(db, db, zerolog.Nop())
	srv := routes.New(routes.ServerOptions{
		Coach:    coach,
		Advice:   fixedAdvice{},
		APIToken: "secret",
		Log:      zerolog.Nop(),
	})

	req := httptest.NewRequest(http.MethodGet, "/users/42/", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/users/42/", nil)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", "secret"))
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// healthz stays open
	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
