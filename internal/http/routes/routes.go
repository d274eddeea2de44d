// Package routes wires the coaching engine to its JSON HTTP surface.
package routes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fitkz/fitcoach/internal/advice"
	"github.com/fitkz/fitcoach/internal/domain"
	appmw "github.com/fitkz/fitcoach/internal/http/middleware"
	"github.com/fitkz/fitcoach/internal/metrics"
	"github.com/fitkz/fitcoach/internal/service"
)

const (
	defaultStatsWindow   = 30
	defaultHistoryWindow = 30
	defaultHistoryLimit  = 10
	defaultAdviceTimeout = 10 * time.Second
)

type Server struct {
	Router        *chi.Mux
	Coach         *service.Coach
	Advice        advice.Generator
	Log           zerolog.Logger
	AdviceTimeout time.Duration

	validate *validator.Validate
}

type ServerOptions struct {
	Coach         *service.Coach
	Advice        advice.Generator
	APIToken      string
	AdviceTimeout time.Duration
	Log           zerolog.Logger
}

func New(opts ServerOptions) *Server {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	s := &Server{
		Router:        r,
		Coach:         opts.Coach,
		Advice:        opts.Advice,
		Log:           opts.Log,
		AdviceTimeout: opts.AdviceTimeout,
		validate:      validator.New(),
	}
	if s.AdviceTimeout <= 0 {
		s.AdviceTimeout = defaultAdviceTimeout
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Group(func(r chi.Router) {
		r.Use(appmw.RequireToken(opts.APIToken))

		r.Post("/users", s.handleCreateUser)
		r.Route("/users/{chatID}", func(r chi.Router) {
			r.Get("/", s.handleGetUser)
			r.Patch("/", s.handleUpdateUser)
			r.Put("/reminder", s.handleSetReminder)

			r.Get("/workouts/today", s.handleTodayWorkout)
			r.Get("/workouts/week", s.handleWeekPlan)
			r.Post("/completions", s.handleCompleteWorkout)

			r.Get("/stats", s.handleStats)
			r.Get("/history", s.handleHistory)
			r.Get("/achievements", s.handleAchievements)
			r.Get("/report/weekly", s.handleWeeklyReport)

			r.Post("/advice/question", s.handleAskQuestion)
			r.Get("/advice/nutrition", s.handleNutritionAdvice)
		})
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

// --- request/response shapes ---

type profileRequest struct {
	ChatID      int64   `json:"chat_id" validate:"required"`
	Gender      string  `json:"gender" validate:"required,oneof=male female"`
	Age         int     `json:"age" validate:"required"`
	HeightCM    int     `json:"height_cm" validate:"required"`
	WeightKG    float64 `json:"weight_kg" validate:"required"`
	Goal        string  `json:"goal" validate:"required"`
	Level       string  `json:"level" validate:"required"`
	WorkoutType string  `json:"workout_type" validate:"required"`
}

type profilePatchRequest struct {
	Gender      *string  `json:"gender"`
	Age         *int     `json:"age"`
	HeightCM    *int     `json:"height_cm"`
	WeightKG    *float64 `json:"weight_kg"`
	Goal        *string  `json:"goal"`
	Level       *string  `json:"level"`
	WorkoutType *string  `json:"workout_type"`
}

type reminderRequest struct {
	Enabled bool     `json:"enabled"`
	Time    string   `json:"time"`
	Days    []string `json:"days"`
}

type completionRequest struct {
	WorkoutID string `json:"workout_id" validate:"required,uuid"`
	Feeling   string `json:"feeling"`
	Comment   string `json:"comment"`
	Date      string `json:"date"` // optional YYYY-MM-DD, defaults to today
}

type questionRequest struct {
	Question string `json:"question" validate:"required"`
}

type userResponse struct {
	ChatID          int64    `json:"chat_id"`
	Gender          string   `json:"gender"`
	Age             int      `json:"age"`
	HeightCM        int      `json:"height_cm"`
	WeightKG        float64  `json:"weight_kg"`
	Goal            string   `json:"goal"`
	Level           string   `json:"level"`
	WorkoutType     string   `json:"workout_type"`
	ReminderEnabled bool     `json:"reminder_enabled"`
	ReminderTime    string   `json:"reminder_time,omitempty"`
	ReminderDays    []string `json:"reminder_days,omitempty"`
	CurrentStreak   int      `json:"current_streak"`
	BestStreak      int      `json:"best_streak"`
	LastWorkoutDate string   `json:"last_workout_date,omitempty"`
}

type workoutResponse struct {
	ID        string            `json:"id"`
	Code      string            `json:"code"`
	Title     string            `json:"title"`
	Level     string            `json:"level"`
	Type      string            `json:"workout_type"`
	Goal      string            `json:"goal"`
	DayIndex  int               `json:"day_index"`
	Exercises []domain.Exercise `json:"exercises"`
}

type dayPlanResponse struct {
	DayIndex int              `json:"day_index"`
	RestDay  bool             `json:"rest_day"`
	Workout  *workoutResponse `json:"workout,omitempty"`
}

type completionResponse struct {
	RecordID        string                `json:"record_id"`
	Date            string                `json:"date"`
	Streak          domain.StreakInfo     `json:"streak"`
	NewAchievements []achievementResponse `json:"new_achievements"`
	Advice          string                `json:"advice,omitempty"`
}

type achievementResponse struct {
	Code        string `json:"code"`
	Title       string `json:"title"`
	Emoji       string `json:"emoji"`
	Description string `json:"description,omitempty"`
	EarnedAt    string `json:"earned_at,omitempty"`
}

type historyEntryResponse struct {
	Date    string `json:"date"`
	Workout string `json:"workout"`
	Feeling string `json:"feeling,omitempty"`
	Comment string `json:"comment,omitempty"`
}

func toUserResponse(u *domain.User) userResponse {
	out := userResponse{
		ChatID:          u.ChatID,
		Gender:          u.Gender,
		Age:             u.Age,
		HeightCM:        u.HeightCM,
		WeightKG:        u.WeightKG,
		Goal:            string(u.Goal),
		Level:           string(u.Level),
		WorkoutType:     string(u.WorkoutType),
		ReminderEnabled: u.ReminderEnabled,
		ReminderTime:    u.ReminderTime,
		ReminderDays:    u.ReminderDays,
		CurrentStreak:   u.CurrentStreak,
		BestStreak:      u.BestStreak,
	}
	if u.LastWorkoutDate != nil {
		out.LastWorkoutDate = u.LastWorkoutDate.Format("2006-01-02")
	}
	return out
}

func toWorkoutResponse(t *domain.WorkoutTemplate) *workoutResponse {
	if t == nil {
		return nil
	}
	return &workoutResponse{
		ID:        t.ID.String(),
		Code:      t.Code,
		Title:     t.Title,
		Level:     string(t.Level),
		Type:      string(t.WorkoutType),
		Goal:      string(t.Goal),
		DayIndex:  t.DayIndex,
		Exercises: t.Exercises,
	}
}

// --- handlers ---

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if !s.decode(w, r, &req) {
		return
	}
	u, err := s.Coach.SaveProfile(r.Context(), req.ChatID, service.ProfileInput{
		Gender:      req.Gender,
		Age:         req.Age,
		HeightCM:    req.HeightCM,
		WeightKG:    req.WeightKG,
		Goal:        domain.Goal(req.Goal),
		Level:       domain.Level(req.Level),
		WorkoutType: domain.WorkoutType(req.WorkoutType),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, toUserResponse(u))
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	chatID, ok := s.chatID(w, r)
	if !ok {
		return
	}
	u, err := s.Coach.Profile(r.Context(), chatID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toUserResponse(u))
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	chatID, ok := s.chatID(w, r)
	if !ok {
		return
	}
	var req profilePatchRequest
	if !s.decode(w, r, &req) {
		return
	}
	u, err := s.Coach.Profile(r.Context(), chatID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	in := service.ProfileInput{
		Gender:      u.Gender,
		Age:         u.Age,
		HeightCM:    u.HeightCM,
		WeightKG:    u.WeightKG,
		Goal:        u.Goal,
		Level:       u.Level,
		WorkoutType: u.WorkoutType,
	}
	if req.Gender != nil {
		in.Gender = *req.Gender
	}
	if req.Age != nil {
		in.Age = *req.Age
	}
	if req.HeightCM != nil {
		in.HeightCM = *req.HeightCM
	}
	if req.WeightKG != nil {
		in.WeightKG = *req.WeightKG
	}
	if req.Goal != nil {
		in.Goal = domain.Goal(*req.Goal)
	}
	if req.Level != nil {
		in.Level = domain.Level(*req.Level)
	}
	if req.WorkoutType != nil {
		in.WorkoutType = domain.WorkoutType(*req.WorkoutType)
	}

	u, err = s.Coach.SaveProfile(r.Context(), chatID, in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toUserResponse(u))
}

func (s *Server) handleSetReminder(w http.ResponseWriter, r *http.Request) {
	chatID, ok := s.chatID(w, r)
	if !ok {
		return
	}
	var req reminderRequest
	if !s.decode(w, r, &req) {
		return
	}
	u, err := s.Coach.SetReminder(r.Context(), chatID, req.Enabled, req.Time, req.Days)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toUserResponse(u))
}

func (s *Server) handleTodayWorkout(w http.ResponseWriter, r *http.Request) {
	chatID, ok := s.chatID(w, r)
	if !ok {
		return
	}
	day, err := queryDate(r, "date")
	if err != nil {
		s.writeError(w, err)
		return
	}
	tpl, err := s.Coach.TodaysWorkout(r.Context(), chatID, day)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, dayPlanResponse{
		DayIndex: (int(day.Weekday()) + 6) % 7,
		RestDay:  tpl == nil,
		Workout:  toWorkoutResponse(tpl),
	})
}

func (s *Server) handleWeekPlan(w http.ResponseWriter, r *http.Request) {
	chatID, ok := s.chatID(w, r)
	if !ok {
		return
	}
	plan, err := s.Coach.WeekPlan(r.Context(), chatID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	out := make([]dayPlanResponse, 0, len(plan))
	for day, tpl := range plan {
		out = append(out, dayPlanResponse{
			DayIndex: day,
			RestDay:  tpl == nil,
			Workout:  toWorkoutResponse(tpl),
		})
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"days": out})
}

func (s *Server) handleCompleteWorkout(w http.ResponseWriter, r *http.Request) {
	chatID, ok := s.chatID(w, r)
	if !ok {
		return
	}
	var req completionRequest
	if !s.decode(w, r, &req) {
		return
	}
	workoutID, err := uuid.Parse(req.WorkoutID)
	if err != nil {
		s.writeError(w, domain.ErrValidation)
		return
	}
	day := time.Now().UTC()
	if req.Date != "" {
		day, err = time.Parse("2006-01-02", req.Date)
		if err != nil {
			s.writeError(w, domain.ErrValidation)
			return
		}
	}

	res, err := s.Coach.CompleteWorkout(r.Context(), chatID, workoutID, domain.Feeling(req.Feeling), req.Comment, day)
	if err != nil {
		s.writeError(w, err)
		return
	}

	out := completionResponse{
		RecordID:        res.Record.ID.String(),
		Date:            res.Record.Date.Format("2006-01-02"),
		Streak:          res.Streak,
		NewAchievements: make([]achievementResponse, 0, len(res.NewAchievements)),
	}
	for _, a := range res.NewAchievements {
		out.NewAchievements = append(out.NewAchievements, achievementResponse{
			Code:        a.Code,
			Title:       a.Title,
			Emoji:       a.Emoji,
			Description: a.Description,
			EarnedAt:    a.EarnedAt.Format(time.RFC3339),
		})
	}

	// The completion is already committed. Advice is best-effort and never
	// blocks past its own deadline.
	if u, perr := s.Coach.Profile(r.Context(), chatID); perr == nil {
		ctx, cancel := context.WithTimeout(r.Context(), s.AdviceTimeout)
		defer cancel()
		if tpl, terr := s.Coach.TodaysWorkout(ctx, chatID, day); terr == nil {
			title := ""
			if tpl != nil {
				title = tpl.Title
			}
			out.Advice = s.Advice.WorkoutAdvice(ctx, advice.Profile{
				Gender: u.Gender,
				Age:    u.Age,
				Goal:   u.Goal,
				Level:  u.Level,
			}, title, res.Record.Feeling)
		}
	}

	s.writeJSON(w, http.StatusCreated, out)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	chatID, ok := s.chatID(w, r)
	if !ok {
		return
	}
	days := queryInt(r, "days", defaultStatsWindow)
	stats, err := s.Coach.Stats(r.Context(), chatID, days, time.Now().UTC())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	chatID, ok := s.chatID(w, r)
	if !ok {
		return
	}
	days := queryInt(r, "days", defaultHistoryWindow)
	limit := queryInt(r, "limit", defaultHistoryLimit)
	entries, err := s.Coach.History(r.Context(), chatID, days, limit, time.Now().UTC())
	if err != nil {
		s.writeError(w, err)
		return
	}
	out := make([]historyEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, historyEntryResponse{
			Date:    e.Record.Date.Format("2006-01-02"),
			Workout: e.Template.Title,
			Feeling: string(e.Record.Feeling),
			Comment: e.Record.Comment,
		})
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"history": out})
}

func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	chatID, ok := s.chatID(w, r)
	if !ok {
		return
	}
	earned, err := s.Coach.Achievements(r.Context(), chatID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	out := make([]achievementResponse, 0, len(earned))
	for _, a := range earned {
		out = append(out, achievementResponse{
			Code:        a.Code,
			Title:       a.Title,
			Emoji:       a.Emoji,
			Description: a.Description,
			EarnedAt:    a.EarnedAt.Format(time.RFC3339),
		})
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"achievements": out})
}

func (s *Server) handleWeeklyReport(w http.ResponseWriter, r *http.Request) {
	chatID, ok := s.chatID(w, r)
	if !ok {
		return
	}
	day, err := queryDate(r, "date")
	if err != nil {
		s.writeError(w, err)
		return
	}
	report, err := s.Coach.WeeklyReport(r.Context(), chatID, day)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"report": report})
}

func (s *Server) handleAskQuestion(w http.ResponseWriter, r *http.Request) {
	chatID, ok := s.chatID(w, r)
	if !ok {
		return
	}
	var req questionRequest
	if !s.decode(w, r, &req) {
		return
	}
	u, err := s.Coach.Profile(r.Context(), chatID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.AdviceTimeout)
	defer cancel()
	answer := s.Advice.Ask(ctx, req.Question, advice.Profile{
		Gender: u.Gender,
		Age:    u.Age,
		Goal:   u.Goal,
		Level:  u.Level,
	})
	s.writeJSON(w, http.StatusOK, map[string]string{"answer": answer})
}

func (s *Server) handleNutritionAdvice(w http.ResponseWriter, r *http.Request) {
	chatID, ok := s.chatID(w, r)
	if !ok {
		return
	}
	u, err := s.Coach.Profile(r.Context(), chatID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.AdviceTimeout)
	defer cancel()
	tip := s.Advice.NutritionAdvice(ctx, advice.Profile{
		Gender: u.Gender,
		Age:    u.Age,
		Goal:   u.Goal,
		Level:  u.Level,
	})
	s.writeJSON(w, http.StatusOK, map[string]string{"advice": tip})
}

// --- helpers ---

func (s *Server) chatID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "chatID"), 10, 64)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid chat id"})
		return 0, false
	}
	return id, true
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Log.Error().Err(err).Msg("write response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		s.writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, domain.ErrValidation):
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		s.writeJSON(w, http.StatusConflict, map[string]string{"error": "already exists"})
	default:
		s.Log.Error().Err(err).Msg("request failed")
		s.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func queryDate(r *http.Request, key string) (time.Time, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return time.Now().UTC(), nil
	}
	day, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, domain.ErrValidation
	}
	return day, nil
}

func queryInt(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
