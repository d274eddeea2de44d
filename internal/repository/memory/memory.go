// Package memory implements an in-memory store for development and testing.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fitkz/fitcoach/internal/domain"
)

// DB implements domain.Store and domain.UnitOfWork in memory.
type DB struct {
	mu sync.Mutex
	// txMu serializes units of work. A single lock is coarser than the
	// postgres per-row lock but correctness is the same.
	txMu sync.Mutex

	users       map[int64]*domain.User
	templates   []domain.WorkoutTemplate
	completions []domain.CompletionRecord
	achieves    []domain.Achievement
	earned      map[uuid.UUID]map[uuid.UUID]time.Time
}

// New creates an empty in-memory database.
func New() *DB {
	return &DB{
		users:  make(map[int64]*domain.User),
		earned: make(map[uuid.UUID]map[uuid.UUID]time.Time),
	}
}

// Ensure interfaces are met.
var _ domain.Store = (*DB)(nil)
var _ domain.UnitOfWork = (*DB)(nil)

// WithinTx runs fn while holding the transaction lock.
func (db *DB) WithinTx(ctx context.Context, fn func(ctx context.Context, s domain.Store) error) error {
	db.txMu.Lock()
	defer db.txMu.Unlock()
	return fn(ctx, db)
}

// --- Users ---

func (db *DB) UserByChatID(ctx context.Context, chatID int64) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	u, ok := db.users[chatID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

// UserByChatIDForUpdate relies on WithinTx's lock for exclusivity.
func (db *DB) UserByChatIDForUpdate(ctx context.Context, chatID int64) (*domain.User, error) {
	return db.UserByChatID(ctx, chatID)
}

func (db *DB) CreateUser(ctx context.Context, u *domain.User) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.users[u.ChatID]; ok {
		return domain.ErrDuplicate
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	cp := *u
	db.users[u.ChatID] = &cp
	return nil
}

func (db *DB) UpdateProfile(ctx context.Context, u *domain.User) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	stored, ok := db.users[u.ChatID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.Gender = u.Gender
	stored.Age = u.Age
	stored.HeightCM = u.HeightCM
	stored.WeightKG = u.WeightKG
	stored.Goal = u.Goal
	stored.Level = u.Level
	stored.WorkoutType = u.WorkoutType
	stored.UpdatedAt = time.Now().UTC()
	u.ID = stored.ID
	u.UpdatedAt = stored.UpdatedAt
	return nil
}

func (db *DB) UpdateReminder(ctx context.Context, chatID int64, enabled bool, timeHHMM string, days []string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	stored, ok := db.users[chatID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	stored.ReminderEnabled = enabled
	if timeHHMM != "" {
		stored.ReminderTime = timeHHMM
	}
	if days != nil {
		stored.ReminderDays = append([]string(nil), days...)
	}
	stored.UpdatedAt = time.Now().UTC()
	cp := *stored
	return &cp, nil
}

func (db *DB) SaveStreak(ctx context.Context, u *domain.User) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	stored, ok := db.users[u.ChatID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.CurrentStreak = u.CurrentStreak
	stored.BestStreak = u.BestStreak
	stored.LastWorkoutDate = u.LastWorkoutDate
	stored.UpdatedAt = time.Now().UTC()
	return nil
}

func (db *DB) UsersWithReminders(ctx context.Context) ([]domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	var out []domain.User
	for _, u := range db.users {
		if u.ReminderEnabled {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ChatID < out[j].ChatID })
	return out, nil
}

// --- Templates ---

func (db *DB) CreateTemplate(ctx context.Context, t *domain.WorkoutTemplate) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, existing := range db.templates {
		if existing.Code == t.Code {
			return false, nil
		}
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	t.CreatedAt = time.Now().UTC()
	db.templates = append(db.templates, *t)
	return true, nil
}

func (db *DB) TemplateByID(ctx context.Context, id uuid.UUID) (*domain.WorkoutTemplate, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, t := range db.templates {
		if t.ID == id {
			cp := t
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (db *DB) TemplateForAxes(ctx context.Context, level domain.Level, wt domain.WorkoutType, goal domain.Goal, dayIndex int) (*domain.WorkoutTemplate, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	var best *domain.WorkoutTemplate
	for i := range db.templates {
		t := db.templates[i]
		if t.Level != level || t.WorkoutType != wt || t.Goal != goal || t.DayIndex != dayIndex {
			continue
		}
		if best == nil || t.Code < best.Code {
			cp := t
			best = &cp
		}
	}
	if best == nil {
		return nil, domain.ErrNotFound
	}
	return best, nil
}

func (db *DB) CountTemplates(ctx context.Context) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.templates), nil
}

// --- Completions ---

func (db *DB) AppendCompletion(ctx context.Context, rec *domain.CompletionRecord) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	rec.CreatedAt = time.Now().UTC()
	db.completions = append(db.completions, *rec)
	return nil
}

func (db *DB) CountCompletions(ctx context.Context, userID uuid.UUID) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	n := 0
	for _, c := range db.completions {
		if c.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (db *DB) CompletionsSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.CompletionRecord, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	var out []domain.CompletionRecord
	for _, c := range db.completions {
		if c.UserID == userID && c.Completed && !c.Date.Before(since) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (db *DB) CountCompletionsBetween(ctx context.Context, userID uuid.UUID, from, until time.Time) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	n := 0
	for _, c := range db.completions {
		if c.UserID == userID && !c.Date.Before(from) && c.Date.Before(until) {
			n++
		}
	}
	return n, nil
}

func (db *DB) History(ctx context.Context, userID uuid.UUID, since time.Time, limit int) ([]domain.HistoryEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	byID := make(map[uuid.UUID]domain.WorkoutTemplate, len(db.templates))
	for _, t := range db.templates {
		byID[t.ID] = t
	}

	var out []domain.HistoryEntry
	for _, c := range db.completions {
		if c.UserID != userID || c.Date.Before(since) {
			continue
		}
		out = append(out, domain.HistoryEntry{Record: c, Template: byID[c.WorkoutID]})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Record.Date.Equal(out[j].Record.Date) {
			return out[i].Record.Date.After(out[j].Record.Date)
		}
		return out[i].Record.CreatedAt.After(out[j].Record.CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// --- Achievements ---

func (db *DB) SeedAchievement(ctx context.Context, a *domain.Achievement) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, existing := range db.achieves {
		if existing.Code == a.Code {
			return false, nil
		}
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	db.achieves = append(db.achieves, *a)
	return true, nil
}

func (db *DB) AchievementByCode(ctx context.Context, code string) (*domain.Achievement, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, a := range db.achieves {
		if a.Code == code {
			cp := a
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (db *DB) GrantAchievement(ctx context.Context, userID, achievementID uuid.UUID, earnedAt time.Time) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	byUser := db.earned[userID]
	if byUser == nil {
		byUser = make(map[uuid.UUID]time.Time)
		db.earned[userID] = byUser
	}
	if _, ok := byUser[achievementID]; ok {
		return false, nil
	}
	byUser[achievementID] = earnedAt
	return true, nil
}

func (db *DB) AchievementsForUser(ctx context.Context, userID uuid.UUID) ([]domain.EarnedAchievement, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	var out []domain.EarnedAchievement
	for _, a := range db.achieves {
		if earnedAt, ok := db.earned[userID][a.ID]; ok {
			out = append(out, domain.EarnedAchievement{Achievement: a, EarnedAt: earnedAt})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EarnedAt.After(out[j].EarnedAt) })
	return out, nil
}
