package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store is the persistence contract for the engine. Implementations live in
// internal/repository (postgres) and internal/repository/memory.
type Store interface {
	// Users
	UserByChatID(ctx context.Context, chatID int64) (*User, error)
	// UserByChatIDForUpdate is UserByChatID with a per-user write lock held
	// until the surrounding unit of work ends. Only meaningful inside
	// UnitOfWork.WithinTx.
	UserByChatIDForUpdate(ctx context.Context, chatID int64) (*User, error)
	CreateUser(ctx context.Context, u *User) error
	UpdateProfile(ctx context.Context, u *User) error
	UpdateReminder(ctx context.Context, chatID int64, enabled bool, timeHHMM string, days []string) (*User, error)
	SaveStreak(ctx context.Context, u *User) error
	UsersWithReminders(ctx context.Context) ([]User, error)

	// Templates
	// CreateTemplate returns false without error when the code already
	// exists, so reseeding is idempotent.
	CreateTemplate(ctx context.Context, t *WorkoutTemplate) (bool, error)
	TemplateByID(ctx context.Context, id uuid.UUID) (*WorkoutTemplate, error)
	// TemplateForAxes resolves the (level, type, goal, day) tuple to at most
	// one template. With duplicate tuples the lowest code wins.
	TemplateForAxes(ctx context.Context, level Level, wt WorkoutType, goal Goal, dayIndex int) (*WorkoutTemplate, error)
	CountTemplates(ctx context.Context) (int, error)

	// Completions
	AppendCompletion(ctx context.Context, rec *CompletionRecord) error
	CountCompletions(ctx context.Context, userID uuid.UUID) (int, error)
	CompletionsSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]CompletionRecord, error)
	CountCompletionsBetween(ctx context.Context, userID uuid.UUID, from, until time.Time) (int, error)
	History(ctx context.Context, userID uuid.UUID, since time.Time, limit int) ([]HistoryEntry, error)

	// Achievements
	// SeedAchievement returns false without error for an existing code.
	SeedAchievement(ctx context.Context, a *Achievement) (bool, error)
	AchievementByCode(ctx context.Context, code string) (*Achievement, error)
	// GrantAchievement returns false when the user already holds it.
	GrantAchievement(ctx context.Context, userID, achievementID uuid.UUID, earnedAt time.Time) (bool, error)
	AchievementsForUser(ctx context.Context, userID uuid.UUID) ([]EarnedAchievement, error)
}

// UnitOfWork runs fn atomically against a Store. The completion pipeline
// (append, streak advance, achievement evaluation) must run inside one call
// so concurrent completions for the same user cannot interleave.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, s Store) error) error
}
