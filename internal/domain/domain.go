// Package domain holds the core entities and the storage contracts of the
// coaching engine.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Goal is what the user trains for.
type Goal string

const (
	GoalLoseWeight Goal = "lose_weight"
	GoalGainMuscle Goal = "gain_muscle"
	GoalStayFit    Goal = "stay_fit"
)

// Level is the user's experience level.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
)

// WorkoutType is where the user trains.
type WorkoutType string

const (
	WorkoutHome WorkoutType = "home"
	WorkoutGym  WorkoutType = "gym"
)

// Feeling is the subjective exertion reported after a workout.
// The empty string means the user skipped the question.
type Feeling string

const (
	FeelingEasy   Feeling = "easy"
	FeelingNormal Feeling = "normal"
	FeelingHard   Feeling = "hard"
)

// User is one end-user profile, keyed externally by chat id.
type User struct {
	ID       uuid.UUID
	ChatID   int64
	Gender   string
	Age      int
	HeightCM int
	WeightKG float64

	Goal        Goal
	Level       Level
	WorkoutType WorkoutType

	ReminderEnabled bool
	ReminderTime    string // HH:MM
	ReminderDays    []string

	CurrentStreak   int
	BestStreak      int
	LastWorkoutDate *time.Time // date only, nil until the first completion

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProfileComplete reports whether the three plan axes are populated.
// Workout selection is undefined without them.
func (u *User) ProfileComplete() bool {
	return u.Goal != "" && u.Level != "" && u.WorkoutType != ""
}

// Exercise is one line of a workout template. Reps is free text because the
// catalog mixes counts, durations and interval specs ("20сек жұмыс/10сек дем").
type Exercise struct {
	Name string `json:"name"`
	Sets int    `json:"sets"`
	Reps string `json:"reps"`
}

// WorkoutTemplate is an immutable catalog entry. Code is the natural key used
// for idempotent reseeding.
type WorkoutTemplate struct {
	ID          uuid.UUID
	Code        string
	Title       string
	Level       Level
	WorkoutType WorkoutType
	Goal        Goal
	DayIndex    int // 0 = Monday .. 6 = Sunday
	Exercises   []Exercise
	CreatedAt   time.Time
}

// CompletionRecord is one user-reported completion of a workout on a date.
// Records are append-only.
type CompletionRecord struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	WorkoutID uuid.UUID
	Date      time.Time // date only
	Completed bool
	Feeling   Feeling
	Comment   string
	CreatedAt time.Time
}

// HistoryEntry pairs a completion with the template it completed.
type HistoryEntry struct {
	Record   CompletionRecord
	Template WorkoutTemplate
}

// Achievement is an immutable badge definition.
type Achievement struct {
	ID          uuid.UUID
	Code        string
	Title       string
	Emoji       string
	Description string
}

// EarnedAchievement is an achievement a user holds.
type EarnedAchievement struct {
	Achievement
	EarnedAt time.Time
}

// Stats are rolling-window completion aggregates. AverageFeeling is empty
// when no completion in the window carried a feeling.
type Stats struct {
	Total          int     `json:"total"`
	Last7Days      int     `json:"last_7_days"`
	Last30Days     int     `json:"last_30_days"`
	AverageFeeling Feeling `json:"average_feeling,omitempty"`
}

// StreakInfo is the outcome of a streak advance.
type StreakInfo struct {
	Streak    int  `json:"streak"`
	Increased bool `json:"increased"`
	NewRecord bool `json:"new_record"`
	Best      int  `json:"best"`
}

// Weekdays in reminder-settings order, lowercase English as stored.
var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
