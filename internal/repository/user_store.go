package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fitkz/fitcoach/internal/domain"
)

const userColumns = `id, chat_id, gender, age, height_cm, weight_kg, goal, level, workout_type,
	reminder_enabled, reminder_time, reminder_days, current_streak, best_streak,
	last_workout_date, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u        domain.User
		daysJSON []byte
	)
	err := row.Scan(
		&u.ID,
		&u.ChatID,
		&u.Gender,
		&u.Age,
		&u.HeightCM,
		&u.WeightKG,
		&u.Goal,
		&u.Level,
		&u.WorkoutType,
		&u.ReminderEnabled,
		&u.ReminderTime,
		&daysJSON,
		&u.CurrentStreak,
		&u.BestStreak,
		&u.LastWorkoutDate,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if len(daysJSON) > 0 {
		if err := json.Unmarshal(daysJSON, &u.ReminderDays); err != nil {
			return nil, fmt.Errorf("decode reminder days: %w", err)
		}
	}
	return &u, nil
}

func (s *Store) UserByChatID(ctx context.Context, chatID int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE chat_id = $1`
	return scanUser(s.db.QueryRow(ctx, query, chatID))
}

func (s *Store) UserByChatIDForUpdate(ctx context.Context, chatID int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE chat_id = $1 FOR UPDATE`
	return scanUser(s.db.QueryRow(ctx, query, chatID))
}

func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	days, err := json.Marshal(u.ReminderDays)
	if err != nil {
		return fmt.Errorf("encode reminder days: %w", err)
	}
	query := `
		INSERT INTO users (chat_id, gender, age, height_cm, weight_kg, goal, level, workout_type,
			reminder_enabled, reminder_time, reminder_days)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (chat_id) DO NOTHING
		RETURNING id, created_at, updated_at
	`
	err = s.db.QueryRow(ctx, query,
		u.ChatID, u.Gender, u.Age, u.HeightCM, u.WeightKG,
		u.Goal, u.Level, u.WorkoutType,
		u.ReminderEnabled, u.ReminderTime, days,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrDuplicate
	}
	return err
}

func (s *Store) UpdateProfile(ctx context.Context, u *domain.User) error {
	query := `
		UPDATE users
		SET gender = $1, age = $2, height_cm = $3, weight_kg = $4,
			goal = $5, level = $6, workout_type = $7, updated_at = NOW()
		WHERE chat_id = $8
		RETURNING id, updated_at
	`
	err := s.db.QueryRow(ctx, query,
		u.Gender, u.Age, u.HeightCM, u.WeightKG,
		u.Goal, u.Level, u.WorkoutType, u.ChatID,
	).Scan(&u.ID, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

func (s *Store) UpdateReminder(ctx context.Context, chatID int64, enabled bool, timeHHMM string, days []string) (*domain.User, error) {
	daysJSON, err := json.Marshal(days)
	if err != nil {
		return nil, fmt.Errorf("encode reminder days: %w", err)
	}
	query := `
		UPDATE users
		SET reminder_enabled = $1,
			reminder_time = CASE WHEN $2 = '' THEN reminder_time ELSE $2 END,
			reminder_days = CASE WHEN $3::jsonb = 'null'::jsonb THEN reminder_days ELSE $3::jsonb END,
			updated_at = NOW()
		WHERE chat_id = $4
		RETURNING ` + userColumns
	return scanUser(s.db.QueryRow(ctx, query, enabled, timeHHMM, daysJSON, chatID))
}

func (s *Store) SaveStreak(ctx context.Context, u *domain.User) error {
	query := `
		UPDATE users
		SET current_streak = $1, best_streak = $2, last_workout_date = $3, updated_at = NOW()
		WHERE id = $4
	`
	tag, err := s.db.Exec(ctx, query, u.CurrentStreak, u.BestStreak, u.LastWorkoutDate, u.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) UsersWithReminders(ctx context.Context) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE reminder_enabled ORDER BY chat_id`
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}
