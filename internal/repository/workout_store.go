package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fitkz/fitcoach/internal/domain"
)

const templateColumns = `id, code, title, level, workout_type, goal, day_index, exercises, created_at`

func scanTemplate(row pgx.Row) (*domain.WorkoutTemplate, error) {
	var (
		t            domain.WorkoutTemplate
		exercisesRaw []byte
	)
	err := row.Scan(
		&t.ID, &t.Code, &t.Title, &t.Level, &t.WorkoutType, &t.Goal,
		&t.DayIndex, &exercisesRaw, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(exercisesRaw, &t.Exercises); err != nil {
		return nil, fmt.Errorf("decode exercises: %w", err)
	}
	return &t, nil
}

// CreateTemplate inserts a template; an existing code is left untouched and
// reported as created=false so reseeding stays idempotent.
func (s *Store) CreateTemplate(ctx context.Context, t *domain.WorkoutTemplate) (bool, error) {
	exercises, err := json.Marshal(t.Exercises)
	if err != nil {
		return false, fmt.Errorf("encode exercises: %w", err)
	}
	query := `
		INSERT INTO workout_templates (code, title, level, workout_type, goal, day_index, exercises)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (code) DO NOTHING
		RETURNING id, created_at
	`
	err = s.db.QueryRow(ctx, query,
		t.Code, t.Title, t.Level, t.WorkoutType, t.Goal, t.DayIndex, exercises,
	).Scan(&t.ID, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) TemplateByID(ctx context.Context, id uuid.UUID) (*domain.WorkoutTemplate, error) {
	query := `SELECT ` + templateColumns + ` FROM workout_templates WHERE id = $1`
	return scanTemplate(s.db.QueryRow(ctx, query, id))
}

// TemplateForAxes returns the template for the profile axes and day. Ordering
// by code keeps selection deterministic if the catalog ever holds duplicate
// tuples.
func (s *Store) TemplateForAxes(ctx context.Context, level domain.Level, wt domain.WorkoutType, goal domain.Goal, dayIndex int) (*domain.WorkoutTemplate, error) {
	query := `
		SELECT ` + templateColumns + `
		FROM workout_templates
		WHERE level = $1 AND workout_type = $2 AND goal = $3 AND day_index = $4
		ORDER BY code
		LIMIT 1
	`
	return scanTemplate(s.db.QueryRow(ctx, query, level, wt, goal, dayIndex))
}

func (s *Store) CountTemplates(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM workout_templates`).Scan(&n)
	return n, err
}

func (s *Store) AppendCompletion(ctx context.Context, rec *domain.CompletionRecord) error {
	query := `
		INSERT INTO completion_records (user_id, workout_id, completed_on, completed, feeling, comment)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	var feeling *string
	if rec.Feeling != "" {
		f := string(rec.Feeling)
		feeling = &f
	}
	return s.db.QueryRow(ctx, query,
		rec.UserID, rec.WorkoutID, rec.Date, rec.Completed, feeling, rec.Comment,
	).Scan(&rec.ID, &rec.CreatedAt)
}

// CountCompletions counts every completion row for the user, regardless of
// date or the completed flag. This is the figure the achievement rules use.
func (s *Store) CountCompletions(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM completion_records WHERE user_id = $1`, userID).Scan(&n)
	return n, err
}

func (s *Store) CompletionsSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.CompletionRecord, error) {
	query := `
		SELECT id, user_id, workout_id, completed_on, completed, COALESCE(feeling, ''), comment, created_at
		FROM completion_records
		WHERE user_id = $1 AND completed AND completed_on >= $2
		ORDER BY completed_on DESC, created_at DESC
	`
	rows, err := s.db.Query(ctx, query, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.CompletionRecord
	for rows.Next() {
		var rec domain.CompletionRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.WorkoutID, &rec.Date, &rec.Completed, &rec.Feeling, &rec.Comment, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *Store) CountCompletionsBetween(ctx context.Context, userID uuid.UUID, from, until time.Time) (int, error) {
	var n int
	err := s.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM completion_records WHERE user_id = $1 AND completed_on >= $2 AND completed_on < $3`,
		userID, from, until,
	).Scan(&n)
	return n, err
}

func (s *Store) History(ctx context.Context, userID uuid.UUID, since time.Time, limit int) ([]domain.HistoryEntry, error) {
	query := `
		SELECT c.id, c.user_id, c.workout_id, c.completed_on, c.completed, COALESCE(c.feeling, ''), c.comment, c.created_at,
			t.id, t.code, t.title, t.level, t.workout_type, t.goal, t.day_index, t.exercises, t.created_at
		FROM completion_records c
		JOIN workout_templates t ON t.id = c.workout_id
		WHERE c.user_id = $1 AND c.completed_on >= $2
		ORDER BY c.completed_on DESC, c.created_at DESC
		LIMIT $3
	`
	rows, err := s.db.Query(ctx, query, userID, since, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.HistoryEntry
	for rows.Next() {
		var (
			e            domain.HistoryEntry
			exercisesRaw []byte
		)
		err := rows.Scan(
			&e.Record.ID, &e.Record.UserID, &e.Record.WorkoutID, &e.Record.Date,
			&e.Record.Completed, &e.Record.Feeling, &e.Record.Comment, &e.Record.CreatedAt,
			&e.Template.ID, &e.Template.Code, &e.Template.Title, &e.Template.Level,
			&e.Template.WorkoutType, &e.Template.Goal, &e.Template.DayIndex, &exercisesRaw, &e.Template.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(exercisesRaw, &e.Template.Exercises); err != nil {
			return nil, fmt.Errorf("decode exercises: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
