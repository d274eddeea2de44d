package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fitkz/fitcoach/internal/domain"
)

func (s *Store) SeedAchievement(ctx context.Context, a *domain.Achievement) (bool, error) {
	query := `
		INSERT INTO achievements (code, title, emoji, description)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (code) DO NOTHING
		RETURNING id
	`
	err := s.db.QueryRow(ctx, query, a.Code, a.Title, a.Emoji, a.Description).Scan(&a.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) AchievementByCode(ctx context.Context, code string) (*domain.Achievement, error) {
	var a domain.Achievement
	err := s.db.QueryRow(ctx,
		`SELECT id, code, title, emoji, description FROM achievements WHERE code = $1`, code,
	).Scan(&a.ID, &a.Code, &a.Title, &a.Emoji, &a.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GrantAchievement inserts the join row. The (user_id, achievement_id)
// primary key makes a re-grant a no-op, reported as granted=false.
func (s *Store) GrantAchievement(ctx context.Context, userID, achievementID uuid.UUID, earnedAt time.Time) (bool, error) {
	tag, err := s.db.Exec(ctx,
		`INSERT INTO user_achievements (user_id, achievement_id, earned_at) VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, achievement_id) DO NOTHING`,
		userID, achievementID, earnedAt,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *Store) AchievementsForUser(ctx context.Context, userID uuid.UUID) ([]domain.EarnedAchievement, error) {
	query := `
		SELECT a.id, a.code, a.title, a.emoji, a.description, ua.earned_at
		FROM user_achievements ua
		JOIN achievements a ON a.id = ua.achievement_id
		WHERE ua.user_id = $1
		ORDER BY ua.earned_at DESC
	`
	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.EarnedAchievement
	for rows.Next() {
		var e domain.EarnedAchievement
		if err := rows.Scan(&e.ID, &e.Code, &e.Title, &e.Emoji, &e.Description, &e.EarnedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
