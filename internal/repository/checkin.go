package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"moodbot/internal/models"
)

type CheckinRepository interface {
	// RecordCheckin appends the check-in row and moves the user's
	// last_checkin_at forward in one transaction. A reader never sees
	// one effect without the other.
	RecordCheckin(ctx context.Context, checkin *models.Checkin) error
	CountSince(ctx context.Context, since time.Time) (int, error)
	CategoryCountsSince(ctx context.Context, since time.Time) (map[string]int, error)
	RecentCheckins(ctx context.Context, limit int) ([]*models.Checkin, error)
}

type checkinRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewCheckinRepository(db *sqlx.DB, logger *zap.Logger) CheckinRepository {
	return &checkinRepository{db: db, logger: logger}
}

func (r *checkinRepository) RecordCheckin(ctx context.Context, checkin *models.Checkin) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin checkin tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	checkin.CreatedAt = now

	query := `INSERT INTO checkins (user_id, created_at, input_type, mood_raw, category, response_text_id, meme_file, video_url)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	err = tx.QueryRowxContext(ctx, query,
		checkin.UserID, checkin.CreatedAt, checkin.InputType, checkin.MoodRaw,
		checkin.Category, checkin.ResponseTextID, checkin.MemeFile, checkin.VideoURL,
	).Scan(&checkin.ID)
	if err != nil {
		return fmt.Errorf("insert checkin: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE users SET last_checkin_at = $1 WHERE user_id = $2`, now, checkin.UserID); err != nil {
		return fmt.Errorf("update last_checkin_at: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit checkin tx: %w", err)
	}
	return nil
}

func (r *checkinRepository) CountSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM checkins WHERE created_at >= $1`
	err := r.db.GetContext(ctx, &count, query, since)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *checkinRepository) CategoryCountsSince(ctx context.Context, since time.Time) (map[string]int, error) {
	rows, err := r.db.QueryxContext(ctx,
		`SELECT category, COUNT(*) AS count FROM checkins WHERE created_at >= $1 GROUP BY category`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, err
		}
		counts[category] = count
	}
	return counts, rows.Err()
}

func (r *checkinRepository) RecentCheckins(ctx context.Context, limit int) ([]*models.Checkin, error) {
	var checkins []*models.Checkin
	query := `SELECT id, user_id, created_at, input_type, mood_raw, category, response_text_id, meme_file, video_url
	          FROM checkins ORDER BY created_at DESC LIMIT $1`
	err := r.db.SelectContext(ctx, &checkins, query, limit)
	if err != nil {
		return nil, err
	}
	return checkins, nil
}
