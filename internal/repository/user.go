package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"moodbot/internal/models"
)

type UserRepository interface {
	RegisterUser(ctx context.Context, userID int64, username *string) error
	GetUser(ctx context.Context, userID int64) (*models.User, error)
	LastCheckin(ctx context.Context, userID int64) (*time.Time, error)
	AllUserIDs(ctx context.Context) ([]int64, error)
	CountUsers(ctx context.Context) (int, error)
}

type userRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewUserRepository(db *sqlx.DB, logger *zap.Logger) UserRepository {
	return &userRepository{db: db, logger: logger}
}

// RegisterUser creates the user on first contact; repeat calls are
// no-ops.
func (r *userRepository) RegisterUser(ctx context.Context, userID int64, username *string) error {
	query := `INSERT INTO users (user_id, username) VALUES ($1, $2) ON CONFLICT (user_id) DO NOTHING`
	_, err := r.db.ExecContext(ctx, query, userID, username)
	return err
}

func (r *userRepository) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	var user models.User
	query := `SELECT user_id, username, first_seen_at, last_checkin_at FROM users WHERE user_id = $1`
	err := r.db.GetContext(ctx, &user, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // User not found
		}
		return nil, err
	}
	return &user, nil
}

// LastCheckin returns the user's last completed check-in time, or nil
// when the user is unknown or has never checked in.
func (r *userRepository) LastCheckin(ctx context.Context, userID int64) (*time.Time, error) {
	var last sql.NullTime
	query := `SELECT last_checkin_at FROM users WHERE user_id = $1`
	err := r.db.GetContext(ctx, &last, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if !last.Valid {
		return nil, nil
	}
	return &last.Time, nil
}

func (r *userRepository) AllUserIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	query := `SELECT user_id FROM users ORDER BY user_id`
	err := r.db.SelectContext(ctx, &ids, query)
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *userRepository) CountUsers(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM users`
	err := r.db.GetContext(ctx, &count, query)
	if err != nil {
		return 0, err
	}
	return count, nil
}
