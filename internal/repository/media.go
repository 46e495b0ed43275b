package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"moodbot/internal/models"
)

type MediaRepository interface {
	AddMediaItem(ctx context.Context, item *models.MediaItem) error
	ListMediaItems(ctx context.Context, category string) ([]*models.MediaItem, error)
}

type mediaRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewMediaRepository(db *sqlx.DB, logger *zap.Logger) MediaRepository {
	return &mediaRepository{db: db, logger: logger}
}

func (r *mediaRepository) AddMediaItem(ctx context.Context, item *models.MediaItem) error {
	query := `INSERT INTO media_library (filename, category, original_name) VALUES ($1, $2, $3) RETURNING id, added_at`
	return r.db.QueryRowxContext(ctx, query, item.Filename, item.Category, item.OriginalName).StructScan(item)
}

func (r *mediaRepository) ListMediaItems(ctx context.Context, category string) ([]*models.MediaItem, error) {
	var items []*models.MediaItem
	query := `SELECT id, filename, category, original_name, added_at FROM media_library WHERE category = $1 ORDER BY id`
	err := r.db.SelectContext(ctx, &items, query, category)
	if err != nil {
		return nil, err
	}
	return items, nil
}
