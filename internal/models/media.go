package models

import "time"

// MediaItem is one imported image in the media library.
type MediaItem struct {
	ID           int64     `db:"id" json:"id"`
	Filename     string    `db:"filename" json:"filename"`
	Category     string    `db:"category" json:"category"`
	OriginalName string    `db:"original_name" json:"original_name"`
	AddedAt      time.Time `db:"added_at" json:"added_at"`
}
