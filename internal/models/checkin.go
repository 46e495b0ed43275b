package models

import "time"

// Input types for a check-in.
const (
	InputButton = "button"
	InputText   = "text"
)

// Checkin is one completed classify-and-respond exchange. Rows are
// append-only; MoodRaw is nil unless raw-text retention is enabled.
type Checkin struct {
	ID             int64     `db:"id" json:"id"`
	UserID         int64     `db:"user_id" json:"user_id"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	InputType      string    `db:"input_type" json:"input_type"`
	MoodRaw        *string   `db:"mood_raw" json:"mood_raw,omitempty"`
	Category       string    `db:"category" json:"category"`
	ResponseTextID *string   `db:"response_text_id" json:"response_text_id,omitempty"`
	MemeFile       *string   `db:"meme_file" json:"meme_file,omitempty"`
	VideoURL       *string   `db:"video_url" json:"video_url,omitempty"`
}
