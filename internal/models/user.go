package models

import (
	"database/sql"
	"time"
)

// User is a Telegram user known to the bot. Created on first
// interaction; last_checkin_at drives the cooldown gate.
type User struct {
	UserID        int64        `db:"user_id" json:"user_id"`
	Username      *string      `db:"username" json:"username,omitempty"`
	FirstSeenAt   time.Time    `db:"first_seen_at" json:"first_seen_at"`
	LastCheckinAt sql.NullTime `db:"last_checkin_at" json:"last_checkin_at"`
}
