package models

import "time"

// Session is a raw fiber session blob keyed by its session ID.
// A zero ExpiresAt never expires.
type Session struct {
	ID        string    `gorm:"type:text;primary_key" json:"id"`
	Data      []byte    `gorm:"type:bytea" json:"-"`
	ExpiresAt time.Time `gorm:"type:timestamptz;index" json:"expires_at"`
}

func (Session) TableName() string {
	return "sessions"
}
