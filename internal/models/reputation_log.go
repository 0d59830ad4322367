package models

import (
	"time"
)

// ReputationLog is the append-only record behind User.ReputationScore.
// The score column is a cached sum; the recount worker rebuilds it from
// these rows.
type ReputationLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Amount    int       `gorm:"not null" json:"amount"`
	Action    string    `gorm:"size:50;not null" json:"action"`
	CreatedAt time.Time `json:"created_at"`
}
