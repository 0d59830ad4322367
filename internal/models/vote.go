package models

import (
	"time"
)

// Vote holds one member's vote on one comment. A cleared vote is row
// absence, so the unique index keeps at most one row per (user, comment).
type Vote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_comment_vote" json:"user_id"`
	CommentID uint      `gorm:"not null;uniqueIndex:idx_user_comment_vote" json:"comment_id"`
	Value     int       `gorm:"not null" json:"value"` // 1 or -1
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
