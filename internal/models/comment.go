package models

import (
	"time"
)

type Comment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TargetType string    `gorm:"size:32;not null;index:idx_comment_target" json:"target_type"`
	TargetID   uint      `gorm:"not null;index:idx_comment_target" json:"target_id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	User       User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	ParentID   *uint     `gorm:"index" json:"parent_id"` // nil for top-level comments
	Parent     *Comment  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"parent"`
	Body       string    `gorm:"type:text;not null" json:"body"`
	Upvotes    int       `gorm:"default:0" json:"upvotes"`
	Downvotes  int       `gorm:"default:0" json:"downvotes"`
	ReplyCount int       `gorm:"default:0" json:"reply_count"` // maintained for top-level comments only
	Pinned     bool      `gorm:"default:false" json:"pinned"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
