package models

import (
	"time"
)

// Post defines the post model based on the 'posts' table
type Post struct {
	ID             int64          `json:"id" db:"id"`
	UserID         int64          `json:"userId" db:"user_id"`
	Content        string         `json:"content" db:"content"`
	Images         []string       `json:"images" db:"images"`
	AnonymityLevel AnonymityLevel `json:"anonymityLevel" db:"anonymity_level"`
	IsAnnouncement bool           `json:"isAnnouncement" db:"is_announcement"`
	CreatedAt      time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time      `json:"updatedAt" db:"updated_at"`
	Author         *Profile       `json:"author,omitempty"` // Relation, no db tag
}
