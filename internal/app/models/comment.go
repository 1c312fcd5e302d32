package models

import (
	"time"
)

// Comment defines the comment model based on the 'comments' table
type Comment struct {
	ID             int64          `json:"id" db:"id"`
	PostID         int64          `json:"postId" db:"post_id"`
	UserID         int64          `json:"userId" db:"user_id"`
	Content        string         `json:"content" db:"content"`
	AnonymityLevel AnonymityLevel `json:"anonymityLevel" db:"anonymity_level"`
	CreatedAt      time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time      `json:"updatedAt" db:"updated_at"`
	Author         *Profile       `json:"author,omitempty"` // Relation, no db tag
}
