package models

import (
	"time"
)

// Like defines a single like based on the 'likes' table.
// At most one row may exist per (post_id, user_id); the unique index is the
// authoritative guard against concurrent duplicates.
type Like struct {
	ID        int64     `json:"id" db:"id"`
	PostID    int64     `json:"postId" db:"post_id"`
	UserID    int64     `json:"userId" db:"user_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
