package dto

import (
	"time"

	"github.com/zhangjiang/campuswall/internal/app/models"
)

// CreateCommentRequest represents a new comment submission
type CreateCommentRequest struct {
	PostID         int64  `json:"post_id" binding:"required,min=1"`
	Content        string `json:"content" binding:"required"`
	AnonymityLevel string `json:"anonymity_level" binding:"required,oneof=full partial none"`
}

// CommentResponse represents a comment with its resolved author identity
type CommentResponse struct {
	ID             int64      `json:"id"`
	PostID         int64      `json:"postId"`
	UserID         int64      `json:"userId"`
	Content        string     `json:"content"`
	AnonymityLevel string     `json:"anonymityLevel"`
	Author         AuthorInfo `json:"author"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// CommentListResponse is the chronological comment list of a post
type CommentListResponse struct {
	Comments []CommentResponse `json:"comments"`
}

// FromComment converts a model comment and resolved author into a response
func FromComment(comment *models.Comment, author AuthorInfo) CommentResponse {
	return CommentResponse{
		ID:             comment.ID,
		PostID:         comment.PostID,
		UserID:         comment.UserID,
		Content:        comment.Content,
		AnonymityLevel: string(comment.AnonymityLevel),
		Author:         author,
		CreatedAt:      comment.CreatedAt,
		UpdatedAt:      comment.UpdatedAt,
	}
}
