package dto

import (
	"time"

	"github.com/zhangjiang/campuswall/internal/app/models"
)

// AuthorInfo is the resolved display identity of a content author.
// Resolution is viewer-independent: what is exposed here is exactly what the
// author's anonymity level allows, for every viewer.
type AuthorInfo struct {
	DisplayName string `json:"displayName" example:"匿名"`
	IsVerified  bool   `json:"isVerified"`
	IsAdmin     bool   `json:"isAdmin"`
}

// CreatePostRequest represents a new post submission
type CreatePostRequest struct {
	Content        string   `json:"content" binding:"required"`
	AnonymityLevel string   `json:"anonymity_level" binding:"required,oneof=full partial none"`
	Images         []string `json:"images"`
	IsAnnouncement bool     `json:"is_announcement"`
}

// PostResponse represents a post with its resolved author identity
type PostResponse struct {
	ID             int64      `json:"id"`
	UserID         int64      `json:"userId"`
	Content        string     `json:"content"`
	Images         []string   `json:"images"`
	AnonymityLevel string     `json:"anonymityLevel"`
	IsAnnouncement bool       `json:"isAnnouncement"`
	LikeCount      int64      `json:"likeCount"`
	CommentCount   int64      `json:"commentCount"`
	Author         AuthorInfo `json:"author"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// PostListResponse is a paginated list of posts
type PostListResponse struct {
	Posts      []PostResponse `json:"posts"`
	Pagination PaginationInfo `json:"pagination"`
}

// PostFilter carries list-query options
type PostFilter struct {
	Search   string
	Page     int
	PageSize int
}

// FromPost converts a model post and resolved author into a response.
// Counts are attached by the service.
func FromPost(post *models.Post, author AuthorInfo, likeCount, commentCount int64) PostResponse {
	images := post.Images
	if images == nil {
		images = []string{}
	}
	return PostResponse{
		ID:             post.ID,
		UserID:         post.UserID,
		Content:        post.Content,
		Images:         images,
		AnonymityLevel: string(post.AnonymityLevel),
		IsAnnouncement: post.IsAnnouncement,
		LikeCount:      likeCount,
		CommentCount:   commentCount,
		Author:         author,
		CreatedAt:      post.CreatedAt,
		UpdatedAt:      post.UpdatedAt,
	}
}
