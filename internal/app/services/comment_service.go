package services

import (
	"context"

	"github.com/rs/zerolog"
	authz "github.com/zhangjiang/campuswall/internal/app/auth"
	"github.com/zhangjiang/campuswall/internal/app/models"
	"github.com/zhangjiang/campuswall/internal/app/models/dto"
	"github.com/zhangjiang/campuswall/internal/pkg/apperrors"
	"github.com/zhangjiang/campuswall/internal/pkg/sanitize"
	"github.com/zhangjiang/campuswall/internal/pkg/validation"
)

// CommentStore is the persistence surface CommentService needs.
type CommentStore interface {
	Create(ctx context.Context, comment *models.Comment) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	ListByPost(ctx context.Context, postID int64) ([]models.Comment, error)
	Delete(ctx context.Context, id int64) error
}

// PostChecker answers post existence queries.
type PostChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// CommentService handles comments under posts
type CommentService struct {
	commentRepo CommentStore
	postRepo    PostChecker
	profileRepo ProfileStore
	logger      zerolog.Logger
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo CommentStore, postRepo PostChecker, profileRepo ProfileStore, logger zerolog.Logger) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// Create adds a comment to an existing post
func (s *CommentService) Create(ctx context.Context, viewer authz.Viewer, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	exists, err := s.postRepo.Exists(ctx, req.PostID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrPostNotFound
	}

	content := sanitize.Content(req.Content)
	if content == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "content cannot be empty")
	}
	if len([]rune(content)) > validation.ContentMaxLength {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "content too long")
	}

	level := models.AnonymityLevel(req.AnonymityLevel)
	if !level.IsValid() {
		return nil, apperrors.ErrInvalidAnonymityLevel
	}

	comment := &models.Comment{
		PostID:         req.PostID,
		UserID:         viewer.UserID,
		Content:        content,
		AnonymityLevel: level,
	}

	if _, err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetProfileByID(ctx, viewer.UserID)
	if err != nil {
		return nil, err
	}

	resp := dto.FromComment(comment, resolveAuthor(level, profile))
	return &resp, nil
}

// ListByPost returns all comments on a post in chronological order
func (s *CommentService) ListByPost(ctx context.Context, postID int64) (*dto.CommentListResponse, error) {
	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrPostNotFound
	}

	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		c := &comments[i]
		responses = append(responses, dto.FromComment(c, resolveAuthor(c.AnonymityLevel, c.Author)))
	}

	return &dto.CommentListResponse{Comments: responses}, nil
}

// Delete removes a comment if the viewer owns it or is an admin
func (s *CommentService) Delete(ctx context.Context, viewer authz.Viewer, id int64) error {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !authz.CanMutate(comment.UserID, viewer) {
		return apperrors.ErrPermissionDenied
	}

	return s.commentRepo.Delete(ctx, id)
}
