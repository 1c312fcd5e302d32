package services

import (
	"context"

	"github.com/rs/zerolog"
	authz "github.com/zhangjiang/campuswall/internal/app/auth"
	"github.com/zhangjiang/campuswall/internal/app/models"
	"github.com/zhangjiang/campuswall/internal/app/models/dto"
	"github.com/zhangjiang/campuswall/internal/app/repositories"
	"github.com/zhangjiang/campuswall/internal/pkg/apperrors"
	"github.com/zhangjiang/campuswall/internal/pkg/helpers"
	"github.com/zhangjiang/campuswall/internal/pkg/sanitize"
	"github.com/zhangjiang/campuswall/internal/pkg/validation"
)

// PostStore is the persistence surface PostService needs.
type PostStore interface {
	List(ctx context.Context, search string, page, pageSize int) ([]repositories.PostRecord, int64, error)
	GetByID(ctx context.Context, id int64) (*repositories.PostRecord, error)
	Create(ctx context.Context, post *models.Post) (int64, error)
	Delete(ctx context.Context, id int64) error
}

// ProfileStore resolves author profiles.
type ProfileStore interface {
	GetProfileByID(ctx context.Context, id int64) (*models.Profile, error)
}

// PostService handles wall posts and announcements
type PostService struct {
	postRepo    PostStore
	profileRepo ProfileStore
	logger      zerolog.Logger
}

// NewPostService creates a new PostService
func NewPostService(postRepo PostStore, profileRepo ProfileStore, logger zerolog.Logger) *PostService {
	return &PostService{
		postRepo:    postRepo,
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// Create publishes a new post. Content is sanitized before storage.
// Only admins may publish announcements; the flag is ignored otherwise.
func (s *PostService) Create(ctx context.Context, viewer authz.Viewer, req *dto.CreatePostRequest) (*dto.PostResponse, error) {
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

	post := &models.Post{
		UserID:         viewer.UserID,
		Content:        content,
		Images:         req.Images,
		AnonymityLevel: level,
		IsAnnouncement: req.IsAnnouncement && viewer.IsAdmin,
	}

	if _, err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetProfileByID(ctx, viewer.UserID)
	if err != nil {
		return nil, err
	}

	resp := dto.FromPost(post, resolveAuthor(level, profile), 0, 0)
	return &resp, nil
}

// List returns posts, announcements first, newest first, with an optional
// content substring filter.
func (s *PostService) List(ctx context.Context, filter dto.PostFilter) (*dto.PostListResponse, error) {
	records, total, err := s.postRepo.List(ctx, filter.Search, filter.Page, filter.PageSize)
	if err != nil {
		return nil, err
	}

	posts := make([]dto.PostResponse, 0, len(records))
	for i := range records {
		rec := &records[i]
		author := resolveAuthor(rec.Post.AnonymityLevel, rec.Post.Author)
		posts = append(posts, dto.FromPost(&rec.Post, author, rec.LikeCount, rec.CommentCount))
	}

	return &dto.PostListResponse{
		Posts:      posts,
		Pagination: helpers.NewPaginationInfo(total, filter.Page, filter.PageSize),
	}, nil
}

// GetByID returns a single post with its counters
func (s *PostService) GetByID(ctx context.Context, id int64) (*dto.PostResponse, error) {
	rec, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	author := resolveAuthor(rec.Post.AnonymityLevel, rec.Post.Author)
	resp := dto.FromPost(&rec.Post, author, rec.LikeCount, rec.CommentCount)
	return &resp, nil
}

// Delete removes a post if the viewer owns it or is an admin. Comments,
// likes and reports against the post are removed with it.
func (s *PostService) Delete(ctx context.Context, viewer authz.Viewer, id int64) error {
	rec, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !authz.CanMutate(rec.Post.UserID, viewer) {
		return apperrors.ErrPermissionDenied
	}

	return s.postRepo.Delete(ctx, id)
}
