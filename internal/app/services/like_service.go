package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/zhangjiang/campuswall/internal/app/models/dto"
	"github.com/zhangjiang/campuswall/internal/pkg/apperrors"
)

// LikeStore is the persistence surface LikeService needs.
type LikeStore interface {
	Create(ctx context.Context, postID, userID int64) error
	Delete(ctx context.Context, postID, userID int64) error
	Count(ctx context.Context, postID int64) (int64, error)
	Exists(ctx context.Context, postID, userID int64) (bool, error)
}

// LikeService handles idempotency-guarded post likes
type LikeService struct {
	likeRepo LikeStore
	postRepo PostChecker
	logger   zerolog.Logger
}

// NewLikeService creates a new LikeService
func NewLikeService(likeRepo LikeStore, postRepo PostChecker, logger zerolog.Logger) *LikeService {
	return &LikeService{
		likeRepo: likeRepo,
		postRepo: postRepo,
		logger:   logger,
	}
}

// Like records a like on a post. Liking twice is a conflict, whether it is
// caught by the pre-check or by the unique index under a race.
func (s *LikeService) Like(ctx context.Context, postID, userID int64) error {
	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.ErrPostNotFound
	}

	liked, err := s.likeRepo.Exists(ctx, postID, userID)
	if err != nil {
		return err
	}
	if liked {
		return apperrors.ErrAlreadyLiked
	}

	return s.likeRepo.Create(ctx, postID, userID)
}

// Unlike removes the viewer's like from a post
func (s *LikeService) Unlike(ctx context.Context, postID, userID int64) error {
	return s.likeRepo.Delete(ctx, postID, userID)
}

// Status returns the like count of a post and, for authenticated viewers,
// whether the viewer has liked it. Anonymous viewers get IsLiked false.
func (s *LikeService) Status(ctx context.Context, postID, viewerID int64) (*dto.LikeStatusResponse, error) {
	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrPostNotFound
	}

	count, err := s.likeRepo.Count(ctx, postID)
	if err != nil {
		return nil, err
	}

	isLiked := false
	if viewerID != 0 {
		isLiked, err = s.likeRepo.Exists(ctx, postID, viewerID)
		if err != nil {
			return nil, err
		}
	}

	return &dto.LikeStatusResponse{
		Count:   count,
		IsLiked: isLiked,
	}, nil
}
