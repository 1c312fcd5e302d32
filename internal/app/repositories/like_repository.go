package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zhangjiang/campuswall/internal/pkg/apperrors"
	"github.com/zhangjiang/campuswall/internal/pkg/dberrors"
)

// LikeRepository handles database operations for post likes.
// The unique index on (post_id, user_id) is the authoritative guard
// against duplicate likes; any exists pre-check is advisory only.
type LikeRepository struct {
	db *pgxpool.Pool
}

// NewLikeRepository creates a new LikeRepository
func NewLikeRepository(db *pgxpool.Pool) *LikeRepository {
	return &LikeRepository{db: db}
}

// Create records a like. A duplicate (post, user) pair surfaces as
// apperrors.ErrAlreadyLiked regardless of which caller lost the race.
func (r *LikeRepository) Create(ctx context.Context, postID, userID int64) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO likes (post_id, user_id)
		VALUES ($1, $2)`,
		postID, userID)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "likes_post_user_key") {
			return apperrors.ErrAlreadyLiked
		}
		return fmt.Errorf("error creating like: %w", err)
	}

	return nil
}

// Delete removes a like by (post, user). Deleting a like that does not
// exist returns apperrors.ErrLikeNotFound.
func (r *LikeRepository) Delete(ctx context.Context, postID, userID int64) error {
	result, err := r.db.Exec(ctx, `
		DELETE FROM likes
		WHERE post_id = $1 AND user_id = $2`,
		postID, userID)

	if err != nil {
		return fmt.Errorf("error deleting like: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrLikeNotFound
	}

	return nil
}

// Count returns the number of likes on a post
func (r *LikeRepository) Count(ctx context.Context, postID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM likes WHERE post_id = $1`,
		postID).Scan(&count)

	if err != nil {
		return 0, fmt.Errorf("error counting likes: %w", err)
	}

	return count, nil
}

// Exists checks whether the user already liked the post
func (r *LikeRepository) Exists(ctx context.Context, postID, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM likes WHERE post_id = $1 AND user_id = $2)`,
		postID, userID).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking like: %w", err)
	}

	return exists, nil
}
