package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zhangjiang/campuswall/internal/app/models"
	"github.com/zhangjiang/campuswall/internal/pkg/apperrors"
)

// CommentRepository handles database operations for comments
type CommentRepository struct {
	db *pgxpool.Pool
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create creates a new comment
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) (int64, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO comments (post_id, user_id, content, anonymity_level)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`,
		comment.PostID, comment.UserID, comment.Content, comment.AnonymityLevel).Scan(
		&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)

	if err != nil {
		return 0, fmt.Errorf("error creating comment: %w", err)
	}

	return comment.ID, nil
}

// GetByID retrieves a comment with its author profile
func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	comment := &models.Comment{}
	author := models.Profile{}
	err := r.db.QueryRow(ctx, `
		SELECT c.id, c.post_id, c.user_id, c.content, c.anonymity_level,
		       c.created_at, c.updated_at,
		       pr.student_id, pr.real_name, pr.is_verified, pr.is_admin
		FROM comments c
		JOIN profiles pr ON pr.id = c.user_id
		WHERE c.id = $1`,
		id).Scan(
		&comment.ID, &comment.PostID, &comment.UserID, &comment.Content,
		&comment.AnonymityLevel, &comment.CreatedAt, &comment.UpdatedAt,
		&author.StudentID, &author.RealName, &author.IsVerified, &author.IsAdmin)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, fmt.Errorf("error getting comment: %w", err)
	}

	author.ID = comment.UserID
	comment.Author = &author
	return comment, nil
}

// ListByPost retrieves all comments for a post in chronological order
func (r *CommentRepository) ListByPost(ctx context.Context, postID int64) ([]models.Comment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT c.id, c.post_id, c.user_id, c.content, c.anonymity_level,
		       c.created_at, c.updated_at,
		       pr.student_id, pr.real_name, pr.is_verified, pr.is_admin
		FROM comments c
		JOIN profiles pr ON pr.id = c.user_id
		WHERE c.post_id = $1
		ORDER BY c.created_at ASC`,
		postID)

	if err != nil {
		return nil, fmt.Errorf("error listing comments: %w", err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		comment := models.Comment{}
		author := models.Profile{}
		err := rows.Scan(
			&comment.ID, &comment.PostID, &comment.UserID, &comment.Content,
			&comment.AnonymityLevel, &comment.CreatedAt, &comment.UpdatedAt,
			&author.StudentID, &author.RealName, &author.IsVerified, &author.IsAdmin)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		author.ID = comment.UserID
		comment.Author = &author
		comments = append(comments, comment)
	}

	return comments, nil
}

// Delete deletes a comment
func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `
		DELETE FROM comments WHERE id = $1`,
		id)

	if err != nil {
		return fmt.Errorf("error deleting comment: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrCommentNotFound
	}

	return nil
}
