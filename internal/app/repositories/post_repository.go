package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zhangjiang/campuswall/internal/app/models"
	"github.com/zhangjiang/campuswall/internal/pkg/apperrors"
)

// PostRecord is a post together with its aggregate counters, as read from
// the store. Counts are never stored on the post row.
type PostRecord struct {
	Post         models.Post
	LikeCount    int64
	CommentCount int64
}

// PostRepository handles database operations for posts
type PostRepository struct {
	db *pgxpool.Pool
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *pgxpool.Pool) *PostRepository {
	return &PostRepository{db: db}
}

func postColumns() []string {
	return []string{
		"p.id", "p.user_id", "p.content", "p.images", "p.anonymity_level",
		"p.is_announcement", "p.created_at", "p.updated_at",
		"pr.student_id", "pr.real_name", "pr.is_verified", "pr.is_admin",
		"(SELECT COUNT(*) FROM likes l WHERE l.post_id = p.id)",
		"(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id)",
	}
}

func scanPostRecord(row pgx.Row) (*PostRecord, error) {
	rec := &PostRecord{}
	author := models.Profile{}
	err := row.Scan(
		&rec.Post.ID, &rec.Post.UserID, &rec.Post.Content, &rec.Post.Images,
		&rec.Post.AnonymityLevel, &rec.Post.IsAnnouncement,
		&rec.Post.CreatedAt, &rec.Post.UpdatedAt,
		&author.StudentID, &author.RealName, &author.IsVerified, &author.IsAdmin,
		&rec.LikeCount, &rec.CommentCount)
	if err != nil {
		return nil, err
	}
	author.ID = rec.Post.UserID
	rec.Post.Author = &author
	return rec, nil
}

// List retrieves posts with optional substring search and pagination.
// Announcements sort before everything else, then newest first.
func (r *PostRepository) List(ctx context.Context, search string, page, pageSize int) ([]PostRecord, int64, error) {
	query := squirrel.Select(postColumns()...).
		Column("COUNT(*) OVER()").
		From("posts p").
		Join("profiles pr ON pr.id = p.user_id").
		OrderBy("p.is_announcement DESC", "p.created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if search != "" {
		query = query.Where("p.content ILIKE ?", "%"+search+"%")
	}

	offset := (page - 1) * pageSize
	query = query.Limit(uint64(pageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var records []PostRecord
	var total int64

	for rows.Next() {
		rec := PostRecord{}
		author := models.Profile{}
		err := rows.Scan(
			&rec.Post.ID, &rec.Post.UserID, &rec.Post.Content, &rec.Post.Images,
			&rec.Post.AnonymityLevel, &rec.Post.IsAnnouncement,
			&rec.Post.CreatedAt, &rec.Post.UpdatedAt,
			&author.StudentID, &author.RealName, &author.IsVerified, &author.IsAdmin,
			&rec.LikeCount, &rec.CommentCount,
			&total)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		author.ID = rec.Post.UserID
		rec.Post.Author = &author
		records = append(records, rec)
	}

	return records, total, nil
}

// GetByID retrieves a post with its author and counters
func (r *PostRepository) GetByID(ctx context.Context, id int64) (*PostRecord, error) {
	query := squirrel.Select(postColumns()...).
		From("posts p").
		Join("profiles pr ON pr.id = p.user_id").
		Where("p.id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rec, err := scanPostRecord(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return rec, nil
}

// Exists checks whether a post exists
func (r *PostRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)`,
		id).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking post: %w", err)
	}

	return exists, nil
}

// Create creates a new post
func (r *PostRepository) Create(ctx context.Context, post *models.Post) (int64, error) {
	query := squirrel.Insert("posts").
		Columns("user_id", "content", "images", "anonymity_level", "is_announcement").
		Values(post.UserID, post.Content, post.Images, post.AnonymityLevel, post.IsAnnouncement).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return post.ID, nil
}

// Delete deletes a post. Comments, likes and reports on it go with it
// through foreign key cascades.
func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	query := squirrel.Delete("posts").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrPostNotFound
	}

	return nil
}
