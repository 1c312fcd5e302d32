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

// FileRepository handles database operations for uploaded images
type FileRepository struct {
	db *pgxpool.Pool
}

// NewFileRepository creates a new FileRepository
func NewFileRepository(db *pgxpool.Pool) *FileRepository {
	return &FileRepository{db: db}
}

// Create creates a new file record
func (r *FileRepository) Create(ctx context.Context, file *models.File) (int64, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO files (file_name, file_url, file_size, file_type, uploaded_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		file.FileName, file.FileURL, file.FileSize, file.FileType, file.UploadedBy).Scan(
		&file.ID, &file.CreatedAt)

	if err != nil {
		return 0, fmt.Errorf("error creating file record: %w", err)
	}

	return file.ID, nil
}

// GetByID retrieves a file record by ID
func (r *FileRepository) GetByID(ctx context.Context, id int64) (*models.File, error) {
	file := &models.File{}
	err := r.db.QueryRow(ctx, `
		SELECT id, file_name, file_url, file_size, file_type, uploaded_by, created_at
		FROM files
		WHERE id = $1`,
		id).Scan(
		&file.ID, &file.FileName, &file.FileURL, &file.FileSize,
		&file.FileType, &file.UploadedBy, &file.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error getting file record: %w", err)
	}

	return file, nil
}

// Delete deletes a file record
func (r *FileRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `
		DELETE FROM files WHERE id = $1`,
		id)

	if err != nil {
		return fmt.Errorf("error deleting file record: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}

	return nil
}
