package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zhangjiang/campuswall/internal/app/models"
	"github.com/zhangjiang/campuswall/internal/db"
	"github.com/zhangjiang/campuswall/internal/pkg/apperrors"
)

// VerificationRequestRepository handles database operations for identity
// verification requests
type VerificationRequestRepository struct {
	db *pgxpool.Pool
}

// NewVerificationRequestRepository creates a new VerificationRequestRepository
func NewVerificationRequestRepository(db *pgxpool.Pool) *VerificationRequestRepository {
	return &VerificationRequestRepository{db: db}
}

// Create opens a new pending request for the user
func (r *VerificationRequestRepository) Create(ctx context.Context, userID int64) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO verification_requests (user_id, status)
		VALUES ($1, $2)
		RETURNING id`,
		userID, models.VerificationPending).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("error creating verification request: %w", err)
	}

	return id, nil
}

// HasPending checks whether the user already has a pending request
func (r *VerificationRequestRepository) HasPending(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM verification_requests
			WHERE user_id = $1 AND status = $2)`,
		userID, models.VerificationPending).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking pending request: %w", err)
	}

	return exists, nil
}

// GetByID retrieves a request with its applicant profile
func (r *VerificationRequestRepository) GetByID(ctx context.Context, id int64) (*models.VerificationRequest, error) {
	request := &models.VerificationRequest{}
	applicant := models.Profile{}
	err := r.db.QueryRow(ctx, `
		SELECT vr.id, vr.user_id, vr.status, vr.created_at, vr.updated_at,
		       pr.student_id, pr.real_name, pr.is_verified, pr.is_admin
		FROM verification_requests vr
		JOIN profiles pr ON pr.id = vr.user_id
		WHERE vr.id = $1`,
		id).Scan(
		&request.ID, &request.UserID, &request.Status,
		&request.CreatedAt, &request.UpdatedAt,
		&applicant.StudentID, &applicant.RealName, &applicant.IsVerified, &applicant.IsAdmin)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrVerificationRequestNotFound
		}
		return nil, fmt.Errorf("error getting verification request: %w", err)
	}

	applicant.ID = request.UserID
	request.Applicant = &applicant
	return request, nil
}

// List retrieves all requests, pending ones first, then newest first
func (r *VerificationRequestRepository) List(ctx context.Context) ([]models.VerificationRequest, error) {
	rows, err := r.db.Query(ctx, `
		SELECT vr.id, vr.user_id, vr.status, vr.created_at, vr.updated_at,
		       pr.student_id, pr.real_name, pr.is_verified, pr.is_admin
		FROM verification_requests vr
		JOIN profiles pr ON pr.id = vr.user_id
		ORDER BY (vr.status = 'pending') DESC, vr.created_at DESC`)

	if err != nil {
		return nil, fmt.Errorf("error listing verification requests: %w", err)
	}
	defer rows.Close()

	var requests []models.VerificationRequest
	for rows.Next() {
		request := models.VerificationRequest{}
		applicant := models.Profile{}
		err := rows.Scan(
			&request.ID, &request.UserID, &request.Status,
			&request.CreatedAt, &request.UpdatedAt,
			&applicant.StudentID, &applicant.RealName, &applicant.IsVerified, &applicant.IsAdmin)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		applicant.ID = request.UserID
		request.Applicant = &applicant
		requests = append(requests, request)
	}

	return requests, nil
}

// Approve moves a pending request to approved and marks the applicant's
// profile verified, in one transaction. A request that is no longer
// pending returns apperrors.ErrAlreadyReviewed.
func (r *VerificationRequestRepository) Approve(ctx context.Context, id int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var userID int64
		err := tx.QueryRow(ctx, `
			UPDATE verification_requests
			SET status = $1, updated_at = NOW()
			WHERE id = $2 AND status = $3
			RETURNING user_id`,
			models.VerificationApproved, id, models.VerificationPending).Scan(&userID)

		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return resolveReviewConflict(ctx, tx, "verification_requests", id,
					apperrors.ErrVerificationRequestNotFound)
			}
			return fmt.Errorf("error approving verification request: %w", err)
		}

		_, err = tx.Exec(ctx, `
			UPDATE profiles
			SET is_verified = TRUE, updated_at = NOW()
			WHERE id = $1`,
			userID)
		if err != nil {
			return fmt.Errorf("error marking profile verified: %w", err)
		}

		return nil
	})
}

// Reject moves a pending request to rejected
func (r *VerificationRequestRepository) Reject(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `
		UPDATE verification_requests
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3`,
		models.VerificationRejected, id, models.VerificationPending)

	if err != nil {
		return fmt.Errorf("error rejecting verification request: %w", err)
	}

	if result.RowsAffected() == 0 {
		return resolveReviewConflict(ctx, r.db, "verification_requests", id,
			apperrors.ErrVerificationRequestNotFound)
	}

	return nil
}
