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
	"github.com/zhangjiang/campuswall/internal/pkg/dberrors"
)

// UserRepository handles database operations for users and their profiles
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// CreateWithProfile creates a user and its profile in a single transaction.
// The profile row shares the user's id. Unique violations on email or
// student number are mapped to their sentinel errors.
func (r *UserRepository) CreateWithProfile(ctx context.Context, account *models.Account) error {
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO users (email, password_hash, email_verified)
			VALUES ($1, $2, $3)
			RETURNING id, created_at, updated_at`,
			account.User.Email, account.User.PasswordHash, account.User.EmailVerified).Scan(
			&account.User.ID, &account.User.CreatedAt, &account.User.UpdatedAt)
		if err != nil {
			return fmt.Errorf("error creating user: %w", err)
		}

		account.Profile.ID = account.User.ID
		_, err = tx.Exec(ctx, `
			INSERT INTO profiles (id, student_id, real_name, is_verified, is_admin)
			VALUES ($1, $2, $3, $4, $5)`,
			account.Profile.ID, account.Profile.StudentID, account.Profile.RealName,
			account.Profile.IsVerified, account.Profile.IsAdmin)
		if err != nil {
			return fmt.Errorf("error creating profile: %w", err)
		}

		return nil
	})
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		if dberrors.IsDuplicateConstraintError(err, "profiles_student_id_key") {
			return apperrors.ErrStudentIDAlreadyExists
		}
		return err
	}

	return nil
}

// GetByEmail retrieves a user with its profile by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	return r.getAccount(ctx, "u.email = $1", email)
}

// GetByID retrieves a user with its profile by user ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	return r.getAccount(ctx, "u.id = $1", id)
}

func (r *UserRepository) getAccount(ctx context.Context, where string, arg interface{}) (*models.Account, error) {
	account := &models.Account{}
	err := r.db.QueryRow(ctx, `
		SELECT u.id, u.email, u.password_hash, u.email_verified, u.created_at, u.updated_at,
		       p.id, p.student_id, p.real_name, p.is_verified, p.is_admin, p.created_at, p.updated_at
		FROM users u
		JOIN profiles p ON p.id = u.id
		WHERE `+where,
		arg).Scan(
		&account.User.ID, &account.User.Email, &account.User.PasswordHash,
		&account.User.EmailVerified, &account.User.CreatedAt, &account.User.UpdatedAt,
		&account.Profile.ID, &account.Profile.StudentID, &account.Profile.RealName,
		&account.Profile.IsVerified, &account.Profile.IsAdmin,
		&account.Profile.CreatedAt, &account.Profile.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error getting user: %w", err)
	}

	return account, nil
}

// GetProfileByID retrieves a profile by user ID
func (r *UserRepository) GetProfileByID(ctx context.Context, id int64) (*models.Profile, error) {
	profile := &models.Profile{}
	err := r.db.QueryRow(ctx, `
		SELECT id, student_id, real_name, is_verified, is_admin, created_at, updated_at
		FROM profiles
		WHERE id = $1`,
		id).Scan(
		&profile.ID, &profile.StudentID, &profile.RealName,
		&profile.IsVerified, &profile.IsAdmin, &profile.CreatedAt, &profile.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error getting profile: %w", err)
	}

	return profile, nil
}

// EmailExists checks if an email already exists
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`,
		email).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking email: %w", err)
	}

	return exists, nil
}

// StudentIDExists checks if a student number is already registered
func (r *UserRepository) StudentIDExists(ctx context.Context, studentID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM profiles WHERE student_id = $1)`,
		studentID).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking student number: %w", err)
	}

	return exists, nil
}

// SetEmailVerified marks the user's email address as verified
func (r *UserRepository) SetEmailVerified(ctx context.Context, userID int64) error {
	result, err := r.db.Exec(ctx, `
		UPDATE users
		SET email_verified = TRUE, updated_at = NOW()
		WHERE id = $1`,
		userID)

	if err != nil {
		return fmt.Errorf("error marking email verified: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}
