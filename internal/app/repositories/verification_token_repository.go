package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zhangjiang/campuswall/internal/app/models"
	"github.com/zhangjiang/campuswall/internal/pkg/apperrors"
)

// VerificationTokenRepository handles database operations for email
// verification tokens. Tokens are keyed by the email address they were
// issued for, so reissuing replaces any previous token.
type VerificationTokenRepository struct {
	db *pgxpool.Pool
}

// NewVerificationTokenRepository creates a new VerificationTokenRepository
func NewVerificationTokenRepository(db *pgxpool.Pool) *VerificationTokenRepository {
	return &VerificationTokenRepository{db: db}
}

// Upsert stores a verification token for an email address, replacing any
// token previously issued for it.
func (r *VerificationTokenRepository) Upsert(ctx context.Context, identifier, token string, expires time.Time) error {
	query := squirrel.Insert("verification_tokens").
		Columns("identifier", "token", "expires").
		Values(identifier, token, expires).
		Suffix("ON CONFLICT (identifier) DO UPDATE SET token = EXCLUDED.token, expires = EXCLUDED.expires").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error storing verification token: %w", err)
	}

	return nil
}

// GetByToken retrieves a token record by token value
func (r *VerificationTokenRepository) GetByToken(ctx context.Context, token string) (*models.VerificationToken, error) {
	query := squirrel.Select("identifier", "token", "expires").
		From("verification_tokens").
		Where("token = ?", token).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	record := &models.VerificationToken{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&record.Identifier, &record.Token, &record.Expires)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInvalidEmailToken
		}
		return nil, fmt.Errorf("error getting verification token: %w", err)
	}

	return record, nil
}

// Delete consumes a token. Deleting an already-consumed token is not an
// error; single use is enforced by the verify flow checking the row first.
func (r *VerificationTokenRepository) Delete(ctx context.Context, identifier, token string) error {
	query := squirrel.Delete("verification_tokens").
		Where("identifier = ?", identifier).
		Where("token = ?", token).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting verification token: %w", err)
	}

	return nil
}

// DeleteExpired deletes all expired tokens
func (r *VerificationTokenRepository) DeleteExpired(ctx context.Context) error {
	query := squirrel.Delete("verification_tokens").
		Where("expires < ?", time.Now()).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting expired tokens: %w", err)
	}

	return nil
}
