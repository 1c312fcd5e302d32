package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/zhangjiang/campuswall/internal/pkg/apperrors"
)

// rowQuerier is satisfied by both pgxpool.Pool and pgx.Tx.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// resolveReviewConflict disambiguates a zero-row status-guarded review
// update: the row either never existed or already carries a terminal
// decision.
func resolveReviewConflict(ctx context.Context, q rowQuerier, table string, id int64, notFound error) error {
	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM `+table+` WHERE id = $1)`,
		id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("error checking %s: %w", table, err)
	}
	if !exists {
		return notFound
	}
	return apperrors.ErrAlreadyReviewed
}
