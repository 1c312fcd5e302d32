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

// ReportRepository handles database operations for content reports
type ReportRepository struct {
	db *pgxpool.Pool
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{db: db}
}

// Create creates a new report
func (r *ReportRepository) Create(ctx context.Context, report *models.Report) (int64, error) {
	query := squirrel.Insert("reports").
		Columns("post_id", "comment_id", "reporter_id", "report_type", "status", "reason").
		Values(report.PostID, report.CommentID, report.ReporterID, report.ReportType, report.Status, report.Reason).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&report.ID, &report.CreatedAt, &report.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return report.ID, nil
}

// GetByID retrieves a report with its reporter profile
func (r *ReportRepository) GetByID(ctx context.Context, id int64) (*models.Report, error) {
	query := squirrel.Select(
		"r.id", "r.post_id", "r.comment_id", "r.reporter_id", "r.report_type",
		"r.status", "r.reason", "r.admin_notes", "r.created_at", "r.updated_at",
		"pr.student_id", "pr.real_name", "pr.is_verified", "pr.is_admin").
		From("reports r").
		Join("profiles pr ON pr.id = r.reporter_id").
		Where("r.id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	report := &models.Report{}
	reporter := models.Profile{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&report.ID, &report.PostID, &report.CommentID, &report.ReporterID,
		&report.ReportType, &report.Status, &report.Reason, &report.AdminNotes,
		&report.CreatedAt, &report.UpdatedAt,
		&reporter.StudentID, &reporter.RealName, &reporter.IsVerified, &reporter.IsAdmin)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrReportNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	reporter.ID = report.ReporterID
	report.Reporter = &reporter
	return report, nil
}

// List retrieves reports with an optional status filter and pagination,
// newest first.
func (r *ReportRepository) List(ctx context.Context, status *models.ReportStatus, page, pageSize int) ([]models.Report, int64, error) {
	query := squirrel.Select(
		"r.id", "r.post_id", "r.comment_id", "r.reporter_id", "r.report_type",
		"r.status", "r.reason", "r.admin_notes", "r.created_at", "r.updated_at",
		"pr.student_id", "pr.real_name", "pr.is_verified", "pr.is_admin").
		Column("COUNT(*) OVER()").
		From("reports r").
		Join("profiles pr ON pr.id = r.reporter_id").
		OrderBy("(r.status = 'pending') DESC", "r.created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if status != nil {
		query = query.Where("r.status = ?", *status)
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

	var reports []models.Report
	var total int64

	for rows.Next() {
		report := models.Report{}
		reporter := models.Profile{}
		err := rows.Scan(
			&report.ID, &report.PostID, &report.CommentID, &report.ReporterID,
			&report.ReportType, &report.Status, &report.Reason, &report.AdminNotes,
			&report.CreatedAt, &report.UpdatedAt,
			&reporter.StudentID, &reporter.RealName, &reporter.IsVerified, &reporter.IsAdmin,
			&total)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		reporter.ID = report.ReporterID
		report.Reporter = &reporter
		reports = append(reports, report)
	}

	return reports, total, nil
}

// Review moves a pending report to a terminal status. The WHERE guard
// on the pending status makes concurrent reviews lose cleanly; the
// loser sees apperrors.ErrAlreadyReviewed.
func (r *ReportRepository) Review(ctx context.Context, id int64, status models.ReportStatus, adminNotes *string) error {
	result, err := r.db.Exec(ctx, `
		UPDATE reports
		SET status = $1, admin_notes = $2, updated_at = NOW()
		WHERE id = $3 AND status = $4`,
		status, adminNotes, id, models.ReportPending)

	if err != nil {
		return fmt.Errorf("error reviewing report: %w", err)
	}

	if result.RowsAffected() == 0 {
		return resolveReviewConflict(ctx, r.db, "reports", id, apperrors.ErrReportNotFound)
	}

	return nil
}
