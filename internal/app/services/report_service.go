package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/zhangjiang/campuswall/internal/app/models"
	"github.com/zhangjiang/campuswall/internal/app/models/dto"
	"github.com/zhangjiang/campuswall/internal/pkg/apperrors"
	"github.com/zhangjiang/campuswall/internal/pkg/helpers"
	"github.com/zhangjiang/campuswall/internal/pkg/sanitize"
)

// ReportStore is the persistence surface ReportService needs.
type ReportStore interface {
	Create(ctx context.Context, report *models.Report) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Report, error)
	List(ctx context.Context, status *models.ReportStatus, page, pageSize int) ([]models.Report, int64, error)
	Review(ctx context.Context, id int64, status models.ReportStatus, adminNotes *string) error
}

// CommentChecker answers comment existence queries.
type CommentChecker interface {
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
}

// ReportService handles content reports and their admin review
type ReportService struct {
	reportRepo  ReportStore
	postRepo    PostChecker
	commentRepo CommentChecker
	logger      zerolog.Logger
}

// NewReportService creates a new ReportService
func NewReportService(reportRepo ReportStore, postRepo PostChecker, commentRepo CommentChecker, logger zerolog.Logger) *ReportService {
	return &ReportService{
		reportRepo:  reportRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		logger:      logger,
	}
}

// Create files a report against a post or a comment. The target reference
// must match the declared type and must exist.
func (s *ReportService) Create(ctx context.Context, reporterID int64, req *dto.CreateReportRequest) (*dto.ReportResponse, error) {
	reportType := models.ReportType(req.ReportType)
	if !reportType.IsValid() {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "unknown report type")
	}

	report := &models.Report{
		ReporterID: reporterID,
		ReportType: reportType,
		Status:     models.ReportPending,
		Reason:     sanitize.Content(req.Reason),
	}
	if strings.TrimSpace(report.Reason) == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "reason cannot be empty")
	}

	switch reportType {
	case models.ReportTypePost:
		if req.PostID == nil || req.CommentID != nil {
			return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "post report must reference exactly one post")
		}
		exists, err := s.postRepo.Exists(ctx, *req.PostID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperrors.ErrPostNotFound
		}
		report.PostID = req.PostID
	case models.ReportTypeComment:
		if req.CommentID == nil || req.PostID != nil {
			return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "comment report must reference exactly one comment")
		}
		if _, err := s.commentRepo.GetByID(ctx, *req.CommentID); err != nil {
			return nil, err
		}
		report.CommentID = req.CommentID
	}

	if _, err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	resp := dto.FromReport(report)
	return &resp, nil
}

// List returns reports for review, newest first, optionally filtered by
// status.
func (s *ReportService) List(ctx context.Context, status string, page, pageSize int) (*dto.ReportListResponse, error) {
	var statusFilter *models.ReportStatus
	if status != "" {
		parsed := models.ReportStatus(status)
		switch parsed {
		case models.ReportPending, models.ReportResolved, models.ReportRejected:
			statusFilter = &parsed
		default:
			return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "unknown report status")
		}
	}

	reports, total, err := s.reportRepo.List(ctx, statusFilter, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ReportResponse, 0, len(reports))
	for i := range reports {
		responses = append(responses, dto.FromReport(&reports[i]))
	}

	return &dto.ReportListResponse{
		Reports:    responses,
		Pagination: helpers.NewPaginationInfo(total, page, pageSize),
	}, nil
}

// Review closes a pending report. Reviewing an already-reviewed report is
// a conflict; the first decision stands.
func (s *ReportService) Review(ctx context.Context, id int64, req *dto.ReviewReportRequest) (*dto.ReportResponse, error) {
	status := models.ReportStatus(req.Status)
	if !status.IsTerminal() {
		return nil, apperrors.ErrInvalidReviewStatus
	}

	if err := s.reportRepo.Review(ctx, id, status, req.AdminNotes); err != nil {
		return nil, err
	}

	report, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := dto.FromReport(report)
	return &resp, nil
}
