package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhangjiang/campuswall/internal/app/models"
	"github.com/zhangjiang/campuswall/internal/app/models/dto"
	"github.com/zhangjiang/campuswall/internal/pkg/apperrors"
)

type stubReportStore struct {
	reports map[int64]*models.Report
	nextID  int64
}

func newStubReportStore() *stubReportStore {
	return &stubReportStore{reports: make(map[int64]*models.Report), nextID: 1}
}

func (s *stubReportStore) Create(_ context.Context, report *models.Report) (int64, error) {
	report.ID = s.nextID
	report.CreatedAt = time.Now()
	report.UpdatedAt = report.CreatedAt
	s.nextID++
	copied := *report
	s.reports[report.ID] = &copied
	return report.ID, nil
}

func (s *stubReportStore) GetByID(_ context.Context, id int64) (*models.Report, error) {
	report, ok := s.reports[id]
	if !ok {
		return nil, apperrors.ErrReportNotFound
	}
	copied := *report
	return &copied, nil
}

func (s *stubReportStore) List(_ context.Context, status *models.ReportStatus, _, _ int) ([]models.Report, int64, error) {
	var reports []models.Report
	for _, report := range s.reports {
		if status != nil && report.Status != *status {
			continue
		}
		reports = append(reports, *report)
	}
	return reports, int64(len(reports)), nil
}

func (s *stubReportStore) Review(_ context.Context, id int64, status models.ReportStatus, adminNotes *string) error {
	report, ok := s.reports[id]
	if !ok {
		return apperrors.ErrReportNotFound
	}
	if report.Status.IsTerminal() {
		return apperrors.ErrAlreadyReviewed
	}
	report.Status = status
	report.AdminNotes = adminNotes
	return nil
}

type stubCommentChecker struct {
	existing map[int64]*models.Comment
}

func (s *stubCommentChecker) GetByID(_ context.Context, id int64) (*models.Comment, error) {
	comment, ok := s.existing[id]
	if !ok {
		return nil, apperrors.ErrCommentNotFound
	}
	return comment, nil
}

func newTestReportService() (*ReportService, *stubReportStore) {
	reports := newStubReportStore()
	posts := &stubPostChecker{existing: map[int64]bool{1: true}}
	comments := &stubCommentChecker{existing: map[int64]*models.Comment{
		5: {ID: 5, PostID: 1, UserID: 2},
	}}
	return NewReportService(reports, posts, comments, zerolog.Nop()), reports
}

func int64Ptr(v int64) *int64 { return &v }

func TestCreateReport(t *testing.T) {
	svc, _ := newTestReportService()

	resp, err := svc.Create(context.Background(), 3, &dto.CreateReportRequest{
		ReportType: "post",
		PostID:     int64Ptr(1),
		Reason:     "含有广告内容",
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, int64(3), resp.ReporterID)
}

func TestCreateReportCommentTarget(t *testing.T) {
	svc, _ := newTestReportService()

	resp, err := svc.Create(context.Background(), 3, &dto.CreateReportRequest{
		ReportType: "comment",
		CommentID:  int64Ptr(5),
		Reason:     "人身攻击",
	})
	require.NoError(t, err)
	assert.Equal(t, "comment", resp.ReportType)
}

func TestCreateReportTargetValidation(t *testing.T) {
	svc, _ := newTestReportService()

	tests := []struct {
		name    string
		req     dto.CreateReportRequest
		wantErr error
	}{
		{
			"post type without post id",
			dto.CreateReportRequest{ReportType: "post", Reason: "spam"},
			apperrors.ErrValidationFailed,
		},
		{
			"post type with both targets",
			dto.CreateReportRequest{ReportType: "post", PostID: int64Ptr(1), CommentID: int64Ptr(5), Reason: "spam"},
			apperrors.ErrValidationFailed,
		},
		{
			"comment type with post target",
			dto.CreateReportRequest{ReportType: "comment", PostID: int64Ptr(1), Reason: "spam"},
			apperrors.ErrValidationFailed,
		},
		{
			"missing reason",
			dto.CreateReportRequest{ReportType: "post", PostID: int64Ptr(1)},
			apperrors.ErrValidationFailed,
		},
		{
			"missing post",
			dto.CreateReportRequest{ReportType: "post", PostID: int64Ptr(404), Reason: "spam"},
			apperrors.ErrPostNotFound,
		},
		{
			"missing comment",
			dto.CreateReportRequest{ReportType: "comment", CommentID: int64Ptr(404), Reason: "spam"},
			apperrors.ErrCommentNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), 3, &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestReviewReport(t *testing.T) {
	svc, _ := newTestReportService()

	created, err := svc.Create(context.Background(), 3, &dto.CreateReportRequest{
		ReportType: "post",
		PostID:     int64Ptr(1),
		Reason:     "spam",
	})
	require.NoError(t, err)

	notes := "已删除帖子"
	resp, err := svc.Review(context.Background(), created.ID, &dto.ReviewReportRequest{
		Status:     "resolved",
		AdminNotes: &notes,
	})
	require.NoError(t, err)
	assert.Equal(t, "resolved", resp.Status)
	require.NotNil(t, resp.AdminNotes)
	assert.Equal(t, notes, *resp.AdminNotes)
}

func TestReviewReportIsFinal(t *testing.T) {
	svc, _ := newTestReportService()

	created, err := svc.Create(context.Background(), 3, &dto.CreateReportRequest{
		ReportType: "post",
		PostID:     int64Ptr(1),
		Reason:     "spam",
	})
	require.NoError(t, err)

	_, err = svc.Review(context.Background(), created.ID, &dto.ReviewReportRequest{Status: "resolved"})
	require.NoError(t, err)

	_, err = svc.Review(context.Background(), created.ID, &dto.ReviewReportRequest{Status: "rejected"})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyReviewed)
}

func TestReviewReportInvalidStatus(t *testing.T) {
	svc, _ := newTestReportService()

	_, err := svc.Review(context.Background(), 1, &dto.ReviewReportRequest{Status: "pending"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidReviewStatus)
}

func TestListReportsStatusFilter(t *testing.T) {
	svc, _ := newTestReportService()

	first, err := svc.Create(context.Background(), 3, &dto.CreateReportRequest{
		ReportType: "post", PostID: int64Ptr(1), Reason: "spam",
	})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), 4, &dto.CreateReportRequest{
		ReportType: "comment", CommentID: int64Ptr(5), Reason: "辱骂",
	})
	require.NoError(t, err)

	_, err = svc.Review(context.Background(), first.ID, &dto.ReviewReportRequest{Status: "rejected"})
	require.NoError(t, err)

	list, err := svc.List(context.Background(), "pending", 1, 20)
	require.NoError(t, err)
	require.Len(t, list.Reports, 1)
	assert.Equal(t, "pending", list.Reports[0].Status)

	list, err = svc.List(context.Background(), "", 1, 20)
	require.NoError(t, err)
	assert.Len(t, list.Reports, 2)

	_, err = svc.List(context.Background(), "bogus", 1, 20)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
