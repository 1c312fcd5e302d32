package dto

import (
	"time"

	"github.com/zhangjiang/campuswall/internal/app/models"
)

// CreateReportRequest flags a post or comment for admin review.
// Exactly one of PostID/CommentID must be set, matching ReportType.
type CreateReportRequest struct {
	ReportType string `json:"report_type" binding:"required,oneof=post comment"`
	PostID     *int64 `json:"post_id"`
	CommentID  *int64 `json:"comment_id"`
	Reason     string `json:"reason"`
}

// ReviewReportRequest is an admin decision on a pending report
type ReviewReportRequest struct {
	Status     string  `json:"status" binding:"required,oneof=resolved rejected"`
	AdminNotes *string `json:"admin_notes"`
}

// ReportResponse represents a report for admin listing
type ReportResponse struct {
	ID           int64     `json:"id"`
	ReportType   string    `json:"reportType"`
	PostID       *int64    `json:"postId,omitempty"`
	CommentID    *int64    `json:"commentId,omitempty"`
	ReporterID   int64     `json:"reporterId"`
	ReporterName string    `json:"reporterName"`
	Status       string    `json:"status"`
	Reason       string    `json:"reason"`
	AdminNotes   *string   `json:"adminNotes,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ReportListResponse is the admin report queue
type ReportListResponse struct {
	Reports    []ReportResponse `json:"reports"`
	Pagination PaginationInfo   `json:"pagination"`
}

// FromReport converts a model report into a response
func FromReport(report *models.Report) ReportResponse {
	resp := ReportResponse{
		ID:         report.ID,
		ReportType: string(report.ReportType),
		PostID:     report.PostID,
		CommentID:  report.CommentID,
		ReporterID: report.ReporterID,
		Status:     string(report.Status),
		Reason:     report.Reason,
		AdminNotes: report.AdminNotes,
		CreatedAt:  report.CreatedAt,
		UpdatedAt:  report.UpdatedAt,
	}
	if report.Reporter != nil {
		resp.ReporterName = report.Reporter.RealName
	}
	return resp
}
