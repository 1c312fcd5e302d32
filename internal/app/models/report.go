package models

import (
	"time"
)

// Report defines the report model based on the 'reports' table.
// Exactly one of PostID and CommentID is set, matching ReportType.
type Report struct {
	ID         int64        `json:"id" db:"id"`
	PostID     *int64       `json:"postId,omitempty" db:"post_id"`
	CommentID  *int64       `json:"commentId,omitempty" db:"comment_id"`
	ReporterID int64        `json:"reporterId" db:"reporter_id"`
	ReportType ReportType   `json:"reportType" db:"report_type"`
	Status     ReportStatus `json:"status" db:"status"`
	Reason     string       `json:"reason" db:"reason"`
	AdminNotes *string      `json:"adminNotes,omitempty" db:"admin_notes"`
	CreatedAt  time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time    `json:"updatedAt" db:"updated_at"`
	Reporter   *Profile     `json:"reporter,omitempty"` // Relation, no db tag
}
