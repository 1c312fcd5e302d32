package dto

import (
	"time"

	"github.com/zhangjiang/campuswall/internal/app/models"
)

// ReviewVerificationRequest is an admin decision on a pending verification request
type ReviewVerificationRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}

// VerificationRequestResponse represents a verification request for admin listing
type VerificationRequestResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	StudentID string    `json:"studentId"`
	RealName  string    `json:"realName"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// VerificationRequestListResponse is the admin verification queue
type VerificationRequestListResponse struct {
	Requests []VerificationRequestResponse `json:"requests"`
}

// FromVerificationRequest converts a model verification request into a response
func FromVerificationRequest(req *models.VerificationRequest) VerificationRequestResponse {
	resp := VerificationRequestResponse{
		ID:        req.ID,
		UserID:    req.UserID,
		Status:    string(req.Status),
		CreatedAt: req.CreatedAt,
		UpdatedAt: req.UpdatedAt,
	}
	if req.Applicant != nil {
		resp.StudentID = req.Applicant.StudentID
		resp.RealName = req.Applicant.RealName
	}
	return resp
}

// FileUploadResponse reports a stored upload
type FileUploadResponse struct {
	URL string `json:"url"`
}
