package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/zhangjiang/campuswall/internal/app/models"
	"github.com/zhangjiang/campuswall/internal/app/models/dto"
	"github.com/zhangjiang/campuswall/internal/pkg/apperrors"
)

// VerificationRequestStore is the persistence surface AdminService needs
// for identity verification requests.
type VerificationRequestStore interface {
	Create(ctx context.Context, userID int64) (int64, error)
	HasPending(ctx context.Context, userID int64) (bool, error)
	GetByID(ctx context.Context, id int64) (*models.VerificationRequest, error)
	List(ctx context.Context) ([]models.VerificationRequest, error)
	Approve(ctx context.Context, id int64) error
	Reject(ctx context.Context, id int64) error
}

// AdminService handles the identity verification request workflow
type AdminService struct {
	requestRepo VerificationRequestStore
	profileRepo ProfileStore
	logger      zerolog.Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(requestRepo VerificationRequestStore, profileRepo ProfileStore, logger zerolog.Logger) *AdminService {
	return &AdminService{
		requestRepo: requestRepo,
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// RequestVerification opens a verification request for the user. Each user
// holds at most one pending request, and already-verified profiles cannot
// apply again.
func (s *AdminService) RequestVerification(ctx context.Context, userID int64) (int64, error) {
	profile, err := s.profileRepo.GetProfileByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	if profile.IsVerified {
		return 0, apperrors.NewConflictError("profile is already verified")
	}

	pending, err := s.requestRepo.HasPending(ctx, userID)
	if err != nil {
		return 0, err
	}
	if pending {
		return 0, apperrors.ErrPendingRequestExists
	}

	return s.requestRepo.Create(ctx, userID)
}

// ListRequests returns all verification requests, pending first
func (s *AdminService) ListRequests(ctx context.Context) (*dto.VerificationRequestListResponse, error) {
	requests, err := s.requestRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.VerificationRequestResponse, 0, len(requests))
	for i := range requests {
		responses = append(responses, dto.FromVerificationRequest(&requests[i]))
	}

	return &dto.VerificationRequestListResponse{Requests: responses}, nil
}

// ReviewRequest applies an admin decision to a pending request. Approval
// marks the applicant's profile verified; either decision is final.
func (s *AdminService) ReviewRequest(ctx context.Context, id int64, status string) (*dto.VerificationRequestResponse, error) {
	switch models.VerificationStatus(status) {
	case models.VerificationApproved:
		if err := s.requestRepo.Approve(ctx, id); err != nil {
			return nil, err
		}
	case models.VerificationRejected:
		if err := s.requestRepo.Reject(ctx, id); err != nil {
			return nil, err
		}
	default:
		return nil, apperrors.ErrInvalidReviewStatus
	}

	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := dto.FromVerificationRequest(request)
	return &resp, nil
}
