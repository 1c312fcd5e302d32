package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhangjiang/campuswall/internal/app/models"
	"github.com/zhangjiang/campuswall/internal/pkg/apperrors"
)

type stubProfileStore struct {
	profiles map[int64]*models.Profile
}

func (s *stubProfileStore) GetProfileByID(_ context.Context, id int64) (*models.Profile, error) {
	profile, ok := s.profiles[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return profile, nil
}

type stubRequestStore struct {
	requests map[int64]*models.VerificationRequest
	profiles *stubProfileStore
	nextID   int64
}

func newStubRequestStore(profiles *stubProfileStore) *stubRequestStore {
	return &stubRequestStore{
		requests: make(map[int64]*models.VerificationRequest),
		profiles: profiles,
		nextID:   1,
	}
}

func (s *stubRequestStore) Create(_ context.Context, userID int64) (int64, error) {
	id := s.nextID
	s.nextID++
	s.requests[id] = &models.VerificationRequest{
		ID:        id,
		UserID:    userID,
		Status:    models.VerificationPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	return id, nil
}

func (s *stubRequestStore) HasPending(_ context.Context, userID int64) (bool, error) {
	for _, request := range s.requests {
		if request.UserID == userID && request.Status == models.VerificationPending {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubRequestStore) GetByID(_ context.Context, id int64) (*models.VerificationRequest, error) {
	request, ok := s.requests[id]
	if !ok {
		return nil, apperrors.ErrVerificationRequestNotFound
	}
	request.Applicant = s.profiles.profiles[request.UserID]
	return request, nil
}

func (s *stubRequestStore) List(_ context.Context) ([]models.VerificationRequest, error) {
	var pending, reviewed []models.VerificationRequest
	for _, request := range s.requests {
		if request.Status == models.VerificationPending {
			pending = append(pending, *request)
		} else {
			reviewed = append(reviewed, *request)
		}
	}
	return append(pending, reviewed...), nil
}

func (s *stubRequestStore) Approve(_ context.Context, id int64) error {
	request, ok := s.requests[id]
	if !ok {
		return apperrors.ErrVerificationRequestNotFound
	}
	if request.Status.IsTerminal() {
		return apperrors.ErrAlreadyReviewed
	}
	request.Status = models.VerificationApproved
	if profile, ok := s.profiles.profiles[request.UserID]; ok {
		profile.IsVerified = true
	}
	return nil
}

func (s *stubRequestStore) Reject(_ context.Context, id int64) error {
	request, ok := s.requests[id]
	if !ok {
		return apperrors.ErrVerificationRequestNotFound
	}
	if request.Status.IsTerminal() {
		return apperrors.ErrAlreadyReviewed
	}
	request.Status = models.VerificationRejected
	return nil
}

func newTestAdminService() (*AdminService, *stubRequestStore, *stubProfileStore) {
	profiles := &stubProfileStore{profiles: map[int64]*models.Profile{
		1: {ID: 1, StudentID: "123456789", RealName: "张三"},
		2: {ID: 2, StudentID: "987654321", RealName: "李四", IsVerified: true},
	}}
	requests := newStubRequestStore(profiles)
	return NewAdminService(requests, profiles, zerolog.Nop()), requests, profiles
}

func TestRequestVerification(t *testing.T) {
	svc, requests, _ := newTestAdminService()

	id, err := svc.RequestVerification(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.VerificationPending, requests.requests[id].Status)
}

func TestRequestVerificationOnePendingPerUser(t *testing.T) {
	svc, _, _ := newTestAdminService()

	_, err := svc.RequestVerification(context.Background(), 1)
	require.NoError(t, err)

	_, err = svc.RequestVerification(context.Background(), 1)
	assert.ErrorIs(t, err, apperrors.ErrPendingRequestExists)
}

func TestRequestVerificationAlreadyVerified(t *testing.T) {
	svc, _, _ := newTestAdminService()

	_, err := svc.RequestVerification(context.Background(), 2)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestRequestVerificationAfterRejection(t *testing.T) {
	svc, _, _ := newTestAdminService()

	id, err := svc.RequestVerification(context.Background(), 1)
	require.NoError(t, err)

	_, err = svc.ReviewRequest(context.Background(), id, "rejected")
	require.NoError(t, err)

	// A rejected request does not block a fresh application.
	_, err = svc.RequestVerification(context.Background(), 1)
	assert.NoError(t, err)
}

func TestReviewRequestApprove(t *testing.T) {
	svc, _, profiles := newTestAdminService()

	id, err := svc.RequestVerification(context.Background(), 1)
	require.NoError(t, err)

	resp, err := svc.ReviewRequest(context.Background(), id, "approved")
	require.NoError(t, err)
	assert.Equal(t, "approved", resp.Status)
	assert.True(t, profiles.profiles[1].IsVerified)
}

func TestReviewRequestReject(t *testing.T) {
	svc, _, profiles := newTestAdminService()

	id, err := svc.RequestVerification(context.Background(), 1)
	require.NoError(t, err)

	resp, err := svc.ReviewRequest(context.Background(), id, "rejected")
	require.NoError(t, err)
	assert.Equal(t, "rejected", resp.Status)
	assert.False(t, profiles.profiles[1].IsVerified)
}

func TestReviewRequestIsFinal(t *testing.T) {
	svc, _, _ := newTestAdminService()

	id, err := svc.RequestVerification(context.Background(), 1)
	require.NoError(t, err)

	_, err = svc.ReviewRequest(context.Background(), id, "rejected")
	require.NoError(t, err)

	// The first decision stands, even for a different outcome.
	_, err = svc.ReviewRequest(context.Background(), id, "approved")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyReviewed)
}

func TestReviewRequestInvalidStatus(t *testing.T) {
	svc, _, _ := newTestAdminService()

	id, err := svc.RequestVerification(context.Background(), 1)
	require.NoError(t, err)

	_, err = svc.ReviewRequest(context.Background(), id, "pending")
	assert.ErrorIs(t, err, apperrors.ErrInvalidReviewStatus)
}

func TestReviewRequestNotFound(t *testing.T) {
	svc, _, _ := newTestAdminService()

	_, err := svc.ReviewRequest(context.Background(), 404, "approved")
	assert.ErrorIs(t, err, apperrors.ErrVerificationRequestNotFound)
}

func TestListRequestsPendingFirst(t *testing.T) {
	svc, _, _ := newTestAdminService()

	first, err := svc.RequestVerification(context.Background(), 1)
	require.NoError(t, err)
	_, err = svc.ReviewRequest(context.Background(), first, "rejected")
	require.NoError(t, err)

	second, err := svc.RequestVerification(context.Background(), 1)
	require.NoError(t, err)

	list, err := svc.ListRequests(context.Background())
	require.NoError(t, err)
	require.Len(t, list.Requests, 2)
	assert.Equal(t, second, list.Requests[0].ID)
	assert.Equal(t, "pending", list.Requests[0].Status)
	assert.Equal(t, "123456789", list.Requests[0].StudentID)
}
