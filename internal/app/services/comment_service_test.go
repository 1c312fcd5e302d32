package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authz "github.com/zhangjiang/campuswall/internal/app/auth"
	"github.com/zhangjiang/campuswall/internal/app/models"
	"github.com/zhangjiang/campuswall/internal/app/models/dto"
	"github.com/zhangjiang/campuswall/internal/pkg/apperrors"
)

type stubCommentStore struct {
	comments map[int64]*models.Comment
	profiles *stubProfileStore
	nextID   int64
}

func newStubCommentStore(profiles *stubProfileStore) *stubCommentStore {
	return &stubCommentStore{comments: make(map[int64]*models.Comment), profiles: profiles, nextID: 1}
}

func (s *stubCommentStore) Create(_ context.Context, comment *models.Comment) (int64, error) {
	comment.ID = s.nextID
	comment.CreatedAt = time.Now()
	comment.UpdatedAt = comment.CreatedAt
	s.nextID++
	copied := *comment
	s.comments[comment.ID] = &copied
	return comment.ID, nil
}

func (s *stubCommentStore) GetByID(_ context.Context, id int64) (*models.Comment, error) {
	comment, ok := s.comments[id]
	if !ok {
		return nil, apperrors.ErrCommentNotFound
	}
	copied := *comment
	copied.Author = s.profiles.profiles[comment.UserID]
	return &copied, nil
}

func (s *stubCommentStore) ListByPost(_ context.Context, postID int64) ([]models.Comment, error) {
	var comments []models.Comment
	for id, comment := range s.comments {
		if comment.PostID == postID {
			copied, _ := s.GetByID(context.Background(), id)
			comments = append(comments, *copied)
		}
	}
	return comments, nil
}

func (s *stubCommentStore) Delete(_ context.Context, id int64) error {
	if _, ok := s.comments[id]; !ok {
		return apperrors.ErrCommentNotFound
	}
	delete(s.comments, id)
	return nil
}

func newTestCommentService() (*CommentService, *stubCommentStore) {
	profiles := &stubProfileStore{profiles: map[int64]*models.Profile{
		1: {ID: 1, StudentID: "123456789", RealName: "张三"},
	}}
	comments := newStubCommentStore(profiles)
	posts := &stubPostChecker{existing: map[int64]bool{1: true}}
	return NewCommentService(comments, posts, profiles, zerolog.Nop()), comments
}

func TestCreateComment(t *testing.T) {
	svc, _ := newTestCommentService()

	resp, err := svc.Create(context.Background(), authz.Viewer{UserID: 1}, &dto.CreateCommentRequest{
		PostID:         1,
		Content:        "同求食堂攻略",
		AnonymityLevel: "none",
	})
	require.NoError(t, err)
	assert.Equal(t, "张三 (123456789)", resp.Author.DisplayName)
	assert.Equal(t, int64(1), resp.PostID)
}

func TestCreateCommentMissingPost(t *testing.T) {
	svc, _ := newTestCommentService()

	_, err := svc.Create(context.Background(), authz.Viewer{UserID: 1}, &dto.CreateCommentRequest{
		PostID:         404,
		Content:        "hello",
		AnonymityLevel: "full",
	})
	assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
}

func TestCreateCommentEmptyAfterSanitize(t *testing.T) {
	svc, _ := newTestCommentService()

	_, err := svc.Create(context.Background(), authz.Viewer{UserID: 1}, &dto.CreateCommentRequest{
		PostID:         1,
		Content:        "  <script></script>  ",
		AnonymityLevel: "full",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestListCommentsMissingPost(t *testing.T) {
	svc, _ := newTestCommentService()

	_, err := svc.ListByPost(context.Background(), 404)
	assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
}

func TestDeleteComment(t *testing.T) {
	svc, comments := newTestCommentService()

	resp, err := svc.Create(context.Background(), authz.Viewer{UserID: 1}, &dto.CreateCommentRequest{
		PostID:         1,
		Content:        "删我",
		AnonymityLevel: "full",
	})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), authz.Viewer{UserID: 2}, resp.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	require.NoError(t, svc.Delete(context.Background(), authz.Viewer{UserID: 1}, resp.ID))
	assert.NotContains(t, comments.comments, resp.ID)
}
