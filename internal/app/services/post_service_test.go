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
	"github.com/zhangjiang/campuswall/internal/app/repositories"
	"github.com/zhangjiang/campuswall/internal/pkg/apperrors"
)

type stubPostStore struct {
	posts    map[int64]*models.Post
	profiles *stubProfileStore
	nextID   int64
}

func newStubPostStore(profiles *stubProfileStore) *stubPostStore {
	return &stubPostStore{posts: make(map[int64]*models.Post), profiles: profiles, nextID: 1}
}

func (s *stubPostStore) Create(_ context.Context, post *models.Post) (int64, error) {
	post.ID = s.nextID
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	s.nextID++
	copied := *post
	s.posts[post.ID] = &copied
	return post.ID, nil
}

func (s *stubPostStore) GetByID(_ context.Context, id int64) (*repositories.PostRecord, error) {
	post, ok := s.posts[id]
	if !ok {
		return nil, apperrors.ErrPostNotFound
	}
	copied := *post
	copied.Author = s.profiles.profiles[post.UserID]
	return &repositories.PostRecord{Post: copied}, nil
}

func (s *stubPostStore) List(_ context.Context, _ string, _, _ int) ([]repositories.PostRecord, int64, error) {
	var records []repositories.PostRecord
	for id := range s.posts {
		rec, _ := s.GetByID(context.Background(), id)
		records = append(records, *rec)
	}
	return records, int64(len(records)), nil
}

func (s *stubPostStore) Delete(_ context.Context, id int64) error {
	if _, ok := s.posts[id]; !ok {
		return apperrors.ErrPostNotFound
	}
	delete(s.posts, id)
	return nil
}

func newTestPostService() (*PostService, *stubPostStore) {
	profiles := &stubProfileStore{profiles: map[int64]*models.Profile{
		1: {ID: 1, StudentID: "123456789", RealName: "张三"},
		9: {ID: 9, StudentID: "111111111", RealName: "王老师", IsAdmin: true},
	}}
	posts := newStubPostStore(profiles)
	return NewPostService(posts, profiles, zerolog.Nop()), posts
}

func TestCreatePost(t *testing.T) {
	svc, _ := newTestPostService()

	resp, err := svc.Create(context.Background(), authz.Viewer{UserID: 1}, &dto.CreatePostRequest{
		Content:        "今天食堂的红烧肉不错",
		AnonymityLevel: "partial",
	})
	require.NoError(t, err)
	assert.Equal(t, "张三", resp.Author.DisplayName)
	assert.Equal(t, "partial", resp.AnonymityLevel)
	assert.False(t, resp.IsAnnouncement)
}

func TestCreatePostStripsMarkup(t *testing.T) {
	svc, posts := newTestPostService()

	resp, err := svc.Create(context.Background(), authz.Viewer{UserID: 1}, &dto.CreatePostRequest{
		Content:        `hello <script>alert("x")</script>world`,
		AnonymityLevel: "full",
	})
	require.NoError(t, err)
	assert.NotContains(t, resp.Content, "<script>")
	assert.NotContains(t, posts.posts[resp.ID].Content, "script")
}

func TestCreatePostEmptyAfterSanitize(t *testing.T) {
	svc, _ := newTestPostService()

	_, err := svc.Create(context.Background(), authz.Viewer{UserID: 1}, &dto.CreatePostRequest{
		Content:        "<script>alert(1)</script>",
		AnonymityLevel: "full",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestCreatePostAnnouncementRequiresAdmin(t *testing.T) {
	svc, _ := newTestPostService()

	// Non-admin announcement flag is silently dropped.
	resp, err := svc.Create(context.Background(), authz.Viewer{UserID: 1}, &dto.CreatePostRequest{
		Content:        "大家好",
		AnonymityLevel: "none",
		IsAnnouncement: true,
	})
	require.NoError(t, err)
	assert.False(t, resp.IsAnnouncement)

	resp, err = svc.Create(context.Background(), authz.Viewer{UserID: 9, IsAdmin: true}, &dto.CreatePostRequest{
		Content:        "本周六停电通知",
		AnonymityLevel: "none",
		IsAnnouncement: true,
	})
	require.NoError(t, err)
	assert.True(t, resp.IsAnnouncement)
}

func TestCreatePostFullAnonymityHidesAuthor(t *testing.T) {
	svc, _ := newTestPostService()

	resp, err := svc.Create(context.Background(), authz.Viewer{UserID: 9, IsAdmin: true}, &dto.CreatePostRequest{
		Content:        "说点心里话",
		AnonymityLevel: "full",
	})
	require.NoError(t, err)
	assert.Equal(t, "匿名", resp.Author.DisplayName)
	assert.False(t, resp.Author.IsAdmin)
	assert.False(t, resp.Author.IsVerified)
}

func TestDeletePost(t *testing.T) {
	svc, posts := newTestPostService()

	resp, err := svc.Create(context.Background(), authz.Viewer{UserID: 1}, &dto.CreatePostRequest{
		Content:        "要删掉的帖子",
		AnonymityLevel: "full",
	})
	require.NoError(t, err)

	// A stranger may not delete it.
	err = svc.Delete(context.Background(), authz.Viewer{UserID: 2}, resp.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	// An admin may.
	require.NoError(t, svc.Delete(context.Background(), authz.Viewer{UserID: 9, IsAdmin: true}, resp.ID))
	assert.NotContains(t, posts.posts, resp.ID)
}

func TestDeletePostNotFound(t *testing.T) {
	svc, _ := newTestPostService()

	err := svc.Delete(context.Background(), authz.Viewer{UserID: 1}, 404)
	assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
}

func TestGetPostByID(t *testing.T) {
	svc, _ := newTestPostService()

	created, err := svc.Create(context.Background(), authz.Viewer{UserID: 1}, &dto.CreatePostRequest{
		Content:        "查我",
		AnonymityLevel: "none",
	})
	require.NoError(t, err)

	resp, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "张三 (123456789)", resp.Author.DisplayName)

	_, err = svc.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
}
