package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhangjiang/campuswall/internal/pkg/apperrors"
)

type likeKey struct {
	postID int64
	userID int64
}

type stubLikeStore struct {
	likes map[likeKey]bool
	// raceOnCreate simulates another request winning the insert between
	// the exists pre-check and the insert.
	raceOnCreate bool
}

func newStubLikeStore() *stubLikeStore {
	return &stubLikeStore{likes: make(map[likeKey]bool)}
}

func (s *stubLikeStore) Create(_ context.Context, postID, userID int64) error {
	key := likeKey{postID, userID}
	if s.likes[key] || s.raceOnCreate {
		return apperrors.ErrAlreadyLiked
	}
	s.likes[key] = true
	return nil
}

func (s *stubLikeStore) Delete(_ context.Context, postID, userID int64) error {
	key := likeKey{postID, userID}
	if !s.likes[key] {
		return apperrors.ErrLikeNotFound
	}
	delete(s.likes, key)
	return nil
}

func (s *stubLikeStore) Count(_ context.Context, postID int64) (int64, error) {
	var count int64
	for key := range s.likes {
		if key.postID == postID {
			count++
		}
	}
	return count, nil
}

func (s *stubLikeStore) Exists(_ context.Context, postID, userID int64) (bool, error) {
	return s.likes[likeKey{postID, userID}], nil
}

type stubPostChecker struct {
	existing map[int64]bool
}

func (s *stubPostChecker) Exists(_ context.Context, id int64) (bool, error) {
	return s.existing[id], nil
}

func newTestLikeService() (*LikeService, *stubLikeStore) {
	likes := newStubLikeStore()
	posts := &stubPostChecker{existing: map[int64]bool{1: true}}
	return NewLikeService(likes, posts, zerolog.Nop()), likes
}

func TestLike(t *testing.T) {
	svc, likes := newTestLikeService()

	require.NoError(t, svc.Like(context.Background(), 1, 10))
	assert.True(t, likes.likes[likeKey{1, 10}])
}

func TestLikeMissingPost(t *testing.T) {
	svc, _ := newTestLikeService()

	err := svc.Like(context.Background(), 42, 10)
	assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
}

func TestLikeTwiceConflicts(t *testing.T) {
	svc, _ := newTestLikeService()

	require.NoError(t, svc.Like(context.Background(), 1, 10))
	err := svc.Like(context.Background(), 1, 10)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyLiked)
}

func TestLikeRaceConflicts(t *testing.T) {
	svc, likes := newTestLikeService()
	likes.raceOnCreate = true

	// The pre-check passes but the unique index rejects the insert.
	err := svc.Like(context.Background(), 1, 10)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyLiked)
}

func TestUnlike(t *testing.T) {
	svc, likes := newTestLikeService()

	require.NoError(t, svc.Like(context.Background(), 1, 10))
	require.NoError(t, svc.Unlike(context.Background(), 1, 10))
	assert.False(t, likes.likes[likeKey{1, 10}])
}

func TestUnlikeWithoutLike(t *testing.T) {
	svc, _ := newTestLikeService()

	err := svc.Unlike(context.Background(), 1, 10)
	assert.ErrorIs(t, err, apperrors.ErrLikeNotFound)
}

func TestLikeStatus(t *testing.T) {
	svc, _ := newTestLikeService()

	require.NoError(t, svc.Like(context.Background(), 1, 10))
	require.NoError(t, svc.Like(context.Background(), 1, 11))

	status, err := svc.Status(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), status.Count)
	assert.True(t, status.IsLiked)

	status, err = svc.Status(context.Background(), 1, 12)
	require.NoError(t, err)
	assert.Equal(t, int64(2), status.Count)
	assert.False(t, status.IsLiked)

	// Anonymous viewer.
	status, err = svc.Status(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.False(t, status.IsLiked)
}

func TestLikeStatusMissingPost(t *testing.T) {
	svc, _ := newTestLikeService()

	_, err := svc.Status(context.Background(), 42, 0)
	assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
}
