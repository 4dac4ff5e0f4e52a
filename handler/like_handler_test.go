// file: handler/like_handler_test.go

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"go-vidtube-api/model"
	"go-vidtube-api/repository"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// stubLikeRepo keeps likes in memory keyed by (video, owner), mirroring the
// unique index.
type stubLikeRepo struct {
	likes map[[2]bson.ObjectID]*model.Like
}

func newStubLikeRepo() *stubLikeRepo {
	return &stubLikeRepo{likes: map[[2]bson.ObjectID]*model.Like{}}
}

func (s *stubLikeRepo) CreateLike(ctx context.Context, like *model.Like) error {
	key := [2]bson.ObjectID{like.Video, like.Owner}
	if _, ok := s.likes[key]; ok {
		return repository.ErrDuplicateKey
	}
	like.ID = bson.NewObjectID()
	s.likes[key] = like
	return nil
}

func (s *stubLikeRepo) DeleteLike(ctx context.Context, videoID, owner bson.ObjectID) (bool, error) {
	key := [2]bson.ObjectID{videoID, owner}
	if _, ok := s.likes[key]; !ok {
		return false, nil
	}
	delete(s.likes, key)
	return true, nil
}

func (s *stubLikeRepo) CountLikesByVideo(ctx context.Context, videoID bson.ObjectID) (int64, error) {
	var total int64
	for key := range s.likes {
		if key[0] == videoID {
			total++
		}
	}
	return total, nil
}

// racyLikeRepo simulates a concurrent like landing between the toggle's
// delete and insert.
type racyLikeRepo struct{}

func (racyLikeRepo) CreateLike(ctx context.Context, like *model.Like) error {
	return repository.ErrDuplicateKey
}
func (racyLikeRepo) DeleteLike(ctx context.Context, videoID, owner bson.ObjectID) (bool, error) {
	return false, nil
}
func (racyLikeRepo) CountLikesByVideo(ctx context.Context, videoID bson.ObjectID) (int64, error) {
	return 1, nil
}

func doToggle(t *testing.T, h *LikeHandler, videoID bson.ObjectID, userID bson.ObjectID) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(model.ToggleLikeRequest{VideoID: videoID.Hex()})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/likes/toggle", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(context.WithValue(req.Context(), UserIDKey, userID.Hex()))
	rec := httptest.NewRecorder()

	appErr := h.ToggleLike(rec, req)
	if appErr != nil {
		appErr.Send(rec)
	}
	return rec
}

func TestLikeHandler_ToggleLike(t *testing.T) {
	videoID := bson.NewObjectID()
	userID := bson.NewObjectID()

	t.Run("toggling twice returns to the unliked state", func(t *testing.T) {
		repo := newStubLikeRepo()
		h := NewLikeHandler(repo)

		first := doToggle(t, h, videoID, userID)
		assert.Equal(t, http.StatusCreated, first.Code)
		count, err := repo.CountLikesByVideo(context.Background(), videoID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		second := doToggle(t, h, videoID, userID)
		assert.Equal(t, http.StatusOK, second.Code)
		assert.Contains(t, second.Body.String(), "Video unliked")
		count, err = repo.CountLikesByVideo(context.Background(), videoID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)

		third := doToggle(t, h, videoID, userID)
		assert.Equal(t, http.StatusCreated, third.Code)
	})

	t.Run("independent users like independently", func(t *testing.T) {
		repo := newStubLikeRepo()
		h := NewLikeHandler(repo)
		otherUser := bson.NewObjectID()

		doToggle(t, h, videoID, userID)
		doToggle(t, h, videoID, otherUser)

		count, err := repo.CountLikesByVideo(context.Background(), videoID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)

		// One user unliking leaves the other's like alone.
		doToggle(t, h, videoID, userID)
		count, err = repo.CountLikesByVideo(context.Background(), videoID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("duplicate insert during the toggle reads as already liked", func(t *testing.T) {
		h := NewLikeHandler(racyLikeRepo{})

		rec := doToggle(t, h, videoID, userID)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "already liked")
	})
}

func TestLikeHandler_CountLikes(t *testing.T) {
	videoID := bson.NewObjectID()
	repo := newStubLikeRepo()
	h := NewLikeHandler(repo)

	doToggle(t, h, videoID, bson.NewObjectID())
	doToggle(t, h, videoID, bson.NewObjectID())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/videos/"+videoID.Hex()+"/likes", nil)
	req.SetPathValue("id", videoID.Hex())
	rec := httptest.NewRecorder()

	appErr := h.CountLikes(rec, req)
	require.Nil(t, appErr)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"total_likes": 2}`, rec.Body.String())
}
