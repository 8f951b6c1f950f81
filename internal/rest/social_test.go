package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openmuse/gallery/domain"
)

type fakeLikeRepository struct {
	counts map[string]int64
	err    error
}

func (f *fakeLikeRepository) Get(_ context.Context, itemID string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	likes, ok := f.counts[itemID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	return likes, nil
}

func (f *fakeLikeRepository) Increment(_ context.Context, itemID string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.counts[itemID]++
	return f.counts[itemID], nil
}

type fakeCommentRepository struct {
	comments map[string][]domain.Comment
	err      error
}

func (f *fakeCommentRepository) Store(_ context.Context, c *domain.Comment) error {
	if f.err != nil {
		return f.err
	}
	f.comments[c.ItemID] = append(f.comments[c.ItemID], *c)
	return nil
}

func (f *fakeCommentRepository) FetchByItem(_ context.Context, itemID string) ([]domain.Comment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.comments[itemID], nil
}

func socialTestRouter(likes *fakeLikeRepository, comments *fakeCommentRepository) *gin.Engine {
	r := newRouter()
	h := NewSocialHandler(likes, comments)
	r.GET("/likes", h.GetLikes)
	r.POST("/likes", h.PostLike)
	r.GET("/comments", h.GetComments)
	r.POST("/comments", h.PostComment)
	return r
}

func TestSocialGetLikes(t *testing.T) {
	likes := &fakeLikeRepository{counts: map[string]int64{"436535": 12}}
	r := socialTestRouter(likes, &fakeCommentRepository{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/likes?item_id=436535", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var got domain.Like
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "436535", got.ItemID)
	assert.Equal(t, int64(12), got.Likes)
}

func TestSocialGetLikes_MissingItemID(t *testing.T) {
	r := socialTestRouter(&fakeLikeRepository{counts: map[string]int64{}}, &fakeCommentRepository{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/likes", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSocialGetLikes_UnknownItem(t *testing.T) {
	r := socialTestRouter(&fakeLikeRepository{counts: map[string]int64{}}, &fakeCommentRepository{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/likes?item_id=9999", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSocialPostLike(t *testing.T) {
	likes := &fakeLikeRepository{counts: map[string]int64{"436535": 12}}
	r := socialTestRouter(likes, &fakeCommentRepository{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/likes", strings.NewReader(`{"item_id":"436535","likes":999}`))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	// The client-sent count is advisory; the server increments by one.
	var got domain.Like
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, int64(13), got.Likes)
}

func TestSocialPostLike_MissingItemID(t *testing.T) {
	r := socialTestRouter(&fakeLikeRepository{counts: map[string]int64{}}, &fakeCommentRepository{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/likes", strings.NewReader(`{"likes":1}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSocialGetComments(t *testing.T) {
	comments := &fakeCommentRepository{comments: map[string][]domain.Comment{
		"436535": {{ItemID: "436535", Username: "alice", Comment: "Lovely", CreationDate: "2026-03-01T12:00:00Z"}},
	}}
	r := socialTestRouter(&fakeLikeRepository{counts: map[string]int64{}}, comments)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/comments?item_id=436535", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var got []domain.Comment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "alice", got[0].Username)
}

func TestSocialGetComments_EmptyIsAList(t *testing.T) {
	comments := &fakeCommentRepository{comments: map[string][]domain.Comment{}}
	r := socialTestRouter(&fakeLikeRepository{counts: map[string]int64{}}, comments)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/comments?item_id=436535", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestSocialPostComment(t *testing.T) {
	comments := &fakeCommentRepository{comments: map[string][]domain.Comment{}}
	r := socialTestRouter(&fakeLikeRepository{counts: map[string]int64{}}, comments)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/comments",
		strings.NewReader(`{"item_id":"436535","username":"alice","comment":"Lovely","creation_date":"2026-03-01T12:00:00Z"}`))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, comments.comments["436535"], 1)
	assert.Equal(t, "alice", comments.comments["436535"][0].Username)
}

func TestSocialPostComment_MissingFields(t *testing.T) {
	r := socialTestRouter(&fakeLikeRepository{counts: map[string]int64{}}, &fakeCommentRepository{comments: map[string][]domain.Comment{}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/comments", strings.NewReader(`{"item_id":"436535"}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
