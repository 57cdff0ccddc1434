package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"postboard/internal/models"
	"postboard/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostsRouter(mp *mockPosts, callerID string) (http.Handler, *mockAuth) {
	ma := &mockAuth{parseID: callerID}
	return newTestRouter(&service.Service{Authorization: ma, Posts: mp}), ma
}

func samplePost() *models.Post {
	return &models.Post{
		ID:        "p1",
		OwnerID:   "owner",
		Title:     "T",
		Body:      "B",
		CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestCreatePost(t *testing.T) {
	mp := &mockPosts{post: samplePost()}
	r, _ := newPostsRouter(mp, "owner")

	w := doJSON(t, r, http.MethodPost, "/api/posts", `{"title":"T","body":"B"}`, authHeader("tok"))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "owner", mp.lastOwner)
	assert.Equal(t, service.PostInput{Title: "T", Body: "B"}, mp.lastInput)

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "p1", out["id"])
	assert.Equal(t, "owner", out["user"])
	assert.Equal(t, "T", out["title"])
	assert.Equal(t, "B", out["body"])
	assert.Equal(t, "2024-05-01T12:00:00Z", out["created_at"])
}

func TestCreatePost_Validation(t *testing.T) {
	cases := []struct {
		name string
		body string
		want []string
	}{
		{"empty object", `{}`, []string{"title", "body"}},
		{"empty title", `{"title":"","body":"B"}`, []string{"title"}},
		{"missing body", `{"title":"T"}`, []string{"body"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mp := &mockPosts{}
			r, _ := newPostsRouter(mp, "owner")

			w := doJSON(t, r, http.MethodPost, "/api/posts", tc.body, authHeader("tok"))

			require.Equal(t, http.StatusUnprocessableEntity, w.Code)
			got := decodeValidation(t, w)
			assert.Len(t, got, len(tc.want))
			for _, f := range tc.want {
				assert.Equal(t, f+" is required", got[f])
			}
			assert.Zero(t, mp.createCalls)
		})
	}
}

func TestCreatePost_RequiresToken(t *testing.T) {
	mp := &mockPosts{}
	r, _ := newPostsRouter(mp, "owner")

	w := doJSON(t, r, http.MethodPost, "/api/posts", `{"title":"T","body":"B"}`, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, mp.createCalls)
}

func TestListPosts(t *testing.T) {
	newer := *samplePost()
	older := *samplePost()
	older.ID = "p0"
	older.CreatedAt = newer.CreatedAt.Add(-time.Hour)
	mp := &mockPosts{list: []models.Post{newer, older}}
	r, _ := newPostsRouter(mp, "someone")

	w := doJSON(t, r, http.MethodGet, "/api/posts", "", authHeader("tok"))

	require.Equal(t, http.StatusOK, w.Code)
	var out []models.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out, 2)
	assert.Equal(t, "p1", out[0].ID)
	assert.Equal(t, "p0", out[1].ID)
}

func TestListPosts_EmptyIsArray(t *testing.T) {
	mp := &mockPosts{list: []models.Post{}}
	r, _ := newPostsRouter(mp, "someone")

	w := doJSON(t, r, http.MethodGet, "/api/posts", "", authHeader("tok"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestListPosts_StoreFailure(t *testing.T) {
	mp := &mockPosts{listErr: errors.New("database is locked")}
	r, _ := newPostsRouter(mp, "someone")

	w := doJSON(t, r, http.MethodGet, "/api/posts", "", authHeader("tok"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Server error"}`, w.Body.String())
}

func TestGetPost(t *testing.T) {
	mp := &mockPosts{post: samplePost()}
	r, _ := newPostsRouter(mp, "not-the-owner")

	w := doJSON(t, r, http.MethodGet, "/api/posts/p1", "", authHeader("tok"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "p1", mp.lastID)
}

func TestGetPost_NotFound(t *testing.T) {
	mp := &mockPosts{err: service.ErrPostNotFound}
	r, _ := newPostsRouter(mp, "u")

	w := doJSON(t, r, http.MethodGet, "/api/posts/missing", "", authHeader("tok"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Post not found"}`, w.Body.String())
}

func TestUpdatePost(t *testing.T) {
	updated := samplePost()
	updated.Title = "T2"
	mp := &mockPosts{post: updated}
	r, _ := newPostsRouter(mp, "owner")

	w := doJSON(t, r, http.MethodPut, "/api/posts/p1", `{"title":"T2"}`, authHeader("tok"))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "owner", mp.lastCaller)
	assert.Equal(t, "p1", mp.lastID)
	assert.Equal(t, service.PostInput{Title: "T2"}, mp.lastInput)
}

func TestUpdatePost_EmptyBodyObjectIsAccepted(t *testing.T) {
	mp := &mockPosts{post: samplePost()}
	r, _ := newPostsRouter(mp, "owner")

	w := doJSON(t, r, http.MethodPut, "/api/posts/p1", `{}`, authHeader("tok"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, service.PostInput{}, mp.lastInput)
}

func TestUpdatePost_OwnershipCheckedBeforeBody(t *testing.T) {
	cases := []struct {
		name    string
		authErr error
		code    int
		message string
	}{
		{"not owner", service.ErrNotOwner, http.StatusUnauthorized, "User not authorized"},
		{"not found", service.ErrPostNotFound, http.StatusNotFound, "Post not found"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mp := &mockPosts{authErr: tc.authErr}
			r, _ := newPostsRouter(mp, "intruder")

			w := doJSON(t, r, http.MethodPut, "/api/posts/p1", `{"title":`, authHeader("tok"))

			assert.Equal(t, tc.code, w.Code)
			assert.JSONEq(t, fmt.Sprintf(`{"error":%q}`, tc.message), w.Body.String())
			assert.Equal(t, "intruder", mp.lastCaller)
			assert.Equal(t, "p1", mp.lastID)
			assert.Zero(t, mp.updateCalls)
		})
	}
}

func TestUpdatePost_OwnerWithMalformedBody(t *testing.T) {
	mp := &mockPosts{post: samplePost()}
	r, _ := newPostsRouter(mp, "owner")

	w := doJSON(t, r, http.MethodPut, "/api/posts/p1", `{"title":`, authHeader("tok"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"invalid request body"}`, w.Body.String())
	assert.Zero(t, mp.updateCalls)
}

func TestMutations_ErrorMapping(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"not owner", fmt.Errorf("update p1: %w", service.ErrNotOwner), http.StatusUnauthorized, "User not authorized"},
		{"not found", service.ErrPostNotFound, http.StatusNotFound, "Post not found"},
		{"store failure", errors.New("constraint failed"), http.StatusInternalServerError, "Server error"},
	}

	for _, tc := range cases {
		for _, method := range []string{http.MethodPut, http.MethodDelete} {
			t.Run(method+" "+tc.name, func(t *testing.T) {
				mp := &mockPosts{err: tc.err}
				r, _ := newPostsRouter(mp, "intruder")

				body := ""
				if method == http.MethodPut {
					body = `{"title":"x"}`
				}
				w := doJSON(t, r, method, "/api/posts/p1", body, authHeader("tok"))

				assert.Equal(t, tc.code, w.Code)
				assert.JSONEq(t, fmt.Sprintf(`{"error":%q}`, tc.message), w.Body.String())
			})
		}
	}
}

func TestDeletePost(t *testing.T) {
	mp := &mockPosts{}
	r, _ := newPostsRouter(mp, "owner")

	w := doJSON(t, r, http.MethodDelete, "/api/posts/p1", "", authHeader("tok"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Post removed"}`, w.Body.String())
	assert.Equal(t, 1, mp.deleteCalls)
	assert.Equal(t, "owner", mp.lastCaller)
	assert.Equal(t, "p1", mp.lastID)
}
