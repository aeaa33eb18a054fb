package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patientpal/patientpal-server/internal/application"
	"github.com/patientpal/patientpal-server/internal/domain/entity"
	repo "github.com/patientpal/patientpal-server/internal/domain/repository"
	"github.com/patientpal/patientpal-server/internal/interface/middleware"
)

func newPostRouter(posts *postRepoMock, role entity.Role) *gin.Engine {
	svc := application.NewPostService(posts, testLogger())
	h := NewPostHandler(svc, testLogger())

	r := gin.New()
	g := r.Group("/api/v1/posts", asMember("member-1", role))
	g.GET("", h.List)
	g.GET("/notices", h.ListNotices)
	g.GET("/:id", h.Get)

	admin := g.Group("", middleware.RequireRole(entity.RoleAdmin))
	admin.POST("", h.Create)
	admin.PATCH("/:id", h.Update)
	admin.DELETE("/:id", h.Delete)
	return r
}

func TestPostListAsPatient(t *testing.T) {
	posts := &postRepoMock{
		ListFn: func(ctx context.Context) ([]entity.Post, error) {
			return []entity.Post{
				{ID: "post-1", Title: "Notice", PostType: entity.PostNotice},
				{ID: "post-2", Title: "Chat", PostType: entity.PostFree},
			}, nil
		},
	}

	w := doJSON(newPostRouter(posts, entity.RolePatient), http.MethodGet, "/api/v1/posts", "")

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []map[string]any `json:"data"`
		Meta map[string]any   `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 2)
	assert.Equal(t, float64(2), body.Meta["count"])
}

func TestPostGetNotFoundCode(t *testing.T) {
	posts := &postRepoMock{
		GetByIDFn: func(ctx context.Context, id string) (*entity.Post, error) {
			return nil, repo.ErrNotFound
		},
	}

	w := doJSON(newPostRouter(posts, entity.RolePatient), http.MethodGet, "/api/v1/posts/missing", "")

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "POST_NOT_FOUND")
}

func TestPostCreateRequiresAdmin(t *testing.T) {
	w := doJSON(newPostRouter(&postRepoMock{}, entity.RolePatient), http.MethodPost, "/api/v1/posts", `{
		"title": "New notice",
		"content": "Body"
	}`)

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestPostCreateAsAdmin(t *testing.T) {
	posts := &postRepoMock{
		CreateFn: func(ctx context.Context, p *entity.Post) error {
			p.ID = "post-1"
			return nil
		},
	}

	w := doJSON(newPostRouter(posts, entity.RoleAdmin), http.MethodPost, "/api/v1/posts", `{
		"title": "New notice",
		"content": "Body"
	}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"postType":"NOTICE"`)
}

func TestPostDeleteMissingStillNoContent(t *testing.T) {
	posts := &postRepoMock{
		DeleteFn: func(ctx context.Context, id string) error { return nil },
	}

	w := doJSON(newPostRouter(posts, entity.RoleAdmin), http.MethodDelete, "/api/v1/posts/missing", "")

	require.Equal(t, http.StatusNoContent, w.Code)
}
