package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/patientpal/patientpal-server/internal/application"
	"github.com/patientpal/patientpal-server/internal/domain/entity"
	"github.com/patientpal/patientpal-server/pkg/response"
	"github.com/patientpal/patientpal-server/pkg/validation"
)

type PostHandler struct {
	Svc    *application.PostService
	Logger *logrus.Logger
}

func NewPostHandler(svc *application.PostService, logger *logrus.Logger) *PostHandler {
	return &PostHandler{Svc: svc, Logger: logger}
}

type postRequest struct {
	Title   string `json:"title" binding:"required,max=200"`
	Content string `json:"content" binding:"required,max=10000"`
}

func postResponse(p *entity.Post) gin.H {
	return gin.H{
		"id":        p.ID,
		"title":     p.Title,
		"content":   p.Content,
		"postType":  p.PostType,
		"createdAt": p.CreatedAt,
		"updatedAt": p.UpdatedAt,
	}
}

func postListResponse(posts []entity.Post) []gin.H {
	out := make([]gin.H, 0, len(posts))
	for i := range posts {
		out = append(out, postResponse(&posts[i]))
	}
	return out
}

func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.Svc.GetPosts(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, postListResponse(posts), "posts", map[string]any{"count": len(posts)})
}

func (h *PostHandler) ListNotices(c *gin.Context) {
	posts, err := h.Svc.GetNotices(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, postListResponse(posts), "notices", map[string]any{"count": len(posts)})
}

func (h *PostHandler) Get(c *gin.Context) {
	p, err := h.Svc.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, postResponse(p), "post", nil)
}

func (h *PostHandler) Create(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, validation.ToDetails(err))
		return
	}

	p, err := h.Svc.CreatePost(c.Request.Context(), req.Title, req.Content)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, postResponse(p), "post created", nil)
}

func (h *PostHandler) Update(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, validation.ToDetails(err))
		return
	}

	p, err := h.Svc.UpdatePost(c.Request.Context(), c.Param("id"), req.Title, req.Content)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, postResponse(p), "post updated", nil)
}

func (h *PostHandler) Delete(c *gin.Context) {
	if err := h.Svc.DeletePost(c.Request.Context(), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
