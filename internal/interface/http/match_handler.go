package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/patientpal/patientpal-server/internal/application"
	"github.com/patientpal/patientpal-server/internal/domain/entity"
	"github.com/patientpal/patientpal-server/internal/interface/middleware"
	"github.com/patientpal/patientpal-server/pkg/response"
	"github.com/patientpal/patientpal-server/pkg/validation"
)

type MatchHandler struct {
	Svc    *application.MatchService
	Logger *logrus.Logger
}

func NewMatchHandler(svc *application.MatchService, logger *logrus.Logger) *MatchHandler {
	return &MatchHandler{Svc: svc, Logger: logger}
}

type requestMatchRequest struct {
	CaregiverID string `json:"caregiverId" binding:"required,uuid"`
}

func matchResponse(m *entity.Match) gin.H {
	return gin.H{
		"id":          m.ID,
		"patientId":   m.PatientID,
		"caregiverId": m.CaregiverID,
		"status":      m.Status,
		"createdAt":   m.CreatedAt,
	}
}

func (h *MatchHandler) Request(c *gin.Context) {
	var req requestMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, validation.ToDetails(err))
		return
	}

	m, err := h.Svc.RequestMatch(c.Request.Context(), c.GetString(middleware.CtxMemberIDKey), req.CaregiverID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, matchResponse(m), "match requested", nil)
}

func (h *MatchHandler) ListForPatient(c *gin.Context) {
	matches, err := h.Svc.ListForPatient(c.Request.Context(), c.GetString(middleware.CtxMemberIDKey))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	out := make([]gin.H, 0, len(matches))
	for i := range matches {
		out = append(out, matchResponse(&matches[i]))
	}
	response.Success(c, http.StatusOK, out, "matches", map[string]any{"count": len(out)})
}
