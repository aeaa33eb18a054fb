package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/patientpal/patientpal-server/internal/container"
	"github.com/patientpal/patientpal-server/internal/domain/entity"
	handlers "github.com/patientpal/patientpal-server/internal/interface/http"
	"github.com/patientpal/patientpal-server/internal/interface/middleware"
	"github.com/patientpal/patientpal-server/pkg/helpers"
)

// PatientModule mounts the patient profile routes under
// /api/v1/patient. Every route requires an authenticated member with
// the PATIENT role.
type PatientModule struct {
	Handler *handlers.PatientHandler
	Matches *handlers.MatchHandler
	JWT     *helpers.JWTManager
}

func NewPatientModule(h *handlers.PatientHandler, matches *handlers.MatchHandler, jwt *helpers.JWTManager) *PatientModule {
	return &PatientModule{Handler: h, Matches: matches, JWT: jwt}
}

func (m *PatientModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	logger := container.GetLogger()

	patient := rg.Group("/v1/patient")
	patient.Use(
		middleware.Auth(rdb, m.JWT),
		middleware.RequireRole(entity.RolePatient),
		middleware.RateLimit(rdb, logger, middleware.RateLimitOptions{
			Limit: 120, Window: time.Minute, Key: middleware.KeyByMemberID("patient"),
		}),
	)
	{
		patient.POST("", m.Handler.Create)
		patient.GET("", m.Handler.Get)
		patient.PATCH("", m.Handler.Update)
		patient.DELETE("", m.Handler.Delete)
		patient.POST("/register/toMatchList", m.Handler.RegisterMatch)
		patient.POST("/unregister/toMatchList", m.Handler.UnregisterMatch)
		patient.POST("/matches", m.Matches.Request)
		patient.GET("/matches", m.Matches.ListForPatient)
	}
}
