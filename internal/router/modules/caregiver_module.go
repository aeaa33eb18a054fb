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

// CaregiverModule mounts the caregiver profile routes under
// /api/v1/caregiver, plus the caregiver search endpoint under
// /api/v1/matches, which any authenticated member may call.
type CaregiverModule struct {
	Handler *handlers.CaregiverHandler
	JWT     *helpers.JWTManager
}

func NewCaregiverModule(h *handlers.CaregiverHandler, jwt *helpers.JWTManager) *CaregiverModule {
	return &CaregiverModule{Handler: h, JWT: jwt}
}

func (m *CaregiverModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	logger := container.GetLogger()

	caregiver := rg.Group("/v1/caregiver")
	caregiver.Use(
		middleware.Auth(rdb, m.JWT),
		middleware.RequireRole(entity.RoleCaregiver),
		middleware.RateLimit(rdb, logger, middleware.RateLimitOptions{
			Limit: 120, Window: time.Minute, Key: middleware.KeyByMemberID("caregiver"),
		}),
	)
	{
		caregiver.POST("", m.Handler.Create)
		caregiver.GET("", m.Handler.Get)
		caregiver.PATCH("", m.Handler.Update)
		caregiver.DELETE("", m.Handler.Delete)
		caregiver.POST("/image", m.Handler.UploadImage)
		caregiver.POST("/register/toMatchList", m.Handler.RegisterMatch)
		caregiver.POST("/unregister/toMatchList", m.Handler.UnregisterMatch)
	}

	matches := rg.Group("/v1/matches")
	matches.Use(
		middleware.Auth(rdb, m.JWT),
		middleware.RateLimit(rdb, logger, middleware.RateLimitOptions{
			Limit: 60, Window: time.Minute, Key: middleware.KeyByMemberID("matches"),
		}),
	)
	matches.GET("/caregivers/search", m.Handler.Search)
}
