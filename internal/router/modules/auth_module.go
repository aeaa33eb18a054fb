package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/patientpal/patientpal-server/internal/container"
	handlers "github.com/patientpal/patientpal-server/internal/interface/http"
	"github.com/patientpal/patientpal-server/internal/interface/middleware"
	"github.com/patientpal/patientpal-server/pkg/helpers"
)

// AuthModule mounts the member auth routes.
// Public: POST /api/v1/auth/signup, /login, /refresh
// Protected: POST /api/v1/auth/logout
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	logger := container.GetLogger()

	signupLimiter := middleware.RateLimit(rdb, logger, middleware.RateLimitOptions{
		Limit: 5, Window: time.Minute, Key: middleware.KeyByIP("signup"), Skip: middleware.AllowPrivateIP,
	})
	loginLimiter := middleware.RateLimit(rdb, logger, middleware.RateLimitOptions{
		Limit: 10, Window: time.Minute, Key: middleware.KeyByIP("login"), Skip: middleware.AllowPrivateIP,
	})
	refreshLimiter := middleware.RateLimit(rdb, logger, middleware.RateLimitOptions{
		Limit: 60, Window: time.Minute, Key: middleware.KeyByIPAndPath("refresh"), Skip: middleware.AllowPrivateIP,
	})

	auth := rg.Group("/v1/auth")
	auth.POST("/signup", signupLimiter, m.Handler.Signup)
	auth.POST("/login", loginLimiter, m.Handler.Login)
	auth.POST("/refresh", refreshLimiter, m.Handler.Refresh)

	protected := auth.Group("/")
	protected.Use(middleware.Auth(rdb, m.JWT))
	protected.POST("/logout", m.Handler.Logout)
}
