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

// PostModule mounts the notice board under /api/v1/posts. Reads are
// open to any authenticated member; writes are admin only.
type PostModule struct {
	Handler *handlers.PostHandler
	JWT     *helpers.JWTManager
}

func NewPostModule(h *handlers.PostHandler, jwt *helpers.JWTManager) *PostModule {
	return &PostModule{Handler: h, JWT: jwt}
}

func (m *PostModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	logger := container.GetLogger()

	posts := rg.Group("/v1/posts")
	posts.Use(
		middleware.Auth(rdb, m.JWT),
		middleware.RateLimit(rdb, logger, middleware.RateLimitOptions{
			Limit: 120, Window: time.Minute, Key: middleware.KeyByMemberID("posts"),
		}),
	)
	{
		posts.GET("", m.Handler.List)
		posts.GET("/notices", m.Handler.ListNotices)
		posts.GET("/:id", m.Handler.Get)

		admin := posts.Group("")
		admin.Use(middleware.RequireRole(entity.RoleAdmin))
		{
			admin.POST("", m.Handler.Create)
			admin.PATCH("/:id", m.Handler.Update)
			admin.DELETE("/:id", m.Handler.Delete)
		}
	}
}
