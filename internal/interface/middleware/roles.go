package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/patientpal/patientpal-server/internal/domain/entity"
	"github.com/patientpal/patientpal-server/pkg/response"
)

// RequireRole is the authorization gate in front of the controllers:
// the request only proceeds when the authenticated principal carries
// one of the allowed roles. Route-to-role rules are configuration,
// assembled where the modules register their routes.
func RequireRole(allowed ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := entity.Role(c.GetString(CtxMemberRoleKey))
		if role == "" {
			response.AbortError(c, http.StatusUnauthorized, "unauthenticated", nil)
			return
		}
		for _, a := range allowed {
			if role == a {
				c.Next()
				return
			}
		}
		response.AbortError(c, http.StatusForbidden, "insufficient role", gin.H{"role": string(role)})
	}
}
