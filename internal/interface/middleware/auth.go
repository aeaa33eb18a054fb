package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/patientpal/patientpal-server/pkg/helpers"
	"github.com/patientpal/patientpal-server/pkg/response"
)

// Context keys populated for handlers downstream of Auth.
const (
	CtxMemberIDKey   = "memberID"
	CtxMemberRoleKey = "memberRole"
	CtxUsernameKey   = "memberUsername"
)

// Auth validates the access token cookie and ensures an active session
// exists in Redis. On success it sets memberID, memberRole and
// memberUsername in the Gin context.
func Auth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("access_token")
		if err != nil || token == "" {
			response.AbortError(c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "invalid access token", err.Error())
			return
		}

		key := "member:session:" + claims.MemberID
		data, err := rdb.HGetAll(c.Request.Context(), key).Result()
		if err != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			response.AbortError(c, http.StatusUnauthorized, "session not found", nil)
			return
		}

		c.Set(CtxMemberIDKey, data["member_id"])
		c.Set(CtxMemberRoleKey, data["role"])
		c.Set(CtxUsernameKey, data["username"])
		c.Next()
	}
}
