package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/patientpal/patientpal-server/internal/domain/entity"
)

func rolesRouter(role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/patients-only",
		func(c *gin.Context) {
			if role != "" {
				c.Set(CtxMemberRoleKey, role)
			}
		},
		RequireRole(entity.RolePatient),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)
	return r
}

func TestRequireRoleAllowsMatchingRole(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/patients-only", nil)
	rolesRouter("PATIENT").ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRoleRejectsOtherRole(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/patients-only", nil)
	rolesRouter("CAREGIVER").ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRoleRejectsAnonymous(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/patients-only", nil)
	rolesRouter("").ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
