package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/patientpal/patientpal-server/internal/application"
	"github.com/patientpal/patientpal-server/pkg/response"
)

// writeServiceError translates an application error into the API error
// body. Untyped errors surface as a plain 500 without internals.
func writeServiceError(c *gin.Context, err error) {
	var appErr *application.Error
	if errors.As(err, &appErr) {
		detail := gin.H{"code": appErr.Code}
		for k, v := range appErr.Details {
			detail[k] = v
		}
		response.Error(c, appErr.Status, appErr.Message, detail)
		return
	}
	response.Error(c, http.StatusInternalServerError, "internal server error", nil)
}

func bindError(c *gin.Context, details map[string]string) {
	response.Error(c, http.StatusBadRequest, "invalid payload", gin.H{
		"code":   application.CodeValidation,
		"fields": details,
	})
}
