package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// APIResponse is the envelope every JSON body uses. Data and Error are
// mutually exclusive; 204 responses carry no envelope at all.
type APIResponse[T any] struct {
	Status    int       `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id"`
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Data      T         `json:"data,omitempty"`
	Meta      any       `json:"meta,omitempty"`
	Error     any       `json:"error,omitempty"`
}

func Success[T any](c *gin.Context, status int, data T, message string, meta any) {
	if status == 0 {
		status = http.StatusOK
	}
	c.JSON(status, APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: c.GetString("request_id"),
		Success:   true,
		Message:   message,
		Data:      data,
		Meta:      meta,
	})
}

func Error(c *gin.Context, status int, message string, errDetail any) {
	c.JSON(status, errorBody(c, status, message, errDetail))
}

// AbortError writes the error body and stops the handler chain; used by
// middleware.
func AbortError(c *gin.Context, status int, message string, errDetail any) {
	c.AbortWithStatusJSON(status, errorBody(c, status, message, errDetail))
}

func errorBody(c *gin.Context, status int, message string, errDetail any) APIResponse[any] {
	if status == 0 {
		status = http.StatusBadRequest
	}
	return APIResponse[any]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: c.GetString("request_id"),
		Success:   false,
		Message:   message,
		Error:     errDetail,
	}
}
