package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dms-backend/internal/shared/telemetry"
)

// Error logs the failure and aborts the request with an error envelope.
func Error(c *gin.Context, status int, message string) {
	fields := map[string]any{
		"status":     status,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if userID := c.GetString("userId"); userID != "" {
		fields["user_id"] = userID
	}
	telemetry.Error("http.error", fields)

	c.AbortWithStatusJSON(status, Envelope{Message: message, Body: gin.H{}})
}

// BadRequest aborts with a 400 envelope.
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// NotAuthorized aborts with a 401 envelope. It covers both a missing token and
// an ownership mismatch, matching the original system's convention.
func NotAuthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// Forbidden aborts with a 403 envelope for role-gate failures.
func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message)
}

// NotFound aborts with a 404 envelope.
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// InternalError aborts with a 500 envelope, never leaking internal detail.
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Oops! Something Went Wrong")
}
