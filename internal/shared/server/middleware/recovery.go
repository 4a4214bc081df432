package middleware

import (
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"dms-backend/internal/shared/server/respond"
	"dms-backend/internal/shared/telemetry"
)

// Recovery converts panics into a uniform 500 envelope with no internals leaked.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				telemetry.Error("panic", map[string]any{
					"request_id": RequestIDFromContext(c),
					"error":      rec,
					"stack":      string(debug.Stack()),
					"path":       c.Request.URL.Path,
					"method":     c.Request.Method,
				})
				respond.InternalError(c)
			}
		}()
		c.Next()
	}
}
