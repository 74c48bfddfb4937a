package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"jobfit-backend/internal/shared/telemetry"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()
		reqID := RequestIDFromContext(c)

		fields := map[string]any{
			"request_id": reqID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     status,
			"latency_ms": latency.Milliseconds(),
		}
		id := IdentityFromContext(c)
		if id.UserID != "" {
			fields["user_id"] = id.UserID
			fields["is_guest"] = id.Guest
		}
		if plan, ok := c.Get("usagePlan"); ok {
			fields["usage_plan"] = plan
		}

		telemetry.Info("request.complete", fields)
	}
}
