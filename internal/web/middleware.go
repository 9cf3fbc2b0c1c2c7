package web

import (
	"time"

	"finance-assistant/internal/logger"
	"finance-assistant/internal/trace"

	"github.com/gin-gonic/gin"
)

// requestLogger opens a span per request and logs the outcome
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := trace.StartSpan(c.Request.Context(), "http "+c.Request.Method+" "+c.FullPath())
		defer span.End()
		c.Request = c.Request.WithContext(ctx)

		start := time.Now()
		c.Next()

		fields := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if c.Writer.Status() >= 500 {
			logger.Warn(ctx, "Request failed", fields...)
			return
		}
		logger.Debug(ctx, "Request served", fields...)
	}
}
