package logging

import (
	"time"

	"github.com/gin-gonic/gin"
)

// GinMiddleware logs one line per request once the handler chain has run.
func GinMiddleware(log Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
			"client_ip", c.ClientIP(),
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			log.Error(c.Request.Context(), "request", args...)
		case status >= 400:
			log.Warn(c.Request.Context(), "request", args...)
		default:
			log.Info(c.Request.Context(), "request", args...)
		}
	}
}
