package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kiosk404/spycats/pkg/logger"
)

// Logger logs one line per request after it has been served.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path += "?" + raw
		}

		c.Next()

		entry := logger.WithFields(map[string]any{
			"method":     c.Request.Method,
			"path":       path,
			"status":     c.Writer.Status(),
			"latency":    time.Since(start).String(),
			"client_ip":  c.ClientIP(),
			"request_id": c.GetString(XRequestIDKey),
		})
		if len(c.Errors) > 0 {
			entry.Warn("[HTTP] " + c.Errors.String())
			return
		}
		entry.Info("[HTTP] request served")
	}
}
