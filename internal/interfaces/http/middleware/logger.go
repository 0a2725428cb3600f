package middleware

import (
	"time"

	"bank-ledger.backend/pkg/logger"
	"bank-ledger.backend/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// LoggerMiddleware logs HTTP requests using the structured logger and records request metrics
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		if raw != "" {
			path = path + "?" + raw
		}

		status := c.Writer.Status()
		logger.LogRequest(c.Request.Context(), c.Request.Method, path, status, latency, c.ClientIP())
		metrics.ObserveHTTPRequest(c.Request.Method, c.FullPath(), status, latency)
	}
}
