package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Laisky/mcp-chat/common/metrics"
)

// Metrics records per-request latency and status into prometheus.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.RecordHTTPRequest(start, path, c.Request.Method, c.Writer.Status())
	}
}
