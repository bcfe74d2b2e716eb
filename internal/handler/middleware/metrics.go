package middleware

import (
	"strconv"
	"time"

	"courtdesk/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware records request counts and latency. It labels by the
// route template, not the raw path, to keep cardinality bounded.
func MetricsMiddleware() gin.HandlerFunc {
	metrics.Register()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.ObserveHTTP(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start).Seconds(),
		)
	}
}
