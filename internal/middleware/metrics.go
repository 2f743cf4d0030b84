package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/venuehub/service-bookings/internal/pkg/metrics"
)

// HTTPMetrics records request counts and latencies per route. The route
// template is used as the path label, so ids do not explode cardinality.
func HTTPMetrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).
			Observe(time.Since(start).Seconds())
	}
}
