package middleware

import (
	"context"
	"strconv"
	"time"

	awspkg "github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/pkg/aws"

	"github.com/gin-gonic/gin"
)

const metricsTimeout = 5 * time.Second

// MetricsRecorder is the part of awspkg.MetricsClient the middleware uses.
type MetricsRecorder interface {
	IsEnabled() bool
	RecordCount(ctx context.Context, metricName string, dimensions map[string]string) error
	RecordLatency(ctx context.Context, metricName string, duration time.Duration, dimensions map[string]string) error
}

// MetricsMiddleware publishes a request counter, a latency sample and, for
// failed requests, error counters. Dimensions use the route template so ids
// in paths do not create new series. Publishing happens off the request path.
func MetricsMiddleware(metrics MetricsRecorder, serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metrics == nil || !metrics.IsEnabled() {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		sample := requestSample{
			status:   c.Writer.Status(),
			duration: time.Since(start),
			dimensions: map[string]string{
				"Service": serviceName,
				"Method":  c.Request.Method,
				"Path":    routeOf(c),
				"Status":  statusClass(c.Writer.Status()),
			},
		}
		go sample.publish(metrics)
	}
}

type requestSample struct {
	status     int
	duration   time.Duration
	dimensions map[string]string
}

func (s requestSample) publish(metrics MetricsRecorder) {
	ctx, cancel := context.WithTimeout(context.Background(), metricsTimeout)
	defer cancel()

	_ = metrics.RecordCount(ctx, awspkg.MetricHTTPRequests, s.dimensions)
	_ = metrics.RecordLatency(ctx, awspkg.MetricHTTPLatency, s.duration, s.dimensions)
	if s.status < 400 {
		return
	}
	_ = metrics.RecordCount(ctx, awspkg.MetricHTTPErrors, s.dimensions)
	if s.status >= 500 {
		_ = metrics.RecordCount(ctx, awspkg.MetricHTTP5xx, s.dimensions)
	} else {
		_ = metrics.RecordCount(ctx, awspkg.MetricHTTP4xx, s.dimensions)
	}
}

func routeOf(c *gin.Context) string {
	if p := c.FullPath(); p != "" {
		return p
	}
	return "unmatched"
}

// statusClass maps 404 to "4xx", 201 to "2xx" and so on.
func statusClass(status int) string {
	if status < 100 || status > 599 {
		return "unknown"
	}
	return strconv.Itoa(status/100) + "xx"
}
