package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/Fayyez/UniKhata-sub000/internal/infrastructure/telemetry"
)

// httpDurationBuckets reach past the gateway timeout since a pull request
// waits on every storefront of the store
var httpDurationBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120}

type httpMetrics struct {
	requests *telemetry.Counter
	duration *telemetry.Histogram
	active   metric.Int64UpDownCounter
}

func newHTTPMetrics(meter metric.Meter) (*httpMetrics, error) {
	requests, err := telemetry.NewCounter(meter,
		"http_server_request_total", "Total number of HTTP requests", "{request}")
	if err != nil {
		return nil, err
	}
	duration, err := telemetry.NewHistogram(meter,
		"http_server_request_duration_seconds", "HTTP request latency in seconds", "s", httpDurationBuckets)
	if err != nil {
		return nil, err
	}
	active, err := meter.Int64UpDownCounter("http_server_active_requests",
		metric.WithDescription("Number of in-flight HTTP requests"),
		metric.WithUnit("{request}"))
	if err != nil {
		return nil, err
	}
	return &httpMetrics{requests: requests, duration: duration, active: active}, nil
}

// HTTPMetrics records request count, latency and in-flight requests per
// route. A nil meter or an instrument error disables it.
func HTTPMetrics(meter metric.Meter, log *zap.Logger) gin.HandlerFunc {
	var m *httpMetrics
	if meter != nil {
		var err error
		if m, err = newHTTPMetrics(meter); err != nil && log != nil {
			log.Warn("HTTP metrics disabled", zap.Error(err))
		}
	}
	if m == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		start := time.Now()
		ctx := c.Request.Context()
		route := routePattern(c)
		method := attribute.String("http.request.method", c.Request.Method)
		routeAttr := attribute.String("http.route", route)

		m.active.Add(ctx, 1, metric.WithAttributes(method, routeAttr))
		defer m.active.Add(ctx, -1, metric.WithAttributes(method, routeAttr))

		c.Next()

		status := c.Writer.Status()
		attrs := []attribute.KeyValue{
			method,
			routeAttr,
			attribute.String("http.response.status_code", strconv.Itoa(status)),
			attribute.String("http.status_class", statusClass(status)),
		}
		m.requests.Inc(ctx, attrs...)
		m.duration.RecordDuration(ctx, time.Since(start), attrs...)
	}
}

// routePattern keeps label cardinality bounded by using the matched route
func routePattern(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return "unmatched"
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
