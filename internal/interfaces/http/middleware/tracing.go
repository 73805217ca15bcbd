package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Fayyez/UniKhata-sub000/internal/infrastructure/telemetry"
)

// TracingConfig holds configuration for the tracing middleware.
type TracingConfig struct {
	ServiceName string
	Enabled     bool
}

// Tracing starts the server span through otelgin. Span names follow
// "METHOD route", e.g. "POST /api/v1/stores/:id/orders/pull".
func Tracing(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}
	return otelgin.Middleware(cfg.ServiceName)
}

// SpanAttributes adds the acting user and store to the server span. Place it
// after JWTAuth and StoreAccess.
func SpanAttributes() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if span.IsRecording() {
			if id := GetRequestID(c); id != "" {
				span.SetAttributes(attribute.String("request_id", id))
			}
			if userID := GetJWTUserID(c); userID != "" {
				span.SetAttributes(attribute.String("user_id", userID))
			}
			if st := GetStore(c); st != nil {
				span.SetAttributes(telemetry.AttrStoreID.String(st.ID.String()))
			}
		}
		c.Next()
	}
}

// SpanErrorMarker marks the server span as failed for 4xx and 5xx responses.
// Place it after Tracing.
func SpanErrorMarker() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}
		status := c.Writer.Status()
		if status < http.StatusBadRequest {
			return
		}
		span.SetStatus(codes.Error, http.StatusText(status))
		span.SetAttributes(attribute.Int("http.status_code", status))
	}
}
