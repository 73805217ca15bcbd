package logger

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GinMiddleware logs each HTTP request and attaches a request-scoped logger
// to both the gin context and the request context
func GinMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		requestID := c.GetString("request_id")
		ctx := c.Request.Context()
		if requestID != "" {
			ctx = WithRequestID(ctx, requestID)
		}
		reqLogger := Enrich(ctx, logger).With(
			zap.String("method", c.Request.Method),
			zap.String("path", path),
		)
		c.Set("logger", reqLogger)
		c.Request = c.Request.WithContext(WithContext(ctx, reqLogger))

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("body_size", c.Writer.Size()),
		}
		if query != "" {
			fields = append(fields, zap.String("query", query))
		}
		// route template groups requests across stores; the store id is kept separately
		if route := c.FullPath(); route != "" {
			fields = append(fields, zap.String("route", route))
			if strings.Contains(route, "/stores/:id") {
				fields = append(fields, zap.String("store_id", c.Param("id")))
			}
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.Strings("errors", c.Errors.Errors()))
		}

		switch {
		case status >= 500:
			reqLogger.Error("HTTP Request", fields...)
		case status >= 400:
			reqLogger.Warn("HTTP Request", fields...)
		default:
			reqLogger.Info("HTTP Request", fields...)
		}
	}
}

// Recovery recovers from panics and logs them
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("Panic recovered",
					zap.String("request_id", c.GetString("request_id")),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.Any("error", err),
					zap.Stack("stacktrace"),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error":   gin.H{"code": "INTERNAL_ERROR", "message": "An unexpected error occurred"},
				})
			}
		}()
		c.Next()
	}
}

// GetGinLogger retrieves the logger from gin context
func GetGinLogger(c *gin.Context) *zap.Logger {
	if l, ok := c.Get("logger"); ok {
		if zl, ok := l.(*zap.Logger); ok {
			return zl
		}
	}
	return zap.NewNop()
}
