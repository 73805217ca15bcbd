package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type contextKey string

const (
	loggerKey    contextKey = "logger"
	requestIDKey contextKey = "request_id"
	storeIDKey   contextKey = "store_id"
	userIDKey    contextKey = "user_id"
)

// WithContext returns a new context with the logger attached
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the attached logger, or a no-op logger
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}

// WithRequestID stores the request ID
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// WithStoreID stores the store the request or job acts on
func WithStoreID(ctx context.Context, storeID string) context.Context {
	return context.WithValue(ctx, storeIDKey, storeID)
}

// WithUserID stores the acting user
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetRequestID retrieves request ID from context
func GetRequestID(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey).(string)
	return v
}

// GetStoreID retrieves store ID from context
func GetStoreID(ctx context.Context) string {
	v, _ := ctx.Value(storeIDKey).(string)
	return v
}

// GetUserID retrieves user ID from context
func GetUserID(ctx context.Context) string {
	v, _ := ctx.Value(userIDKey).(string)
	return v
}

// Fields returns the trace, request, store and user fields found in ctx
func Fields(ctx context.Context) []zap.Field {
	var fields []zap.Field
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		fields = append(fields,
			zap.String("trace_id", sc.TraceID().String()),
			zap.String("span_id", sc.SpanID().String()),
		)
	}
	if v := GetRequestID(ctx); v != "" {
		fields = append(fields, zap.String("request_id", v))
	}
	if v := GetStoreID(ctx); v != "" {
		fields = append(fields, zap.String("store_id", v))
	}
	if v := GetUserID(ctx); v != "" {
		fields = append(fields, zap.String("user_id", v))
	}
	return fields
}

// L returns the context logger enriched with the context fields.
// Usage: logger.L(ctx).Info("message", zap.String("key", "value"))
func L(ctx context.Context) *zap.Logger {
	return Enrich(ctx, FromContext(ctx))
}

// Enrich adds the context fields to base
func Enrich(ctx context.Context, base *zap.Logger) *zap.Logger {
	if base == nil {
		base = zap.NewNop()
	}
	if fields := Fields(ctx); len(fields) > 0 {
		return base.With(fields...)
	}
	return base
}
