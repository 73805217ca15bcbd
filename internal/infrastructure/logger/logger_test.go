package logger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"bogus":   zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	l, err := New(Config{Level: "info", Format: "json", Output: path})
	require.NoError(t, err)

	l.Info("pull finished", zap.Int("orders", 3))
	require.NoError(t, l.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"pull finished"`)
	assert.Contains(t, string(data), `"orders":3`)
}

func TestNew_UnwritableOutput(t *testing.T) {
	_, err := New(Config{Output: filepath.Join(t.TempDir(), "missing", "app.log")})
	assert.Error(t, err)
}

func TestL_EnrichesFromContext(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	ctx := WithContext(context.Background(), zap.New(core))
	ctx = WithRequestID(ctx, "req-1")
	ctx = WithStoreID(ctx, "store-9")
	ctx = WithUserID(ctx, "user-2")

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx = trace.ContextWithSpanContext(ctx, trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	L(ctx).Info("dispatched")

	require.Equal(t, 1, recorded.Len())
	fields := recorded.All()[0].ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "store-9", fields["store_id"])
	assert.Equal(t, "user-2", fields["user_id"])
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", fields["trace_id"])
	assert.Equal(t, "00f067aa0ba902b7", fields["span_id"])
}

func TestL_EmptyContext(t *testing.T) {
	assert.NotPanics(t, func() { L(context.Background()).Info("nothing attached") })
	assert.Empty(t, Fields(context.Background()))
	assert.NotNil(t, Enrich(context.Background(), nil))
}
