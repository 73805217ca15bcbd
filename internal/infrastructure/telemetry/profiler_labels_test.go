package telemetry

import (
	"context"
	"runtime/pprof"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeLabels(t *testing.T) {
	pairs := sanitizeLabels(map[string]string{
		ProfilingLabelRoute:  "/api/v1/stores/:id/orders/pull",
		ProfilingLabelMethod: "POST",
		"store_id":           "5f1c",
		"empty":              "",
		"long":               strings.Repeat("x", 300),
	})

	assert.Equal(t, []string{
		"long", strings.Repeat("x", MaxLabelValueLength),
		ProfilingLabelMethod, "POST",
		ProfilingLabelRoute, "/api/v1/stores/:id/orders/pull",
	}, pairs)
}

func TestWithProfilingLabels(t *testing.T) {
	var got string
	WithProfilingLabels(context.Background(), map[string]string{ProfilingLabelOperation: "pull"}, func(ctx context.Context) {
		got, _ = pprof.Label(ctx, ProfilingLabelOperation)
	})
	assert.Equal(t, "pull", got)

	called := false
	WithProfilingLabels(context.Background(), map[string]string{"request_id": "r1"}, func(ctx context.Context) {
		called = true
		_, ok := pprof.Label(ctx, "request_id")
		assert.False(t, ok)
	})
	assert.True(t, called)
}
