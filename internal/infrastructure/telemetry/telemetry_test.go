package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Fayyez/UniKhata-sub000/internal/infrastructure/config"
)

func TestSetup_Disabled(t *testing.T) {
	tel, err := Setup(context.Background(), config.TelemetryConfig{ServiceName: "unikhata"}, "test", zap.NewNop())
	require.NoError(t, err)

	assert.False(t, tel.Tracer.IsEnabled())
	assert.False(t, tel.Meter.IsEnabled())
	assert.False(t, tel.Logs.IsEnabled())
	assert.False(t, tel.Profiler.IsEnabled())
	assert.NotNil(t, tel.Meter.Meter("test"))
	assert.NotNil(t, tel.Tracer.Tracer("test"))

	assert.NoError(t, tel.Shutdown(context.Background()))
	assert.NoError(t, tel.Shutdown(context.Background()), "second shutdown is a no-op")
}

func TestSetup_EnabledTracesAndMetrics(t *testing.T) {
	cfg := config.TelemetryConfig{
		Enabled:           true,
		CollectorEndpoint: "localhost:14317",
		SamplingRatio:     0.5,
		ServiceName:       "unikhata-test",
		Insecure:          true,
		MetricsInterval:   time.Hour,
	}
	tel, err := Setup(context.Background(), cfg, "1.2.3", zap.NewNop())
	require.NoError(t, err)

	assert.True(t, tel.Tracer.IsEnabled())
	assert.True(t, tel.Meter.IsEnabled())
	assert.False(t, tel.Logs.IsEnabled(), "log export needs LogsEnabled")
	assert.False(t, tel.Tracer.IsSpanProfilesEnabled())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = tel.Shutdown(ctx)
}

func TestSamplerFor(t *testing.T) {
	tests := []struct {
		ratio float64
		want  string
	}{
		{1.0, "AlwaysOnSampler"},
		{2.0, "AlwaysOnSampler"},
		{0.0, "AlwaysOffSampler"},
		{-1, "AlwaysOffSampler"},
		{0.25, "TraceIDRatioBased{0.25}"},
	}
	for _, tt := range tests {
		assert.Contains(t, samplerFor(tt.ratio).Description(), tt.want)
	}
}

func TestNewProfiler(t *testing.T) {
	p, err := NewProfiler(ProfilerConfig{}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, p.IsEnabled())
	assert.NoError(t, p.Stop())
	assert.NoError(t, p.Stop())

	_, err = NewProfiler(ProfilerConfig{Enabled: true, ApplicationName: "unikhata"}, zap.NewNop())
	assert.Error(t, err, "server address required")

	_, err = NewProfiler(ProfilerConfig{Enabled: true, ServerAddress: "http://localhost:4040"}, zap.NewNop())
	assert.Error(t, err, "application name required")
}

func TestProfileTypes(t *testing.T) {
	assert.Len(t, profileTypes(false), 6)
	assert.Len(t, profileTypes(true), 10)
}

func TestLoggerProvider_BridgeDisabledReturnsBase(t *testing.T) {
	lp, err := NewLoggerProvider(context.Background(), LogsConfig{}, zap.NewNop())
	require.NoError(t, err)

	base := zap.NewExample()
	assert.Same(t, base, lp.Bridge(base, zap.InfoLevel))
	assert.NoError(t, lp.Shutdown(context.Background()))
}
