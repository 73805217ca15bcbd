package telemetry

import (
	"context"
	"fmt"
	"sync"
	"time"

	otelpyroscope "github.com/grafana/otel-profiling-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// TracerConfig holds trace export configuration
type TracerConfig struct {
	ExporterConfig
	Enabled       bool
	SamplingRatio float64
}

// TracerProvider wraps the OpenTelemetry TracerProvider with lifecycle management
type TracerProvider struct {
	provider            *sdktrace.TracerProvider
	logger              *zap.Logger
	config              TracerConfig
	mu                  sync.Mutex
	spanProfilesEnabled bool
}

// NewTracerProvider creates the provider and installs it globally.
// If tracing is disabled, the global no-op provider stays in place.
func NewTracerProvider(ctx context.Context, cfg TracerConfig, logger *zap.Logger) (*TracerProvider, error) {
	tp := &TracerProvider{logger: logger, config: cfg}
	if !cfg.Enabled {
		logger.Info("Tracing disabled, using no-op tracer provider")
		return tp, nil
	}

	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}
	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}

	res, err := cfg.resource()
	if err != nil {
		return nil, err
	}

	tp.provider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(samplerFor(cfg.SamplingRatio)),
	)
	otel.SetTracerProvider(tp.provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger.Info("OpenTelemetry TracerProvider initialized",
		zap.String("collector_endpoint", cfg.Endpoint),
		zap.Float64("sampling_ratio", cfg.SamplingRatio),
		zap.String("service_name", cfg.ServiceName),
	)
	return tp, nil
}

// samplerFor maps a ratio to a parent-based sampler so upstream decisions win
func samplerFor(ratio float64) sdktrace.Sampler {
	switch {
	case ratio >= 1.0:
		return sdktrace.ParentBased(sdktrace.AlwaysSample())
	case ratio <= 0.0:
		return sdktrace.ParentBased(sdktrace.NeverSample())
	default:
		return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))
	}
}

// EnableSpanProfiles links CPU profiles to spans. Call it after the
// profiler started.
func (tp *TracerProvider) EnableSpanProfiles() error {
	tp.mu.Lock()
	defer tp.mu.Unlock()

	if tp.provider == nil || tp.spanProfilesEnabled {
		return nil
	}
	otel.SetTracerProvider(otelpyroscope.NewTracerProvider(tp.provider))
	tp.spanProfilesEnabled = true
	tp.logger.Info("Span profiles integration enabled")
	return nil
}

// IsSpanProfilesEnabled returns whether span profiles integration is enabled
func (tp *TracerProvider) IsSpanProfilesEnabled() bool {
	tp.mu.Lock()
	defer tp.mu.Unlock()
	return tp.spanProfilesEnabled
}

// Shutdown flushes pending spans
func (tp *TracerProvider) Shutdown(ctx context.Context) error {
	if tp.provider == nil {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := tp.provider.Shutdown(shutdownCtx); err != nil {
		tp.logger.Error("Error shutting down tracer provider", zap.Error(err))
		return fmt.Errorf("failed to shutdown tracer provider: %w", err)
	}
	return nil
}

// Tracer returns a named tracer from the provider
func (tp *TracerProvider) Tracer(name string, opts ...trace.TracerOption) trace.Tracer {
	if tp.provider == nil {
		return otel.GetTracerProvider().Tracer(name, opts...)
	}
	return tp.provider.Tracer(name, opts...)
}

// IsEnabled returns whether tracing is exporting
func (tp *TracerProvider) IsEnabled() bool {
	return tp.config.Enabled && tp.provider != nil
}
