package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap"
)

// MetricsConfig holds metrics export configuration
type MetricsConfig struct {
	ExporterConfig
	Enabled        bool
	ExportInterval time.Duration // Default: 60s
}

// MeterProvider wraps the OpenTelemetry MeterProvider with lifecycle management
type MeterProvider struct {
	provider *sdkmetric.MeterProvider
	logger   *zap.Logger
	config   MetricsConfig
}

// NewMeterProvider creates the provider and installs it globally.
// If metrics are disabled, Meter falls back to the global no-op meter.
func NewMeterProvider(ctx context.Context, cfg MetricsConfig, logger *zap.Logger) (*MeterProvider, error) {
	mp := &MeterProvider{logger: logger, config: cfg}
	if !cfg.Enabled {
		logger.Info("Metrics disabled, using no-op meter provider")
		return mp, nil
	}

	interval := cfg.ExportInterval
	if interval == 0 {
		interval = 60 * time.Second
	}

	opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}
	exporter, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP metrics exporter: %w", err)
	}

	res, err := cfg.resource()
	if err != nil {
		return nil, err
	}

	mp.provider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(interval))),
	)
	otel.SetMeterProvider(mp.provider)

	logger.Info("OpenTelemetry MeterProvider initialized",
		zap.String("collector_endpoint", cfg.Endpoint),
		zap.Duration("export_interval", interval),
	)
	return mp, nil
}

// Shutdown flushes pending metrics
func (mp *MeterProvider) Shutdown(ctx context.Context) error {
	if mp.provider == nil {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := mp.provider.Shutdown(shutdownCtx); err != nil {
		mp.logger.Error("Error shutting down meter provider", zap.Error(err))
		return fmt.Errorf("failed to shutdown meter provider: %w", err)
	}
	return nil
}

// Meter returns a named meter from the provider
func (mp *MeterProvider) Meter(name string, opts ...metric.MeterOption) metric.Meter {
	if mp.provider == nil {
		return otel.GetMeterProvider().Meter(name, opts...)
	}
	return mp.provider.Meter(name, opts...)
}

// IsEnabled returns whether metrics are exporting
func (mp *MeterProvider) IsEnabled() bool {
	return mp.config.Enabled && mp.provider != nil
}

// =============================================================================
// Instrument helpers
// =============================================================================

// Counter is a monotonically increasing int64 metric
type Counter struct {
	counter metric.Int64Counter
}

// NewCounter creates a Counter
func NewCounter(meter metric.Meter, name, description, unit string) (*Counter, error) {
	c, err := meter.Int64Counter(name, metric.WithDescription(description), metric.WithUnit(unit))
	if err != nil {
		return nil, fmt.Errorf("failed to create counter %s: %w", name, err)
	}
	return &Counter{counter: c}, nil
}

// Add adds value to the counter
func (c *Counter) Add(ctx context.Context, value int64, attrs ...attribute.KeyValue) {
	c.counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

// Inc adds one
func (c *Counter) Inc(ctx context.Context, attrs ...attribute.KeyValue) {
	c.Add(ctx, 1, attrs...)
}

// Histogram records a float64 distribution
type Histogram struct {
	histogram metric.Float64Histogram
}

// NewHistogram creates a Histogram with explicit bucket boundaries
func NewHistogram(meter metric.Meter, name, description, unit string, buckets []float64) (*Histogram, error) {
	opts := []metric.Float64HistogramOption{metric.WithDescription(description), metric.WithUnit(unit)}
	if len(buckets) > 0 {
		opts = append(opts, metric.WithExplicitBucketBoundaries(buckets...))
	}
	h, err := meter.Float64Histogram(name, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create histogram %s: %w", name, err)
	}
	return &Histogram{histogram: h}, nil
}

// RecordDuration records d in seconds
func (h *Histogram) RecordDuration(ctx context.Context, d time.Duration, attrs ...attribute.KeyValue) {
	h.histogram.Record(ctx, d.Seconds(), metric.WithAttributes(attrs...))
}

// Common attribute keys
var (
	AttrStoreID  = attribute.Key("store_id")
	AttrProvider = attribute.Key("provider")
	AttrOutcome  = attribute.Key("outcome")
	AttrKind     = attribute.Key("kind")
)

// GatewayDurationBuckets cover gateway calls up to the 120s timeout ceiling (seconds)
var GatewayDurationBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15, 30, 60, 120}
