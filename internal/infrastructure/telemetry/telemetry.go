// Package telemetry wires OpenTelemetry traces, metrics and logs plus
// Pyroscope profiling.
package telemetry

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.uber.org/zap"

	"github.com/Fayyez/UniKhata-sub000/internal/infrastructure/config"
)

// Telemetry owns every provider started for the process
type Telemetry struct {
	Tracer   *TracerProvider
	Meter    *MeterProvider
	Logs     *LoggerProvider
	Profiler *Profiler
	logger   *zap.Logger
}

// Setup starts the providers enabled in cfg. Disabled signals get no-op
// providers, so callers never need nil checks.
func Setup(ctx context.Context, cfg config.TelemetryConfig, version string, logger *zap.Logger) (*Telemetry, error) {
	t := &Telemetry{logger: logger}
	exporter := ExporterConfig{
		Endpoint:    cfg.CollectorEndpoint,
		ServiceName: cfg.ServiceName,
		Version:     version,
		Insecure:    cfg.Insecure,
	}

	var err error
	if t.Tracer, err = NewTracerProvider(ctx, TracerConfig{
		ExporterConfig: exporter,
		Enabled:        cfg.Enabled,
		SamplingRatio:  cfg.SamplingRatio,
	}, logger); err != nil {
		return nil, err
	}
	if t.Meter, err = NewMeterProvider(ctx, MetricsConfig{
		ExporterConfig: exporter,
		Enabled:        cfg.Enabled,
		ExportInterval: cfg.MetricsInterval,
	}, logger); err != nil {
		_ = t.Shutdown(ctx)
		return nil, err
	}
	if t.Logs, err = NewLoggerProvider(ctx, LogsConfig{
		ExporterConfig: exporter,
		Enabled:        cfg.Enabled && cfg.LogsEnabled,
	}, logger); err != nil {
		_ = t.Shutdown(ctx)
		return nil, err
	}
	if t.Profiler, err = NewProfiler(ProfilerConfig{
		Enabled:         cfg.ProfilingEnabled,
		ServerAddress:   cfg.PyroscopeEndpoint,
		ApplicationName: cfg.ServiceName,
		MutexAndBlock:   cfg.ProfileMutexBlocks,
	}, logger); err != nil {
		_ = t.Shutdown(ctx)
		return nil, err
	}

	// span profiles need the profiler running first
	if cfg.SpanProfiles && t.Profiler.IsEnabled() {
		if err := t.Tracer.EnableSpanProfiles(); err != nil {
			logger.Warn("Failed to enable span profiles", zap.Error(err))
		}
	}
	return t, nil
}

// Shutdown flushes and stops every provider, collecting all errors
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	if t.Profiler != nil {
		errs = append(errs, t.Profiler.Stop())
	}
	if t.Logs != nil {
		errs = append(errs, t.Logs.Shutdown(ctx))
	}
	if t.Meter != nil {
		errs = append(errs, t.Meter.Shutdown(ctx))
	}
	if t.Tracer != nil {
		errs = append(errs, t.Tracer.Shutdown(ctx))
	}
	return errors.Join(errs...)
}

// ExporterConfig is shared by the OTLP exporters
type ExporterConfig struct {
	Endpoint    string
	ServiceName string
	Version     string
	Insecure    bool
}

func (c ExporterConfig) resource() (*resource.Resource, error) {
	version := c.Version
	if version == "" {
		version = "dev"
	}
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(c.ServiceName),
			semconv.ServiceVersion(version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return res, nil
}
