package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/log/global"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogsConfig holds log export configuration
type LogsConfig struct {
	ExporterConfig
	Enabled bool
}

// LoggerProvider wraps the OpenTelemetry LoggerProvider with lifecycle management
type LoggerProvider struct {
	provider *sdklog.LoggerProvider
	logger   *zap.Logger
	config   LogsConfig
}

// NewLoggerProvider creates the provider and installs it globally
func NewLoggerProvider(ctx context.Context, cfg LogsConfig, logger *zap.Logger) (*LoggerProvider, error) {
	lp := &LoggerProvider{logger: logger, config: cfg}
	if !cfg.Enabled {
		logger.Info("OTEL logs disabled")
		return lp, nil
	}

	opts := []otlploggrpc.Option{otlploggrpc.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlploggrpc.WithInsecure())
	}
	exporter, err := otlploggrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP logs exporter: %w", err)
	}

	res, err := cfg.resource()
	if err != nil {
		return nil, err
	}

	lp.provider = sdklog.NewLoggerProvider(
		sdklog.WithResource(res),
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter)),
	)
	global.SetLoggerProvider(lp.provider)

	logger.Info("OpenTelemetry LoggerProvider initialized", zap.String("collector_endpoint", cfg.Endpoint))
	return lp, nil
}

// Shutdown flushes pending log records
func (lp *LoggerProvider) Shutdown(ctx context.Context) error {
	if lp.provider == nil {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := lp.provider.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown logger provider: %w", err)
	}
	return nil
}

// IsEnabled returns whether logs are exporting
func (lp *LoggerProvider) IsEnabled() bool {
	return lp.config.Enabled && lp.provider != nil
}

// Bridge returns a logger that writes to base and, when enabled, to the OTLP
// exporter at or above minLevel
func (lp *LoggerProvider) Bridge(base *zap.Logger, minLevel zapcore.Level) *zap.Logger {
	if !lp.IsEnabled() {
		return base
	}
	otelCore := &levelFilterCore{
		Core:     otelzap.NewCore(lp.config.ServiceName, otelzap.WithLoggerProvider(lp.provider)),
		minLevel: minLevel,
	}
	return base.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return zapcore.NewTee(core, otelCore)
	}))
}

// levelFilterCore drops entries below minLevel; otelzap has no level of its own
type levelFilterCore struct {
	zapcore.Core
	minLevel zapcore.Level
}

func (c *levelFilterCore) Enabled(lvl zapcore.Level) bool {
	return lvl >= c.minLevel && c.Core.Enabled(lvl)
}

func (c *levelFilterCore) Check(entry zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if !c.Enabled(entry.Level) {
		return ce
	}
	return c.Core.Check(entry, ce)
}

func (c *levelFilterCore) With(fields []zapcore.Field) zapcore.Core {
	return &levelFilterCore{Core: c.Core.With(fields), minLevel: c.minLevel}
}
