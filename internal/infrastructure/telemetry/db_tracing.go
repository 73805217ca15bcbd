package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for database tracing
type DBTracingConfig struct {
	Enabled         bool
	LogFullSQL      bool // include bind variables in spans; never in production
	SlowQueryThresh time.Duration
	DBSystem        string
}

type queryStartKey struct{}

// RegisterDBTracing installs otelgorm plus slow-query marking on db.
// A disabled config is a no-op.
func RegisterDBTracing(db *gorm.DB, cfg DBTracingConfig, logger *zap.Logger) error {
	if !cfg.Enabled {
		return nil
	}
	if cfg.DBSystem == "" {
		cfg.DBSystem = "postgresql"
	}
	if cfg.SlowQueryThresh <= 0 {
		cfg.SlowQueryThresh = 200 * time.Millisecond
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(cfg.DBSystem)}
	if !cfg.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}
	if err := registerQueryTiming(db, cfg.SlowQueryThresh); err != nil {
		return err
	}

	logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", cfg.LogFullSQL),
		zap.Duration("slow_query_threshold", cfg.SlowQueryThresh),
	)
	return nil
}

func registerQueryTiming(db *gorm.DB, threshold time.Duration) error {
	before := func(tx *gorm.DB) {
		if tx.Statement.Context != nil {
			tx.Statement.Context = context.WithValue(tx.Statement.Context, queryStartKey{}, time.Now())
		}
	}
	after := func(tx *gorm.DB) { annotateQuerySpan(tx, threshold) }

	cb := db.Callback()
	return errors.Join(
		cb.Create().Before("gorm:create").Register("otel_timing:before_create", before),
		cb.Query().Before("gorm:query").Register("otel_timing:before_query", before),
		cb.Update().Before("gorm:update").Register("otel_timing:before_update", before),
		cb.Delete().Before("gorm:delete").Register("otel_timing:before_delete", before),
		cb.Row().Before("gorm:row").Register("otel_timing:before_row", before),
		cb.Raw().Before("gorm:raw").Register("otel_timing:before_raw", before),
		cb.Create().After("gorm:create").Register("otel_timing:after_create", after),
		cb.Query().After("gorm:query").Register("otel_timing:after_query", after),
		cb.Update().After("gorm:update").Register("otel_timing:after_update", after),
		cb.Delete().After("gorm:delete").Register("otel_timing:after_delete", after),
		cb.Row().After("gorm:row").Register("otel_timing:after_row", after),
		cb.Raw().After("gorm:raw").Register("otel_timing:after_raw", after),
	)
}

// annotateQuerySpan adds row counts, errors and the slow-query flag to the current span
func annotateQuerySpan(tx *gorm.DB, threshold time.Duration) {
	ctx := tx.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	if tx.Statement.RowsAffected >= 0 {
		span.SetAttributes(attribute.Int64("db.rows_affected", tx.Statement.RowsAffected))
	}
	if tx.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", tx.Statement.Table))
	}
	// not-found is an expected outcome, not a failure
	if tx.Error != nil && !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		span.SetStatus(codes.Error, tx.Error.Error())
		span.RecordError(tx.Error)
	}

	if start, ok := ctx.Value(queryStartKey{}).(time.Time); ok {
		if elapsed := time.Since(start); elapsed > threshold {
			span.SetAttributes(
				attribute.Bool("db.slow_query", true),
				attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
			)
			span.AddEvent("slow_query_warning", trace.WithAttributes(
				attribute.Int64("duration_ms", elapsed.Milliseconds()),
				attribute.Int64("threshold_ms", threshold.Milliseconds()),
			))
		}
	}
}
