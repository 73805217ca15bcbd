package logger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func TestGormLogger_LogMode(t *testing.T) {
	gormLog := NewGormLogger(zap.NewNop(), gormlogger.Info)
	next, ok := gormLog.LogMode(gormlogger.Warn).(*GormLogger)
	require.True(t, ok)
	assert.Equal(t, gormlogger.Info, gormLog.logLevel)
	assert.Equal(t, gormlogger.Warn, next.logLevel)
}

func TestGormLogger_Trace(t *testing.T) {
	sql := func() (string, int64) { return "SELECT * FROM orders", 2 }

	tests := []struct {
		name    string
		level   gormlogger.LogLevel
		begin   time.Time
		err     error
		opts    []GormLoggerOption
		wantMsg string
	}{
		{"error", gormlogger.Error, time.Now(), errors.New("deadlock"), nil, "SQL Error"},
		{"record not found ignored", gormlogger.Error, time.Now(), gormlogger.ErrRecordNotFound, nil, ""},
		{"record not found logged", gormlogger.Error, time.Now(), gormlogger.ErrRecordNotFound,
			[]GormLoggerOption{WithIgnoreRecordNotFoundError(false)}, "SQL Error"},
		{"slow", gormlogger.Warn, time.Now().Add(-time.Second), nil, nil, "SLOW SQL >= 200ms"},
		{"custom threshold", gormlogger.Warn, time.Now().Add(-time.Second), nil,
			[]GormLoggerOption{WithSlowThreshold(5 * time.Second)}, ""},
		{"query at info", gormlogger.Info, time.Now(), nil, nil, "SQL Query"},
		{"query below info", gormlogger.Warn, time.Now(), nil, nil, ""},
		{"silent", gormlogger.Silent, time.Now(), errors.New("x"), nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, recorded := observer.New(zapcore.DebugLevel)
			gl := NewGormLogger(zap.New(core), tt.level, tt.opts...)

			ctx := WithStoreID(context.Background(), "store-1")
			gl.Trace(ctx, tt.begin, sql, tt.err)

			if tt.wantMsg == "" {
				assert.Zero(t, recorded.Len())
				return
			}
			require.Equal(t, 1, recorded.Len())
			entry := recorded.All()[0]
			assert.Equal(t, tt.wantMsg, entry.Message)
			assert.Equal(t, "SELECT * FROM orders", entry.ContextMap()["sql"])
			assert.Equal(t, "store-1", entry.ContextMap()["store_id"])
		})
	}
}

func TestGormLogger_AbortedStatement(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	gl := NewGormLogger(zap.New(core), gormlogger.Warn)

	sql := func() (string, int64) { return "INSERT INTO orders", 0 }
	gl.Trace(context.Background(), time.Now(), sql, fmt.Errorf("insert order: %w", context.DeadlineExceeded))

	require.Equal(t, 1, recorded.Len())
	entry := recorded.All()[0]
	assert.Equal(t, "SQL Aborted", entry.Message)
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
}

func TestGormLogger_TruncatesLongStatements(t *testing.T) {
	long := "INSERT INTO order_lines VALUES " + strings.Repeat("(?,?,?,?),", 500)

	tests := []struct {
		name string
		opts []GormLoggerOption
		want int
	}{
		{"default limit", nil, defaultMaxSQLLength + len("...(truncated)")},
		{"custom limit", []GormLoggerOption{WithMaxSQLLength(64)}, 64 + len("...(truncated)")},
		{"disabled", []GormLoggerOption{WithMaxSQLLength(0)}, len(long)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, recorded := observer.New(zapcore.DebugLevel)
			gl := NewGormLogger(zap.New(core), gormlogger.Info, tt.opts...)

			gl.Trace(context.Background(), time.Now(), func() (string, int64) { return long, 500 }, nil)

			require.Equal(t, 1, recorded.Len())
			assert.Len(t, recorded.All()[0].ContextMap()["sql"], tt.want)
		})
	}
}

func TestGormLogger_Messages(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	gl := NewGormLogger(zap.New(core), gormlogger.Warn)

	gl.Info(context.Background(), "hidden %d", 1)
	gl.Warn(context.Background(), "shown %d", 2)
	gl.Error(context.Background(), "shown %d", 3)

	require.Equal(t, 2, recorded.Len())
	assert.Equal(t, "shown 2", recorded.All()[0].Message)
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, MapGormLogLevel("silent"))
	assert.Equal(t, gormlogger.Error, MapGormLogLevel("error"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("warn"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("DEBUG"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("info"))
}
