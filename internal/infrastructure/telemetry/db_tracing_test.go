package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type tracedRow struct {
	ID   uint
	Name string
}

func TestRegisterDBTracing(t *testing.T) {
	sr := setupTestTracer(t)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&tracedRow{}))

	require.NoError(t, RegisterDBTracing(db, DBTracingConfig{Enabled: true, DBSystem: "sqlite"}, zap.NewNop()))

	ctx, span := StartSpan(context.Background(), "parent")
	require.NoError(t, db.WithContext(ctx).Create(&tracedRow{Name: "kettle"}).Error)
	span.End()

	var names []string
	for _, s := range sr.Ended() {
		names = append(names, s.Name())
	}
	assert.Contains(t, names, "parent")
	assert.Greater(t, len(names), 1, "query spans recorded under the parent")
}

func TestRegisterDBTracing_Disabled(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	assert.NoError(t, RegisterDBTracing(db, DBTracingConfig{}, zap.NewNop()))
	assert.Nil(t, db.Callback().Create().Get("otel_timing:before_create"))
}
