package persistence

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Fayyez/UniKhata-sub000/internal/infrastructure/config"
	"github.com/Fayyez/UniKhata-sub000/internal/infrastructure/persistence/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database wraps the gorm handle shared by every repository
type Database struct {
	DB *gorm.DB
}

// OpenDatabase connects to PostgreSQL, applies the pool limits from cfg and
// waits for the first ping within ctx. Queries are logged through gormLogger.
func OpenDatabase(ctx context.Context, cfg *config.DatabaseConfig, gormLogger logger.Interface) (*Database, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Database{DB: db}, nil
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// PingContext is used by the health endpoint
func (d *Database) PingContext(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// CheckSchema reports the tables the repositories need that do not exist yet.
// The server refuses to start against an unmigrated database rather than
// failing on the first pull.
func (d *Database) CheckSchema(ctx context.Context) error {
	migrator := d.DB.WithContext(ctx).Migrator()
	var missing []string
	for _, m := range models.All() {
		if migrator.HasTable(m) {
			continue
		}
		stmt := &gorm.Statement{DB: d.DB}
		if err := stmt.Parse(m); err != nil {
			return fmt.Errorf("failed to parse model %T: %w", m, err)
		}
		missing = append(missing, stmt.Schema.Table)
	}
	if len(missing) > 0 {
		return fmt.Errorf("schema is not migrated, missing tables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// PoolStats is the subset of sql.DBStats exposed on /system/info
type PoolStats struct {
	MaxOpen int   `json:"max_open"`
	Open    int   `json:"open"`
	InUse   int   `json:"in_use"`
	Idle    int   `json:"idle"`
	Waits   int64 `json:"waits"`
}

// PoolStats returns the current connection pool counters
func (d *Database) PoolStats() (PoolStats, error) {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return PoolStats{}, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	s := sqlDB.Stats()
	return PoolStats{
		MaxOpen: s.MaxOpenConnections,
		Open:    s.OpenConnections,
		InUse:   s.InUse,
		Idle:    s.Idle,
		Waits:   s.WaitCount,
	}, nil
}
