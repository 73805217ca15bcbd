// Package migration applies the SQL files under migrations/ with golang-migrate.
package migration

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

// Migrator runs schema migrations against Postgres
type Migrator struct {
	migrate *migrate.Migrate
	logger  *zap.Logger
}

// New creates a Migrator on an open connection
func New(db *sql.DB, migrationsPath string, logger *zap.Logger) (*Migrator, error) {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres driver: %w", err)
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsPath, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return &Migrator{migrate: m, logger: logger}, nil
}

// Up runs all pending migrations
func (m *Migrator) Up() error {
	if err := m.migrate.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.logger.Info("No migrations to apply")
			return nil
		}
		return fmt.Errorf("migration up failed: %w", err)
	}
	return m.logVersion("Migrations applied")
}

// Down rolls back all migrations
func (m *Migrator) Down() error {
	if err := m.migrate.Down(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.logger.Info("No migrations to roll back")
			return nil
		}
		return fmt.Errorf("migration down failed: %w", err)
	}
	m.logger.Info("All migrations rolled back")
	return nil
}

// Steps applies n migrations (positive = up, negative = down)
func (m *Migrator) Steps(n int) error {
	if err := m.migrate.Steps(n); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.logger.Info("No migrations to apply")
			return nil
		}
		return fmt.Errorf("migration steps failed: %w", err)
	}
	return m.logVersion("Migration steps applied")
}

// GoTo migrates to a specific version
func (m *Migrator) GoTo(version uint) error {
	if err := m.migrate.Migrate(version); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.logger.Info("Already at target version", zap.Uint("version", version))
			return nil
		}
		return fmt.Errorf("migration to version %d failed: %w", version, err)
	}
	return m.logVersion("Migrated to version")
}

// Version returns the current version; 0 when nothing was applied
func (m *Migrator) Version() (uint, bool, error) {
	version, dirty, err := m.migrate.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get migration version: %w", err)
	}
	return version, dirty, nil
}

// Force sets the version without running migrations, clearing a dirty state
func (m *Migrator) Force(version int) error {
	m.logger.Warn("Forcing migration version", zap.Int("version", version))
	if err := m.migrate.Force(version); err != nil {
		return fmt.Errorf("failed to force version %d: %w", version, err)
	}
	return nil
}

// Close releases the source and database handles
func (m *Migrator) Close() error {
	sourceErr, dbErr := m.migrate.Close()
	return errors.Join(sourceErr, dbErr)
}

func (m *Migrator) logVersion(msg string) error {
	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	m.logger.Info(msg, zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}
