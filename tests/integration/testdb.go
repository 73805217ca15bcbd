// Package integration runs repository and reconciliation tests against a real
// PostgreSQL started with testcontainers.
package integration

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	mpg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Fayyez/UniKhata-sub000/internal/domain/integration"
	"github.com/Fayyez/UniKhata-sub000/internal/domain/store"
)

var (
	sharedContainer    testcontainers.Container
	sharedContainerMu  sync.Mutex
	sharedContainerDSN string
)

// TestDB represents a test database connection
type TestDB struct {
	DB        *gorm.DB
	SqlDB     *sql.DB
	Container testcontainers.Container
	DSN       string
	t         *testing.T
}

// NewSharedTestDB returns a connection to a PostgreSQL container shared by the
// package. Migrations run once; tests isolate themselves with fresh stores.
func NewSharedTestDB(t *testing.T) *TestDB {
	t.Helper()

	sharedContainerMu.Lock()
	defer sharedContainerMu.Unlock()

	ctx := context.Background()

	if sharedContainer == nil {
		container, err := tcpostgres.Run(ctx,
			"postgres:16-alpine",
			tcpostgres.WithDatabase("unikhata_test"),
			tcpostgres.WithUsername("postgres"),
			tcpostgres.WithPassword("admin123"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(60*time.Second)),
		)
		require.NoError(t, err, "Failed to start PostgreSQL container")

		dsn, err := container.ConnectionString(ctx, "sslmode=disable")
		require.NoError(t, err, "Failed to get connection string")

		sharedContainer = container
		sharedContainerDSN = dsn

		_, sqlDB := connectToDatabase(t, dsn)
		runMigrations(t, sqlDB)
		_ = sqlDB.Close()
	}

	db, sqlDB := connectToDatabase(t, sharedContainerDSN)
	testDB := &TestDB{
		DB:        db,
		SqlDB:     sqlDB,
		Container: sharedContainer,
		DSN:       sharedContainerDSN,
		t:         t,
	}
	t.Cleanup(func() {
		_ = testDB.SqlDB.Close()
	})
	return testDB
}

// CreateTestStore inserts a store with one DUMMY_STORE and one DUMMY_COURIER
// record and returns it
func (tdb *TestDB) CreateTestStore(save func(context.Context, *store.Store) error) *store.Store {
	tdb.t.Helper()

	st, err := store.NewStore(fmt.Sprintf("Test Store %s", uuid.NewString()[:8]), uuid.New())
	require.NoError(tdb.t, err)

	estore, err := integration.NewEcommerceIntegration(st.ID, "Dummy Store", integration.ProviderDummyStore, "", "http://localhost:5000", "")
	require.NoError(tdb.t, err)
	require.NoError(tdb.t, st.AddEcommerceIntegration(estore))

	courier, err := integration.NewCourierIntegration(st.ID, "Dummy Courier", integration.ProviderDummyCourier, "", "http://localhost:5001", "")
	require.NoError(tdb.t, err)
	require.NoError(tdb.t, st.AddCourierIntegration(courier))

	require.NoError(tdb.t, save(context.Background(), st))
	return st
}

func connectToDatabase(t *testing.T, dsn string) (*gorm.DB, *sql.DB) {
	t.Helper()

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}
	if os.Getenv("TEST_DB_DEBUG") != "" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(gormpostgres.Open(dsn), gormConfig)
	require.NoError(t, err, "Failed to connect to database")

	sqlDB, err := db.DB()
	require.NoError(t, err, "Failed to get underlying SQL DB")

	// enough connections for the concurrent reconciliation tests
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	return db, sqlDB
}

func runMigrations(t *testing.T, sqlDB *sql.DB) {
	t.Helper()

	migrationsPath := findMigrationsPath()
	require.NotEmpty(t, migrationsPath, "Could not find migrations directory")

	driver, err := mpg.WithInstance(sqlDB, &mpg.Config{})
	require.NoError(t, err, "Failed to create migration driver")

	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsPath, "postgres", driver)
	require.NoError(t, err, "Failed to create migrate instance")

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		require.NoError(t, err, "Failed to run migrations")
	}
}

// findMigrationsPath walks up from this file to the repository's migrations dir
func findMigrationsPath() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return ""
	}

	dir := filepath.Dir(filename)
	for i := 0; i < 5; i++ {
		migrationsPath := filepath.Join(dir, "migrations")
		if _, err := os.Stat(migrationsPath); err == nil {
			return migrationsPath
		}
		dir = filepath.Dir(dir)
	}
	return ""
}

// CleanupSharedContainer terminates the shared container. Called from TestMain.
func CleanupSharedContainer() {
	sharedContainerMu.Lock()
	defer sharedContainerMu.Unlock()

	if sharedContainer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		_ = sharedContainer.Terminate(ctx)
		sharedContainer = nil
		sharedContainerDSN = ""
	}
}
