package persistence

import (
	"fmt"
	"strings"
	"testing"

	"github.com/Fayyez/UniKhata-sub000/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a private in-memory SQLite database with the full schema.
// One connection keeps every statement on the same database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.NewReplacer("/", "_", " ", "_").Replace(t.Name()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

// prefixSealer marks sealed values so tests can see what reached the table
type prefixSealer struct{}

func (prefixSealer) Seal(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}
	return "sealed:" + plaintext, nil
}

func (prefixSealer) Open(sealed string) (string, error) {
	if sealed == "" {
		return "", nil
	}
	if !strings.HasPrefix(sealed, "sealed:") {
		return "", fmt.Errorf("not sealed: %q", sealed)
	}
	return strings.TrimPrefix(sealed, "sealed:"), nil
}
