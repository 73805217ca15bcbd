package migration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add orders table", "add_orders_table"},
		{"Add-Orders-Table", "add_orders_table"},
		{"add__orders__table", "add_orders_table"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"_leading_and_trailing_", "leading_and_trailing"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "migrations")
	at := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

	mf, err := createMigrationAt(dir, "Add courier callbacks", "Track courier callback receipts", at)
	require.NoError(t, err)
	assert.Equal(t, "20260304050607", mf.Version)
	assert.Equal(t, filepath.Join(dir, "20260304050607_add_courier_callbacks.up.sql"), mf.UpPath)

	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "-- Migration: add_courier_callbacks\n")
	assert.Contains(t, string(up), "-- Description: Track courier callback receipts")

	down, err := os.ReadFile(mf.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "(Rollback)")

	_, err = createMigrationAt(dir, "Add courier callbacks", "", at)
	assert.Error(t, err, "same version and name must not overwrite")
}

func TestCreateMigration_EmptyName(t *testing.T) {
	_, err := CreateMigration(t.TempDir(), "!!!", "")
	assert.ErrorIs(t, err, ErrEmptyMigrationName)
}

func TestListMigrations(t *testing.T) {
	names, err := ListMigrations(filepath.Join("..", "..", "..", "migrations"))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"20260105090000_create_stores_and_integrations",
		"20260105090100_create_catalog",
		"20260105090200_create_orders",
	}, names)

	empty, err := ListMigrations(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Empty(t, empty)
}
