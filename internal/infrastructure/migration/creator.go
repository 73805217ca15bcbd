package migration

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"text/template"
	"time"
)

var migrationTemplate = template.Must(template.New("migration").Parse(`-- Migration: {{.Name}}{{if .Rollback}} (Rollback){{end}}
{{- if .Description}}
-- Description: {{.Description}}
{{- end}}

`))

// MigrationFile is a created up/down pair
type MigrationFile struct {
	Version  string
	Name     string
	UpPath   string
	DownPath string
}

// ErrEmptyMigrationName is returned when a name sanitizes to nothing
var ErrEmptyMigrationName = errors.New("migration name is empty")

var (
	separatorRun = regexp.MustCompile(`[\s_-]+`)
	invalidChars = regexp.MustCompile(`[^a-z0-9_]`)
)

// CreateMigration writes an empty up/down pair versioned by the current time
func CreateMigration(migrationsDir, name, description string) (*MigrationFile, error) {
	return createMigrationAt(migrationsDir, name, description, time.Now())
}

func createMigrationAt(migrationsDir, name, description string, now time.Time) (*MigrationFile, error) {
	clean := sanitizeName(name)
	if clean == "" {
		return nil, ErrEmptyMigrationName
	}
	if err := os.MkdirAll(migrationsDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create migrations directory: %w", err)
	}

	version := now.UTC().Format("20060102150405")
	base := filepath.Join(migrationsDir, version+"_"+clean)
	mf := &MigrationFile{Version: version, Name: clean, UpPath: base + ".up.sql", DownPath: base + ".down.sql"}

	if err := writeTemplate(mf.UpPath, clean, description, false); err != nil {
		return nil, err
	}
	if err := writeTemplate(mf.DownPath, clean, description, true); err != nil {
		_ = os.Remove(mf.UpPath)
		return nil, err
	}
	return mf, nil
}

func writeTemplate(path, name, description string, rollback bool) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	return migrationTemplate.Execute(f, map[string]any{
		"Name":        name,
		"Description": description,
		"Rollback":    rollback,
	})
}

// sanitizeName lowercases name and collapses separators into single underscores
func sanitizeName(name string) string {
	s := separatorRun.ReplaceAllString(strings.ToLower(name), "_")
	s = invalidChars.ReplaceAllString(s, "")
	return strings.Trim(s, "_")
}

// ListMigrations returns the base names of the up files in dir, oldest first
func ListMigrations(migrationsDir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(migrationsDir, "*.up.sql"))
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(filepath.Base(m), ".up.sql"))
	}
	sort.Strings(names)
	return names, nil
}
