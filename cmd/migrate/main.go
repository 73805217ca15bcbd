// Command migrate manages the database schema.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/Fayyez/UniKhata-sub000/internal/infrastructure/config"
	"github.com/Fayyez/UniKhata-sub000/internal/infrastructure/logger"
	"github.com/Fayyez/UniKhata-sub000/internal/infrastructure/migration"
)

const defaultMigrationsPath = "migrations"

func main() {
	var (
		migrationsPath string
		logLevel       string
	)
	flag.StringVar(&migrationsPath, "path", defaultMigrationsPath, "Path to migrations directory")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Usage = printUsage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log, err := logger.New(logger.Config{Level: logLevel, Format: "console", Output: "stdout"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	absPath, err := filepath.Abs(migrationsPath)
	if err != nil {
		log.Fatal("Failed to resolve migrations path", zap.Error(err))
	}
	migrationsPath = absPath

	// create and list work on the filesystem only
	switch command {
	case "create":
		if len(args) < 2 {
			log.Fatal("Migration name required. Usage: migrate create <name> [description]")
		}
		description := ""
		if len(args) > 2 {
			description = args[2]
		}
		mf, err := migration.CreateMigration(migrationsPath, args[1], description)
		if err != nil {
			log.Fatal("Failed to create migration", zap.Error(err))
		}
		log.Info("Migration created", zap.String("up_file", mf.UpPath), zap.String("down_file", mf.DownPath))
		return
	case "list":
		names, err := migration.ListMigrations(migrationsPath)
		if err != nil {
			log.Fatal("Failed to list migrations", zap.Error(err))
		}
		for _, n := range names {
			fmt.Println("  -", n)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database", zap.Error(err))
	}

	m, err := migration.New(db, migrationsPath, log)
	if err != nil {
		log.Fatal("Failed to create migrator", zap.Error(err))
	}
	defer m.Close()

	if err := run(m, command, args[1:], log); err != nil {
		log.Fatal("Migration command failed", zap.String("command", command), zap.Error(err))
	}
}

func run(m *migration.Migrator, command string, args []string, log *zap.Logger) error {
	switch command {
	case "up":
		return m.Up()
	case "down":
		return m.Down()
	case "step":
		n, err := intArg(args, "step count")
		if err != nil {
			return err
		}
		return m.Steps(n)
	case "goto":
		n, err := intArg(args, "version")
		if err != nil {
			return err
		}
		if n < 0 {
			return fmt.Errorf("version must not be negative")
		}
		return m.GoTo(uint(n))
	case "force":
		n, err := intArg(args, "version")
		if err != nil {
			return err
		}
		return m.Force(n)
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return err
		}
		log.Info("Current migration version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		return nil
	default:
		printUsage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func intArg(args []string, what string) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("%s required", what)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", what, args[0])
	}
	return n, nil
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `UniKhata database migration tool

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                    Apply all pending migrations
  down                  Roll back all migrations
  step <n>              Apply n migrations (positive=up, negative=down)
  goto <version>        Migrate to a specific version
  version               Show current migration version
  force <version>       Force set migration version
  create <name> [desc]  Create a new migration file pair
  list                  List available migrations

Flags:
  -path string          Path to migrations directory (default: ./migrations)
  -log-level string     Log level (default: info)

Database settings come from config.toml and UNIKHATA_DATABASE_* variables.`)
}
