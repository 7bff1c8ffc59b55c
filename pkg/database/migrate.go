package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// MigrateUp applies all pending migrations. It reports whether anything changed.
func MigrateUp(db *sql.DB, migrationsPath string, logger *slog.Logger) (bool, error) {
	return runMigrations(db, migrationsPath, logger, func(m *migrate.Migrate) error { return m.Up() })
}

// MigrateDown rolls back the given number of migrations.
func MigrateDown(db *sql.DB, migrationsPath string, steps int, logger *slog.Logger) (bool, error) {
	if steps <= 0 {
		return false, fmt.Errorf("steps must be positive, got %d", steps)
	}
	return runMigrations(db, migrationsPath, logger, func(m *migrate.Migrate) error { return m.Steps(-steps) })
}

func runMigrations(db *sql.DB, migrationsPath string, logger *slog.Logger, apply func(*migrate.Migrate) error) (bool, error) {
	if err := db.Ping(); err != nil {
		return false, fmt.Errorf("failed to ping database for migrations: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return false, fmt.Errorf("could not create postgres driver instance for migrations: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(migrationsPath, "postgres", driver)
	if err != nil {
		return false, fmt.Errorf("could not create migrate instance: %w", err)
	}

	applyErr := apply(m)
	changed := true
	if errors.Is(applyErr, migrate.ErrNoChange) {
		changed = false
		applyErr = nil
	}
	if applyErr != nil {
		return false, fmt.Errorf("failed to apply migrations: %w", applyErr)
	}

	version, dirty, verr := m.Version()
	if verr == nil {
		logger.Info("Migration state", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
	}
	return changed, nil
}
