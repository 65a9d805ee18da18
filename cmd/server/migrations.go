package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/contacts-api/internal/ciutil"
	"github.com/phrazzld/contacts-api/internal/config"
	"github.com/phrazzld/contacts-api/internal/platform/postgres"
)

var (
	errNoDatabaseURL           = errors.New("database URL is empty: check DATABASE_URL or CONTACTS_DATABASE_URL")
	errUnknownMigrationCommand = errors.New("unknown migration command (expected up, down, reset, status, or version)")
)

// runMigrations executes a goose command against the configured database.
func runMigrations(ctx context.Context, cfg *config.Config, command string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	// Use a correlation ID for all migration logs to allow tracing the entire operation
	migrationLogger := logger.With(
		slog.String("correlation_id", uuid.NewString()),
		slog.String("component", "migrations"),
		slog.String("command", command),
	)

	switch command {
	case postgres.MigrateUp, postgres.MigrateDown, postgres.MigrateReset,
		postgres.MigrateStatus, postgres.MigrateVersion:
	default:
		return fmt.Errorf("%w: %q", errUnknownMigrationCommand, command)
	}

	if cfg.Database.URL == "" {
		migrationLogger.Error("Database URL is empty",
			slog.String("resolution", "check DATABASE_URL environment variable or config file"))
		return errNoDatabaseURL
	}

	migrationLogger.Info("Starting migration operation",
		slog.String("url", maskDatabaseURL(cfg.Database.URL)))
	startTime := time.Now()

	db, err := setupAppDatabase(ctx, cfg.Database, migrationLogger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			migrationLogger.Error("Error closing database connection", slog.String("error", cerr.Error()))
		}
	}()

	err = postgres.Migrate(ctx, db, command, migrationLogger)
	migrationLogger.Info("Migration operation completed",
		slog.Int64("duration_ms", time.Since(startTime).Milliseconds()),
		slog.Bool("success", err == nil))
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

// maskDatabaseURL masks the password in a database URL for safe logging
func maskDatabaseURL(dbURL string) string {
	parsedURL, err := url.Parse(dbURL)
	if err != nil {
		return "invalid-url"
	}

	if parsedURL.User != nil {
		return ciutil.MaskURLPassword(parsedURL)
	}

	return dbURL
}
