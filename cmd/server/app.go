package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/contacts-api/internal/api"
	"github.com/phrazzld/contacts-api/internal/config"
	"github.com/phrazzld/contacts-api/internal/platform/cache"
	"github.com/phrazzld/contacts-api/internal/platform/memory"
	"github.com/phrazzld/contacts-api/internal/platform/postgres"
	"github.com/phrazzld/contacts-api/internal/service"
	"github.com/phrazzld/contacts-api/internal/store"
	"github.com/redis/go-redis/v9"
)

// Storage drivers accepted in config.StorageConfig.Driver.
const (
	driverPostgres = "postgres"
	driverMemory   = "memory"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// Connections, nil when the configuration does not need them.
	db    *sql.DB
	redis *redis.Client

	contacts       store.ContactStore
	contactHandler *api.ContactHandler
}

// newApplication creates a new application instance with all dependencies initialized.
// Connections opened before a failure are closed before returning the error.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	if err := app.setupStore(ctx); err != nil {
		app.cleanup()
		return nil, err
	}

	if err := app.setupHandlers(); err != nil {
		app.cleanup()
		return nil, err
	}

	logger.Info("Application initialized successfully",
		slog.String("storage_driver", cfg.Storage.Driver),
		slog.Bool("cache_enabled", cfg.Cache.Enabled))
	return app, nil
}

// setupStore builds the contact store selected by the configuration,
// wrapped in the Redis cache when it is enabled.
func (app *application) setupStore(ctx context.Context) error {
	switch app.config.Storage.Driver {
	case driverPostgres:
		db, err := setupAppDatabase(ctx, app.config.Database, app.logger)
		if err != nil {
			return err
		}
		app.db = db
		app.contacts = postgres.NewPostgresContactStore(db, app.logger)
	case driverMemory:
		app.logger.Warn("Using in-memory contact store; data is lost on restart")
		app.contacts = memory.NewContactStore(app.logger)
	default:
		return fmt.Errorf("unsupported storage driver: %q", app.config.Storage.Driver)
	}

	if !app.config.Cache.Enabled {
		return nil
	}

	client, err := setupRedis(ctx, app.config.Cache, app.logger)
	if err != nil {
		return err
	}
	app.redis = client
	app.contacts = cache.NewCachedContactStore(app.contacts, client, cache.Config{
		TTL: time.Duration(app.config.Cache.TTLSeconds) * time.Second,
	}, app.logger)
	return nil
}

// setupHandlers creates the use cases over the contact store and the HTTP handler using them.
func (app *application) setupHandlers() error {
	inserter, err := service.NewInsertContactUseCase(app.contacts, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create insert use case: %w", err)
	}
	updater, err := service.NewUpdateContactUseCase(app.contacts, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create update use case: %w", err)
	}
	deleter, err := service.NewDeleteContactUseCase(app.contacts, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create delete use case: %w", err)
	}
	reader, err := service.NewGetContactsUseCase(app.contacts, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create get use case: %w", err)
	}

	app.contactHandler, err = api.NewContactHandler(inserter, updater, deleter, reader, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create contact handler: %w", err)
	}
	return nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("Error closing redis connection", slog.String("error", err.Error()))
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", slog.String("error", err.Error()))
		}
	}

	app.logger.Info("Application shutdown completed")
}
