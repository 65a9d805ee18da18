package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/contacts-api/internal/platform/logger"
	"github.com/phrazzld/contacts-api/internal/store"
)

// UnitOfWork implements store.UnitOfWork with a database transaction bound
// to the context returned by Begin.
type UnitOfWork struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewUnitOfWork creates a UnitOfWork that begins transactions on db.
func NewUnitOfWork(db *sql.DB, logger *slog.Logger) *UnitOfWork {
	if logger == nil {
		logger = slog.Default()
	}
	return &UnitOfWork{
		db:     db,
		logger: logger.With(slog.String("component", "unit_of_work")),
	}
}

var _ store.UnitOfWork = (*UnitOfWork)(nil)

// Begin starts a transaction and returns a context carrying it.
// Units do not nest: beginning inside an open unit fails.
func (u *UnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	if _, ok := store.TxFromContext(ctx); ok {
		return ctx, fmt.Errorf("%w: unit of work already in progress", store.ErrTransactionFailed)
	}

	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		logger.FromContextOrDefault(ctx, u.logger).Error("failed to begin transaction",
			slog.String("error", err.Error()))
		return ctx, fmt.Errorf("%w: begin: %w", store.ErrTransactionFailed, err)
	}

	return store.ContextWithTx(ctx, tx), nil
}

// Commit commits the transaction carried by ctx.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	tx, ok := store.TxFromContext(ctx)
	if !ok {
		return store.ErrNoTransaction
	}

	if err := tx.Commit(); err != nil {
		logger.FromContextOrDefault(ctx, u.logger).Error("failed to commit transaction",
			slog.String("error", err.Error()))
		// Deferred constraint violations surface here and keep their store meaning.
		if mapped := MapError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("%w: commit: %w", store.ErrTransactionFailed, err)
	}
	return nil
}

// Rollback aborts the transaction carried by ctx.
// It is a no-op when the transaction has already been committed or rolled back.
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	tx, ok := store.TxFromContext(ctx)
	if !ok {
		return store.ErrNoTransaction
	}

	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("%w: rollback: %w", store.ErrTransactionFailed, err)
	}
	return nil
}
