package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/contacts-api/internal/store"
)

// runInUnitOfWork begins a unit of work, runs fn with the unit's context and
// commits once when fn succeeds. The unit is rolled back when fn or Commit
// fails; rollback failures are logged and the original error is returned.
func runInUnitOfWork(
	ctx context.Context,
	uow store.UnitOfWork,
	log *slog.Logger,
	fn func(ctx context.Context) error,
) error {
	txCtx, err := uow.Begin(ctx)
	if err != nil {
		log.Error("failed to begin unit of work", slog.Any("error", err))
		return err
	}

	if err := fn(txCtx); err != nil {
		rollback(txCtx, uow, log)
		return err
	}

	if err := uow.Commit(txCtx); err != nil {
		log.Error("failed to commit unit of work", slog.Any("error", err))
		rollback(txCtx, uow, log)
		return err
	}

	return nil
}

func rollback(ctx context.Context, uow store.UnitOfWork, log *slog.Logger) {
	if err := uow.Rollback(ctx); err != nil {
		log.Error("failed to roll back unit of work", slog.Any("error", err))
	}
}
