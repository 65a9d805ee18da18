package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/contacts-api/internal/platform/logger"
	"github.com/phrazzld/contacts-api/internal/store"
)

// DeleteContactUseCase removes contacts.
type DeleteContactUseCase struct {
	repo   store.ContactStore
	logger *slog.Logger
}

// NewDeleteContactUseCase creates a DeleteContactUseCase.
func NewDeleteContactUseCase(repo store.ContactStore, log *slog.Logger) (*DeleteContactUseCase, error) {
	if repo == nil {
		return nil, fmt.Errorf("%w: contact store", ErrMissingDependency)
	}
	if log == nil {
		log = slog.Default()
	}
	return &DeleteContactUseCase{
		repo:   repo,
		logger: log.With(slog.String("component", "delete_contact")),
	}, nil
}

// Execute loads the contact identified by id and deletes it.
// An unknown id returns store.ErrContactNotFound without deleting or committing anything.
func (uc *DeleteContactUseCase) Execute(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, uc.logger).With(slog.Int64("contact_id", id))

	err := runInUnitOfWork(ctx, uc.repo.UnitOfWork(), log, func(ctx context.Context) error {
		contact, err := uc.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		return uc.repo.Delete(ctx, contact)
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("contact to delete not found")
		} else {
			log.Error("failed to delete contact", slog.Any("error", err))
		}
		return err
	}

	log.Debug("contact deleted")
	return nil
}
