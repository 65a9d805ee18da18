package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/contacts-api/internal/platform/logger"
	"github.com/phrazzld/contacts-api/internal/store"
)

// GetContactsUseCase answers read-only contact queries.
type GetContactsUseCase struct {
	repo   store.ContactStore
	logger *slog.Logger
}

// NewGetContactsUseCase creates a GetContactsUseCase.
func NewGetContactsUseCase(repo store.ContactStore, log *slog.Logger) (*GetContactsUseCase, error) {
	if repo == nil {
		return nil, fmt.Errorf("%w: contact store", ErrMissingDependency)
	}
	if log == nil {
		log = slog.Default()
	}
	return &GetContactsUseCase{
		repo:   repo,
		logger: log.With(slog.String("component", "get_contacts")),
	}, nil
}

// Execute returns the contacts whose area code equals ddd.
// An empty ddd returns every contact.
func (uc *GetContactsUseCase) Execute(ctx context.Context, ddd string) ([]*ContactResponse, error) {
	contacts, err := uc.repo.GetByDDD(ctx, ddd)
	if err != nil {
		logger.FromContextOrDefault(ctx, uc.logger).Error("failed to list contacts by ddd",
			slog.String("ddd", ddd),
			slog.Any("error", err))
		return nil, err
	}
	return newContactResponses(contacts), nil
}

// GetByID returns a single contact or store.ErrContactNotFound.
func (uc *GetContactsUseCase) GetByID(ctx context.Context, id int64) (*ContactResponse, error) {
	contact, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		if !store.IsNotFoundError(err) {
			logger.FromContextOrDefault(ctx, uc.logger).Error("failed to get contact",
				slog.Int64("contact_id", id),
				slog.Any("error", err))
		}
		return nil, err
	}
	return NewContactResponse(contact), nil
}

// GetAll returns every contact.
func (uc *GetContactsUseCase) GetAll(ctx context.Context) ([]*ContactResponse, error) {
	contacts, err := uc.repo.GetAll(ctx)
	if err != nil {
		logger.FromContextOrDefault(ctx, uc.logger).Error("failed to list contacts",
			slog.Any("error", err))
		return nil, err
	}
	return newContactResponses(contacts), nil
}
