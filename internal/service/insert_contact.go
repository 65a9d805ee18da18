package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/contacts-api/internal/domain"
	"github.com/phrazzld/contacts-api/internal/platform/logger"
	"github.com/phrazzld/contacts-api/internal/store"
)

// InsertContactUseCase creates new contacts.
type InsertContactUseCase struct {
	repo   store.ContactStore
	logger *slog.Logger
}

// NewInsertContactUseCase creates an InsertContactUseCase.
// It returns ErrMissingDependency if repo is nil; a nil logger falls back to slog.Default().
func NewInsertContactUseCase(repo store.ContactStore, log *slog.Logger) (*InsertContactUseCase, error) {
	if repo == nil {
		return nil, fmt.Errorf("%w: contact store", ErrMissingDependency)
	}
	if log == nil {
		log = slog.Default()
	}
	return &InsertContactUseCase{
		repo:   repo,
		logger: log.With(slog.String("component", "insert_contact")),
	}, nil
}

// Execute validates req, saves the new contact and commits the unit of work.
// Validation runs in the order name, email, phone number and the first failure
// is returned. The returned response carries the ID assigned by the store.
func (uc *InsertContactUseCase) Execute(
	ctx context.Context,
	req InsertContactRequest,
) (*ContactResponse, error) {
	log := logger.FromContextOrDefault(ctx, uc.logger)

	if err := validateName(req.Name); err != nil {
		return nil, err
	}
	if err := validateEmail(req.Email); err != nil {
		return nil, err
	}
	phone, err := domain.NewPhoneNumber(req.PhoneNumber)
	if err != nil {
		return nil, err
	}

	contact := domain.NewContact(req.Name, phone, req.Email)

	err = runInUnitOfWork(ctx, uc.repo.UnitOfWork(), log, func(ctx context.Context) error {
		return uc.repo.Save(ctx, contact)
	})
	if err != nil {
		log.Error("failed to insert contact", slog.Any("error", err))
		return nil, err
	}

	log.Debug("contact inserted",
		slog.Int64("contact_id", contact.ID),
		slog.String("ddd", contact.DDD()))

	return NewContactResponse(contact), nil
}
