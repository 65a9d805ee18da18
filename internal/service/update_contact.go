package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/contacts-api/internal/domain"
	"github.com/phrazzld/contacts-api/internal/platform/logger"
	"github.com/phrazzld/contacts-api/internal/store"
)

// UpdateContactUseCase replaces the fields of existing contacts.
type UpdateContactUseCase struct {
	repo   store.ContactStore
	logger *slog.Logger
}

// NewUpdateContactUseCase creates an UpdateContactUseCase.
func NewUpdateContactUseCase(repo store.ContactStore, log *slog.Logger) (*UpdateContactUseCase, error) {
	if repo == nil {
		return nil, fmt.Errorf("%w: contact store", ErrMissingDependency)
	}
	if log == nil {
		log = slog.Default()
	}
	return &UpdateContactUseCase{
		repo:   repo,
		logger: log.With(slog.String("component", "update_contact")),
	}, nil
}

// Execute loads the contact identified by req.ID, validates the new values and
// replaces name, phone number and email while preserving the identity.
//
// The contact is fetched before any validation, so an unknown ID yields
// store.ErrContactNotFound even when the input is also invalid. After the
// fetch, the phone number is checked first, then the name, then the email.
func (uc *UpdateContactUseCase) Execute(
	ctx context.Context,
	req UpdateContactRequest,
) (*ContactResponse, error) {
	log := logger.FromContextOrDefault(ctx, uc.logger).With(slog.Int64("contact_id", req.ID))

	var contact *domain.Contact
	err := runInUnitOfWork(ctx, uc.repo.UnitOfWork(), log, func(ctx context.Context) error {
		var err error
		contact, err = uc.repo.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}

		phone, err := domain.NewPhoneNumber(req.PhoneNumber)
		if err != nil {
			return err
		}
		if err := validateName(req.Name); err != nil {
			return err
		}
		if err := validateEmail(req.Email); err != nil {
			return err
		}

		contact.Update(req.Name, phone, req.Email)
		return uc.repo.Update(ctx, contact)
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("contact to update not found")
		} else {
			log.Error("failed to update contact", slog.Any("error", err))
		}
		return nil, err
	}

	log.Debug("contact updated")
	return NewContactResponse(contact), nil
}
