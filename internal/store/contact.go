package store

import (
	"context"

	"github.com/phrazzld/contacts-api/internal/domain"
)

// ContactStore defines the interface for contact data persistence.
type ContactStore interface {
	// Save persists a new contact and assigns its ID.
	Save(ctx context.Context, contact *domain.Contact) error

	// Update writes the current state of an existing contact.
	// Returns ErrContactNotFound if the contact does not exist.
	Update(ctx context.Context, contact *domain.Contact) error

	// Delete removes the contact from the store.
	// Returns ErrContactNotFound if the contact does not exist.
	Delete(ctx context.Context, contact *domain.Contact) error

	// GetByID retrieves a contact by its ID.
	// Returns ErrContactNotFound if the contact does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Contact, error)

	// GetAll returns every contact. No particular order is guaranteed.
	GetAll(ctx context.Context) ([]*domain.Contact, error)

	// GetByDDD returns the contacts whose phone area code equals ddd.
	// An empty ddd returns every contact.
	GetByDDD(ctx context.Context, ddd string) ([]*domain.Contact, error)

	// UnitOfWork returns the commit boundary for mutations made through this store.
	UnitOfWork() UnitOfWork
}

// UnitOfWork groups store mutations into a single persisted change.
//
// Begin returns a context that carries the unit; store calls made with that
// context take part in it. Commit persists the pending changes and Rollback
// discards them. Rollback after a successful Commit is a no-op.
// Implementations keep per-unit state in the context, so one instance can be
// shared by concurrent requests.
type UnitOfWork interface {
	Begin(ctx context.Context) (context.Context, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
