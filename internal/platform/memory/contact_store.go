package memory

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/phrazzld/contacts-api/internal/domain"
	"github.com/phrazzld/contacts-api/internal/platform/logger"
	"github.com/phrazzld/contacts-api/internal/store"
)

// ContactStore implements store.ContactStore over a mutex-guarded map.
// IDs are assigned from a counter that never goes backwards, even when a
// unit of work that reserved an ID is rolled back.
type ContactStore struct {
	mu       sync.RWMutex
	contacts map[int64]domain.Contact
	nextID   int64

	uow    *UnitOfWork
	logger *slog.Logger
}

// NewContactStore creates an empty in-memory contact store.
// If logger is nil, a default logger will be used.
func NewContactStore(logger *slog.Logger) *ContactStore {
	if logger == nil {
		logger = slog.Default()
	}

	s := &ContactStore{
		contacts: make(map[int64]domain.Contact),
		logger:   logger.With(slog.String("component", "memory_contact_store")),
	}
	s.uow = &UnitOfWork{store: s}
	return s
}

// Ensure ContactStore implements store.ContactStore interface
var _ store.ContactStore = (*ContactStore)(nil)

// UnitOfWork implements store.ContactStore.UnitOfWork.
func (s *ContactStore) UnitOfWork() store.UnitOfWork {
	return s.uow
}

// Save implements store.ContactStore.Save.
// The ID is assigned immediately; inside a unit of work the row itself only
// becomes visible after Commit.
func (s *ContactStore) Save(ctx context.Context, contact *domain.Contact) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.nextID++
	contact.ID = s.nextID
	s.mu.Unlock()

	if err := s.apply(ctx, opSave, *contact); err != nil {
		return err
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("contact saved",
		slog.Int64("contact_id", contact.ID))
	return nil
}

// Update implements store.ContactStore.Update.
func (s *ContactStore) Update(ctx context.Context, contact *domain.Contact) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.apply(ctx, opUpdate, *contact)
}

// Delete implements store.ContactStore.Delete.
func (s *ContactStore) Delete(ctx context.Context, contact *domain.Contact) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.apply(ctx, opDelete, *contact)
}

// GetByID implements store.ContactStore.GetByID.
func (s *ContactStore) GetByID(ctx context.Context, id int64) (*domain.Contact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.contacts[id]
	if !ok {
		return nil, store.ErrContactNotFound
	}
	return &c, nil
}

// GetAll implements store.ContactStore.GetAll.
// Contacts are returned in ID order.
func (s *ContactStore) GetAll(ctx context.Context) ([]*domain.Contact, error) {
	return s.GetByDDD(ctx, "")
}

// GetByDDD implements store.ContactStore.GetByDDD.
func (s *ContactStore) GetByDDD(ctx context.Context, ddd string) ([]*domain.Contact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	out := make([]*domain.Contact, 0, len(s.contacts))
	for _, c := range s.contacts {
		if ddd != "" && c.DDD() != ddd {
			continue
		}
		c := c
		out = append(out, &c)
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b *domain.Contact) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		default:
			return 0
		}
	})
	return out, nil
}

// apply stages op in the unit of work carried by ctx, or writes it
// immediately when there is none.
func (s *ContactStore) apply(ctx context.Context, kind opKind, contact domain.Contact) error {
	o := op{kind: kind, contact: contact}

	if u := unitFromContext(ctx, s); u != nil {
		return u.stage(o)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.check(o, nil); err != nil {
		return err
	}
	s.write(o)
	return nil
}

// check reports whether o can be applied to the current state plus the
// contacts created by earlier staged operations. Callers hold s.mu.
func (s *ContactStore) check(o op, staged map[int64]bool) error {
	if o.kind == opSave {
		return nil
	}
	if _, ok := s.contacts[o.contact.ID]; ok {
		return nil
	}
	if staged[o.contact.ID] {
		return nil
	}
	return store.ErrContactNotFound
}

// write applies o. Callers hold s.mu and have checked o.
func (s *ContactStore) write(o op) {
	switch o.kind {
	case opSave, opUpdate:
		s.contacts[o.contact.ID] = o.contact
	case opDelete:
		delete(s.contacts, o.contact.ID)
	}
}

// exists reports whether id is stored. Callers must not hold s.mu.
func (s *ContactStore) exists(id int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.contacts[id]
	return ok
}
