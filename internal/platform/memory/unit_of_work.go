package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/phrazzld/contacts-api/internal/domain"
	"github.com/phrazzld/contacts-api/internal/store"
)

type opKind int

const (
	opSave opKind = iota
	opUpdate
	opDelete
)

// op is one staged mutation.
type op struct {
	kind    opKind
	contact domain.Contact
}

// unit holds the mutations staged by one Begin call.
type unit struct {
	owner *ContactStore

	mu   sync.Mutex
	ops  []op
	live map[int64]bool // contacts created or kept alive by staged ops
	done bool
}

type unitKey struct{}

func unitFromContext(ctx context.Context, owner *ContactStore) *unit {
	u, ok := ctx.Value(unitKey{}).(*unit)
	if !ok || u.owner != owner {
		return nil
	}
	return u
}

// stage records o after checking that its target exists either in the
// store or among the contacts saved earlier in this unit.
func (u *unit) stage(o op) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.done {
		return fmt.Errorf("%w: unit of work already finished", store.ErrTransactionFailed)
	}

	id := o.contact.ID
	switch o.kind {
	case opSave:
		u.live[id] = true
	case opUpdate, opDelete:
		alive, staged := u.live[id]
		if staged && !alive {
			return store.ErrContactNotFound
		}
		if !staged && !u.owner.exists(id) {
			return store.ErrContactNotFound
		}
		u.live[id] = o.kind != opDelete
	}

	u.ops = append(u.ops, o)
	return nil
}

// UnitOfWork implements store.UnitOfWork by staging mutations in the
// context and applying them all at once on Commit.
type UnitOfWork struct {
	store *ContactStore
}

var _ store.UnitOfWork = (*UnitOfWork)(nil)

// Begin returns a context carrying a new, empty unit.
// Units do not nest: beginning inside an open unit fails.
func (w *UnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	if u := unitFromContext(ctx, w.store); u != nil {
		return ctx, fmt.Errorf("%w: unit of work already in progress", store.ErrTransactionFailed)
	}
	u := &unit{owner: w.store, live: make(map[int64]bool)}
	return context.WithValue(ctx, unitKey{}, u), nil
}

// Commit applies every staged mutation atomically. If any update or delete
// targets a contact removed since it was staged, nothing is applied and
// store.ErrContactNotFound is returned.
func (w *UnitOfWork) Commit(ctx context.Context) error {
	u := unitFromContext(ctx, w.store)
	if u == nil {
		return store.ErrNoTransaction
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	if u.done {
		return fmt.Errorf("%w: unit of work already finished", store.ErrTransactionFailed)
	}
	u.done = true

	s := w.store
	s.mu.Lock()
	defer s.mu.Unlock()

	created := make(map[int64]bool)
	for _, o := range u.ops {
		if err := s.check(o, created); err != nil {
			return err
		}
		switch o.kind {
		case opSave:
			created[o.contact.ID] = true
		case opDelete:
			delete(created, o.contact.ID)
		}
	}

	for _, o := range u.ops {
		s.write(o)
	}
	u.ops = nil
	return nil
}

// Rollback discards the staged mutations. It is a no-op after Commit.
func (w *UnitOfWork) Rollback(ctx context.Context) error {
	u := unitFromContext(ctx, w.store)
	if u == nil {
		return store.ErrNoTransaction
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	u.done = true
	u.ops = nil
	return nil
}
