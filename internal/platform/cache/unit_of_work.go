package cache

import (
	"context"

	"github.com/phrazzld/contacts-api/internal/store"
)

type unitMarkerKey struct{}

// inUnit reports whether ctx was returned by cachedUnitOfWork.Begin.
func inUnit(ctx context.Context) bool {
	marked, _ := ctx.Value(unitMarkerKey{}).(bool)
	return marked
}

// cachedUnitOfWork delegates to the wrapped store's unit of work and
// invalidates the cache once a commit succeeds.
type cachedUnitOfWork struct {
	inner store.UnitOfWork
	cache *CachedContactStore
}

var _ store.UnitOfWork = (*cachedUnitOfWork)(nil)

func (u *cachedUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	txCtx, err := u.inner.Begin(ctx)
	if err != nil {
		return txCtx, err
	}
	return context.WithValue(txCtx, unitMarkerKey{}, true), nil
}

func (u *cachedUnitOfWork) Commit(ctx context.Context) error {
	if err := u.inner.Commit(ctx); err != nil {
		return err
	}
	u.cache.invalidate(ctx)
	return nil
}

func (u *cachedUnitOfWork) Rollback(ctx context.Context) error {
	return u.inner.Rollback(ctx)
}
