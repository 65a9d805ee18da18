package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/phrazzld/contacts-api/internal/domain"
	"github.com/phrazzld/contacts-api/internal/platform/logger"
	"github.com/phrazzld/contacts-api/internal/store"
	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces every key written by CachedContactStore.
const DefaultKeyPrefix = "contacts"

// Config configures a CachedContactStore.
type Config struct {
	// KeyPrefix namespaces the keys. Defaults to DefaultKeyPrefix.
	KeyPrefix string
	// TTL bounds how long a cached read may be served.
	TTL time.Duration
}

// CachedContactStore decorates a store.ContactStore with cache-aside reads.
// Mutations always go to the wrapped store.
type CachedContactStore struct {
	inner  store.ContactStore
	client redis.Cmdable
	prefix string
	ttl    time.Duration
	uow    *cachedUnitOfWork
	logger *slog.Logger
}

// NewCachedContactStore wraps inner with a Redis cache.
// If logger is nil, a default logger will be used.
func NewCachedContactStore(
	inner store.ContactStore,
	client redis.Cmdable,
	cfg Config,
	logger *slog.Logger,
) *CachedContactStore {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = DefaultKeyPrefix
	}

	s := &CachedContactStore{
		inner:  inner,
		client: client,
		prefix: cfg.KeyPrefix,
		ttl:    cfg.TTL,
		logger: logger.With(slog.String("component", "contact_cache")),
	}
	s.uow = &cachedUnitOfWork{inner: inner.UnitOfWork(), cache: s}
	return s
}

// Ensure CachedContactStore implements store.ContactStore interface
var _ store.ContactStore = (*CachedContactStore)(nil)

// UnitOfWork implements store.ContactStore.UnitOfWork.
func (s *CachedContactStore) UnitOfWork() store.UnitOfWork {
	return s.uow
}

// Save implements store.ContactStore.Save.
func (s *CachedContactStore) Save(ctx context.Context, contact *domain.Contact) error {
	return s.mutate(ctx, func() error { return s.inner.Save(ctx, contact) })
}

// Update implements store.ContactStore.Update.
func (s *CachedContactStore) Update(ctx context.Context, contact *domain.Contact) error {
	return s.mutate(ctx, func() error { return s.inner.Update(ctx, contact) })
}

// Delete implements store.ContactStore.Delete.
func (s *CachedContactStore) Delete(ctx context.Context, contact *domain.Contact) error {
	return s.mutate(ctx, func() error { return s.inner.Delete(ctx, contact) })
}

// GetByID implements store.ContactStore.GetByID.
// Not-found results are not cached.
func (s *CachedContactStore) GetByID(ctx context.Context, id int64) (*domain.Contact, error) {
	var contact *domain.Contact
	err := s.readThrough(ctx, "by_id", "id:"+strconv.FormatInt(id, 10), &contact, func() error {
		var err error
		contact, err = s.inner.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return contact, nil
}

// GetAll implements store.ContactStore.GetAll.
func (s *CachedContactStore) GetAll(ctx context.Context) ([]*domain.Contact, error) {
	var contacts []*domain.Contact
	err := s.readThrough(ctx, "all", "all", &contacts, func() error {
		var err error
		contacts, err = s.inner.GetAll(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return contacts, nil
}

// GetByDDD implements store.ContactStore.GetByDDD.
func (s *CachedContactStore) GetByDDD(ctx context.Context, ddd string) ([]*domain.Contact, error) {
	var contacts []*domain.Contact
	err := s.readThrough(ctx, "by_ddd", "ddd:"+ddd, &contacts, func() error {
		var err error
		contacts, err = s.inner.GetByDDD(ctx, ddd)
		return err
	})
	if err != nil {
		return nil, err
	}
	return contacts, nil
}

// readThrough serves dest from the cache when possible. On a miss it runs
// load, which fills dest from the wrapped store, and caches the result.
// Reads inside a unit of work skip the cache so they observe the unit's view.
func (s *CachedContactStore) readThrough(
	ctx context.Context,
	query, suffix string,
	dest any,
	load func() error,
) error {
	if inUnit(ctx) {
		return load()
	}

	log := logger.FromContextOrDefault(ctx, s.logger)

	key, err := s.key(ctx, suffix)
	if err != nil {
		lookupsTotal.WithLabelValues(query, resultError).Inc()
		log.Warn("cache unavailable, reading from store",
			slog.String("query", query),
			slog.String("error", err.Error()))
		return load()
	}

	data, err := s.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		jsonErr := json.Unmarshal(data, dest)
		if jsonErr == nil {
			lookupsTotal.WithLabelValues(query, resultHit).Inc()
			return nil
		}
		lookupsTotal.WithLabelValues(query, resultError).Inc()
		log.Warn("discarding undecodable cache entry",
			slog.String("key", key),
			slog.String("error", jsonErr.Error()))
	case errors.Is(err, redis.Nil):
		lookupsTotal.WithLabelValues(query, resultMiss).Inc()
	default:
		lookupsTotal.WithLabelValues(query, resultError).Inc()
		log.Warn("cache read failed, reading from store",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}

	if err := load(); err != nil {
		return err
	}

	payload, err := json.Marshal(dest)
	if err != nil {
		log.Warn("failed to encode cache entry", slog.String("key", key), slog.String("error", err.Error()))
		return nil
	}
	if err := s.client.Set(ctx, key, payload, s.ttl).Err(); err != nil {
		log.Warn("cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
	return nil
}

// mutate runs fn and, outside a unit of work, retires cached reads after it
// succeeds. Inside a unit the generation is bumped on Commit instead.
func (s *CachedContactStore) mutate(ctx context.Context, fn func() error) error {
	if err := fn(); err != nil {
		return err
	}
	if !inUnit(ctx) {
		s.invalidate(ctx)
	}
	return nil
}

// invalidate increments the generation counter so that every key built
// from an earlier generation is no longer read.
func (s *CachedContactStore) invalidate(ctx context.Context) {
	if err := s.client.Incr(ctx, s.generationKey()).Err(); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to invalidate contact cache",
			slog.String("error", err.Error()))
		return
	}
	invalidationsTotal.Inc()
}

func (s *CachedContactStore) generationKey() string {
	return s.prefix + ":generation"
}

// key builds the generation-scoped key for suffix.
func (s *CachedContactStore) key(ctx context.Context, suffix string) (string, error) {
	gen, err := s.client.Get(ctx, s.generationKey()).Int64()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			return "", fmt.Errorf("read cache generation: %w", err)
		}
		gen = 0
	}
	return fmt.Sprintf("%s:v%d:%s", s.prefix, gen, suffix), nil
}
