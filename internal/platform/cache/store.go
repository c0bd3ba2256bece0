package cache

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/MrG-Man/Acca-Tracker/internal/platform/resilience"
)

// Result carries a cached value together with its freshness. Stale is
// set when the value outlived its TTL and was served because a refresh
// failed.
type Result[T any] struct {
	Value     T
	Stale     bool
	FetchedAt time.Time
}

type entry[T any] struct {
	value     T
	fetchedAt time.Time
	expiresAt time.Time
}

// Store is an in-memory TTL cache with single-flight refresh. Expired
// entries are retained as last-known-good fallbacks until overwritten
// or deleted.
type Store[T any] struct {
	mu      sync.RWMutex
	entries map[string]entry[T]
	flight  resilience.Group[Result[T]]
	now     func() time.Time
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{
		entries: make(map[string]entry[T]),
		now:     time.Now,
	}
}

// Get returns the value for key when it is still within its TTL.
func (s *Store[T]) Get(key string) (T, bool) {
	var zero T
	if key == "" {
		return zero, false
	}

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok || !e.expiresAt.After(s.now()) {
		return zero, false
	}

	return e.value, true
}

func (s *Store[T]) Set(key string, value T, ttl time.Duration) {
	if key == "" || ttl <= 0 {
		return
	}

	now := s.now()
	s.mu.Lock()
	s.entries[key] = entry[T]{
		value:     value,
		fetchedAt: now,
		expiresAt: now.Add(ttl),
	}
	s.mu.Unlock()
}

func (s *Store[T]) Delete(key string) {
	if key == "" {
		return
	}

	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// GetOrFetch returns a fresh value for key, running fetch at most once
// across concurrent callers. When fetch fails and an expired entry is
// still held, that entry is served with Stale set instead of the
// error. Failed fetches are never cached.
func (s *Store[T]) GetOrFetch(ctx context.Context, key string, ttl time.Duration, fetch func(context.Context) (T, error)) (Result[T], error) {
	if fetch == nil {
		return Result[T]{}, errors.New("fetch is required")
	}
	if key == "" {
		value, err := fetch(ctx)
		if err != nil {
			return Result[T]{}, err
		}
		return Result[T]{Value: value, FetchedAt: s.now()}, nil
	}

	if res, ok := s.fresh(key); ok {
		return res, nil
	}

	res, err, _ := s.flight.Do(key, func() (Result[T], error) {
		if res, ok := s.fresh(key); ok {
			return res, nil
		}

		value, fetchErr := fetch(ctx)
		if fetchErr != nil {
			if stale, ok := s.lastKnown(key); ok {
				return stale, nil
			}
			return Result[T]{}, fetchErr
		}

		s.Set(key, value, ttl)
		return Result[T]{Value: value, FetchedAt: s.now()}, nil
	})
	if err != nil {
		return Result[T]{}, err
	}

	return res, nil
}

func (s *Store[T]) fresh(key string) (Result[T], bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok || !e.expiresAt.After(s.now()) {
		return Result[T]{}, false
	}
	return Result[T]{Value: e.value, FetchedAt: e.fetchedAt}, true
}

func (s *Store[T]) lastKnown(key string) (Result[T], bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return Result[T]{}, false
	}
	return Result[T]{Value: e.value, Stale: true, FetchedAt: e.fetchedAt}, true
}
