package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Store keeps fixed-window counters and lockouts. Implementations must be
// safe for concurrent use; MemoryStore serves a single instance and a shared
// cache can implement the same contract for several.
type Store interface {
	// Incr bumps the counter for key and returns the new value. A counter
	// starts a fresh window of length window when it is first incremented.
	Incr(ctx context.Context, key string, window time.Duration) (int, time.Time, error)
	Reset(ctx context.Context, key string) error
	Lock(ctx context.Context, key string, until time.Time) error
	LockedUntil(ctx context.Context, key string) (time.Time, bool, error)
}

type counter struct {
	count     int
	expiresAt time.Time
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu       sync.Mutex
	counters map[string]counter
	locks    map[string]time.Time
	now      func() time.Time
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		counters: make(map[string]counter),
		locks:    make(map[string]time.Time),
		now:      time.Now,
	}
}

// WithClock replaces the time source, used by tests.
func (s *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
	return s
}

func (s *MemoryStore) Incr(_ context.Context, key string, window time.Duration) (int, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	c, ok := s.counters[key]
	if !ok || !now.Before(c.expiresAt) {
		c = counter{expiresAt: now.Add(window)}
	}
	c.count++
	s.counters[key] = c

	return c.count, c.expiresAt, nil
}

func (s *MemoryStore) Reset(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.counters, key)
	delete(s.locks, key)
	return nil
}

func (s *MemoryStore) Lock(_ context.Context, key string, until time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.locks[key] = until
	delete(s.counters, key)
	return nil
}

func (s *MemoryStore) LockedUntil(_ context.Context, key string) (time.Time, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	until, ok := s.locks[key]
	if !ok {
		return time.Time{}, false, nil
	}
	if !s.now().Before(until) {
		delete(s.locks, key)
		return time.Time{}, false, nil
	}
	return until, true, nil
}

// Purge drops expired counters and locks and returns how many were removed.
func (s *MemoryStore) Purge() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for k, c := range s.counters {
		if !now.Before(c.expiresAt) {
			delete(s.counters, k)
			removed++
		}
	}
	for k, until := range s.locks {
		if !now.Before(until) {
			delete(s.locks, k)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked keys.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.counters) + len(s.locks)
}
