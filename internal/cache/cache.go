// Package cache holds transient derived views of ZeroDB data, keyed by a
// canonical taxonomy so invalidation can target exactly the views a domain
// mutation affects.
package cache

import (
	"sync"
	"time"

	"github.com/openhack/hackboard/internal/metrics"
)

// Invalidator is the subset of Store the invalidation rules need.
// Invalidate marks cached views stale; Remove evicts them entirely.
type Invalidator interface {
	Invalidate(keys ...string)
	Remove(keys ...string)
}

type entry struct {
	value    any
	stale    bool
	storedAt time.Time
}

// Store is an in-memory cache of derived views. Entries are marked stale on
// invalidation rather than evicted, so callers can distinguish "never cached"
// from "cached but outdated".
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// NewStore creates an empty cache store
func NewStore() *Store {
	return &Store{entries: make(map[string]entry)}
}

// Get returns the cached value for key if present and fresh
func (s *Store) Get(key string) (any, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok || e.stale {
		metrics.CacheMisses.Inc()
		return nil, false
	}
	metrics.CacheHits.Inc()
	return e.value, true
}

// Set stores a fresh value under key
func (s *Store) Set(key string, value any) {
	s.mu.Lock()
	s.entries[key] = entry{value: value, storedAt: time.Now()}
	s.mu.Unlock()
}

// Invalidate marks the given keys stale. Keys that were never cached are
// ignored.
func (s *Store) Invalidate(keys ...string) {
	s.mu.Lock()
	for _, key := range keys {
		if e, ok := s.entries[key]; ok {
			e.stale = true
			s.entries[key] = e
		}
	}
	s.mu.Unlock()
}

// Remove evicts the given keys entirely
func (s *Store) Remove(keys ...string) {
	s.mu.Lock()
	for _, key := range keys {
		delete(s.entries, key)
	}
	s.mu.Unlock()
}

// Contains reports whether key is cached, fresh or stale
func (s *Store) Contains(key string) bool {
	s.mu.RLock()
	_, ok := s.entries[key]
	s.mu.RUnlock()
	return ok
}

// IsStale reports whether key is cached and marked stale
func (s *Store) IsStale(key string) bool {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	return ok && e.stale
}

// Len returns the number of cached entries, fresh or stale
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

var _ Invalidator = (*Store)(nil)
