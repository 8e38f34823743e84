// Package cache provides a TTL-keyed in-memory store for fetched domain
// payloads. Expiry is lazy: an entry older than the store's TTL is evicted
// on the Get that observes it, never by a background sweep.
package cache

import (
	"strings"
	"sync"
	"time"
)

type entry[T any] struct {
	payload   T
	fetchedAt time.Time
}

// Store holds payloads of one domain under a single TTL. Writes are
// whole-entry replacements, so concurrent aggregation calls racing on the
// same key converge to an equivalent value without coordination beyond the
// map lock.
type Store[T any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry[T]
	now     func() time.Time
}

// New creates a Store with the given TTL.
func New[T any](ttl time.Duration) *Store[T] {
	return &Store[T]{
		ttl:     ttl,
		entries: make(map[string]entry[T]),
		now:     time.Now,
	}
}

// NewWithClock creates a Store with an injectable clock, for tests that
// exercise the TTL boundary.
func NewWithClock[T any](ttl time.Duration, now func() time.Time) *Store[T] {
	s := New[T](ttl)
	s.now = now
	return s
}

// Get returns the payload stored under key, or ok=false if the key is
// absent or its entry has outlived the TTL. An expired entry is evicted.
func (s *Store[T]) Get(key string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		var zero T
		return zero, false
	}
	if s.now().Sub(e.fetchedAt) > s.ttl {
		delete(s.entries, key)
		var zero T
		return zero, false
	}
	return e.payload, true
}

// Set stores payload under key, overwriting any previous entry.
func (s *Store[T]) Set(key string, payload T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry[T]{payload: payload, fetchedAt: s.now()}
}

// Clear drops every entry.
func (s *Store[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]entry[T])
}

// Len reports the number of entries, expired or not.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Key builds a deterministic cache key from a domain tag and
// case-normalized, pre-sorted query parameters.
func Key(domain string, params ...string) string {
	parts := make([]string, 0, len(params)+1)
	parts = append(parts, domain)
	for _, p := range params {
		parts = append(parts, strings.ToLower(strings.TrimSpace(p)))
	}
	return strings.Join(parts, ":")
}
