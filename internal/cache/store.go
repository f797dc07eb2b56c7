// Package cache provides the in-memory caching layer that sits in front of
// the Riot API client. Entries carry independent TTLs, reads never extend
// expiry, and the store evicts the least-recently-used entry under capacity
// pressure. All operations are safe for concurrent use through Service.
package cache

import (
	"time"

	"github.com/runesight/runesight/pkg/errors"
)

// Entry is a single cached value with expiry and access bookkeeping.
// The store owns entries exclusively; callers receive values, never entries.
type Entry struct {
	Value          any
	CreatedAt      time.Time
	ExpiresAt      time.Time
	AccessCount    int64
	LastAccessedAt time.Time
}

// expired reports whether the entry is past its deadline at the given time.
func (e *Entry) expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}

// store is the raw keyed storage: TTL-aware retrieval with size-bounded
// insertion. It is not safe for concurrent use on its own; Service guards
// it together with the statistics counters under one mutex.
type store struct {
	entries map[string]*Entry
	maxSize int
}

// newStore creates a store bounded to maxSize entries.
func newStore(maxSize int) (*store, error) {
	if maxSize <= 0 {
		return nil, errors.NewConfigError("cache", "max size must be positive", nil)
	}
	return &store{
		entries: make(map[string]*Entry),
		maxSize: maxSize,
	}, nil
}

// get returns the stored value and records the access. An expired entry is
// removed as a side effect and reported via the expired return so the
// service can account for it. Absence is a normal outcome, never an error.
func (s *store) get(key string, now time.Time) (value any, ok, expired bool) {
	entry, present := s.entries[key]
	if !present {
		return nil, false, false
	}
	if entry.expired(now) {
		delete(s.entries, key)
		return nil, false, true
	}
	entry.AccessCount++
	entry.LastAccessedAt = now
	return entry.Value, true, false
}

// set inserts or overwrites an entry with the given TTL. When the store is
// full and the key is not already present, exactly one entry is evicted by
// LRU policy first. Reports whether an eviction happened.
func (s *store) set(key string, value any, ttl time.Duration, now time.Time) (evicted bool) {
	if _, exists := s.entries[key]; !exists && len(s.entries) >= s.maxSize {
		s.evictLRU()
		evicted = true
	}
	s.entries[key] = &Entry{
		Value:          value,
		CreatedAt:      now,
		ExpiresAt:      now.Add(ttl),
		LastAccessedAt: now,
	}
	return evicted
}

// evictLRU removes the entry with the minimum LastAccessedAt.
// Ties are broken arbitrarily; timestamp granularity makes exact ties rare.
func (s *store) evictLRU() string {
	var (
		lruKey string
		lruAt  time.Time
		found  bool
	)
	for key, entry := range s.entries {
		if !found || entry.LastAccessedAt.Before(lruAt) {
			lruKey = key
			lruAt = entry.LastAccessedAt
			found = true
		}
	}
	if found {
		delete(s.entries, lruKey)
	}
	return lruKey
}

// delete removes the entry if present and reports whether removal occurred.
// Deleting an absent key is not an error.
func (s *store) delete(key string) bool {
	if _, ok := s.entries[key]; !ok {
		return false
	}
	delete(s.entries, key)
	return true
}

// clear removes all entries unconditionally.
func (s *store) clear() {
	s.entries = make(map[string]*Entry)
}

// removeExpired sweeps the store and removes every expired entry,
// returning how many were removed.
func (s *store) removeExpired(now time.Time) int {
	removed := 0
	for key, entry := range s.entries {
		if entry.expired(now) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

// deletePrefix removes every entry whose key starts with prefix and
// returns the count removed.
func (s *store) deletePrefix(prefix string) int {
	removed := 0
	for key := range s.entries {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

// len returns the number of entries currently stored.
func (s *store) len() int {
	return len(s.entries)
}
