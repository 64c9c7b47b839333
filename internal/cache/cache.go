// AltEat Recommend - Recipe Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alteat-recommend

package cache

import (
	"context"
	"sync"
	"time"
)

// Stats tracks cache performance metrics.
type Stats struct {
	Hits        int64     `json:"hits"`
	Misses      int64     `json:"misses"`
	Evictions   int64     `json:"evictions"`
	TotalKeys   int64     `json:"total_keys"`
	LastCleanup time.Time `json:"last_cleanup"`
}

// HitRate returns the hit rate as a percentage.
//
//nolint:gocritic // value receiver is intentional for snapshot semantics
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0.0
	}
	return float64(s.Hits) / float64(total) * 100.0
}

// memoryEntry is a node in the LRU list.
type memoryEntry struct {
	key       string
	value     []byte
	expiresAt time.Time
	prev      *memoryEntry
	next      *memoryEntry
}

// MemoryStore is a thread-safe Least Recently Used store with per-entry TTL.
//
// Key features:
//   - O(1) Get, Set and Delete
//   - O(1) LRU eviction when capacity is reached
//   - Lazy expiration on Get plus explicit PurgeExpired sweeps
//
// The store has no background goroutine; callers run PurgeExpired on a
// schedule (see the cache janitor service).
type MemoryStore struct {
	mu sync.Mutex

	capacity   int
	defaultTTL time.Duration

	// items maps keys to list nodes for O(1) lookup
	items map[string]*memoryEntry

	// head.next is the most recently used, tail.prev the least recently used
	head *memoryEntry
	tail *memoryEntry

	stats Stats
}

// NewMemoryStore creates a store holding at most capacity entries.
func NewMemoryStore(capacity int, defaultTTL time.Duration) *MemoryStore {
	if capacity <= 0 {
		capacity = 10000
	}
	if defaultTTL <= 0 {
		defaultTTL = 5 * time.Minute
	}

	s := &MemoryStore{
		capacity:   capacity,
		defaultTTL: defaultTTL,
		items:      make(map[string]*memoryEntry, capacity),
		head:       &memoryEntry{},
		tail:       &memoryEntry{},
		stats:      Stats{LastCleanup: time.Now()},
	}
	s.head.next = s.tail
	s.tail.prev = s.head
	return s
}

// Get retrieves a copy of the value stored under key.
// Expired entries are removed and counted as misses.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.items[key]
	if !ok {
		s.stats.Misses++
		return nil, false, nil
	}

	if time.Now().After(entry.expiresAt) {
		s.removeLocked(entry)
		s.stats.Misses++
		s.stats.Evictions++
		return nil, false, nil
	}

	s.moveToFrontLocked(entry)
	s.stats.Hits++

	out := make([]byte, len(entry.value))
	copy(out, entry.value)
	return out, true, nil
}

// Set stores a copy of value under key, evicting the least recently used
// entry when the store is full.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	stored := make([]byte, len(value))
	copy(stored, value)

	s.mu.Lock()
	defer s.mu.Unlock()

	expiresAt := time.Now().Add(ttl)
	if entry, ok := s.items[key]; ok {
		entry.value = stored
		entry.expiresAt = expiresAt
		s.moveToFrontLocked(entry)
		return nil
	}

	if len(s.items) >= s.capacity {
		if lru := s.tail.prev; lru != s.head {
			s.removeLocked(lru)
			s.stats.Evictions++
		}
	}

	entry := &memoryEntry{key: key, value: stored, expiresAt: expiresAt}
	s.items[key] = entry
	s.addToFrontLocked(entry)
	s.stats.TotalKeys = int64(len(s.items))
	return nil
}

// Delete removes the entry stored under key.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.items[key]; ok {
		s.removeLocked(entry)
		s.stats.Evictions++
	}
	return nil
}

// PurgeExpired removes every expired entry.
func (s *MemoryStore) PurgeExpired(ctx context.Context) (int, error) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for _, entry := range s.items {
		if err := ctx.Err(); err != nil {
			s.stats.Evictions += int64(removed)
			return removed, err
		}
		if now.After(entry.expiresAt) {
			s.removeLocked(entry)
			removed++
		}
	}

	s.stats.Evictions += int64(removed)
	s.stats.LastCleanup = now
	return removed, nil
}

// Stats returns a snapshot of current statistics.
func (s *MemoryStore) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Len returns the number of stored entries, including expired ones not yet purged.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Close drops all entries.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make(map[string]*memoryEntry)
	s.head.next = s.tail
	s.tail.prev = s.head
	s.stats.TotalKeys = 0
	return nil
}

// removeLocked unlinks entry and deletes it from the map.
// Must be called with mu held.
func (s *MemoryStore) removeLocked(entry *memoryEntry) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
	entry.prev, entry.next = nil, nil
	delete(s.items, entry.key)
	s.stats.TotalKeys = int64(len(s.items))
}

// addToFrontLocked links entry right after head.
// Must be called with mu held.
func (s *MemoryStore) addToFrontLocked(entry *memoryEntry) {
	entry.prev = s.head
	entry.next = s.head.next
	s.head.next.prev = entry
	s.head.next = entry
}

// moveToFrontLocked marks entry as most recently used.
// Must be called with mu held.
func (s *MemoryStore) moveToFrontLocked(entry *memoryEntry) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
	s.addToFrontLocked(entry)
}
