// AltEat Recommend - Recipe Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alteat-recommend

package cache

import (
	"context"
	"fmt"
	"time"
)

// Store is a byte-oriented key/value cache with per-entry expiry.
// Both MemoryStore and BadgerStore implement this interface, allowing the
// recommendation engine to switch between volatile and durable caching.
//
// Usage:
//
//	store, err := cache.NewStore(cache.Config{Backend: cache.BackendMemory})
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	_ = store.Set(ctx, "similar:42:Asia/Thai:5", payload, 5*time.Minute)
//	if data, ok, err := store.Get(ctx, "similar:42:Asia/Thai:5"); err == nil && ok {
//	    // Use cached payload
//	}
type Store interface {
	// Get retrieves a value. Returns false if the key is missing or expired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value that expires after ttl. A non-positive ttl uses the
	// store's default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// PurgeExpired removes expired entries and returns how many were removed.
	PurgeExpired(ctx context.Context) (int, error)

	// Stats returns a snapshot of cache statistics.
	Stats() Stats

	// Close releases resources held by the store.
	Close() error
}

// Backend selects a Store implementation.
type Backend string

const (
	// BackendMemory is a bounded in-process LRU store (default).
	BackendMemory Backend = "memory"

	// BackendBadger is a BadgerDB-backed store that survives restarts when
	// given a path.
	BackendBadger Backend = "badger"
)

// Config holds configuration for creating a Store.
type Config struct {
	// Backend specifies the store implementation (memory or badger).
	Backend Backend

	// DefaultTTL is used when Set is called with a non-positive ttl.
	// Default: 5m.
	DefaultTTL time.Duration

	// Capacity is the maximum number of entries (memory backend only).
	// Default: 10000.
	Capacity int

	// Path is the BadgerDB directory (badger backend only).
	Path string

	// InMemory runs BadgerDB without touching disk (badger backend only).
	InMemory bool

	// GCDiscardRatio is passed to BadgerDB value log GC.
	// Default: 0.5.
	GCDiscardRatio float64
}

// NewStore creates a Store based on the configuration.
//
// Example:
//
//	// Create a memory store
//	store, _ := NewStore(Config{Backend: BackendMemory, Capacity: 5000})
//
//	// Create a durable badger store
//	store, _ := NewStore(Config{Backend: BackendBadger, Path: "/data/cache"})
func NewStore(cfg Config) (Store, error) {
	if cfg.DefaultTTL <= 0 {
		cfg.DefaultTTL = 5 * time.Minute
	}

	switch cfg.Backend {
	case BackendBadger:
		store, err := OpenBadgerStore(cfg)
		if err != nil {
			return nil, err
		}
		return store, nil
	case BackendMemory, "":
		return NewMemoryStore(cfg.Capacity, cfg.DefaultTTL), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// Verify interface implementations at compile time
var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*BadgerStore)(nil)
)
