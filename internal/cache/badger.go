// AltEat Recommend - Recipe Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alteat-recommend

package cache

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Key prefix for BadgerDB storage
const badgerKeyPrefix = "cache:"

// BadgerStore implements Store using BadgerDB.
// Expiry is delegated to BadgerDB entry TTLs; PurgeExpired runs value log
// garbage collection to reclaim space from expired and overwritten entries.
type BadgerStore struct {
	db         *badger.DB
	defaultTTL time.Duration
	gcRatio    float64
	ownsDB     bool
	inMemory   bool

	hits        atomic.Int64
	misses      atomic.Int64
	evictions   atomic.Int64
	lastCleanup atomic.Int64
}

// OpenBadgerStore opens a BadgerDB at cfg.Path (or in memory when
// cfg.InMemory is set) and wraps it in a BadgerStore.
func OpenBadgerStore(cfg Config) (*BadgerStore, error) {
	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else if cfg.Path == "" {
		return nil, errors.New("badger cache requires a path or in-memory mode")
	}
	opts.Logger = nil // Suppress BadgerDB logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for cache: %w", err)
	}

	store := NewBadgerStore(db, cfg.DefaultTTL, cfg.GCDiscardRatio)
	store.ownsDB = true
	store.inMemory = cfg.InMemory
	return store, nil
}

// NewBadgerStore wraps an existing BadgerDB. The caller keeps ownership of db.
func NewBadgerStore(db *badger.DB, defaultTTL time.Duration, gcRatio float64) *BadgerStore {
	if defaultTTL <= 0 {
		defaultTTL = 5 * time.Minute
	}
	if gcRatio <= 0 || gcRatio >= 1 {
		gcRatio = 0.5
	}
	s := &BadgerStore{db: db, defaultTTL: defaultTTL, gcRatio: gcRatio}
	s.lastCleanup.Store(time.Now().UnixNano())
	return s
}

// Get retrieves a value by key.
func (s *BadgerStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(badgerKeyPrefix + key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		s.misses.Add(1)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get cache entry: %w", err)
	}

	s.hits.Add(1)
	return value, true, nil
}

// Set stores a value with a TTL.
func (s *BadgerStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = s.defaultTTL
	}

	return s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(badgerKeyPrefix+key), value).WithTTL(ttl)
		if err := txn.SetEntry(entry); err != nil {
			return fmt.Errorf("set cache entry: %w", err)
		}
		return nil
	})
}

// Delete removes a value by key.
func (s *BadgerStore) Delete(_ context.Context, key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(badgerKeyPrefix + key))
	})
	if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("delete cache entry: %w", err)
	}
	s.evictions.Add(1)
	return nil
}

// PurgeExpired runs value log GC until BadgerDB reports nothing to rewrite.
// BadgerDB hides expired keys on read, so the returned count is the number of
// value log files rewritten rather than the number of keys.
func (s *BadgerStore) PurgeExpired(ctx context.Context) (int, error) {
	if s.inMemory {
		s.lastCleanup.Store(time.Now().UnixNano())
		return 0, nil
	}

	rewritten := 0
	for {
		if err := ctx.Err(); err != nil {
			return rewritten, err
		}
		err := s.db.RunValueLogGC(s.gcRatio)
		if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrRejected) {
			break
		}
		if err != nil {
			return rewritten, fmt.Errorf("value log gc: %w", err)
		}
		rewritten++
	}

	s.evictions.Add(int64(rewritten))
	s.lastCleanup.Store(time.Now().UnixNano())
	return rewritten, nil
}

// Stats returns a snapshot of statistics.
func (s *BadgerStore) Stats() Stats {
	return Stats{
		Hits:        s.hits.Load(),
		Misses:      s.misses.Load(),
		Evictions:   s.evictions.Load(),
		TotalKeys:   s.countKeys(),
		LastCleanup: time.Unix(0, s.lastCleanup.Load()),
	}
}

// countKeys counts live cache keys without fetching values.
func (s *BadgerStore) countKeys() int64 {
	var n int64
	_ = s.db.View(func(txn *badger.Txn) error { //nolint:errcheck // best-effort statistic
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(badgerKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			n++
		}
		return nil
	})
	return n
}

// Close closes the underlying BadgerDB if this store opened it.
func (s *BadgerStore) Close() error {
	if s.ownsDB {
		return s.db.Close()
	}
	return nil
}
