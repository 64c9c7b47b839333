// AltEat Recommend - Recipe Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alteat-recommend

/*
Package cache provides byte-oriented key/value stores with per-entry TTL.

The recommendation engine caches serialized similarity results here so that
repeated detail-page lookups for the same anchor recipe skip the data source.

# Backends

Two Store implementations are provided:

  - MemoryStore: bounded LRU list in process memory (default)
  - BadgerStore: BadgerDB with native entry TTLs, optionally persisted to disk

Select one through NewStore:

	store, err := cache.NewStore(cache.Config{
	    Backend:    cache.BackendBadger,
	    Path:       "/data/cache",
	    DefaultTTL: 5 * time.Minute,
	})

# Expiration

Both stores hide expired entries from Get. MemoryStore removes them lazily and
during PurgeExpired sweeps; BadgerStore relies on BadgerDB to drop them and
uses PurgeExpired to run value log garbage collection. The cache janitor
service in internal/supervisor/services calls PurgeExpired on a fixed interval.

# Statistics

Stats reports hits, misses, evictions and the current key count. HitRate
derives a percentage from the snapshot.

# Thread Safety

All stores are safe for concurrent use. Values are copied on the way in and
on the way out, so callers may reuse their buffers.
*/
package cache
