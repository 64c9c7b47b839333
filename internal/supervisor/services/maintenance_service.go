// AltEat Recommend - Recipe Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alteat-recommend

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/alteat-recommend/internal/cache"
	"github.com/tomtom215/alteat-recommend/internal/metrics"
)

// ExpiringCache is the subset of cache.Store the janitor needs.
type ExpiringCache interface {
	PurgeExpired(ctx context.Context) (int, error)
	Stats() cache.Stats
}

// CacheJanitorService periodically removes expired entries from the
// similar-recipes cache and reports the sweep to Prometheus.
type CacheJanitorService struct {
	store     ExpiringCache
	cacheName string
	interval  time.Duration
	logger    zerolog.Logger
	name      string
}

// NewCacheJanitorService creates a janitor for store.
// A non-positive interval selects one minute.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCacheJanitorService(store ExpiringCache, cacheName string, interval time.Duration, logger zerolog.Logger) *CacheJanitorService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &CacheJanitorService{
		store:     store,
		cacheName: cacheName,
		interval:  interval,
		logger:    logger.With().Str("service", "cache-janitor").Str("cache", cacheName).Logger(),
		name:      "cache-janitor",
	}
}

// Serve implements suture.Service.
func (s *CacheJanitorService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Debug().Dur("interval", s.interval).Msg("cache janitor running")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep runs one purge. Failures are logged and retried on the next tick.
func (s *CacheJanitorService) Sweep(ctx context.Context) int {
	removed, err := s.store.PurgeExpired(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("cache sweep failed")
		return 0
	}

	stats := s.store.Stats()
	metrics.RecordCacheSweep(s.cacheName, removed, stats.TotalKeys)
	if removed > 0 {
		s.logger.Debug().
			Int("removed", removed).
			Int64("remaining", stats.TotalKeys).
			Msg("expired cache entries purged")
	}
	return removed
}

// String implements fmt.Stringer for suture event logging.
func (s *CacheJanitorService) String() string {
	return s.name
}

// Checkpointer is implemented by *database.DB.
type Checkpointer interface {
	Checkpoint(ctx context.Context) error
}

// CheckpointService periodically flushes the recipe store's write-ahead log
// so seeded and upserted data is persisted to the main database file.
type CheckpointService struct {
	store    Checkpointer
	interval time.Duration
	timeout  time.Duration
	logger   zerolog.Logger
	name     string
}

// NewCheckpointService creates a checkpoint loop.
// A non-positive interval selects 15 minutes.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCheckpointService(store Checkpointer, interval time.Duration, logger zerolog.Logger) *CheckpointService {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &CheckpointService{
		store:    store,
		interval: interval,
		timeout:  time.Minute,
		logger:   logger.With().Str("service", "store-checkpoint").Logger(),
		name:     "store-checkpoint",
	}
}

// Serve implements suture.Service.
func (s *CheckpointService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.checkpoint(ctx)
		}
	}
}

func (s *CheckpointService) checkpoint(ctx context.Context) {
	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	if err := s.store.Checkpoint(cctx); err != nil {
		s.logger.Warn().Err(err).Msg("checkpoint failed")
		return
	}
	s.logger.Debug().Dur("duration", time.Since(start)).Msg("checkpoint complete")
}

// String implements fmt.Stringer for suture event logging.
func (s *CheckpointService) String() string {
	return s.name
}
