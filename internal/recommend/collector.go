// AltEat Recommend - Recipe Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alteat-recommend

package recommend

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// batch names used in logs and metrics.
const (
	batchPreference = "preference"
	batchGeneral    = "general"
	batchSimilar    = "similar"
	batchFallback   = "fallback"
)

// collection is the outcome of gathering a candidate pool.
type collection struct {
	pool     []RecipeRecord
	attempts int
	failures int
	lastErr  error
}

// allFailed reports whether every attempted batch failed.
func (c *collection) allFailed() bool {
	return c.attempts > 0 && c.failures == c.attempts
}

// collector gathers candidate pools from a DataProvider.
type collector struct {
	provider   DataProvider
	cfg        *Config
	onFailure  func(batch string)
	concurrent bool
}

// cuisineTokens lowercases and trims preferred cuisines, dropping blanks.
func cuisineTokens(prefs *UserPreferences) []string {
	if prefs == nil {
		return nil
	}
	tokens := make([]string, 0, len(prefs.CuisinePreferences))
	for _, c := range prefs.CuisinePreferences {
		c = strings.ToLower(strings.TrimSpace(c))
		if c != "" {
			tokens = append(tokens, c)
		}
	}
	return tokens
}

// collectPersonalized fetches the preference batch (when the user has cuisine
// preferences) and the general batch, then merges them with the preference
// batch first. A failed batch contributes nothing.
func (c *collector) collectPersonalized(ctx context.Context, prefs *UserPreferences, logger *zerolog.Logger) collection {
	tokens := cuisineTokens(prefs)

	var (
		prefBatch, generalBatch []RecipeRecord
		prefErr, generalErr     error
	)

	fetchPref := func(ctx context.Context) {
		fctx, cancel := context.WithTimeout(ctx, c.cfg.Limits.FetchTimeout)
		defer cancel()
		prefBatch, prefErr = c.provider.FetchByCuisineSubstring(fctx, tokens, c.cfg.Batches.Preference)
	}
	fetchGeneral := func(ctx context.Context) {
		fctx, cancel := context.WithTimeout(ctx, c.cfg.Limits.FetchTimeout)
		defer cancel()
		generalBatch, generalErr = c.provider.FetchGeneral(fctx, c.cfg.Batches.General)
	}

	if c.concurrent {
		// Batch errors are recorded, not propagated, so one failure never
		// cancels the sibling query.
		var g errgroup.Group
		if len(tokens) > 0 {
			g.Go(func() error { fetchPref(ctx); return nil })
		}
		g.Go(func() error { fetchGeneral(ctx); return nil })
		_ = g.Wait() //nolint:errcheck // goroutines never return errors
	} else {
		if len(tokens) > 0 {
			fetchPref(ctx)
		}
		fetchGeneral(ctx)
	}

	var out collection
	if len(tokens) > 0 {
		out.attempts++
		if prefErr != nil {
			out.failures++
			out.lastErr = prefErr
			prefBatch = nil
			c.batchFailed(batchPreference, prefErr, logger)
		}
	}
	out.attempts++
	if generalErr != nil {
		out.failures++
		out.lastErr = generalErr
		generalBatch = nil
		c.batchFailed(batchGeneral, generalErr, logger)
	}

	out.pool = dedupByID(prefBatch, generalBatch)
	return out
}

// collectSimilar fetches the rating-ordered batch, dropping the anchor.
func (c *collector) collectSimilar(ctx context.Context, excludeID int, logger *zerolog.Logger) collection {
	fctx, cancel := context.WithTimeout(ctx, c.cfg.Limits.FetchTimeout)
	defer cancel()

	out := collection{attempts: 1}
	batch, err := c.provider.FetchByRatingDesc(fctx, excludeID, c.cfg.Batches.Similar)
	if err != nil {
		out.failures = 1
		out.lastErr = err
		c.batchFailed(batchSimilar, err, logger)
		return out
	}

	pool := make([]RecipeRecord, 0, len(batch))
	for i := range batch {
		if batch[i].ID != excludeID {
			pool = append(pool, batch[i])
		}
	}
	out.pool = dedupByID(pool)
	return out
}

// collectFallback fetches the general batch used by the random fallback.
func (c *collector) collectFallback(ctx context.Context, logger *zerolog.Logger) ([]RecipeRecord, error) {
	fctx, cancel := context.WithTimeout(ctx, c.cfg.Limits.FetchTimeout)
	defer cancel()

	batch, err := c.provider.FetchGeneral(fctx, c.cfg.Batches.Fallback)
	if err != nil {
		c.batchFailed(batchFallback, err, logger)
		return nil, err
	}
	return dedupByID(batch), nil
}

func (c *collector) batchFailed(batch string, err error, logger *zerolog.Logger) {
	logger.Warn().Err(err).Str("batch", batch).Msg("Candidate batch failed")
	if c.onFailure != nil {
		c.onFailure(batch)
	}
}

// dedupByID concatenates batches in order, keeping the first record for each ID.
func dedupByID(batches ...[]RecipeRecord) []RecipeRecord {
	total := 0
	for _, b := range batches {
		total += len(b)
	}

	seen := make(map[int]struct{}, total)
	out := make([]RecipeRecord, 0, total)
	for _, b := range batches {
		for i := range b {
			if _, dup := seen[b[i].ID]; dup {
				continue
			}
			seen[b[i].ID] = struct{}{}
			out = append(out, b[i])
		}
	}
	return out
}
