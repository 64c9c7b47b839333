// AltEat Recommend - Recipe Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alteat-recommend

package recommend

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// Note: This package has no dependencies on other internal packages.
// DataProvider, ResponseCache and Observer are satisfied by the database,
// cache and metrics packages respectively.

// ResponseCache stores serialized similarity results.
// cache.Store satisfies this interface.
type ResponseCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Observer receives engine events for metrics export.
type Observer interface {
	ObserveRequest(mode, outcome string, duration time.Duration)
	ObserveFallback()
	ObserveBatchFailure(batch string)
	ObserveCache(hit bool)
}

// request outcomes reported to the Observer.
const (
	OutcomeSuccess  = "success"
	OutcomeFallback = "fallback"
	OutcomeEmpty    = "empty"
	OutcomeCached   = "cached"
	OutcomeError    = "error"
)

// Engine collects, scores and ranks recipe candidates.
// It is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger

	dataProvider DataProvider
	cache        ResponseCache
	observer     Observer
	depsMu       sync.RWMutex

	// Seed source for per-request random generators.
	rng   *rand.Rand
	rngMu sync.Mutex

	requestCount     atomic.Int64
	errorCount       atomic.Int64
	fallbackCount    atomic.Int64
	batchFailures    atomic.Int64
	cacheHits        atomic.Int64
	cacheMisses      atomic.Int64
	degradedProfiles atomic.Int64
}

// NewEngine creates a new recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Engine{
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
		rng:    rand.New(rand.NewSource(seed)), //nolint:gosec // math/rand is fine for recommendation shuffling
	}, nil
}

// SetDataProvider sets the data source used for candidates and profiles.
func (e *Engine) SetDataProvider(dp DataProvider) {
	e.depsMu.Lock()
	defer e.depsMu.Unlock()
	e.dataProvider = dp
}

// SetCache sets the cache used for similarity results.
func (e *Engine) SetCache(c ResponseCache) {
	e.depsMu.Lock()
	defer e.depsMu.Unlock()
	e.cache = c
}

// SetObserver sets the metrics observer.
func (e *Engine) SetObserver(o Observer) {
	e.depsMu.Lock()
	defer e.depsMu.Unlock()
	e.observer = o
}

func (e *Engine) deps() (DataProvider, ResponseCache, Observer) {
	e.depsMu.RLock()
	defer e.depsMu.RUnlock()
	return e.dataProvider, e.cache, e.observer
}

// GetPersonalizedRecommendations returns recipes ranked for userID.
// An empty userID, a missing profile or a malformed profile all produce
// recommendations without preferences.
func (e *Engine) GetPersonalizedRecommendations(ctx context.Context, userID string, limit int) ([]Recipe, error) {
	resp, err := e.RecommendForUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	return resp.Recipes, nil
}

// GetSimilarRecipes returns recipes similar to the anchor recipe, never
// including the anchor itself.
func (e *Engine) GetSimilarRecipes(ctx context.Context, recipeID int, cuisinePath string, limit int) ([]Recipe, error) {
	resp, err := e.Recommend(ctx, Request{
		ExcludeID:         &recipeID,
		AnchorCuisinePath: &cuisinePath,
		Limit:             limit,
	})
	if err != nil {
		return nil, err
	}
	return resp.Recipes, nil
}

// RecommendForUser loads the user's preferences and serves a personalized
// request, returning the full response.
func (e *Engine) RecommendForUser(ctx context.Context, userID string, limit int) (*Response, error) {
	prefs, err := e.LoadPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}
	return e.Recommend(ctx, Request{Preferences: prefs, Limit: limit})
}

// LoadPreferences fetches a user's preferences. Missing and malformed
// profiles yield nil. Only context cancellation is returned as an error.
func (e *Engine) LoadPreferences(ctx context.Context, userID string) (*UserPreferences, error) {
	if userID == "" {
		return nil, nil
	}

	provider, _, _ := e.deps()
	if provider == nil {
		return nil, ErrNoDataProvider
	}

	fctx, cancel := context.WithTimeout(ctx, e.config.Limits.FetchTimeout)
	defer cancel()

	prefs, err := provider.FetchUserPreferences(fctx, userID)
	if err == nil {
		return prefs, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}

	e.degradedProfiles.Add(1)
	event := e.logger.Warn().Err(err).Str("user_id", userID)
	if errors.Is(err, ErrInvalidPreferenceData) {
		event.Msg("Malformed preference data, continuing without preferences")
	} else {
		event.Msg("Failed to load preferences, continuing without preferences")
	}
	return nil, nil
}

// Recommend serves a single request in the mode it selects.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	provider, cache, observer := e.deps()
	mode := req.Mode()

	if err := e.validateRequest(req); err != nil {
		e.finish(observer, mode, OutcomeError, start)
		return nil, err
	}
	if provider == nil {
		e.finish(observer, mode, OutcomeError, start)
		return nil, ErrNoDataProvider
	}

	req = e.prepareRequest(req)
	if req.Limit == 0 {
		if err := ctx.Err(); err != nil {
			e.errorCount.Add(1)
			e.finish(observer, mode, OutcomeError, start)
			return nil, err
		}
		resp := &Response{Recipes: []Recipe{}, Mode: mode.String()}
		resp.Metadata.RequestID = req.RequestID
		e.finish(observer, mode, OutcomeEmpty, start)
		return resp, nil
	}
	logger := e.createRequestLogger(req)
	logger.Debug().Int("limit", req.Limit).Msg("processing recommendation request")

	c := &collector{
		provider:   provider,
		cfg:        e.config,
		concurrent: e.config.ConcurrentFetch,
		onFailure: func(batch string) {
			e.batchFailures.Add(1)
			if observer != nil {
				observer.ObserveBatchFailure(batch)
			}
		},
	}

	var (
		resp    *Response
		outcome string
		err     error
	)
	if mode == ModeSimilar {
		resp, outcome, err = e.recommendSimilar(ctx, req, c, cache, observer, &logger)
	} else {
		resp, outcome, err = e.recommendPersonalized(ctx, req, c, observer, &logger)
	}
	if err != nil {
		e.errorCount.Add(1)
		e.finish(observer, mode, OutcomeError, start)
		return nil, err
	}

	resp.Mode = mode.String()
	resp.Metadata.RequestID = req.RequestID
	resp.Metadata.LatencyMS = time.Since(start).Milliseconds()
	e.finish(observer, mode, outcome, start)

	logger.Debug().
		Int("candidates", resp.TotalCandidates).
		Int("returned", len(resp.Recipes)).
		Bool("fallback", resp.Fallback).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")

	return resp, nil
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) validateRequest(req Request) error {
	if req.Limit < 0 {
		return fmt.Errorf("%w: limit must be non-negative, got %d", ErrInvalidRequest, req.Limit)
	}
	if req.Preferences != nil && req.Mode() == ModeSimilar {
		return fmt.Errorf("%w: preferences cannot be combined with similarity fields", ErrInvalidRequest)
	}
	if req.AnchorCuisinePath != nil && req.ExcludeID == nil {
		return fmt.Errorf("%w: similarity mode requires the anchor recipe id", ErrInvalidRequest)
	}
	return nil
}

// prepareRequest generates a request ID if needed. The limit is used as given.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(req Request) Request {
	if req.RequestID == "" {
		req.RequestID = e.generateRequestID()
	}
	return req
}

// createRequestLogger creates a logger with request context.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) createRequestLogger(req Request) zerolog.Logger {
	return e.logger.With().
		Str("request_id", req.RequestID).
		Str("mode", req.Mode().String()).
		Logger()
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) recommendPersonalized(ctx context.Context, req Request, c *collector, observer Observer, logger *zerolog.Logger) (*Response, string, error) {
	rng := e.requestRand()
	coll := c.collectPersonalized(ctx, req.Preferences, logger)
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	s := &scorer{weights: e.config.Weights, rng: rng}
	cands := make([]ScoredCandidate, 0, len(coll.pool))
	for i := range coll.pool {
		cands = append(cands, ScoredCandidate{
			Record: coll.pool[i],
			Score:  s.personalizedScore(&coll.pool[i], req.Preferences),
		})
	}
	if req.Preferences != nil {
		cands = excludeAvoided(cands, req.Preferences.AvoidIngredients)
	}
	top := rankTop(cands, req.Limit)

	n := e.normalizer()
	if len(top) > 0 {
		return &Response{
			Recipes:         n.fromCandidates(top),
			TotalCandidates: len(coll.pool),
		}, OutcomeSuccess, nil
	}

	logger.Debug().
		Int("candidates", len(coll.pool)).
		Int("batch_failures", coll.failures).
		Msg("no ranked recipes, using random fallback")

	pool, err := c.collectFallback(ctx, logger)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, "", ctxErr
		}
		if coll.allFailed() {
			return nil, "", fmt.Errorf("%w: %w", ErrDataSourceUnavailable, err)
		}
		logger.Warn().Err(err).Msg("Fallback batch failed, returning empty recommendations")
		return &Response{
			Recipes:         []Recipe{},
			TotalCandidates: len(coll.pool),
		}, OutcomeEmpty, nil
	}

	e.fallbackCount.Add(1)
	if observer != nil {
		observer.ObserveFallback()
	}

	picked := shuffleTop(pool, req.Limit, rng)
	outcome := OutcomeFallback
	if len(picked) == 0 {
		outcome = OutcomeEmpty
	}
	return &Response{
		Recipes:         n.fromRecords(picked),
		Fallback:        true,
		TotalCandidates: len(pool),
	}, outcome, nil
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) recommendSimilar(ctx context.Context, req Request, c *collector, cache ResponseCache, observer Observer, logger *zerolog.Logger) (*Response, string, error) {
	anchor := ""
	if req.AnchorCuisinePath != nil {
		anchor = *req.AnchorCuisinePath
	}
	excludeID := *req.ExcludeID

	useCache := cache != nil && e.config.Cache.Enabled
	key := similarCacheKey(excludeID, anchor, req.Limit)
	if useCache {
		if entry, ok := e.checkCache(ctx, cache, key, logger); ok {
			e.cacheHits.Add(1)
			if observer != nil {
				observer.ObserveCache(true)
			}
			resp := &Response{Recipes: entry.Recipes, TotalCandidates: entry.TotalCandidates}
			resp.Metadata.CacheHit = true
			return resp, OutcomeCached, nil
		}
		e.cacheMisses.Add(1)
		if observer != nil {
			observer.ObserveCache(false)
		}
	}

	coll := c.collectSimilar(ctx, excludeID, logger)
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	if coll.allFailed() {
		return nil, "", fmt.Errorf("%w: %w", ErrDataSourceUnavailable, coll.lastErr)
	}

	s := &scorer{weights: e.config.Weights}
	categories := anchorCategories(anchor, e.config.Weights.SimilarCategories)
	cands := make([]ScoredCandidate, 0, len(coll.pool))
	for i := range coll.pool {
		cands = append(cands, ScoredCandidate{
			Record: coll.pool[i],
			Score:  s.similarityScore(&coll.pool[i], categories),
		})
	}
	top := rankTop(cands, req.Limit)

	resp := &Response{
		Recipes:         e.normalizer().fromCandidates(top),
		TotalCandidates: len(coll.pool),
	}

	if useCache && ctx.Err() == nil {
		e.storeCache(ctx, cache, key, &cachedSimilar{
			Recipes:         resp.Recipes,
			TotalCandidates: resp.TotalCandidates,
		}, logger)
	}

	outcome := OutcomeSuccess
	if len(resp.Recipes) == 0 {
		outcome = OutcomeEmpty
	}
	return resp, outcome, nil
}

// similarCacheKey generates a cache key for a similarity request.
func similarCacheKey(recipeID int, anchor string, limit int) string {
	return "similar:" + strconv.Itoa(recipeID) + ":" + anchor + ":" + strconv.Itoa(limit)
}

// cachedSimilar is the cached form of a similarity response.
type cachedSimilar struct {
	Recipes         []Recipe `json:"recipes"`
	TotalCandidates int      `json:"total_candidates"`
}

// checkCache returns the cached entry for key. Cache errors are treated as misses.
func (e *Engine) checkCache(ctx context.Context, cache ResponseCache, key string, logger *zerolog.Logger) (*cachedSimilar, bool) {
	data, ok, err := cache.Get(ctx, key)
	if err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("Cache read failed")
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var entry cachedSimilar
	if err := json.Unmarshal(data, &entry); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("Discarding undecodable cache entry")
		return nil, false
	}
	if entry.Recipes == nil {
		entry.Recipes = []Recipe{}
	}
	return &entry, true
}

// storeCache stores entry under key. Failures are logged and ignored.
func (e *Engine) storeCache(ctx context.Context, cache ResponseCache, key string, entry *cachedSimilar, logger *zerolog.Logger) {
	data, err := json.Marshal(entry)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to encode recipes for cache")
		return
	}
	if err := cache.Set(ctx, key, data, e.config.Cache.TTL); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("Cache write failed")
	}
}

// NormalizeRecipe converts a stored record into the caller-facing shape
// using the engine's placeholder image and tag limit.
func (e *Engine) NormalizeRecipe(rec *RecipeRecord) Recipe {
	return e.normalizer().recipe(rec)
}

func (e *Engine) normalizer() normalizer {
	return normalizer{
		placeholder: e.config.PlaceholderImage,
		maxTags:     e.config.Limits.MaxTags,
	}
}

// requestRand returns a generator seeded from the engine's seed source.
// Each request owns its generator so scoring never contends on a lock.
func (e *Engine) requestRand() *rand.Rand {
	e.rngMu.Lock()
	seed := e.rng.Int63()
	e.rngMu.Unlock()
	return rand.New(rand.NewSource(seed)) //nolint:gosec // math/rand is fine for recommendation shuffling
}

func (e *Engine) finish(observer Observer, mode Mode, outcome string, start time.Time) {
	if observer != nil {
		observer.ObserveRequest(mode.String(), outcome, time.Since(start))
	}
}

// GetMetrics returns the current engine counters.
func (e *Engine) GetMetrics() Metrics {
	return Metrics{
		Requests:         e.requestCount.Load(),
		Errors:           e.errorCount.Load(),
		Fallbacks:        e.fallbackCount.Load(),
		BatchFailures:    e.batchFailures.Load(),
		CacheHits:        e.cacheHits.Load(),
		CacheMisses:      e.cacheMisses.Load(),
		DegradedProfiles: e.degradedProfiles.Load(),
	}
}

// GetConfig returns a copy of the current configuration.
func (e *Engine) GetConfig() *Config {
	return e.config.Clone()
}

// generateRequestID generates a unique request ID for tracing.
// This method is safe for concurrent use.
func (e *Engine) generateRequestID() string {
	e.rngMu.Lock()
	n := e.rng.Intn(10000)
	e.rngMu.Unlock()
	return fmt.Sprintf("rec-%d-%d", time.Now().UnixNano(), n)
}
