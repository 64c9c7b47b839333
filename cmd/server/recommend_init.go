// AltEat Recommend - Recipe Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alteat-recommend

package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/alteat-recommend/internal/cache"
	"github.com/tomtom215/alteat-recommend/internal/config"
	"github.com/tomtom215/alteat-recommend/internal/database"
	"github.com/tomtom215/alteat-recommend/internal/datasource"
	"github.com/tomtom215/alteat-recommend/internal/metrics"
	"github.com/tomtom215/alteat-recommend/internal/recommend"
)

// similarCacheName labels the similar-recipes cache in metrics and logs.
const similarCacheName = "similar"

// RecommendComponents holds everything the engine is assembled from.
type RecommendComponents struct {
	DB       *database.DB
	Provider recommend.DataProvider
	Cache    cache.Store
	Engine   *recommend.Engine
}

// Close releases the cache and the database.
func (c *RecommendComponents) Close(logger *zerolog.Logger) {
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			logger.Error().Err(err).Msg("Error closing response cache")
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logger.Error().Err(err).Msg("Error closing database")
		}
	}
}

// initRecommend opens the recipe store, applies the optional seed file and
// builds the engine with its provider, cache and metrics observer.
// On error every resource opened so far is released.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initRecommend(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*RecommendComponents, error) {
	comps := &RecommendComponents{}

	db, err := database.New(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open recipe store: %w", err)
	}
	comps.DB = db

	if cfg.Database.SeedFile != "" {
		if _, err := db.SeedFromFile(ctx, cfg.Database.SeedFile); err != nil {
			comps.Close(&logger)
			return nil, fmt.Errorf("seed recipe store: %w", err)
		}
	}

	if recipes, profiles, err := db.RecordCounts(ctx); err == nil {
		logger.Info().Int64("recipes", recipes).Int64("profiles", profiles).Msg("Recipe store contents")
		if recipes == 0 {
			logger.Warn().Msg("Recipe store is empty; every request will return no recipes until it is seeded")
		}
	}

	comps.Provider, err = buildProvider(db, &cfg.Datasource)
	if err != nil {
		comps.Close(&logger)
		return nil, err
	}

	if cfg.Recommend.Cache.Enabled {
		comps.Cache, err = cache.NewStore(cacheStoreConfig(&cfg.Cache))
		if err != nil {
			comps.Close(&logger)
			return nil, fmt.Errorf("open response cache: %w", err)
		}
		logger.Info().
			Str("backend", cfg.Cache.Backend).
			Dur("ttl", cfg.Recommend.Cache.TTL).
			Msg("Similar-recipes cache enabled")
	}

	engine, err := recommend.NewEngine(&cfg.Recommend, logger)
	if err != nil {
		comps.Close(&logger)
		return nil, fmt.Errorf("create recommendation engine: %w", err)
	}
	engine.SetDataProvider(comps.Provider)
	if comps.Cache != nil {
		engine.SetCache(comps.Cache)
	}
	engine.SetObserver(metrics.NewRecommendObserver())
	comps.Engine = engine

	return comps, nil
}

// buildProvider wraps the store in the circuit breaker when enabled.
func buildProvider(db *database.DB, cfg *config.DatasourceConfig) (recommend.DataProvider, error) {
	if !cfg.BreakerEnabled {
		return db, nil
	}
	provider, err := datasource.NewCircuitBreakerProvider(db, datasourceConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("create circuit breaker: %w", err)
	}
	return provider, nil
}

func datasourceConfig(cfg *config.DatasourceConfig) datasource.Config {
	dc := datasource.DefaultConfig()
	dc.MaxRequests = cfg.MaxRequests
	dc.Interval = cfg.Interval
	dc.Timeout = cfg.Timeout
	dc.MinRequests = cfg.MinRequests
	dc.FailureRatio = cfg.FailureRatio
	dc.QueryRate = cfg.QueryRate
	dc.QueryBurst = cfg.QueryBurst
	return dc
}

func cacheStoreConfig(cfg *config.CacheConfig) cache.Config {
	return cache.Config{
		Backend:    cache.Backend(cfg.Backend),
		Path:       cfg.Path,
		InMemory:   cfg.InMemory,
		Capacity:   cfg.Capacity,
		DefaultTTL: cfg.DefaultTTL,
	}
}
