// AltEat Recommend - Recipe Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alteat-recommend

package api

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/alteat-recommend/internal/recommend"
)

// Recommender is the part of the recommendation engine the API needs.
// *recommend.Engine satisfies it.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Response, error)
	LoadPreferences(ctx context.Context, userID string) (*recommend.UserPreferences, error)
	NormalizeRecipe(rec *recommend.RecipeRecord) recommend.Recipe
}

// RecipeStore provides direct recipe lookups and store health.
// *database.DB satisfies it.
type RecipeStore interface {
	GetRecipe(ctx context.Context, id int) (*recommend.RecipeRecord, error)
	Ping(ctx context.Context) error
}

// HandlerConfig holds handler tunables.
type HandlerConfig struct {
	// Version is reported by the health endpoints.
	Version string

	// RequestTimeout bounds the work done for one request.
	// Default: 10s.
	RequestTimeout time.Duration

	// CacheMaxAge is the client cache lifetime of deterministic responses
	// (similar recipes and recipe detail).
	// Default: 60s.
	CacheMaxAge time.Duration

	// DefaultPersonalizedLimit and DefaultSimilarLimit apply when a request
	// omits limit. Defaults: 6 and 5.
	DefaultPersonalizedLimit int
	DefaultSimilarLimit      int

	// MaxLimit is the largest accepted limit.
	// Default: 50.
	MaxLimit int
}

// Handler serves the recommendation API.
type Handler struct {
	engine    Recommender
	store     RecipeStore
	cfg       HandlerConfig
	startTime time.Time
}

// NewHandler creates a new API handler.
func NewHandler(engine Recommender, store RecipeStore, cfg HandlerConfig) *Handler {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}
	if cfg.CacheMaxAge <= 0 {
		cfg.CacheMaxAge = time.Minute
	}
	limits := recommend.DefaultConfig().Limits
	if cfg.DefaultPersonalizedLimit <= 0 {
		cfg.DefaultPersonalizedLimit = limits.DefaultPersonalized
	}
	if cfg.DefaultSimilarLimit <= 0 {
		cfg.DefaultSimilarLimit = limits.DefaultSimilar
	}
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = limits.MaxLimit
	}
	return &Handler{
		engine:    engine,
		store:     store,
		cfg:       cfg,
		startTime: time.Now(),
	}
}

var errNoStore = errors.New("api: no recipe store configured")

var (
	_ Recommender = (*recommend.Engine)(nil)
)
