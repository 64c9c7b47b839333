// AltEat Recommend - Recipe Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alteat-recommend

package recommend

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Batches controls how many candidates are fetched per data source query.
	Batches BatchConfig `json:"batches" koanf:"batches"`

	// Weights controls the personalized and similarity scoring bonuses.
	Weights ScoringWeights `json:"weights" koanf:"weights"`

	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits" koanf:"limits"`

	// Cache contains caching parameters for similarity results.
	Cache CacheConfig `json:"cache" koanf:"cache"`

	// PlaceholderImage is used when a recipe has no image.
	// Default: "/placeholder.svg".
	PlaceholderImage string `json:"placeholder_image" koanf:"placeholder_image"`

	// ConcurrentFetch runs the preference and general batches in parallel.
	// Default: true.
	ConcurrentFetch bool `json:"concurrent_fetch" koanf:"concurrent_fetch"`

	// Seed is the random seed for the no-preference score and the fallback
	// shuffle. If zero, the seed is derived from the current time.
	Seed int64 `json:"seed" koanf:"seed"`
}

// BatchConfig controls data source batch sizes.
type BatchConfig struct {
	// Preference is the cuisine-filtered batch size.
	// Default: 50.
	Preference int `json:"preference" koanf:"preference"`

	// General is the unfiltered batch size.
	// Default: 50.
	General int `json:"general" koanf:"general"`

	// Similar is the rating-ordered batch size for similarity mode.
	// Default: 20.
	Similar int `json:"similar" koanf:"similar"`

	// Fallback is the batch size used by the random fallback.
	// Default: 30.
	Fallback int `json:"fallback" koanf:"fallback"`
}

// ScoringWeights holds the additive score components.
type ScoringWeights struct {
	// Cuisine is added once when any preferred cuisine matches.
	// Default: 1000.
	Cuisine float64 `json:"cuisine" koanf:"cuisine"`

	// Skill is added once when a skill keyword is found.
	// Default: 30.
	Skill float64 `json:"skill" koanf:"skill"`

	// Rating is the maximum personalized rating contribution, scaled by rating/5.
	// Default: 20.
	Rating float64 `json:"rating" koanf:"rating"`

	// RandomMax is the exclusive upper bound of the no-preference score.
	// Default: 100.
	RandomMax float64 `json:"random_max" koanf:"random_max"`

	// SimilarRatingDivisor divides the rating in similarity mode.
	// Default: 10.
	SimilarRatingDivisor float64 `json:"similar_rating_divisor" koanf:"similar_rating_divisor"`

	// SimilarCategories is how many anchor path segments are compared.
	// Default: 2.
	SimilarCategories int `json:"similar_categories" koanf:"similar_categories"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// DefaultPersonalized is the personalized limit the API uses when a
	// request omits one.
	// Default: 6.
	DefaultPersonalized int `json:"default_personalized" koanf:"default_personalized"`

	// DefaultSimilar is the similarity limit the API uses when a request
	// omits one.
	// Default: 5.
	DefaultSimilar int `json:"default_similar" koanf:"default_similar"`

	// MaxLimit is the largest limit the API accepts.
	// Default: 50.
	MaxLimit int `json:"max_limit" koanf:"max_limit"`

	// MaxTags is the number of cuisine path segments exposed as tags.
	// Default: 3.
	MaxTags int `json:"max_tags" koanf:"max_tags"`

	// FetchTimeout bounds a single data source call.
	// Default: 5s.
	FetchTimeout time.Duration `json:"fetch_timeout" koanf:"fetch_timeout"`
}

// CacheConfig contains caching parameters.
type CacheConfig struct {
	// Enabled controls whether similarity results are cached.
	// Default: true.
	Enabled bool `json:"enabled" koanf:"enabled"`

	// TTL is the cache entry time-to-live.
	// Default: 5m.
	TTL time.Duration `json:"ttl" koanf:"ttl"`
}

// DefaultConfig returns a Config with sensible production defaults.
func DefaultConfig() *Config {
	return &Config{
		Batches: BatchConfig{
			Preference: 50,
			General:    50,
			Similar:    20,
			Fallback:   30,
		},
		Weights: ScoringWeights{
			Cuisine:              1000,
			Skill:                30,
			Rating:               20,
			RandomMax:            100,
			SimilarRatingDivisor: 10,
			SimilarCategories:    2,
		},
		Limits: LimitsConfig{
			DefaultPersonalized: 6,
			DefaultSimilar:      5,
			MaxLimit:            50,
			MaxTags:             3,
			FetchTimeout:        5 * time.Second,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     5 * time.Minute,
		},
		PlaceholderImage: "/placeholder.svg",
		ConcurrentFetch:  true,
	}
}

// Validate checks the configuration for errors.
//
//nolint:gocyclo // validation needs to check many fields
func (c *Config) Validate() error {
	if c.Batches.Preference < 1 {
		return fmt.Errorf("batches.preference must be positive, got %d", c.Batches.Preference)
	}
	if c.Batches.General < 1 {
		return fmt.Errorf("batches.general must be positive, got %d", c.Batches.General)
	}
	if c.Batches.Similar < 1 {
		return fmt.Errorf("batches.similar must be positive, got %d", c.Batches.Similar)
	}
	if c.Batches.Fallback < 1 {
		return fmt.Errorf("batches.fallback must be positive, got %d", c.Batches.Fallback)
	}

	if c.Weights.Cuisine < 0 || c.Weights.Skill < 0 || c.Weights.Rating < 0 {
		return fmt.Errorf("weights must be non-negative, got cuisine=%f skill=%f rating=%f",
			c.Weights.Cuisine, c.Weights.Skill, c.Weights.Rating)
	}
	if c.Weights.RandomMax <= 0 {
		return fmt.Errorf("weights.random_max must be positive, got %f", c.Weights.RandomMax)
	}
	if c.Weights.SimilarRatingDivisor <= 0 {
		return fmt.Errorf("weights.similar_rating_divisor must be positive, got %f", c.Weights.SimilarRatingDivisor)
	}
	if c.Weights.SimilarCategories < 1 {
		return fmt.Errorf("weights.similar_categories must be positive, got %d", c.Weights.SimilarCategories)
	}

	if c.Limits.DefaultPersonalized < 1 {
		return fmt.Errorf("limits.default_personalized must be positive, got %d", c.Limits.DefaultPersonalized)
	}
	if c.Limits.DefaultSimilar < 1 {
		return fmt.Errorf("limits.default_similar must be positive, got %d", c.Limits.DefaultSimilar)
	}
	if c.Limits.MaxLimit < c.Limits.DefaultPersonalized || c.Limits.MaxLimit < c.Limits.DefaultSimilar {
		return fmt.Errorf("limits.max_limit must be >= both defaults, got %d", c.Limits.MaxLimit)
	}
	if c.Limits.MaxTags < 0 {
		return fmt.Errorf("limits.max_tags must be non-negative, got %d", c.Limits.MaxTags)
	}
	if c.Limits.FetchTimeout <= 0 {
		return fmt.Errorf("limits.fetch_timeout must be positive, got %v", c.Limits.FetchTimeout)
	}

	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive when cache is enabled, got %v", c.Cache.TTL)
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// MarshalJSON renders durations as strings.
func (c *Config) MarshalJSON() ([]byte, error) {
	type Alias Config
	type limits struct {
		DefaultPersonalized int    `json:"default_personalized"`
		DefaultSimilar      int    `json:"default_similar"`
		MaxLimit            int    `json:"max_limit"`
		MaxTags             int    `json:"max_tags"`
		FetchTimeout        string `json:"fetch_timeout"`
	}
	type cacheCfg struct {
		Enabled bool   `json:"enabled"`
		TTL     string `json:"ttl"`
	}
	return json.Marshal(&struct {
		*Alias
		Limits limits   `json:"limits"`
		Cache  cacheCfg `json:"cache"`
	}{
		Alias: (*Alias)(c),
		Limits: limits{
			DefaultPersonalized: c.Limits.DefaultPersonalized,
			DefaultSimilar:      c.Limits.DefaultSimilar,
			MaxLimit:            c.Limits.MaxLimit,
			MaxTags:             c.Limits.MaxTags,
			FetchTimeout:        c.Limits.FetchTimeout.String(),
		},
		Cache: cacheCfg{
			Enabled: c.Cache.Enabled,
			TTL:     c.Cache.TTL.String(),
		},
	})
}
