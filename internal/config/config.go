// AltEat Recommend - Recipe Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alteat-recommend

package config

import (
	"time"

	"github.com/tomtom215/alteat-recommend/internal/recommend"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Database   DatabaseConfig   `koanf:"database"`
	Recommend  recommend.Config `koanf:"recommend"`
	Cache      CacheConfig      `koanf:"cache"`
	Datasource DatasourceConfig `koanf:"datasource"`
	Security   SecurityConfig   `koanf:"security"`
	Logging    LoggingConfig    `koanf:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Version         string        `koanf:"version"`
}

// DatabaseConfig holds recipe store settings.
type DatabaseConfig struct {
	// Driver selects the store: "duckdb" (default) or "sqlite".
	Driver string `koanf:"driver"`

	// Path is the database file, or ":memory:" for a throwaway store.
	Path string `koanf:"path"`

	// MaxMemory and Threads are DuckDB settings and ignored by SQLite.
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"` // 0 = use NumCPU

	QueryTimeout time.Duration `koanf:"query_timeout"`

	// SeedFile is an optional JSON dataset upserted at startup.
	SeedFile string `koanf:"seed_file"`

	// CheckpointInterval is how often the write-ahead log is checkpointed.
	// Zero disables periodic checkpoints.
	CheckpointInterval time.Duration `koanf:"checkpoint_interval"`
}

// CacheConfig holds response cache store settings.
// The TTL applied to similarity results lives in recommend.cache.ttl.
type CacheConfig struct {
	Backend         string        `koanf:"backend"` // memory or badger
	Path            string        `koanf:"path"`
	InMemory        bool          `koanf:"in_memory"`
	Capacity        int           `koanf:"capacity"`
	DefaultTTL      time.Duration `koanf:"default_ttl"`
	JanitorInterval time.Duration `koanf:"janitor_interval"`
}

// DatasourceConfig holds the resilience settings applied around the recipe store.
type DatasourceConfig struct {
	BreakerEnabled bool          `koanf:"breaker_enabled"`
	MaxRequests    uint32        `koanf:"max_requests"`
	Interval       time.Duration `koanf:"interval"`
	Timeout        time.Duration `koanf:"timeout"`
	MinRequests    uint32        `koanf:"min_requests"`
	FailureRatio   float64       `koanf:"failure_ratio"`

	// QueryRate limits store queries per second. Zero disables throttling.
	QueryRate  float64 `koanf:"query_rate"`
	QueryBurst int     `koanf:"query_burst"`
}

// SecurityConfig holds HTTP hardening settings
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}
