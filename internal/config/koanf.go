// AltEat Recommend - Recipe Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alteat-recommend

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/alteat-recommend/internal/recommend"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/alteat/config.yaml",
	"/etc/alteat/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Version:         "dev",
		},
		Database: DatabaseConfig{
			Driver:             "duckdb",
			Path:               "/data/alteat.duckdb",
			MaxMemory:          "1GB",
			Threads:            0,
			QueryTimeout:       30 * time.Second,
			CheckpointInterval: 15 * time.Minute,
		},
		Recommend: *recommend.DefaultConfig(),
		Cache: CacheConfig{
			Backend:         "memory",
			Path:            "/data/cache",
			InMemory:        false,
			Capacity:        10000,
			DefaultTTL:      5 * time.Minute,
			JanitorInterval: time.Minute,
		},
		Datasource: DatasourceConfig{
			BreakerEnabled: true,
			MaxRequests:    3,
			Interval:       time.Minute,
			Timeout:        30 * time.Second,
			MinRequests:    10,
			FailureRatio:   0.6,
			QueryRate:      0, // Unlimited
			QueryBurst:     10,
		},
		Security: SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
//
// Precedence is ENV > File > Defaults.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// HTTP_PORT -> server.port
	// RECOMMEND_CACHE_TTL -> recommend.cache.ttl
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated environment values into
// string slices. Values loaded from YAML are already slices and are left alone.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lowercased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Server
	"http_host":        "server.host",
	"http_port":        "server.port",
	"http_timeout":     "server.timeout",
	"shutdown_timeout": "server.shutdown_timeout",
	"app_version":      "server.version",

	// Database
	"db_driver":         "database.driver",
	"db_path":           "database.path",
	"duckdb_path":       "database.path",
	"duckdb_max_memory": "database.max_memory",
	"duckdb_threads":    "database.threads",
	"db_query_timeout":  "database.query_timeout",
	"seed_file":         "database.seed_file",
	"db_checkpoint":     "database.checkpoint_interval",

	// Recommendation engine
	"recommend_batch_preference":       "recommend.batches.preference",
	"recommend_batch_general":          "recommend.batches.general",
	"recommend_batch_similar":          "recommend.batches.similar",
	"recommend_batch_fallback":         "recommend.batches.fallback",
	"recommend_weight_cuisine":         "recommend.weights.cuisine",
	"recommend_weight_skill":           "recommend.weights.skill",
	"recommend_weight_rating":          "recommend.weights.rating",
	"recommend_random_max":             "recommend.weights.random_max",
	"recommend_similar_rating_divisor": "recommend.weights.similar_rating_divisor",
	"recommend_similar_categories":     "recommend.weights.similar_categories",
	"recommend_default_personalized":   "recommend.limits.default_personalized",
	"recommend_default_similar":        "recommend.limits.default_similar",
	"recommend_max_limit":              "recommend.limits.max_limit",
	"recommend_max_tags":               "recommend.limits.max_tags",
	"recommend_fetch_timeout":          "recommend.limits.fetch_timeout",
	"recommend_cache_enabled":          "recommend.cache.enabled",
	"recommend_cache_ttl":              "recommend.cache.ttl",
	"recommend_placeholder_image":      "recommend.placeholder_image",
	"recommend_concurrent_fetch":       "recommend.concurrent_fetch",
	"recommend_seed":                   "recommend.seed",

	// Cache store
	"cache_backend":          "cache.backend",
	"cache_path":             "cache.path",
	"cache_in_memory":        "cache.in_memory",
	"cache_capacity":         "cache.capacity",
	"cache_default_ttl":      "cache.default_ttl",
	"cache_janitor_interval": "cache.janitor_interval",

	// Data source resilience
	"datasource_breaker_enabled": "datasource.breaker_enabled",
	"datasource_max_requests":    "datasource.max_requests",
	"datasource_interval":        "datasource.interval",
	"datasource_timeout":         "datasource.timeout",
	"datasource_min_requests":    "datasource.min_requests",
	"datasource_failure_ratio":   "datasource.failure_ratio",
	"datasource_query_rate":      "datasource.query_rate",
	"datasource_query_burst":     "datasource.query_burst",

	// Security
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Unmapped variables return "" and are skipped so unrelated environment
// variables never leak into the configuration.
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
