// AltEat Recommend - Recipe Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alteat-recommend

package config

import (
	"fmt"
	"strings"

	"github.com/tomtom215/alteat-recommend/internal/logging"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.Recommend.Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	if err := c.validateDatasource(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %v", c.Server.Timeout)
	}
	return nil
}

func (c *Config) validateDatabase() error {
	switch strings.ToLower(c.Database.Driver) {
	case "duckdb", "sqlite":
	default:
		return fmt.Errorf("DB_DRIVER must be duckdb or sqlite, got %q", c.Database.Driver)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("DB_PATH is required")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must be non-negative, got %d", c.Database.Threads)
	}
	if c.Database.QueryTimeout < 0 {
		return fmt.Errorf("DB_QUERY_TIMEOUT must be non-negative, got %v", c.Database.QueryTimeout)
	}
	if c.Database.CheckpointInterval < 0 {
		return fmt.Errorf("DB_CHECKPOINT must be non-negative, got %v", c.Database.CheckpointInterval)
	}
	return nil
}

func (c *Config) validateCache() error {
	switch c.Cache.Backend {
	case "memory":
		if c.Cache.Capacity < 1 {
			return fmt.Errorf("CACHE_CAPACITY must be positive, got %d", c.Cache.Capacity)
		}
	case "badger":
		if c.Cache.Path == "" && !c.Cache.InMemory {
			return fmt.Errorf("CACHE_PATH is required when CACHE_BACKEND=badger and CACHE_IN_MEMORY=false")
		}
	default:
		return fmt.Errorf("CACHE_BACKEND must be memory or badger, got %q", c.Cache.Backend)
	}
	if c.Cache.JanitorInterval <= 0 {
		return fmt.Errorf("CACHE_JANITOR_INTERVAL must be positive, got %v", c.Cache.JanitorInterval)
	}
	return nil
}

func (c *Config) validateDatasource() error {
	if !c.Datasource.BreakerEnabled {
		return nil
	}
	if c.Datasource.FailureRatio <= 0 || c.Datasource.FailureRatio > 1 {
		return fmt.Errorf("DATASOURCE_FAILURE_RATIO must be in (0, 1], got %f", c.Datasource.FailureRatio)
	}
	if c.Datasource.QueryRate < 0 {
		return fmt.Errorf("DATASOURCE_QUERY_RATE must be non-negative, got %f", c.Datasource.QueryRate)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive, got %d", c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %v", c.Security.RateLimitWindow)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error, fatal, panic, disabled; got %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
		return nil
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
}
