// AltEat Recommend - Recipe Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alteat-recommend

/*
Package config provides centralized configuration management for AltEat Recommend.

Configuration is loaded with Koanf v2 in three layers, each overriding the previous:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file: $CONFIG_PATH, config.yaml, config.yml,
    /etc/alteat/config.yaml or /etc/alteat/config.yml
 3. Environment variables, mapped explicitly to config keys

Unknown environment variables are ignored.

# Configuration Structure

  - ServerConfig: HTTP listener settings
  - DatabaseConfig: recipe store driver (duckdb or sqlite), path and tuning
  - recommend.Config: engine batch sizes, scoring weights, limits and result caching
  - CacheConfig: response cache backend (memory or badger) and janitor interval
  - DatasourceConfig: circuit breaker and query throttling around the store
  - SecurityConfig: CORS origins and per-IP rate limiting
  - LoggingConfig: zerolog level, format and caller reporting

# Environment Variables

Server:
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_PORT: Listen port (default: 8080)
  - HTTP_TIMEOUT: Read/write timeout (default: 30s)
  - SHUTDOWN_TIMEOUT: Graceful shutdown budget (default: 10s)

Database:
  - DB_DRIVER: duckdb or sqlite (default: duckdb)
  - DB_PATH / DUCKDB_PATH: Database file (default: /data/alteat.duckdb)
  - DUCKDB_MAX_MEMORY, DUCKDB_THREADS: DuckDB tuning
  - SEED_FILE: JSON dataset loaded at startup
  - DB_CHECKPOINT: WAL checkpoint interval, 0 disables (default: 15m)

Recommendation engine:
  - RECOMMEND_BATCH_PREFERENCE, RECOMMEND_BATCH_GENERAL, RECOMMEND_BATCH_SIMILAR, RECOMMEND_BATCH_FALLBACK
  - RECOMMEND_WEIGHT_CUISINE, RECOMMEND_WEIGHT_SKILL, RECOMMEND_WEIGHT_RATING
  - RECOMMEND_MAX_LIMIT, RECOMMEND_FETCH_TIMEOUT
  - RECOMMEND_CACHE_ENABLED, RECOMMEND_CACHE_TTL

Cache store:
  - CACHE_BACKEND: memory or badger (default: memory)
  - CACHE_PATH, CACHE_IN_MEMORY: BadgerDB location
  - CACHE_JANITOR_INTERVAL: Expired entry sweep interval (default: 1m)

Data source:
  - DATASOURCE_BREAKER_ENABLED, DATASOURCE_FAILURE_RATIO, DATASOURCE_TIMEOUT
  - DATASOURCE_QUERY_RATE, DATASOURCE_QUERY_BURST

Security:
  - CORS_ORIGINS: Comma-separated allowed origins (default: *)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Usage

	cfg, err := config.LoadWithKoanf()
	if err != nil {
	    log.Fatal(err)
	}
*/
package config
