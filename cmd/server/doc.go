// AltEat Recommend - Recipe Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alteat-recommend

/*
Package main is the entry point for the AltEat recommendation server.

The server ranks recipes for a user from their stated preferences, finds
recipes similar to an anchor recipe, and serves both over a JSON HTTP API.

# Application Architecture

	RootSupervisor ("alteat-recommend")
	├── DataSupervisor ("data-layer")
	│   ├── CacheJanitorService (when recommend.cache.enabled)
	│   └── CheckpointService   (when database.checkpoint_interval > 0)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Initialization order:

 1. Configuration: koanf v2 (defaults, config.yaml, environment)
 2. Logging: zerolog, JSON or console
 3. Recipe store: DuckDB or SQLite, optionally seeded from a JSON file
 4. Data provider: the store behind a gobreaker circuit breaker
 5. Response cache: in-memory LRU or BadgerDB
 6. Recommendation engine with Prometheus observer
 7. Chi router and supervisor tree

# Configuration

	HTTP_PORT=8080               # listen port
	DB_DRIVER=duckdb             # duckdb or sqlite
	DB_PATH=/data/alteat.duckdb
	SEED_FILE=/data/seed.json    # {"recipes":[...],"profiles":[...]}
	CACHE_BACKEND=memory         # memory or badger
	LOG_LEVEL=info
	LOG_FORMAT=json

See package config for the full list.

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains
in-flight requests within SHUTDOWN_TIMEOUT, the store is checkpointed and
closed, and services that failed to stop are logged.
*/
package main
