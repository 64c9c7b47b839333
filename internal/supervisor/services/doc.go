// AltEat Recommend - Recipe Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alteat-recommend

/*
Package services provides suture.Service wrappers for the long-running parts
of the recommendation service.

Each wrapper implements suture's Serve(ctx) error contract and returns
ctx.Err() on shutdown, so the supervisor can tell a stop from a crash.

# Available Services

HTTPServerService (API layer):
  - Wraps *http.Server, translating ListenAndServe into Serve
  - Drains in-flight requests within a shutdown timeout

CacheJanitorService (data layer):
  - Calls PurgeExpired on the similar-recipes cache every interval
  - Records evictions and cache size via metrics.RecordCacheSweep

CheckpointService (data layer):
  - Periodically checkpoints the DuckDB or SQLite write-ahead log
*/
package services
