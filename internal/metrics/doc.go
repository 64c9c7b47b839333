// AltEat Recommend - Recipe Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alteat-recommend

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto
and exposed at /metrics by the API router:

	curl http://localhost:8080/metrics

# Available Metrics

Recipe Store Metrics:
  - recipe_store_query_duration_seconds: Query execution time (histogram)
    Labels: operation, table
  - recipe_store_query_errors_total: Failed queries (counter)
    Labels: operation, table, error_type (truncated to 50 characters)

API Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
  - api_active_requests: In-flight requests (gauge)

Recommendation Metrics:
  - recommend_requests_total: Requests by mode and outcome (counter)
    Outcomes: success, fallback, empty, cached, error
  - recommend_duration_seconds: Engine latency by mode (histogram)
  - recommend_fallbacks_total: Personalized requests served randomly (counter)
  - recommend_batch_failures_total: Failed candidate batches (counter)
    Labels: batch (preference, general, similar, fallback)

Cache Metrics:
  - cache_hits_total, cache_misses_total: Lookups (counter)
  - cache_size: Entries after the last janitor sweep (gauge)
  - cache_evictions_total: Entries removed by sweeps (counter)

Circuit Breaker Metrics:
  - circuit_breaker_state: 0=closed, 1=half-open, 2=open (gauge)
  - circuit_breaker_requests_total: Labels name, result
  - circuit_breaker_consecutive_failures (gauge)
  - circuit_breaker_transitions_total: Labels name, from_state, to_state

# Engine Integration

RecommendObserver implements the recommendation engine's Observer
interface, so the engine itself never imports Prometheus:

	engine.SetObserver(metrics.NewRecommendObserver())

# Thread Safety

All functions are safe for concurrent use. Prometheus collectors handle
their own synchronization.
*/
package metrics
