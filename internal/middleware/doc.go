// AltEat Recommend - Recipe Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alteat-recommend

/*
Package middleware provides HTTP middleware components for the API server.

  - RequestID: assigns X-Request-ID and seeds the logging context with request
    and correlation ids
  - PrometheusMetrics: request count, latency and in-flight gauge, labelled
    by chi route pattern

Both have the func(http.Handler) http.Handler shape and plug into chi directly:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Route("/api/v1", func(r chi.Router) {
	    r.Use(middleware.PrometheusMetrics)
	})
*/
package middleware
