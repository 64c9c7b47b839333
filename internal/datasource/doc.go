// AltEat Recommend - Recipe Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alteat-recommend

// Package datasource guards the recipe store behind a circuit breaker
// (sony/gobreaker) and an optional token bucket (x/time/rate).
//
// The breaker opens once at least MinRequests calls were made in the
// current interval and the failure ratio reaches FailureRatio. While open,
// calls fail fast with gobreaker.ErrOpenState; the engine treats that like
// any other failed batch. Breaker state, transitions and per-call results
// are exported through the metrics package.
package datasource
