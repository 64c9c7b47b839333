// AltEat Recommend - Recipe Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alteat-recommend

/*
Package models defines the HTTP payloads of AltEat Recommend.

Every endpoint wraps its payload in APIResponse:

  - APIResponse: status, data, metadata and an optional error
  - Metadata: timestamp, query time, cache flag and request id
  - APIError: machine-readable code, message and details

Payloads:

  - RecommendationData: recipes, count, mode and fallback flag
  - RecipeDetail: a single normalized recipe with its source text
  - HealthStatus: liveness and readiness results

Domain types such as recommend.Recipe live in the recommend package;
this package only shapes them for transport.
*/
package models
