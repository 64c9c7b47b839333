// AltEat Recommend - Recipe Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alteat-recommend

// Package database stores recipes and user profiles and serves the
// recommendation engine's candidate queries.
//
// # Drivers
//
// DuckDB (github.com/duckdb/duckdb-go/v2) is the default store. SQLite
// (modernc.org/sqlite, pure Go) is available with database.driver=sqlite and
// backs most unit tests. Both use the same schema and query shapes.
//
// # Schema
//
//   - recipes(id, recipe_name, cuisine_path, ingredients, directions, rating, img_src)
//   - profiles(user_id, cuisine_preferences, skill_level, avoid_ingredients)
//
// rating is text and parsed on read; unparsable values are treated as
// absent. The profile list columns hold JSON arrays of strings; anything else
// is reported as recommend.ErrInvalidPreferenceData.
//
// # Queries
//
//   - FetchByCuisineSubstring: instr(lower(cuisine_path), ?) > 0 per token, OR-ed, id order
//   - FetchGeneral: id order
//   - FetchByRatingDesc: numeric rating descending, NULLS LAST, then id
//   - GetRecipe: single row or recommend.ErrNotFound
//
// Every query runs under the configured timeout and is recorded in the
// recipe_store_query_* Prometheus metrics.
//
// # Seeding
//
// SeedFromFile loads {"recipes": [...], "profiles": [...]} and upserts it
// after validation.
package database
