// AltEat Recommend - Recipe Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alteat-recommend

// Package recommend implements the recipe recommendation engine.
//
// # Architecture
//
// A request flows through three stages:
//
//   - Collector: gathers a deduplicated candidate pool from the DataProvider
//   - Scorer: assigns each candidate an explainable heuristic score
//   - Ranker: excludes avoided ingredients, sorts stably, truncates, normalizes
//
// Two modes are supported. Personalized mode is driven by a user's stored
// preferences (cuisines, skill level, avoided ingredients). Similarity mode is
// driven by the cuisine path of a single anchor recipe.
//
// # Scoring
//
// Personalized mode adds a dominant cuisine bonus (default 1000), a skill
// keyword bonus (default 30) and a rating bonus of (rating/5)*20. Without
// preferences every candidate receives a uniform random score in [0,100).
//
// Similarity mode counts how many of the anchor's first two cuisine path
// segments appear in the candidate's cuisine path and adds rating/10.
//
// # Fallback
//
// When personalized ranking yields nothing, the engine fetches a general pool,
// shuffles it and returns the first limit recipes. Preferences are ignored on
// this path.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//	engine.SetDataProvider(provider)
//
//	recipes, err := engine.GetPersonalizedRecommendations(ctx, userID, 6)
//	similar, err := engine.GetSimilarRecipes(ctx, recipeID, "Asian/Thai/Curry", 5)
//
// # Thread Safety
//
// The engine is safe for concurrent use. Candidate pools, scores and rankings
// are request scoped. The only shared state is the seed source, the optional
// response cache and atomic counters.
package recommend
