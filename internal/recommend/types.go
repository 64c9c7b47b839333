// AltEat Recommend - Recipe Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alteat-recommend

package recommend

import (
	"context"
	"math"
	"strings"
)

// SkillLevel is the self-declared cooking skill of a user.
type SkillLevel string

const (
	// SkillBeginner is the default skill level.
	SkillBeginner SkillLevel = "beginner"
	// SkillIntermediate matches "medium" style recipes.
	SkillIntermediate SkillLevel = "intermediate"
	// SkillAdvanced matches "hard" style recipes.
	SkillAdvanced SkillLevel = "advanced"
	// SkillExpert matches "gourmet" style recipes.
	SkillExpert SkillLevel = "expert"
)

// RecipeRecord is one recipe as stored by the data source.
// The engine only reads records; it never mutates them.
type RecipeRecord struct {
	// ID is unique within a candidate pool after deduplication.
	ID int `json:"id"`

	// Name is the display name.
	Name string `json:"recipe_name"`

	// CuisinePath is a slash-delimited taxonomy, e.g. "Asian/Thai/Curry".
	CuisinePath string `json:"cuisine_path"`

	// Ingredients is free-form, comma-delimited ingredient text.
	Ingredients string `json:"ingredients"`

	// Directions is free-form cooking instructions.
	Directions string `json:"directions"`

	// Rating is nil when the stored rating is absent or not a number.
	Rating *float64 `json:"rating,omitempty"`

	// ImageURL is optional and not used by scoring.
	ImageURL string `json:"img_src,omitempty"`
}

// ValidRating returns the rating and whether it is usable as a signal.
func (r *RecipeRecord) ValidRating() (float64, bool) {
	if r.Rating == nil {
		return 0, false
	}
	v := *r.Rating
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// UserPreferences are a requester's stated preferences.
type UserPreferences struct {
	// CuisinePreferences are matched case-insensitively against cuisine paths.
	CuisinePreferences []string `json:"cuisine_preferences"`

	// SkillLevel defaults to beginner when unset.
	SkillLevel SkillLevel `json:"skill_level"`

	// AvoidIngredients exclude any recipe whose ingredients contain one of them.
	AvoidIngredients []string `json:"avoid_ingredients"`
}

// EffectiveSkillLevel returns the skill level, applying the beginner default.
func (p *UserPreferences) EffectiveSkillLevel() SkillLevel {
	if p.SkillLevel == "" {
		return SkillBeginner
	}
	return SkillLevel(strings.ToLower(string(p.SkillLevel)))
}

// Mode selects how a request is served.
type Mode int

const (
	// ModePersonalized ranks by user preferences.
	ModePersonalized Mode = iota
	// ModeSimilar ranks by proximity to an anchor recipe.
	ModeSimilar
)

// String returns a human-readable name for the mode.
func (m Mode) String() string {
	switch m {
	case ModePersonalized:
		return "personalized"
	case ModeSimilar:
		return "similar"
	default:
		return "unknown"
	}
}

// Request is the engine's single entry parameter.
// Populating ExcludeID or AnchorCuisinePath selects similarity mode;
// otherwise the request is personalized.
type Request struct {
	// Preferences drive personalized mode. Nil means no preference signal.
	Preferences *UserPreferences `json:"preferences,omitempty"`

	// ExcludeID is the anchor recipe, never returned in similarity mode.
	ExcludeID *int `json:"exclude_id,omitempty"`

	// AnchorCuisinePath is the anchor recipe's cuisine path.
	AnchorCuisinePath *string `json:"anchor_cuisine_path,omitempty"`

	// Limit is the maximum number of recipes to return. Zero returns none.
	Limit int `json:"limit"`

	// RequestID is used for log correlation. Generated when empty.
	RequestID string `json:"request_id,omitempty"`
}

// Mode reports which mode the request selects.
//
//nolint:gocritic // hugeParam: Request passed by value for immutability
func (r Request) Mode() Mode {
	if r.ExcludeID != nil || r.AnchorCuisinePath != nil {
		return ModeSimilar
	}
	return ModePersonalized
}

// ScoredCandidate pairs a record with its computed score.
// It is request scoped and never persisted.
type ScoredCandidate struct {
	Record RecipeRecord
	Score  float64
}

// Recipe is the caller-facing, normalized recipe shape.
type Recipe struct {
	ID     int      `json:"id"`
	Title  string   `json:"title"`
	Image  string   `json:"image"`
	Tags   []string `json:"tags"`
	Rating *float64 `json:"rating,omitempty"`
}

// Response is the result of one engine call.
type Response struct {
	// Recipes are ordered best first; never nil.
	Recipes []Recipe `json:"recipes"`

	// Mode is the mode that served the request.
	Mode string `json:"mode"`

	// Fallback is true when the random fallback path produced Recipes.
	Fallback bool `json:"fallback"`

	// TotalCandidates is the size of the collected pool.
	TotalCandidates int `json:"total_candidates"`

	// Metadata contains request tracing information.
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata contains request tracing information.
type ResponseMetadata struct {
	RequestID string `json:"request_id"`
	LatencyMS int64  `json:"latency_ms"`
	CacheHit  bool   `json:"cache_hit"`
}

// DataProvider is the external data store the engine reads from.
// Implementations must honour context cancellation.
type DataProvider interface {
	// FetchByCuisineSubstring returns recipes whose cuisine path contains any
	// token, compared case-insensitively.
	FetchByCuisineSubstring(ctx context.Context, tokens []string, limit int) ([]RecipeRecord, error)

	// FetchGeneral returns an unfiltered batch.
	FetchGeneral(ctx context.Context, limit int) ([]RecipeRecord, error)

	// FetchByRatingDesc returns recipes ordered by rating, highest first,
	// never including excludeID.
	FetchByRatingDesc(ctx context.Context, excludeID int, limit int) ([]RecipeRecord, error)

	// FetchUserPreferences returns nil, nil when the user has no profile and
	// an error wrapping ErrInvalidPreferenceData when the profile is malformed.
	FetchUserPreferences(ctx context.Context, userID string) (*UserPreferences, error)
}

// Metrics is a snapshot of engine counters.
type Metrics struct {
	Requests         int64 `json:"requests"`
	Errors           int64 `json:"errors"`
	Fallbacks        int64 `json:"fallbacks"`
	BatchFailures    int64 `json:"batch_failures"`
	CacheHits        int64 `json:"cache_hits"`
	CacheMisses      int64 `json:"cache_misses"`
	DegradedProfiles int64 `json:"degraded_profiles"`
}
