// AltEat Recommend - Recipe Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alteat-recommend

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/alteat-recommend/internal/logging"
	"github.com/tomtom215/alteat-recommend/internal/models"
	"github.com/tomtom215/alteat-recommend/internal/recommend"
)

// PersonalizedParams are the query parameters of the personalized endpoints.
// A missing limit is nil and selects the configured default.
type PersonalizedParams struct {
	UserID string `query:"user_id" validate:"omitempty,max=128,printable"`
	Limit  *int   `query:"limit" validate:"omitempty,gte=1"`
}

// SimilarParams are the parameters of the similar recipes endpoint.
type SimilarParams struct {
	RecipeID    int     `query:"recipe_id" validate:"gte=1"`
	CuisinePath *string `query:"cuisine_path" validate:"omitempty,max=512,printable"`
	Limit       *int    `query:"limit" validate:"omitempty,gte=1"`
}

// GetPersonalized handles GET /api/v1/recommendations/personalized?user_id=&limit=
// A missing user_id is an anonymous request without preferences.
func (h *Handler) GetPersonalized(w http.ResponseWriter, r *http.Request) {
	h.servePersonalized(w, r, r.URL.Query().Get("user_id"))
}

// GetUserRecommendations handles GET /api/v1/recommendations/user/{userID}?limit=
func (h *Handler) GetUserRecommendations(w http.ResponseWriter, r *http.Request) {
	h.servePersonalized(w, r, chi.URLParam(r, "userID"))
}

func (h *Handler) servePersonalized(w http.ResponseWriter, r *http.Request, userID string) {
	params := PersonalizedParams{UserID: userID}
	if apiErr := parseLimit(r, &params.Limit); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}
	if apiErr := validateRequest(&params); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}
	limit, apiErr := h.resolveLimit(params.Limit, h.cfg.DefaultPersonalizedLimit)
	if apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()
	start := time.Now()

	prefs, err := h.engine.LoadPreferences(ctx, params.UserID)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	resp, err := h.engine.Recommend(ctx, recommend.Request{
		Preferences: prefs,
		Limit:       limit,
		RequestID:   logging.RequestIDFromContext(r.Context()),
	})
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	if resp.Fallback {
		logging.Ctx(r.Context()).Info().
			Str("user_id", logging.SanitizeUserID(params.UserID)).
			Int("returned", len(resp.Recipes)).
			Msg("Served random fallback recommendations")
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: models.StatusSuccess,
		Data:   models.NewRecommendationData(resp),
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
			RequestID:   resp.Metadata.RequestID,
		},
	})
}

// GetSimilar handles GET /api/v1/recommendations/similar/{recipeID}?cuisine_path=&limit=
// When cuisine_path is omitted the anchor recipe is looked up to obtain it.
func (h *Handler) GetSimilar(w http.ResponseWriter, r *http.Request) {
	recipeID, apiErr := parseRecipeID(r)
	if apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	params := SimilarParams{RecipeID: recipeID}
	if r.URL.Query().Has("cuisine_path") {
		path := r.URL.Query().Get("cuisine_path")
		params.CuisinePath = &path
	}
	if apiErr := parseLimit(r, &params.Limit); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}
	if apiErr := validateRequest(&params); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}
	limit, apiErr := h.resolveLimit(params.Limit, h.cfg.DefaultSimilarLimit)
	if apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()
	start := time.Now()

	if params.CuisinePath == nil {
		anchor, err := h.lookupRecipe(ctx, params.RecipeID)
		if err != nil {
			respondEngineError(w, r, err)
			return
		}
		params.CuisinePath = &anchor.CuisinePath
	}

	resp, err := h.engine.Recommend(ctx, recommend.Request{
		ExcludeID:         &params.RecipeID,
		AnchorCuisinePath: params.CuisinePath,
		Limit:             limit,
		RequestID:         logging.RequestIDFromContext(r.Context()),
	})
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	respondCacheableJSON(w, r, &models.APIResponse{
		Status: models.StatusSuccess,
		Data:   models.NewRecommendationData(resp),
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
			Cached:      resp.Metadata.CacheHit,
			RequestID:   resp.Metadata.RequestID,
		},
	}, h.cfg.CacheMaxAge)
}

// lookupRecipe loads a recipe from the store. Store failures other than a
// missing recipe are reported as the data source being unavailable.
func (h *Handler) lookupRecipe(ctx context.Context, id int) (*recommend.RecipeRecord, error) {
	rec, err := h.store.GetRecipe(ctx, id)
	switch {
	case err == nil:
		return rec, nil
	case errors.Is(err, recommend.ErrNotFound):
		return nil, err
	default:
		return nil, fmt.Errorf("%w: recipe lookup: %w", recommend.ErrDataSourceUnavailable, err)
	}
}

// parseLimit reads the optional limit query parameter into dst.
// An absent or empty value leaves dst nil.
func parseLimit(r *http.Request, dst **int) *models.APIError {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return nil
	}
	n, apiErr := parseOptionalInt(raw, "limit", 0)
	if apiErr != nil {
		return apiErr
	}
	*dst = &n
	return nil
}

// parseRecipeID reads the {recipeID} path parameter.
func parseRecipeID(r *http.Request) (int, *models.APIError) {
	raw := chi.URLParam(r, "recipeID")
	id, apiErr := parseOptionalInt(raw, "recipe_id", 0)
	if apiErr != nil {
		return 0, apiErr
	}
	if id < 1 {
		return 0, &models.APIError{
			Code:    codeValidation,
			Message: "recipe_id must be a positive integer",
			Details: map[string]interface{}{"field": "recipe_id", "value": logging.SanitizeValue(raw)},
		}
	}
	return id, nil
}

// resolveLimit returns def for an omitted limit and rejects values above
// the configured maximum.
func (h *Handler) resolveLimit(limit *int, def int) (int, *models.APIError) {
	if limit == nil {
		return def, nil
	}
	if *limit > h.cfg.MaxLimit {
		return 0, &models.APIError{
			Code:    codeValidation,
			Message: fmt.Sprintf("limit must be less than or equal to %d", h.cfg.MaxLimit),
			Details: map[string]interface{}{"field": "limit", "tag": "lte", "value": *limit},
		}
	}
	return *limit, nil
}
