// AltEat Recommend - Recipe Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alteat-recommend

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/alteat-recommend/internal/models"
)

// GetRecipe handles GET /api/v1/recipes/{recipeID}
// Returns the normalized recipe together with its source text.
func (h *Handler) GetRecipe(w http.ResponseWriter, r *http.Request) {
	recipeID, apiErr := parseRecipeID(r)
	if apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()
	start := time.Now()

	rec, err := h.lookupRecipe(ctx, recipeID)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	normalized := h.engine.NormalizeRecipe(rec)
	respondCacheableJSON(w, r, &models.APIResponse{
		Status: models.StatusSuccess,
		Data: models.RecipeDetail{
			ID:          normalized.ID,
			Title:       normalized.Title,
			Image:       normalized.Image,
			Tags:        normalized.Tags,
			Rating:      normalized.Rating,
			CuisinePath: rec.CuisinePath,
			Ingredients: rec.Ingredients,
			Directions:  rec.Directions,
		},
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	}, h.cfg.CacheMaxAge)
}
