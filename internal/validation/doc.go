// AltEat Recommend - Recipe Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alteat-recommend

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is shared process wide. Field names in error
// messages come from `query` or `json` tags, so API clients see the names
// they sent. Custom tags:
//
//   - skill_level: beginner, intermediate, advanced or expert (any case), or empty
//   - printable: no control characters
//
// Example:
//
//	type SimilarRequest struct {
//	    RecipeID    int    `query:"recipe_id" validate:"gte=1"`
//	    CuisinePath string `query:"cuisine_path" validate:"omitempty,max=500,printable"`
//	    Limit       int    `query:"limit" validate:"gte=0,lte=50"`
//	}
package validation
