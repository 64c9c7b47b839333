// AltEat Recommend - Recipe Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alteat-recommend

package database

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/alteat-recommend/internal/logging"
	"github.com/tomtom215/alteat-recommend/internal/recommend"
	"github.com/tomtom215/alteat-recommend/internal/validation"
)

// SeedRecipe is one recipe in a seed file. Rating may be a JSON number,
// a string or null.
type SeedRecipe struct {
	ID          int             `json:"id" validate:"gte=1"`
	Name        string          `json:"recipe_name" validate:"required,max=500"`
	CuisinePath string          `json:"cuisine_path" validate:"max=1000"`
	Ingredients string          `json:"ingredients"`
	Directions  string          `json:"directions"`
	Rating      json.RawMessage `json:"rating"`
	ImageURL    string          `json:"img_src" validate:"omitempty,url"`
}

// SeedProfile is one user profile in a seed file.
type SeedProfile struct {
	UserID             string   `json:"user_id" validate:"required,max=128,printable"`
	CuisinePreferences []string `json:"cuisine_preferences"`
	SkillLevel         string   `json:"skill_level" validate:"skill_level"`
	AvoidIngredients   []string `json:"avoid_ingredients"`
}

// SeedData is the seed file layout.
type SeedData struct {
	Recipes  []SeedRecipe  `json:"recipes" validate:"dive"`
	Profiles []SeedProfile `json:"profiles" validate:"dive"`
}

// SeedResult reports what a seed run wrote.
type SeedResult struct {
	Recipes  int
	Profiles int
}

// SeedFromFile loads a JSON seed file and upserts its contents.
func (db *DB) SeedFromFile(ctx context.Context, path string) (SeedResult, error) {
	//nolint:gosec // path comes from operator configuration
	raw, err := os.ReadFile(path)
	if err != nil {
		return SeedResult{}, fmt.Errorf("read seed file: %w", err)
	}

	var data SeedData
	if err := json.Unmarshal(raw, &data); err != nil {
		return SeedResult{}, fmt.Errorf("decode seed file %s: %w", path, err)
	}

	res, err := db.Seed(ctx, &data)
	if err != nil {
		return res, err
	}
	logging.Info().
		Str("path", path).
		Int("recipes", res.Recipes).
		Int("profiles", res.Profiles).
		Msg("Seeded recipe store")
	return res, nil
}

// Seed validates data and upserts it.
func (db *DB) Seed(ctx context.Context, data *SeedData) (SeedResult, error) {
	if verr := validation.ValidateStruct(data); verr != nil {
		return SeedResult{}, fmt.Errorf("invalid seed data: %w", verr)
	}

	recipes := make([]recommend.RecipeRecord, len(data.Recipes))
	for i := range data.Recipes {
		s := &data.Recipes[i]
		recipes[i] = recommend.RecipeRecord{
			ID:          s.ID,
			Name:        s.Name,
			CuisinePath: s.CuisinePath,
			Ingredients: s.Ingredients,
			Directions:  s.Directions,
			Rating:      seedRating(s.Rating),
			ImageURL:    s.ImageURL,
		}
	}
	if err := db.UpsertRecipes(ctx, recipes); err != nil {
		return SeedResult{}, err
	}

	for i := range data.Profiles {
		p := &data.Profiles[i]
		prefs := &recommend.UserPreferences{
			CuisinePreferences: p.CuisinePreferences,
			SkillLevel:         recommend.SkillLevel(strings.ToLower(p.SkillLevel)),
			AvoidIngredients:   p.AvoidIngredients,
		}
		if err := db.UpsertProfile(ctx, p.UserID, prefs); err != nil {
			return SeedResult{Recipes: len(recipes), Profiles: i}, err
		}
	}

	return SeedResult{Recipes: len(recipes), Profiles: len(data.Profiles)}, nil
}

// seedRating accepts 4.5, "4.5" and null. Anything unparsable becomes nil.
func seedRating(raw json.RawMessage) *float64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}
		return ParseRating(s)
	}
	return ParseRating(string(raw))
}
