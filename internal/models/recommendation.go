// AltEat Recommend - Recipe Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alteat-recommend

package models

import "github.com/tomtom215/alteat-recommend/internal/recommend"

// RecommendationData is the payload of every recommendation endpoint.
type RecommendationData struct {
	Recipes  []recommend.Recipe `json:"recipes"`
	Count    int                `json:"count"`
	Mode     string             `json:"mode"`
	Fallback bool               `json:"fallback"`
}

// NewRecommendationData builds the payload from an engine response.
// Recipes is never nil so clients always receive an array.
func NewRecommendationData(resp *recommend.Response) RecommendationData {
	if resp == nil {
		return RecommendationData{Recipes: []recommend.Recipe{}}
	}
	recipes := resp.Recipes
	if recipes == nil {
		recipes = []recommend.Recipe{}
	}
	return RecommendationData{
		Recipes:  recipes,
		Count:    len(recipes),
		Mode:     resp.Mode,
		Fallback: resp.Fallback,
	}
}

// RecipeDetail is a single recipe as returned by the detail endpoint.
type RecipeDetail struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Image       string   `json:"image"`
	Tags        []string `json:"tags"`
	Rating      *float64 `json:"rating,omitempty"`
	CuisinePath string   `json:"cuisine_path"`
	Ingredients string   `json:"ingredients"`
	Directions  string   `json:"directions"`
}

// HealthStatus is returned by the health endpoints.
type HealthStatus struct {
	Status   string `json:"status"`
	Version  string `json:"version,omitempty"`
	Database string `json:"database,omitempty"`
	Uptime   string `json:"uptime,omitempty"`
}
