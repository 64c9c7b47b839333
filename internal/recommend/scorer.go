// AltEat Recommend - Recipe Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alteat-recommend

package recommend

import (
	"math/rand"
	"strings"
)

// skillKeywords maps each skill level to the words that signal a recipe of
// that difficulty in its name or directions.
var skillKeywords = map[SkillLevel][]string{
	SkillBeginner:     {"easy", "simple", "quick", "basic"},
	SkillIntermediate: {"medium", "moderate"},
	SkillAdvanced:     {"hard", "complex", "challenging"},
	SkillExpert:       {"gourmet", "professional", "advanced"},
}

// scorer computes heuristic scores. It holds no request state besides the
// random source used for the no-preference path.
type scorer struct {
	weights ScoringWeights
	rng     *rand.Rand
}

// personalizedScore scores a record against user preferences.
// Without preferences the score is uniform random in [0, RandomMax).
func (s *scorer) personalizedScore(rec *RecipeRecord, prefs *UserPreferences) float64 {
	if prefs == nil {
		return s.rng.Float64() * s.weights.RandomMax //nolint:gosec // not security sensitive
	}

	var score float64
	if cuisineMatches(rec.CuisinePath, prefs.CuisinePreferences) {
		score += s.weights.Cuisine
	}
	if skillMatches(rec, prefs.EffectiveSkillLevel()) {
		score += s.weights.Skill
	}
	if rating, ok := rec.ValidRating(); ok {
		score += (rating / 5) * s.weights.Rating
	}
	return score
}

// similarityScore counts matching anchor categories and adds a rating bonus.
func (s *scorer) similarityScore(rec *RecipeRecord, categories []string) float64 {
	var score float64
	for _, cat := range categories {
		if strings.Contains(rec.CuisinePath, cat) {
			score++
		}
	}
	if rating, ok := rec.ValidRating(); ok {
		score += rating / s.weights.SimilarRatingDivisor
	}
	return score
}

// cuisineMatches reports whether any preferred cuisine appears in path,
// ignoring case. Blank preferences never match.
func cuisineMatches(path string, preferred []string) bool {
	if path == "" {
		return false
	}
	lower := strings.ToLower(path)
	for _, p := range preferred {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" && strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// skillMatches reports whether any keyword for level appears in the recipe
// name or directions. Unknown levels have no keywords.
func skillMatches(rec *RecipeRecord, level SkillLevel) bool {
	keywords := skillKeywords[level]
	if len(keywords) == 0 {
		return false
	}
	name := strings.ToLower(rec.Name)
	directions := strings.ToLower(rec.Directions)
	for _, kw := range keywords {
		if strings.Contains(name, kw) || strings.Contains(directions, kw) {
			return true
		}
	}
	return false
}

// anchorCategories returns up to n leading path segments that are not blank.
// Segments are returned untrimmed because matching is a raw substring test.
func anchorCategories(path string, n int) []string {
	if path == "" || n <= 0 {
		return nil
	}
	cats := make([]string, 0, n)
	for _, seg := range strings.Split(path, "/") {
		if strings.TrimSpace(seg) == "" {
			continue
		}
		cats = append(cats, seg)
		if len(cats) == n {
			break
		}
	}
	return cats
}
