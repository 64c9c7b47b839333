// AltEat Recommend - Recipe Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alteat-recommend

package recommend

import (
	"math/rand"
	"sort"
	"strings"
)

// excludeAvoided drops candidates whose ingredients contain any avoided
// ingredient, ignoring case. Order is preserved.
func excludeAvoided(cands []ScoredCandidate, avoid []string) []ScoredCandidate {
	needles := make([]string, 0, len(avoid))
	for _, a := range avoid {
		a = strings.ToLower(strings.TrimSpace(a))
		if a != "" {
			needles = append(needles, a)
		}
	}
	if len(needles) == 0 {
		return cands
	}

	out := cands[:0:0]
	for _, c := range cands {
		ingredients := strings.ToLower(c.Record.Ingredients)
		avoided := false
		for _, n := range needles {
			if strings.Contains(ingredients, n) {
				avoided = true
				break
			}
		}
		if !avoided {
			out = append(out, c)
		}
	}
	return out
}

// rankTop sorts candidates by score descending, keeping collection order for
// ties, and returns at most limit of them.
func rankTop(cands []ScoredCandidate, limit int) []ScoredCandidate {
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].Score > cands[j].Score
	})
	if len(cands) > limit {
		cands = cands[:limit]
	}
	return cands
}

// shuffleTop returns limit records from a uniformly shuffled copy of pool.
func shuffleTop(pool []RecipeRecord, limit int, rng *rand.Rand) []RecipeRecord {
	shuffled := make([]RecipeRecord, len(pool))
	copy(shuffled, pool)
	rng.Shuffle(len(shuffled), func(i, j int) { //nolint:gosec // not security sensitive
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if len(shuffled) > limit {
		shuffled = shuffled[:limit]
	}
	return shuffled
}

// normalizer converts records into the caller-facing shape.
type normalizer struct {
	placeholder string
	maxTags     int
}

func (n normalizer) recipe(rec *RecipeRecord) Recipe {
	image := rec.ImageURL
	if image == "" {
		image = n.placeholder
	}
	var rating *float64
	if v, ok := rec.ValidRating(); ok {
		rating = &v
	}
	return Recipe{
		ID:     rec.ID,
		Title:  rec.Name,
		Image:  image,
		Tags:   pathTags(rec.CuisinePath, n.maxTags),
		Rating: rating,
	}
}

func (n normalizer) fromCandidates(cands []ScoredCandidate) []Recipe {
	out := make([]Recipe, 0, len(cands))
	for i := range cands {
		out = append(out, n.recipe(&cands[i].Record))
	}
	return out
}

func (n normalizer) fromRecords(recs []RecipeRecord) []Recipe {
	out := make([]Recipe, 0, len(recs))
	for i := range recs {
		out = append(out, n.recipe(&recs[i]))
	}
	return out
}

// pathTags returns up to max non-empty segments of a cuisine path.
// The result is never nil.
func pathTags(path string, max int) []string {
	tags := make([]string, 0, max)
	if path == "" {
		return tags
	}
	for _, seg := range strings.Split(path, "/") {
		if len(tags) == max {
			break
		}
		if seg != "" {
			tags = append(tags, seg)
		}
	}
	return tags
}
