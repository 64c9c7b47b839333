// AltEat Recommend - Recipe Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alteat-recommend

package recommend

import (
	"math"
	"math/rand"
	"testing"
)

func TestRankTop_StableOnTies(t *testing.T) {
	t.Parallel()

	cands := []ScoredCandidate{
		{Record: RecipeRecord{ID: 1}, Score: 5},
		{Record: RecipeRecord{ID: 2}, Score: 10},
		{Record: RecipeRecord{ID: 3}, Score: 5},
		{Record: RecipeRecord{ID: 4}, Score: 10},
		{Record: RecipeRecord{ID: 5}, Score: 1},
	}

	got := rankTop(cands, 4)
	want := []int{2, 4, 1, 3}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Record.ID != want[i] {
			t.Errorf("rank[%d] = %d, want %d", i, got[i].Record.ID, want[i])
		}
	}
}

func TestExcludeAvoided(t *testing.T) {
	t.Parallel()

	cands := []ScoredCandidate{
		{Record: RecipeRecord{ID: 1, Ingredients: "Peanut Butter, jelly"}},
		{Record: RecipeRecord{ID: 2, Ingredients: "bread"}},
		{Record: RecipeRecord{ID: 3, Ingredients: ""}},
	}

	tests := []struct {
		name  string
		avoid []string
		want  []int
	}{
		{"case insensitive", []string{"PEANUT"}, []int{2, 3}},
		{"empty avoid list keeps all", nil, []int{1, 2, 3}},
		{"blank tokens ignored", []string{"", "  "}, []int{1, 2, 3}},
		{"multiple tokens", []string{"jelly", "bread"}, []int{3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			in := make([]ScoredCandidate, len(cands))
			copy(in, cands)
			got := excludeAvoided(in, tt.avoid)
			if len(got) != len(tt.want) {
				t.Fatalf("excludeAvoided() len = %d, want %d", len(got), len(tt.want))
			}
			for i := range tt.want {
				if got[i].Record.ID != tt.want[i] {
					t.Errorf("excludeAvoided()[%d] = %d, want %d", i, got[i].Record.ID, tt.want[i])
				}
			}
		})
	}
}

func TestShuffleTop(t *testing.T) {
	t.Parallel()

	pool := make([]RecipeRecord, 10)
	for i := range pool {
		pool[i] = RecipeRecord{ID: i + 1}
	}

	got := shuffleTop(pool, 4, rand.New(rand.NewSource(3))) //nolint:gosec // test
	if len(got) != 4 {
		t.Fatalf("len = %d, want 4", len(got))
	}
	seen := map[int]bool{}
	for _, r := range got {
		if seen[r.ID] {
			t.Errorf("duplicate id %d", r.ID)
		}
		seen[r.ID] = true
	}
	for i := range pool {
		if pool[i].ID != i+1 {
			t.Fatal("shuffleTop mutated its input")
		}
	}

	if got := shuffleTop(pool[:2], 5, rand.New(rand.NewSource(3))); len(got) != 2 { //nolint:gosec // test
		t.Errorf("len = %d, want 2", len(got))
	}
}

func TestNormalizer(t *testing.T) {
	t.Parallel()

	n := normalizer{placeholder: "/placeholder.svg", maxTags: 3}

	t.Run("defaults and tags", func(t *testing.T) {
		t.Parallel()
		rec := RecipeRecord{ID: 9, Name: "Curry", CuisinePath: "/Asia//Thai/Curry/Green", Rating: rating(4.5)}
		got := n.recipe(&rec)
		if got.Image != "/placeholder.svg" {
			t.Errorf("Image = %q, want placeholder", got.Image)
		}
		want := []string{"Asia", "Thai", "Curry"}
		if len(got.Tags) != len(want) {
			t.Fatalf("Tags = %v, want %v", got.Tags, want)
		}
		for i := range want {
			if got.Tags[i] != want[i] {
				t.Errorf("Tags[%d] = %q, want %q", i, got.Tags[i], want[i])
			}
		}
		if got.Rating == nil || *got.Rating != 4.5 {
			t.Errorf("Rating = %v, want 4.5", got.Rating)
		}
		if got.Title != "Curry" || got.ID != 9 {
			t.Errorf("Title/ID = %q/%d", got.Title, got.ID)
		}
	})

	t.Run("image kept and empty path yields empty tags", func(t *testing.T) {
		t.Parallel()
		rec := RecipeRecord{ID: 1, ImageURL: "https://img/1.jpg", Rating: rating(math.Inf(1))}
		got := n.recipe(&rec)
		if got.Image != "https://img/1.jpg" {
			t.Errorf("Image = %q", got.Image)
		}
		if got.Tags == nil || len(got.Tags) != 0 {
			t.Errorf("Tags = %#v, want empty non-nil", got.Tags)
		}
		if got.Rating != nil {
			t.Errorf("Rating = %v, want nil for invalid rating", *got.Rating)
		}
	})
}

func TestDedupByID(t *testing.T) {
	t.Parallel()

	a := []RecipeRecord{{ID: 1, Name: "a1"}, {ID: 2, Name: "a2"}, {ID: 1, Name: "a1-dup"}}
	b := []RecipeRecord{{ID: 2, Name: "b2"}, {ID: 3, Name: "b3"}}

	got := dedupByID(a, b)
	want := []string{"a1", "a2", "b3"}
	if len(got) != len(want) {
		t.Fatalf("dedupByID() = %v", got)
	}
	for i := range want {
		if got[i].Name != want[i] {
			t.Errorf("dedupByID()[%d] = %q, want %q", i, got[i].Name, want[i])
		}
	}
}

func TestCuisineTokens(t *testing.T) {
	t.Parallel()

	if got := cuisineTokens(nil); got != nil {
		t.Errorf("cuisineTokens(nil) = %v, want nil", got)
	}
	got := cuisineTokens(&UserPreferences{CuisinePreferences: []string{" Thai ", "", "ITALIAN"}})
	if len(got) != 2 || got[0] != "thai" || got[1] != "italian" {
		t.Errorf("cuisineTokens() = %v, want [thai italian]", got)
	}
}

func TestRequestMode(t *testing.T) {
	t.Parallel()

	if (Request{}).Mode() != ModePersonalized {
		t.Error("empty request should be personalized")
	}
	if (Request{ExcludeID: intPtr(1)}).Mode() != ModeSimilar {
		t.Error("exclude id should select similarity mode")
	}
	if ModeSimilar.String() != "similar" || ModePersonalized.String() != "personalized" || Mode(9).String() != "unknown" {
		t.Error("unexpected Mode.String() values")
	}
}
