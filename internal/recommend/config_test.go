// AltEat Recommend - Recipe Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alteat-recommend

package recommend

import (
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error = %v", err)
	}

	t.Run("scoring constants", func(t *testing.T) {
		if cfg.Weights.Cuisine != 1000 {
			t.Errorf("Weights.Cuisine = %f, want 1000", cfg.Weights.Cuisine)
		}
		if cfg.Weights.Skill+cfg.Weights.Rating >= cfg.Weights.Cuisine {
			t.Errorf("skill+rating bonus %f must stay below cuisine bonus", cfg.Weights.Skill+cfg.Weights.Rating)
		}
	})

	t.Run("batch sizes", func(t *testing.T) {
		b := cfg.Batches
		if b.Preference != 50 || b.General != 50 || b.Similar != 20 || b.Fallback != 30 {
			t.Errorf("Batches = %+v, want 50/50/20/30", b)
		}
	})

	t.Run("limits", func(t *testing.T) {
		if cfg.Limits.DefaultPersonalized != 6 {
			t.Errorf("DefaultPersonalized = %d, want 6", cfg.Limits.DefaultPersonalized)
		}
		if cfg.Limits.DefaultSimilar != 5 {
			t.Errorf("DefaultSimilar = %d, want 5", cfg.Limits.DefaultSimilar)
		}
	})
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"zero preference batch", func(c *Config) { c.Batches.Preference = 0 }, "batches.preference"},
		{"zero fallback batch", func(c *Config) { c.Batches.Fallback = 0 }, "batches.fallback"},
		{"negative weight", func(c *Config) { c.Weights.Skill = -1 }, "weights must be non-negative"},
		{"zero divisor", func(c *Config) { c.Weights.SimilarRatingDivisor = 0 }, "similar_rating_divisor"},
		{"max below default", func(c *Config) { c.Limits.MaxLimit = 3 }, "limits.max_limit"},
		{"zero fetch timeout", func(c *Config) { c.Limits.FetchTimeout = 0 }, "limits.fetch_timeout"},
		{"enabled cache without ttl", func(c *Config) { c.Cache.TTL = 0 }, "cache.ttl"},
		{"disabled cache without ttl", func(c *Config) { c.Cache.Enabled = false; c.Cache.TTL = 0 }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfigClone(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	clone := cfg.Clone()
	clone.Limits.MaxLimit = 99
	clone.Weights.Cuisine = 1

	if cfg.Limits.MaxLimit == 99 || cfg.Weights.Cuisine == 1 {
		t.Error("Clone() shares state with the original")
	}
}

func TestConfigMarshalJSON(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Cache.TTL = 90 * time.Second

	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	cache, ok := out["cache"].(map[string]interface{})
	if !ok {
		t.Fatalf("cache = %T, want object", out["cache"])
	}
	if cache["ttl"] != "1m30s" {
		t.Errorf("cache.ttl = %v, want 1m30s", cache["ttl"])
	}
	limits, ok := out["limits"].(map[string]interface{})
	if !ok {
		t.Fatalf("limits = %T, want object", out["limits"])
	}
	if limits["fetch_timeout"] != "5s" {
		t.Errorf("limits.fetch_timeout = %v, want 5s", limits["fetch_timeout"])
	}
	if out["placeholder_image"] != "/placeholder.svg" {
		t.Errorf("placeholder_image = %v", out["placeholder_image"])
	}
}
