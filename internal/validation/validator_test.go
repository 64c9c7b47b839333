// AltEat Recommend - Recipe Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alteat-recommend

package validation

import (
	"strings"
	"testing"
)

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()
	if v1 == nil || v1 != v2 {
		t.Error("GetValidator() should return the same non-nil instance")
	}
}

type recommendQuery struct {
	UserID      string `query:"user_id" validate:"omitempty,max=128,printable"`
	CuisinePath string `query:"cuisine_path" validate:"omitempty,max=500,printable"`
	Limit       int    `query:"limit" validate:"gte=0,lte=50"`
}

type seedProfile struct {
	UserID     string `json:"user_id" validate:"required"`
	SkillLevel string `json:"skill_level" validate:"skill_level"`
	ImageURL   string `json:"img_src" validate:"omitempty,url"`
	Nested     string `validate:"min=2"`
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     any
		wantField string
		wantTag   string
		wantMsg   string
	}{
		{
			name:  "valid query",
			input: &recommendQuery{UserID: "u1", CuisinePath: "Asian/Thai", Limit: 6},
		},
		{
			name:      "limit above max",
			input:     &recommendQuery{Limit: 51},
			wantField: "limit",
			wantTag:   "lte",
			wantMsg:   "limit must be less than or equal to 50",
		},
		{
			name:      "negative limit",
			input:     &recommendQuery{Limit: -1},
			wantField: "limit",
			wantTag:   "gte",
		},
		{
			name:      "control characters in cuisine path",
			input:     &recommendQuery{CuisinePath: "Asian\nThai"},
			wantField: "cuisine_path",
			wantTag:   "printable",
			wantMsg:   "cuisine_path must not contain control characters",
		},
		{
			name:      "cuisine path too long",
			input:     &recommendQuery{CuisinePath: strings.Repeat("a", 501)},
			wantField: "cuisine_path",
			wantTag:   "max",
			wantMsg:   "cuisine_path must be at most 500 characters",
		},
		{
			name:      "unknown skill level",
			input:     &seedProfile{UserID: "u1", SkillLevel: "wizard", Nested: "ok"},
			wantField: "skill_level",
			wantTag:   "skill_level",
		},
		{
			name:  "skill level is case insensitive",
			input: &seedProfile{UserID: "u1", SkillLevel: "Expert", Nested: "ok"},
		},
		{
			name:      "missing user id",
			input:     &seedProfile{Nested: "ok"},
			wantField: "user_id",
			wantTag:   "required",
			wantMsg:   "user_id is required",
		},
		{
			name:      "field without tags keeps Go name",
			input:     &seedProfile{UserID: "u1", Nested: "x"},
			wantField: "Nested",
			wantTag:   "min",
			wantMsg:   "Nested must be at least 2 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			verr := ValidateStruct(tt.input)
			if tt.wantTag == "" {
				if verr != nil {
					t.Fatalf("ValidateStruct() = %v, want nil", verr)
				}
				return
			}
			if verr == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			errs := verr.Errors()
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1: %v", len(errs), verr)
			}
			if errs[0].Field() != tt.wantField {
				t.Errorf("Field() = %q, want %q", errs[0].Field(), tt.wantField)
			}
			if errs[0].Tag() != tt.wantTag {
				t.Errorf("Tag() = %q, want %q", errs[0].Tag(), tt.wantTag)
			}
			if tt.wantMsg != "" && errs[0].Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", errs[0].Error(), tt.wantMsg)
			}
		})
	}
}

func TestToAPIError(t *testing.T) {
	t.Parallel()

	single := ValidateStruct(&recommendQuery{Limit: 99})
	apiErr := single.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
	if apiErr.Details["field"] != "limit" {
		t.Errorf("Details[field] = %v, want limit", apiErr.Details["field"])
	}

	multi := ValidateStruct(&recommendQuery{Limit: 99, CuisinePath: "a\tb"})
	apiErr = multi.ToAPIError()
	fields, ok := apiErr.Details["fields"].([]map[string]any)
	if !ok || len(fields) != 2 {
		t.Fatalf("Details[fields] = %v, want 2 entries", apiErr.Details["fields"])
	}
	if !strings.Contains(apiErr.Message, "; ") {
		t.Errorf("Message = %q, want joined messages", apiErr.Message)
	}

	empty := &RequestValidationError{}
	if empty.ToAPIError().Message != "Validation failed" {
		t.Error("empty error should produce generic message")
	}
	if empty.Error() != "validation failed" {
		t.Errorf("Error() = %q", empty.Error())
	}
}
