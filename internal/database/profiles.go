// AltEat Recommend - Recipe Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alteat-recommend

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/alteat-recommend/internal/recommend"
)

// FetchUserPreferences returns the stored profile for userID.
// A missing profile returns nil, nil. A list column that is not a JSON array
// of strings returns an error wrapping recommend.ErrInvalidPreferenceData.
func (db *DB) FetchUserPreferences(ctx context.Context, userID string) (_ *recommend.UserPreferences, err error) {
	defer db.observe("fetch_profile", "profiles", time.Now(), &err)

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var cuisines, skill, avoid sql.NullString
	err = db.conn.QueryRowContext(ctx,
		`SELECT cuisine_preferences, skill_level, avoid_ingredients FROM profiles WHERE user_id = ?`,
		userID,
	).Scan(&cuisines, &skill, &avoid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query profile: %w", err)
	}

	prefs := &recommend.UserPreferences{
		SkillLevel: recommend.SkillLevel(strings.TrimSpace(skill.String)),
	}
	if prefs.CuisinePreferences, err = decodeStringList(cuisines); err != nil {
		return nil, fmt.Errorf("profile %s cuisine_preferences: %w", userID, err)
	}
	if prefs.AvoidIngredients, err = decodeStringList(avoid); err != nil {
		return nil, fmt.Errorf("profile %s avoid_ingredients: %w", userID, err)
	}
	if prefs.SkillLevel == "" {
		prefs.SkillLevel = recommend.SkillBeginner
	}
	return prefs, nil
}

// UpsertProfile inserts or replaces a user profile.
func (db *DB) UpsertProfile(ctx context.Context, userID string, prefs *recommend.UserPreferences) (err error) {
	if userID == "" {
		return fmt.Errorf("upsert profile: user id is required")
	}
	if prefs == nil {
		prefs = &recommend.UserPreferences{}
	}
	defer db.observe("upsert_profile", "profiles", time.Now(), &err)

	cuisines, err := encodeStringList(prefs.CuisinePreferences)
	if err != nil {
		return err
	}
	avoid, err := encodeStringList(prefs.AvoidIngredients)
	if err != nil {
		return err
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	_, err = db.conn.ExecContext(ctx, `
		INSERT INTO profiles (user_id, cuisine_preferences, skill_level, avoid_ingredients)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			cuisine_preferences = excluded.cuisine_preferences,
			skill_level = excluded.skill_level,
			avoid_ingredients = excluded.avoid_ingredients`,
		userID, cuisines, nullString(string(prefs.SkillLevel)), avoid)
	if err != nil {
		return fmt.Errorf("upsert profile %s: %w", userID, err)
	}
	return nil
}

// decodeStringList decodes a JSON array of strings. NULL and blank mean empty.
func decodeStringList(v sql.NullString) ([]string, error) {
	if !v.Valid || strings.TrimSpace(v.String) == "" {
		return []string{}, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(v.String), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", recommend.ErrInvalidPreferenceData, err)
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

func encodeStringList(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "", fmt.Errorf("encode list: %w", err)
	}
	return string(b), nil
}
