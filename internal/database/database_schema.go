// AltEat Recommend - Recipe Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alteat-recommend

package database

import (
	"context"
	"fmt"
)

// Ratings and profile lists are stored as text. Ratings are parsed on read
// so that absent and non-numeric values survive import; profile lists hold
// JSON arrays of strings.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS recipes (
		id INTEGER PRIMARY KEY,
		recipe_name VARCHAR NOT NULL,
		cuisine_path VARCHAR,
		ingredients VARCHAR,
		directions VARCHAR,
		rating VARCHAR,
		img_src VARCHAR
	)`,
	`CREATE TABLE IF NOT EXISTS profiles (
		user_id VARCHAR PRIMARY KEY,
		cuisine_preferences VARCHAR,
		skill_level VARCHAR,
		avoid_ingredients VARCHAR
	)`,
}

var indexStatements = []string{
	`CREATE INDEX IF NOT EXISTS idx_recipes_cuisine_path ON recipes(cuisine_path)`,
}

func (db *DB) createTables(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}

func (db *DB) createIndexes(ctx context.Context) error {
	for _, stmt := range indexStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}
