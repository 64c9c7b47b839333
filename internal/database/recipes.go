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
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/alteat-recommend/internal/recommend"
)

const recipeColumns = `id, recipe_name, cuisine_path, ingredients, directions, rating, img_src`

// ratingOrderExpr returns a numeric sort key for the text rating column.
// It is NULL exactly where ParseRating yields nil.
func (db *DB) ratingOrderExpr() string {
	if db.driver == DriverSQLite {
		return sqliteRatingFunc + `(rating)`
	}
	return `CASE WHEN isfinite(TRY_CAST(trim(rating) AS DOUBLE)) THEN TRY_CAST(trim(rating) AS DOUBLE) END`
}

// cuisineMatchExpr is a case-insensitive substring test of cuisine_path
// against one lowercased token. Both drivers fold full Unicode.
func (db *DB) cuisineMatchExpr() string {
	if db.driver == DriverSQLite {
		return `instr(` + sqliteLowerFunc + `(cuisine_path), ?) > 0`
	}
	return `instr(lower(cuisine_path), ?) > 0`
}

// FetchByCuisineSubstring returns recipes whose cuisine path contains any of
// the tokens, compared case-insensitively. No tokens means no rows.
func (db *DB) FetchByCuisineSubstring(ctx context.Context, tokens []string, limit int) (_ []recommend.RecipeRecord, err error) {
	if len(tokens) == 0 || limit <= 0 {
		return nil, nil
	}
	defer db.observe("fetch_by_cuisine", "recipes", time.Now(), &err)

	conds := make([]string, 0, len(tokens))
	args := make([]any, 0, len(tokens)+1)
	for _, tok := range tokens {
		conds = append(conds, db.cuisineMatchExpr())
		args = append(args, strings.ToLower(tok))
	}
	args = append(args, limit)

	//nolint:gosec // conditions are fixed strings; tokens are bound parameters
	query := fmt.Sprintf(`SELECT %s FROM recipes WHERE %s ORDER BY id LIMIT ?`,
		recipeColumns, strings.Join(conds, " OR "))

	return db.queryRecipes(ctx, query, args...)
}

// FetchGeneral returns an unfiltered batch in id order.
func (db *DB) FetchGeneral(ctx context.Context, limit int) (_ []recommend.RecipeRecord, err error) {
	if limit <= 0 {
		return nil, nil
	}
	defer db.observe("fetch_general", "recipes", time.Now(), &err)

	return db.queryRecipes(ctx, `SELECT `+recipeColumns+` FROM recipes ORDER BY id LIMIT ?`, limit)
}

// FetchByRatingDesc returns recipes other than excludeID, highest rated first.
func (db *DB) FetchByRatingDesc(ctx context.Context, excludeID, limit int) (_ []recommend.RecipeRecord, err error) {
	if limit <= 0 {
		return nil, nil
	}
	defer db.observe("fetch_by_rating", "recipes", time.Now(), &err)

	query := fmt.Sprintf(`SELECT %s FROM recipes WHERE id <> ? ORDER BY %s DESC NULLS LAST, id LIMIT ?`,
		recipeColumns, db.ratingOrderExpr())
	return db.queryRecipes(ctx, query, excludeID, limit)
}

// GetRecipe returns a single recipe or recommend.ErrNotFound.
func (db *DB) GetRecipe(ctx context.Context, id int) (_ *recommend.RecipeRecord, err error) {
	defer db.observe("get_recipe", "recipes", time.Now(), &err)

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	row := db.conn.QueryRowContext(ctx, `SELECT `+recipeColumns+` FROM recipes WHERE id = ?`, id)
	rec, err := scanRecipe(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("recipe %d: %w", id, recommend.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get recipe %d: %w", id, err)
	}
	return &rec, nil
}

// UpsertRecipes inserts or replaces recipes in a single transaction.
func (db *DB) UpsertRecipes(ctx context.Context, recipes []recommend.RecipeRecord) (err error) {
	if len(recipes) == 0 {
		return nil
	}
	defer db.observe("upsert_recipes", "recipes", time.Now(), &err)

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO recipes (id, recipe_name, cuisine_path, ingredients, directions, rating, img_src)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			recipe_name = excluded.recipe_name,
			cuisine_path = excluded.cuisine_path,
			ingredients = excluded.ingredients,
			directions = excluded.directions,
			rating = excluded.rating,
			img_src = excluded.img_src`)
	if err != nil {
		return fmt.Errorf("prepare recipe upsert: %w", err)
	}
	defer closeWithLog(stmt, nil, "prepared statement")

	for i := range recipes {
		r := &recipes[i]
		if _, err = stmt.ExecContext(ctx, r.ID, r.Name, nullString(r.CuisinePath),
			nullString(r.Ingredients), nullString(r.Directions), ratingText(r.Rating), nullString(r.ImageURL)); err != nil {
			return fmt.Errorf("upsert recipe %d: %w", r.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit recipes: %w", err)
	}
	return nil
}

func (db *DB) queryRecipes(ctx context.Context, query string, args ...any) ([]recommend.RecipeRecord, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query recipes: %w", err)
	}
	defer closeWithLog(rows, nil, "rows")

	var out []recommend.RecipeRecord
	for rows.Next() {
		rec, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipes: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecipe(row rowScanner) (recommend.RecipeRecord, error) {
	var rec recommend.RecipeRecord
	var cuisine, ingredients, directions, rating, img sql.NullString
	if err := row.Scan(&rec.ID, &rec.Name, &cuisine, &ingredients, &directions, &rating, &img); err != nil {
		return rec, err
	}
	rec.CuisinePath = cuisine.String
	rec.Ingredients = ingredients.String
	rec.Directions = directions.String
	rec.ImageURL = img.String
	if rating.Valid {
		rec.Rating = ParseRating(rating.String)
	}
	return rec, nil
}

// ParseRating parses a stored rating. Empty, non-numeric and non-finite
// values yield nil.
func ParseRating(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func ratingText(r *float64) sql.NullString {
	if r == nil || math.IsNaN(*r) || math.IsInf(*r, 0) {
		return sql.NullString{}
	}
	return sql.NullString{String: strconv.FormatFloat(*r, 'f', -1, 64), Valid: true}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

var _ recommend.DataProvider = (*DB)(nil)
