// AltEat Recommend - Recipe Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alteat-recommend

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/alteat-recommend/internal/metrics"
)

// ensureContext bounds ctx by the configured query timeout when it has no deadline.
func (db *DB) ensureContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		return context.WithTimeout(context.Background(), db.queryTimeout)
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		return context.WithTimeout(ctx, db.queryTimeout)
	}
	return ctx, func() {}
}

// observe records query metrics. Use with defer:
//
//	defer db.observe("fetch_general", "recipes", time.Now(), &err)
func (db *DB) observe(operation, table string, start time.Time, errp *error) {
	var err error
	if errp != nil {
		err = *errp
	}
	metrics.RecordDBQuery(operation, table, time.Since(start), err)
}

// Checkpoint forces a WAL checkpoint.
func (db *DB) Checkpoint(ctx context.Context) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	stmt := "CHECKPOINT"
	if db.driver == DriverSQLite {
		stmt = "PRAGMA wal_checkpoint(TRUNCATE)"
	}
	if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("checkpoint failed: %w", err)
	}
	return nil
}

// RecordCounts returns the number of rows per table.
func (db *DB) RecordCounts(ctx context.Context) (recipes, profiles int64, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if err = db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM recipes").Scan(&recipes); err != nil {
		return 0, 0, fmt.Errorf("count recipes: %w", err)
	}
	if err = db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM profiles").Scan(&profiles); err != nil {
		return 0, 0, fmt.Errorf("count profiles: %w", err)
	}
	return recipes, profiles, nil
}
