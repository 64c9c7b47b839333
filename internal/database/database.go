// AltEat Recommend - Recipe Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alteat-recommend

package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	_ "modernc.org/sqlite"

	"github.com/tomtom215/alteat-recommend/internal/config"
	"github.com/tomtom215/alteat-recommend/internal/logging"
)

// Supported drivers.
const (
	DriverDuckDB = "duckdb"
	DriverSQLite = "sqlite"
)

const memoryPath = ":memory:"

// DB wraps the recipe store connection and implements recommend.DataProvider.
type DB struct {
	conn         *sql.DB
	cfg          *config.DatabaseConfig
	driver       string
	queryTimeout time.Duration
}

// New opens the configured store and creates the schema.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database config is required")
	}

	driver := strings.ToLower(cfg.Driver)
	if driver == "" {
		driver = DriverDuckDB
	}
	if driver != DriverDuckDB && driver != DriverSQLite {
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	path := cfg.Path
	if path == "" {
		path = memoryPath
	}

	// Use 0750 permissions (owner: rwx, group: rx, other: none) per gosec G301
	if path != memoryPath {
		if dir := filepath.Dir(path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
			}
		}
	}

	if driver == DriverSQLite {
		if err := registerSQLiteFunctions(); err != nil {
			return nil, err
		}
	}

	conn, err := sql.Open(driver, connString(driver, path, cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	timeout := cfg.QueryTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	db := &DB{
		conn:         conn,
		cfg:          cfg,
		driver:       driver,
		queryTimeout: timeout,
	}
	db.configureConnectionPool(path)

	if err := db.initialize(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	logging.Info().Str("driver", driver).Str("path", path).Msg("Recipe store opened")
	return db, nil
}

// connString builds the driver specific DSN.
func connString(driver, path string, cfg *config.DatabaseConfig) string {
	switch driver {
	case DriverSQLite:
		if path == memoryPath {
			return path
		}
		return path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	default:
		threads := cfg.Threads
		if threads <= 0 {
			threads = runtime.NumCPU()
		}
		params := []string{fmt.Sprintf("threads=%d", threads)}
		if cfg.MaxMemory != "" {
			params = append(params, "max_memory="+cfg.MaxMemory)
		}
		if path != memoryPath {
			params = append([]string{"access_mode=read_write"}, params...)
		}
		return path + "?" + strings.Join(params, "&")
	}
}

// configureConnectionPool sizes the pool for the driver.
// An in-memory SQLite database lives on a single connection, so that pool
// must never grow or recycle it.
func (db *DB) configureConnectionPool(path string) {
	if db.driver == DriverSQLite {
		db.conn.SetMaxOpenConns(1)
		db.conn.SetMaxIdleConns(1)
		if path == memoryPath {
			db.conn.SetConnMaxLifetime(0)
			db.conn.SetConnMaxIdleTime(0)
		}
		return
	}

	db.conn.SetMaxOpenConns(runtime.NumCPU())
	db.conn.SetMaxIdleConns(2)
	db.conn.SetConnMaxLifetime(time.Hour)
	db.conn.SetConnMaxIdleTime(5 * time.Minute)
}

// initialize creates tables and indexes.
func (db *DB) initialize() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.createTables(ctx); err != nil {
		return err
	}
	return db.createIndexes(ctx)
}

// Driver returns the active driver name.
func (db *DB) Driver() string {
	return db.driver
}

// Conn returns the underlying SQL connection.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Ping checks if the database connection is alive
func (db *DB) Ping(ctx context.Context) error {
	if db.conn == nil {
		return fmt.Errorf("database connection is nil")
	}
	return db.conn.PingContext(ctx)
}

// Close checkpoints a DuckDB file and closes the connection.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}
	if db.driver == DriverDuckDB && db.cfg.Path != "" && db.cfg.Path != memoryPath {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := db.Checkpoint(ctx); err != nil {
			logging.Warn().Err(err).Msg("Failed to checkpoint database before close")
		}
		cancel()
	}
	return db.conn.Close()
}
