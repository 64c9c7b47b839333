// AltEat Recommend - Recipe Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alteat-recommend

package database

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"modernc.org/sqlite"
)

// Scalar functions registered with the SQLite driver. The built-in lower()
// folds ASCII only, and SQLite has no strict numeric parse for the text
// rating column.
const (
	sqliteLowerFunc  = "unicode_lower"
	sqliteRatingFunc = "rating_value"
)

var (
	sqliteFuncsOnce sync.Once
	sqliteFuncsErr  error
)

// registerSQLiteFunctions registers the scalar functions once per process.
// They are available on every connection opened afterwards.
func registerSQLiteFunctions() error {
	sqliteFuncsOnce.Do(func() {
		if err := sqlite.RegisterDeterministicScalarFunction(sqliteLowerFunc, 1, sqliteLower); err != nil {
			sqliteFuncsErr = fmt.Errorf("register %s: %w", sqliteLowerFunc, err)
			return
		}
		if err := sqlite.RegisterDeterministicScalarFunction(sqliteRatingFunc, 1, sqliteRating); err != nil {
			sqliteFuncsErr = fmt.Errorf("register %s: %w", sqliteRatingFunc, err)
		}
	})
	return sqliteFuncsErr
}

func sqliteText(v driver.Value) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case []byte:
		return string(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	default:
		return "", false
	}
}

// sqliteLower lowercases with full Unicode case mapping, matching
// strings.ToLower on the query tokens.
func sqliteLower(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	s, ok := sqliteText(args[0])
	if !ok {
		return nil, nil
	}
	return strings.ToLower(s), nil
}

// sqliteRating returns the rating as REAL, or NULL wherever ParseRating
// yields nil.
func sqliteRating(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	s, ok := sqliteText(args[0])
	if !ok {
		return nil, nil
	}
	if r := ParseRating(s); r != nil {
		return *r, nil
	}
	return nil, nil
}
