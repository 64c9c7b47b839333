// AltEat Recommend - Recipe Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alteat-recommend

package recommend

import "errors"

var (
	// ErrDataSourceUnavailable is returned when every query needed to serve a
	// request failed, including the fallback.
	ErrDataSourceUnavailable = errors.New("recommend: data source unavailable")

	// ErrInvalidPreferenceData marks a stored profile that cannot be decoded.
	// The engine degrades to the no-preference path instead of failing.
	ErrInvalidPreferenceData = errors.New("recommend: invalid preference data")

	// ErrInvalidRequest is returned for malformed requests, such as a negative
	// limit or a request that populates both modes.
	ErrInvalidRequest = errors.New("recommend: invalid request")

	// ErrNotFound is returned when an anchor recipe does not exist.
	ErrNotFound = errors.New("recommend: not found")

	// ErrNoDataProvider is returned when the engine has no data provider.
	ErrNoDataProvider = errors.New("recommend: no data provider configured")
)
