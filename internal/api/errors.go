// AltEat Recommend - Recipe Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alteat-recommend

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/alteat-recommend/internal/logging"
	"github.com/tomtom215/alteat-recommend/internal/recommend"
)

// Error codes returned in the APIError envelope.
const (
	codeValidation       = "VALIDATION_ERROR"
	codeNotFound         = "NOT_FOUND"
	codeDataUnavailable  = "DATA_SOURCE_UNAVAILABLE"
	codeInternal         = "INTERNAL_ERROR"
	codeServiceNotReady  = "SERVICE_UNAVAILABLE"
	codeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	codeRouteNotFound    = "ROUTE_NOT_FOUND"
)

const messageDataUnavailable = "Recipe data is temporarily unavailable"

// errorResponse maps an engine or store error to a status, code and message.
func errorResponse(err error) (status int, code, message string) {
	switch {
	case errors.Is(err, recommend.ErrInvalidRequest):
		return http.StatusBadRequest, codeValidation, "Invalid recommendation request"
	case errors.Is(err, recommend.ErrNotFound):
		return http.StatusNotFound, codeNotFound, "Recipe not found"
	case errors.Is(err, recommend.ErrDataSourceUnavailable):
		return http.StatusServiceUnavailable, codeDataUnavailable, messageDataUnavailable
	default:
		return http.StatusInternalServerError, codeInternal, "Internal server error"
	}
}

// respondEngineError logs err against the request context and writes the
// mapped error envelope. Total data source failures are logged at ERROR,
// client errors at DEBUG.
func respondEngineError(w http.ResponseWriter, r *http.Request, err error) {
	status, code, message := errorResponse(err)

	logger := logging.Ctx(r.Context())
	event := logger.Debug()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Err(err).
		Str("path", logging.SanitizeValue(r.URL.Path)).
		Int("status", status).
		Msg("Recommendation request failed")

	respondError(w, status, code, message, nil)
}
