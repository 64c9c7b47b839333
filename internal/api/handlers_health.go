// AltEat Recommend - Recipe Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alteat-recommend

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/alteat-recommend/internal/logging"
	"github.com/tomtom215/alteat-recommend/internal/models"
)

// readinessTimeout bounds the store ping of the readiness check.
const readinessTimeout = 2 * time.Second

// HealthLive handles liveness check requests.
// Always returns 200 while the process can serve HTTP.
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: models.StatusSuccess,
		Data: models.HealthStatus{
			Status:  "alive",
			Version: h.cfg.Version,
			Uptime:  time.Since(h.startTime).Round(time.Second).String(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthReady handles readiness check requests.
// Returns 200 only if the recipe store answers a ping, otherwise 503.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	var pingErr error
	if h.store == nil {
		pingErr = errNoStore
	} else {
		pingErr = h.store.Ping(ctx)
	}

	health := models.HealthStatus{
		Status:   "ready",
		Version:  h.cfg.Version,
		Database: "connected",
		Uptime:   time.Since(h.startTime).Round(time.Second).String(),
	}

	if pingErr != nil {
		logging.Ctx(r.Context()).Warn().Err(pingErr).Msg("Readiness check failed")
		health.Status = "not_ready"
		health.Database = "disconnected"
		respondJSON(w, http.StatusServiceUnavailable, &models.APIResponse{
			Status:   models.StatusError,
			Data:     health,
			Metadata: models.Metadata{Timestamp: time.Now()},
			Error: &models.APIError{
				Code:    codeServiceNotReady,
				Message: "Recipe store is not reachable",
			},
		})
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   models.StatusSuccess,
		Data:     health,
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}
