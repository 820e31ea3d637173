// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/trailwatch/internal/logging"
	"github.com/tomtom215/trailwatch/internal/models"
)

// HealthLive handles liveness probe requests (Kubernetes-style)
// Returns 200 OK if the process is alive, regardless of dependencies
//
// @Summary Liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} models.APIResponse "Process is alive"
// @Router /api/v1/health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondData(w, http.StatusOK, "success", map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style)
// Returns 200 OK when the snapshot store can be read, 503 otherwise. The
// payload also reports the breaker state and the last successful sync.
//
// @Summary Readiness probe
// @Tags Health
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.HealthResponse} "Ready"
// @Failure 503 {object} models.APIResponse{data=models.HealthResponse} "Snapshot store unreadable"
// @Router /api/v1/health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	st := h.sync.Store()
	pingErr := st.Ping(r.Context())

	status := h.sync.Status()
	health := models.HealthResponse{
		Status:         "ready",
		StoreReadable:  pingErr == nil,
		StoreBackend:   st.Backend(),
		SnapshotTeams:  status.Teams,
		CircuitBreaker: "disabled",
		Simulated:      h.config.Upstream.Simulate,
		Uptime:         time.Since(h.startTime).Seconds(),
	}
	if h.breaker != nil {
		health.CircuitBreaker = h.breaker.State()
	}
	if !status.LastSuccess.IsZero() {
		lastSync := status.LastSuccess
		health.LastSyncAt = &lastSync
	}

	if pingErr != nil {
		logging.CtxFor(r.Context(), logging.ComponentAPI).Warn().Err(pingErr).Msg("Readiness check failed: store unreachable")
		health.Status = "not_ready"
		respondJSON(w, http.StatusServiceUnavailable, &models.APIResponse{
			Status:   "error",
			Data:     health,
			Metadata: models.Metadata{Timestamp: time.Now()},
			Error:    &models.APIError{Code: codeNotReady, Message: "Snapshot store is not readable"},
		})
		return
	}

	respondData(w, http.StatusOK, "success", health)
}
