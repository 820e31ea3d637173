// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

package api

import (
	"net/http"

	"github.com/tomtom215/trailwatch/internal/models"
)

// ClientConfig returns the settings the web client needs at startup.
//
// @Summary Get client configuration
// @Tags Config
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.ClientConfig} "Client configuration"
// @Router /api/v1/config [get]
func (h *Handler) ClientConfig(w http.ResponseWriter, _ *http.Request) {
	respondData(w, http.StatusOK, "success", models.ClientConfig{
		PollIntervalMS: h.config.Sync.ClientPollInterval.Milliseconds(),
		Simulate:       h.config.Upstream.Simulate,
		Map: models.MapConfig{
			Center: models.Coordinate{Lat: h.config.Map.CenterLat, Lng: h.config.Map.CenterLng},
			Zoom:   h.config.Map.Zoom,
		},
	})
}

// Meta returns display names, colors and icons for route types and statuses.
//
// @Summary Get display metadata
// @Tags Config
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.Meta} "Route and status labels"
// @Router /api/v1/meta [get]
func (h *Handler) Meta(w http.ResponseWriter, _ *http.Request) {
	respondData(w, http.StatusOK, "success", models.BuildMeta())
}
