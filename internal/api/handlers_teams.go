// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/trailwatch/internal/logging"
	"github.com/tomtom215/trailwatch/internal/models"
	syncpkg "github.com/tomtom215/trailwatch/internal/sync"
)

// teamFilter holds the optional route and status query filters.
type teamFilter struct {
	Routes   []string `json:"route" validate:"omitempty,dive,oneof=family long short"`
	Statuses []string `json:"status" validate:"omitempty,dive,oneof='not started' 'in progress' warning dangerous finished"`
}

func (f *teamFilter) empty() bool {
	return len(f.Routes) == 0 && len(f.Statuses) == 0
}

// apply returns the teams matching every non-empty filter.
func (f *teamFilter) apply(teams []models.Team) []models.Team {
	if f.empty() {
		return teams
	}
	out := make([]models.Team, 0, len(teams))
	for i := range teams {
		if matchAny(f.Routes, string(teams[i].Route)) && matchAny(f.Statuses, string(teams[i].Status)) {
			out = append(out, teams[i])
		}
	}
	return out
}

func matchAny(values []string, v string) bool {
	if len(values) == 0 {
		return true
	}
	for _, want := range values {
		if want == v {
			return true
		}
	}
	return false
}

// Teams runs a sync cycle and returns the reconciled teams.
//
// Query parameters:
//   - lastPoint[<id>]=<lat>,<lng>: return only positions after this point for team <id>
//   - route, status: comma-separated filters
//
// Responses:
//   - 200: fresh data, or the stored snapshot within the minimum sync interval
//   - 206: the upstream fetch failed and the stored snapshot is served
//   - 400: invalid route or status filter
//   - 404: no team data anywhere
//
// @Summary Get team positions
// @Description Runs a sync cycle (or serves the stored snapshot inside the minimum sync interval) and returns every team with its position history.
// @Tags Teams
// @Produce json
// @Param lastPoint[id] query string false "Last known position of team id as lat,lng; only later positions are returned"
// @Param route query string false "Comma-separated route types (family, long, short)"
// @Param status query string false "Comma-separated statuses"
// @Success 200 {object} models.TeamsResponse "Fresh or cached teams"
// @Success 206 {object} models.TeamsResponse "Upstream failed, stored snapshot served"
// @Failure 400 {object} models.APIResponse "Invalid filter"
// @Failure 404 {object} models.TeamsResponse "No team data available"
// @Router /api/v1/teams [get]
func (h *Handler) Teams(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := teamFilter{
		Routes:   parseCommaSeparated(q.Get("route")),
		Statuses: parseCommaSeparated(q.Get("status")),
	}
	if apiErr := validateRequest(&filter); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	res := h.sync.Cycle(r.Context())
	if errors.Is(res.Err(), syncpkg.ErrNoData) {
		respondJSON(w, http.StatusNotFound, models.TeamsResponse{
			Teams: []models.Team{},
			Error: &models.ErrorBody{
				Message: msgNoTeamData,
				Details: map[string]interface{}{"stack": detailNoTeamData},
			},
		})
		return
	}

	teams := filter.apply(syncpkg.TrimHistory(res.Teams, parseLastPoints(q)))
	resp := models.TeamsResponse{Teams: teams}
	status := http.StatusOK

	switch {
	case res.Degraded:
		status = http.StatusPartialContent
		resp.Error = h.degradedError(res.UpstreamErr)
	case res.PersistErr != nil:
		resp.Error = &models.ErrorBody{Message: msgPersistFailed}
		logging.CtxFor(r.Context(), logging.ComponentAPI).Warn().Err(res.PersistErr).Msg("Serving teams that were not persisted")
	}

	respondJSON(w, status, resp)
}

// degradedError builds the error member of a 206 response. The upstream
// error text is only exposed outside production.
func (h *Handler) degradedError(upstreamErr error) *models.ErrorBody {
	details := map[string]interface{}{
		"kind": string(syncpkg.UpstreamKind(upstreamErr)),
	}
	if !h.config.IsProduction() && upstreamErr != nil {
		details["stack"] = logging.SanitizeError(upstreamErr)
	}
	return &models.ErrorBody{Message: msgUpstreamDegraded, Details: details}
}
