// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/trailwatch/internal/cache"
	"github.com/tomtom215/trailwatch/internal/logging"
	"github.com/tomtom215/trailwatch/internal/metrics"
	"github.com/tomtom215/trailwatch/internal/models"
	"github.com/tomtom215/trailwatch/internal/store"
)

// referenceSource serves one read-only reference file through a TTL cache.
type referenceSource[T any] struct {
	reader *store.ReferenceReader[T]
	cache  *cache.TTL[store.ReferenceResult[T]]
	kind   string
}

func newReferenceSource[T any](reader *store.ReferenceReader[T], kind string, ttl time.Duration) *referenceSource[T] {
	return &referenceSource[T]{
		reader: reader,
		cache:  cache.NewTTL[store.ReferenceResult[T]](ttl),
		kind:   kind,
	}
}

func (s *referenceSource[T]) load(ctx context.Context) (store.ReferenceResult[T], error) {
	res, hit, err := s.cache.GetOrLoad(s.kind, func() (store.ReferenceResult[T], error) {
		return s.reader.Read(ctx)
	})
	metrics.RecordReferenceCache(s.kind, hit)
	return res, err
}

// referenceError maps a read failure to a status code and error body.
func (h *Handler) referenceError(ctx context.Context, kind string, err error) (int, *models.ErrorBody) {
	status := http.StatusInternalServerError
	message := msgInternalError
	if errors.Is(err, store.ErrReferenceMissing) {
		status = http.StatusNotFound
		message = "No valid " + kind + " found"
	}
	if status == http.StatusInternalServerError {
		logging.CtxFor(ctx, logging.ComponentAPI).Error().Err(err).Str("kind", kind).Msg("Failed to read reference data")
	}

	body := &models.ErrorBody{Message: message}
	if !h.config.IsProduction() {
		body.Details = map[string]interface{}{"stack": logging.SanitizeError(err)}
	}
	return status, body
}

func partialReferenceError(dropped int) *models.ErrorBody {
	return &models.ErrorBody{
		Message: msgPartialReference,
		Details: map[string]interface{}{"dropped": dropped},
	}
}

// Routes returns the course geometries.
//
// Responses:
//   - 200: {routes: Route[]}
//   - 206: some records were dropped; error.details.dropped counts them
//   - 404: the file is missing, empty or has no valid route
//   - 500: the file is not a JSON array or could not be read
//
// @Summary Get routes
// @Description Returns the course geometries read from routes.json.
// @Tags Reference
// @Produce json
// @Success 200 {object} models.RoutesResponse "All routes valid"
// @Success 206 {object} models.RoutesResponse "Some routes failed validation"
// @Failure 404 {object} models.RoutesResponse "No valid routes found"
// @Failure 500 {object} models.RoutesResponse "Routes file unreadable"
// @Router /api/v1/routes [get]
func (h *Handler) Routes(w http.ResponseWriter, r *http.Request) {
	res, err := h.routes.load(r.Context())
	if err != nil {
		status, body := h.referenceError(r.Context(), "routes", err)
		respondJSON(w, status, models.RoutesResponse{Routes: []models.Route{}, Error: body})
		return
	}

	resp := models.RoutesResponse{Routes: res.Records}
	status := http.StatusOK
	if res.Dropped > 0 {
		status = http.StatusPartialContent
		resp.Error = partialReferenceError(res.Dropped)
	}
	respondJSON(w, status, resp)
}

// Checkpoints returns the checkpoints as a plain array. Whenever an error is
// reported the body becomes {checkpoints: Checkpoint[], error}.
//
// @Summary Get checkpoints
// @Description Returns the checkpoints read from checkpoints.json.
// @Tags Reference
// @Produce json
// @Success 200 {array} models.Checkpoint "All checkpoints valid"
// @Success 206 {object} models.CheckpointsErrorResponse "Some checkpoints failed validation"
// @Failure 404 {object} models.CheckpointsErrorResponse "No valid checkpoints found"
// @Failure 500 {object} models.CheckpointsErrorResponse "Checkpoints file unreadable"
// @Router /api/v1/checkpoints [get]
func (h *Handler) Checkpoints(w http.ResponseWriter, r *http.Request) {
	res, err := h.checkpoints.load(r.Context())
	if err != nil {
		status, body := h.referenceError(r.Context(), "checkpoints", err)
		respondJSON(w, status, models.CheckpointsErrorResponse{Checkpoints: []models.Checkpoint{}, Error: body})
		return
	}

	if res.Dropped > 0 {
		respondJSON(w, http.StatusPartialContent, models.CheckpointsErrorResponse{
			Checkpoints: res.Records,
			Error:       partialReferenceError(res.Dropped),
		})
		return
	}
	respondJSON(w, http.StatusOK, res.Records)
}
