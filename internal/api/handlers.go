// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

package api

import (
	"time"

	"github.com/spf13/afero"

	"github.com/tomtom215/trailwatch/internal/config"
	"github.com/tomtom215/trailwatch/internal/models"
	"github.com/tomtom215/trailwatch/internal/store"
	syncpkg "github.com/tomtom215/trailwatch/internal/sync"
	"github.com/tomtom215/trailwatch/internal/validation"
)

// BreakerStater reports the state of the upstream circuit breaker.
type BreakerStater interface {
	State() string
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across multiple files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: response writers and query parsing
//   - handlers_teams.go: the team polling endpoint
//   - handlers_reference.go: routes and checkpoints
//   - handlers_config.go: client config and meta
//   - handlers_health.go: liveness and readiness probes
type Handler struct {
	config      *config.Config
	sync        *syncpkg.Manager
	routes      *referenceSource[models.Route]
	checkpoints *referenceSource[models.Checkpoint]
	breaker     BreakerStater
	startTime   time.Time
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithBreaker exposes the upstream breaker state on the readiness probe.
func WithBreaker(b BreakerStater) HandlerOption {
	return func(h *Handler) {
		h.breaker = b
	}
}

// NewHandler creates the API handler.
//
// Dependencies:
//   - cfg: application configuration
//   - syncMgr: the sync manager that owns the team snapshot
//   - fs: filesystem holding the read-only reference files under cfg.Store.DataDir
//
// Routes and checkpoints are cached for cfg.Reference.CacheTTL.
//
// Example:
//
//	handler := api.NewHandler(cfg, syncMgr, afero.NewOsFs(), api.WithBreaker(breaker))
//	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFrom(cfg.Security)))
//	http.ListenAndServe(cfg.Server.Addr(), router.SetupChi())
func NewHandler(cfg *config.Config, syncMgr *syncpkg.Manager, fs afero.Fs, opts ...HandlerOption) *Handler {
	h := &Handler{
		config: cfg,
		sync:   syncMgr,
		routes: newReferenceSource(
			store.NewReferenceReader(fs, cfg.Store.DataDir, store.RoutesFile, validation.CheckRoute),
			"routes", cfg.Reference.CacheTTL,
		),
		checkpoints: newReferenceSource(
			store.NewReferenceReader(fs, cfg.Store.DataDir, store.CheckpointsFile, validation.CheckCheckpoint),
			"checkpoints", cfg.Reference.CacheTTL,
		),
		startTime: time.Now(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ClearReferenceCache drops cached routes and checkpoints so the next request
// rereads the files.
func (h *Handler) ClearReferenceCache() {
	h.routes.cache.Clear()
	h.checkpoints.cache.Clear()
}
