// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

/*
Package api provides the HTTP layer for Trailwatch.

Clients poll GET /api/teams every few seconds. Each request runs one sync
cycle through the sync manager (rate gated and coalesced) and returns the
reconciled snapshot:

  - 200: fresh data, {teams: Team[]}
  - 206: upstream failed, the last stored snapshot is served with an error body
  - 404: no snapshot exists anywhere
  - 400: invalid filter values

The optional lastPoint[<teamID>]=<lat>,<lng> query parameters (one per team)
trim each team's history to the points after the one the client already has.

Endpoints:

	GET /api/teams, /api/v1/teams              team snapshot
	GET /api/routes, /api/v1/routes            course geometries
	GET /api/checkpoints, /api/v1/checkpoints  checkpoints
	GET /api/v1/config                         client settings
	GET /api/v1/meta                           enum display metadata
	GET /api/v1/health/live                    liveness
	GET /api/v1/health/ready                   readiness (store readable)
	GET /metrics                               Prometheus

Usage Example:

	handler := api.NewHandler(cfg, syncMgr, afero.NewOsFs(), api.WithBreaker(breaker))
	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFrom(cfg.Security)))
	srv := &http.Server{Addr: cfg.Server.Addr(), Handler: router.SetupChi()}
*/
package api
