// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

/*
Package supervisor runs Trailwatch's long-lived services under a suture v4
supervisor tree.

	RootSupervisor ("trailwatch")
	├── "data-layer"
	│   └── StoreGCService (badger backend only)
	├── "sync-layer"
	│   └── PollerService (when sync.poll_interval > 0)
	└── "api-layer"
	    └── HTTPServerService

Crashed services restart with suture's backoff. Layers count failures
independently, so a poller that keeps failing never takes the HTTP server
down; clients still get the stored snapshot with a 206.

Supervisor events (restarts, backoff, stop timeouts) are logged through
sutureslog into the zerolog-backed slog handler from the logging package.

Usage:

	tree := supervisor.NewSupervisorTree(nil, supervisor.DefaultTreeConfig())
	tree.AddSyncService(services.NewPollerService(syncMgr))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.Addr(), cfg.Server.ShutdownTimeout))

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    logging.Error().Err(err).Msg("Supervisor tree stopped")
	}
*/
package supervisor
