// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

/*
Package main is the entry point for the Trailwatch server.

Trailwatch serves the live positions of teams taking part in an outdoor
event, together with the static route and checkpoint reference data the map
client draws them on. Team positions come from an upstream feed (or a local
simulator) and are reconciled into a durable snapshot on every read.

# Application Architecture

Services run under a Suture v4 supervisor tree:

	RootSupervisor ("trailwatch")
	├── DataSupervisor ("data-layer")
	│   └── Store GC (badger backend only)
	├── SyncSupervisor ("sync-layer")
	│   └── Background poller (SYNC_POLL_INTERVAL > 0)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Configuration: Koanf v2 with defaults, config.yaml and environment variables
 2. Logging and tracing: zerolog and OpenTelemetry
 3. Snapshot store: file or BadgerDB
 4. Batch source: HTTP upstream behind a circuit breaker, or the simulator
 5. Sync manager, API handler and Chi router
 6. Supervisor tree, then blocking until SIGINT or SIGTERM

# Configuration

Common environment variables:

	EXTERNAL_API_URL    upstream team feed
	SIMULATE_DATA       generate positions locally instead of calling upstream
	DATA_DIR            directory holding teams.json, routes.json, checkpoints.json
	STORE_BACKEND       file (default) or badger
	SYNC_MIN_INTERVAL   minimum spacing between upstream fetches
	SYNC_POLL_INTERVAL  background sync interval, 0 disables the poller
	POLL_INTERVAL_MS    refetch interval advertised to map clients
	HTTP_PORT           listen port (default 8080)
	LOG_LEVEL           trace, debug, info, warn, error
	TRACING_EXPORTER    none, stdout or otlp

# Example Usage

Rehearsal with simulated movement:

	trailwatchctl seed all --data-dir ./data
	SIMULATE_DATA=true DATA_DIR=./data ./trailwatch

Production against the live feed:

	export EXTERNAL_API_URL=https://tracker.example.org/teams
	export STORE_BACKEND=badger
	export ENVIRONMENT=production
	./trailwatch

# Signal Handling

On SIGINT or SIGTERM the tree is cancelled. The HTTP server drains in-flight
requests within SHUTDOWN_TIMEOUT and the store is closed after every service
has stopped.
*/
package main
