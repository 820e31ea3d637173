// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

/*
Package config provides centralized configuration management for Trailwatch.

Configuration is layered with Koanf v2. Later layers override earlier ones:

 1. Built-in defaults (defaultConfig)
 2. Optional YAML file: CONFIG_PATH, ./config.yaml, /etc/trailwatch/config.yaml
 3. Environment variables, mapped explicitly by envTransformFunc

Unmapped environment variables are ignored.

# Sections

  - server: listen address, timeouts, environment (development, production)
  - upstream: EXTERNAL_API_URL, SIMULATE_DATA, fetch timeout and 429 retries
  - sync: request gate (SYNC_MIN_INTERVAL), background poller
    (SYNC_POLL_INTERVAL), client refetch interval (POLL_INTERVAL_MS)
  - store: file or badger backend, DATA_DIR, badger history and GC
  - reference: cache TTL for routes and checkpoints
  - map: center and zoom reported to clients
  - security: CORS origins and rate limiting
  - logging: LOG_LEVEL, LOG_FORMAT, LOG_CALLER
  - tracing: exporter (none, stdout, otlp), endpoint, sampling

# Example YAML

	upstream:
	  url: https://telemetry.example.com/api/teams
	  timeout: 5s
	sync:
	  min_interval: 2s
	store:
	  backend: badger
	  badger_path: /var/lib/trailwatch/badger

# Validation

Validate rejects malformed values (bad URLs, out-of-range coordinates,
unknown backends). A missing upstream URL is not an error: the server starts
in degraded mode and Warnings reports it for logging at startup.
*/
package config
