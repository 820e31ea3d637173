// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered on the default registry through promauto and are
exposed at /metrics in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

API Metrics:
  - trailwatch_api_requests_total: Total API requests (counter)
    Labels: method, endpoint (chi route pattern), status_code
  - trailwatch_api_request_duration_seconds: Request latency (histogram)
  - trailwatch_api_active_requests: In-flight requests (gauge)
  - trailwatch_api_rate_limit_hits_total: Rate limiter rejections (counter)

Sync Metrics:
  - trailwatch_sync_cycles_total: Cycles by outcome (counter)
    Labels: outcome (success, degraded, skipped, no_data, persist_error)
  - trailwatch_sync_cycle_duration_seconds: Cycle latency (histogram)
  - trailwatch_sync_last_success_timestamp: Unix time of the last fresh cycle (gauge)
  - trailwatch_snapshot_teams: Teams in the current snapshot (gauge)
  - trailwatch_reconcile_dropped_total: Fresh records dropped (counter)
    Labels: reason (invalid, duplicate)

Store Metrics:
  - trailwatch_store_read_errors_total: Loads that fell back to empty (counter)
    Labels: reason (missing, read, parse)
  - trailwatch_store_writes_total: Snapshot writes (counter)
    Labels: backend (file, badger), result (ok, conflict, error)
  - trailwatch_store_gc_runs_total: Badger value log GC runs (counter)

Reference Data Metrics:
  - trailwatch_reference_cache_hits_total / _misses_total (counter)
    Labels: kind (routes, checkpoints)

Circuit Breaker Metrics:
  - trailwatch_circuit_breaker_state: 0=closed, 1=half-open, 2=open (gauge)
  - trailwatch_circuit_breaker_requests_total: Labels name, result (counter)
  - trailwatch_circuit_breaker_consecutive_failures (gauge)
  - trailwatch_circuit_breaker_state_transitions_total (counter)

# Example PromQL

Degraded cycle ratio over five minutes:

	sum(rate(trailwatch_sync_cycles_total{outcome="degraded"}[5m]))
	  / sum(rate(trailwatch_sync_cycles_total[5m]))

Invalid upstream records per minute:

	rate(trailwatch_reconcile_dropped_total{reason="invalid"}[1m]) * 60

# Thread Safety

All metric operations are thread-safe. Collectors use atomic operations
internally and can be updated from any goroutine.
*/
package metrics
