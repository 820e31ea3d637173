// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Sync cycle outcomes used as the "outcome" label.
const (
	OutcomeSuccess      = "success"
	OutcomeDegraded     = "degraded"
	OutcomeSkipped      = "skipped"
	OutcomeNoData       = "no_data"
	OutcomePersistError = "persist_error"
)

// Reasons a fresh record is dropped during reconciliation.
const (
	DropInvalid   = "invalid"
	DropDuplicate = "duplicate"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trailwatch_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trailwatch_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "trailwatch_api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trailwatch_api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Sync Cycle Metrics
	SyncCyclesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trailwatch_sync_cycles_total",
			Help: "Total number of sync cycles by outcome",
		},
		[]string{"outcome"},
	)

	SyncCycleDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "trailwatch_sync_cycle_duration_seconds",
			Help:    "Duration of sync cycles in seconds",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	SyncLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "trailwatch_sync_last_success_timestamp",
			Help: "Unix timestamp of the last successful sync cycle",
		},
	)

	SnapshotTeams = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "trailwatch_snapshot_teams",
			Help: "Number of teams in the current snapshot",
		},
	)

	ReconcileDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trailwatch_reconcile_dropped_total",
			Help: "Total number of fresh team records dropped during reconciliation",
		},
		[]string{"reason"}, // "invalid", "duplicate"
	)

	// Store Metrics
	StoreReadErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trailwatch_store_read_errors_total",
			Help: "Total number of snapshot reads that fell back to an empty snapshot",
		},
		[]string{"reason"}, // "missing", "read", "parse"
	)

	StoreWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trailwatch_store_writes_total",
			Help: "Total number of snapshot writes by result",
		},
		[]string{"backend", "result"}, // result: "ok", "conflict", "error"
	)

	StoreGCRuns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "trailwatch_store_gc_runs_total",
			Help: "Total number of value log GC runs",
		},
	)

	// Reference Data Metrics
	ReferenceCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trailwatch_reference_cache_hits_total",
			Help: "Total number of reference data cache hits",
		},
		[]string{"kind"},
	)

	ReferenceCacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trailwatch_reference_cache_misses_total",
			Help: "Total number of reference data cache misses",
		},
		[]string{"kind"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "trailwatch_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trailwatch_circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "trailwatch_circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trailwatch_circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit counts a request rejected by the rate limiter.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordSyncCycle records one sync cycle and the resulting snapshot size.
func RecordSyncCycle(outcome string, duration time.Duration, teams int) {
	SyncCyclesTotal.WithLabelValues(outcome).Inc()
	SyncCycleDuration.Observe(duration.Seconds())
	SnapshotTeams.Set(float64(teams))
	if outcome == OutcomeSuccess {
		SyncLastSuccess.Set(float64(time.Now().Unix()))
	}
}

// RecordReconcileDrops adds dropped fresh records by reason.
func RecordReconcileDrops(invalid, duplicates int) {
	if invalid > 0 {
		ReconcileDropped.WithLabelValues(DropInvalid).Add(float64(invalid))
	}
	if duplicates > 0 {
		ReconcileDropped.WithLabelValues(DropDuplicate).Add(float64(duplicates))
	}
}

// RecordStoreReadError counts a snapshot read that fell back to empty.
func RecordStoreReadError(reason string) {
	StoreReadErrors.WithLabelValues(reason).Inc()
}

// RecordStoreWrite counts a snapshot write attempt.
func RecordStoreWrite(backend, result string) {
	StoreWrites.WithLabelValues(backend, result).Inc()
}

// RecordReferenceCache records a reference cache lookup.
func RecordReferenceCache(kind string, hit bool) {
	if hit {
		ReferenceCacheHits.WithLabelValues(kind).Inc()
	} else {
		ReferenceCacheMisses.WithLabelValues(kind).Inc()
	}
}
