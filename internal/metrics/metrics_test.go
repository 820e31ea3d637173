// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	io_prometheus_client "github.com/prometheus/client_model/go"
)

// histogramCount returns the number of observations recorded by h.
func histogramCount(t *testing.T, h prometheus.Metric) uint64 {
	t.Helper()
	var m io_prometheus_client.Metric
	if err := h.Write(&m); err != nil {
		t.Fatalf("write histogram: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

// TestRecordAPIRequest tests API request metric recording
func TestRecordAPIRequest(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		endpoint   string
		statusCode string
		duration   time.Duration
	}{
		{name: "fresh teams", method: "GET", endpoint: "/api/teams", statusCode: "200", duration: 25 * time.Millisecond},
		{name: "degraded teams", method: "GET", endpoint: "/api/teams", statusCode: "206", duration: 5 * time.Second},
		{name: "no data", method: "GET", endpoint: "/api/teams", statusCode: "404", duration: 2 * time.Millisecond},
		{name: "bad filter", method: "GET", endpoint: "/api/v1/teams", statusCode: "400", duration: time.Millisecond},
		{name: "rate limited", method: "GET", endpoint: "/api/routes", statusCode: "429", duration: time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues(tt.method, tt.endpoint, tt.statusCode))
			RecordAPIRequest(tt.method, tt.endpoint, tt.statusCode, tt.duration)
			after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues(tt.method, tt.endpoint, tt.statusCode))
			if after != before+1 {
				t.Errorf("api_requests_total = %v, want %v", after, before+1)
			}
		})
	}
}

func TestRecordSyncCycle(t *testing.T) {
	before := testutil.ToFloat64(SyncCyclesTotal.WithLabelValues(OutcomeDegraded))

	RecordSyncCycle(OutcomeDegraded, 40*time.Millisecond, 5)

	if got := testutil.ToFloat64(SyncCyclesTotal.WithLabelValues(OutcomeDegraded)); got != before+1 {
		t.Errorf("sync_cycles_total{degraded} = %v, want %v", got, before+1)
	}
	if got := testutil.ToFloat64(SnapshotTeams); got != 5 {
		t.Errorf("snapshot_teams = %v, want 5", got)
	}

	RecordSyncCycle(OutcomeSuccess, 10*time.Millisecond, 7)
	if got := testutil.ToFloat64(SyncLastSuccess); got == 0 {
		t.Error("sync_last_success_timestamp not set after success")
	}
	if got := testutil.ToFloat64(SnapshotTeams); got != 7 {
		t.Errorf("snapshot_teams = %v, want 7", got)
	}
}

func TestRecordReconcileDrops(t *testing.T) {
	invalidBefore := testutil.ToFloat64(ReconcileDropped.WithLabelValues(DropInvalid))
	dupBefore := testutil.ToFloat64(ReconcileDropped.WithLabelValues(DropDuplicate))

	RecordReconcileDrops(2, 0)
	RecordReconcileDrops(0, 3)

	if got := testutil.ToFloat64(ReconcileDropped.WithLabelValues(DropInvalid)); got != invalidBefore+2 {
		t.Errorf("dropped{invalid} = %v, want %v", got, invalidBefore+2)
	}
	if got := testutil.ToFloat64(ReconcileDropped.WithLabelValues(DropDuplicate)); got != dupBefore+3 {
		t.Errorf("dropped{duplicate} = %v, want %v", got, dupBefore+3)
	}
}

func TestRecordStoreMetrics(t *testing.T) {
	readBefore := testutil.ToFloat64(StoreReadErrors.WithLabelValues("parse"))
	RecordStoreReadError("parse")
	if got := testutil.ToFloat64(StoreReadErrors.WithLabelValues("parse")); got != readBefore+1 {
		t.Errorf("store_read_errors_total{parse} = %v, want %v", got, readBefore+1)
	}

	writeBefore := testutil.ToFloat64(StoreWrites.WithLabelValues("file", "conflict"))
	RecordStoreWrite("file", "conflict")
	if got := testutil.ToFloat64(StoreWrites.WithLabelValues("file", "conflict")); got != writeBefore+1 {
		t.Errorf("store_writes_total = %v, want %v", got, writeBefore+1)
	}
}

func TestRecordReferenceCache(t *testing.T) {
	hits := testutil.ToFloat64(ReferenceCacheHits.WithLabelValues("routes"))
	misses := testutil.ToFloat64(ReferenceCacheMisses.WithLabelValues("routes"))

	RecordReferenceCache("routes", true)
	RecordReferenceCache("routes", false)
	RecordReferenceCache("routes", false)

	if got := testutil.ToFloat64(ReferenceCacheHits.WithLabelValues("routes")); got != hits+1 {
		t.Errorf("hits = %v, want %v", got, hits+1)
	}
	if got := testutil.ToFloat64(ReferenceCacheMisses.WithLabelValues("routes")); got != misses+2 {
		t.Errorf("misses = %v, want %v", got, misses+2)
	}
}

// TestTrackActiveRequest_RequestLifecycle simulates realistic request lifecycle
func TestTrackActiveRequest_RequestLifecycle(t *testing.T) {
	start := testutil.ToFloat64(APIActiveRequests)

	for i := 0; i < 10; i++ {
		TrackActiveRequest(true)
	}
	for i := 0; i < 10; i++ {
		TrackActiveRequest(false)
	}

	if got := testutil.ToFloat64(APIActiveRequests); got != start {
		t.Errorf("active requests = %v, want %v", got, start)
	}
}

func TestConcurrentMetricRecording(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			RecordAPIRequest("GET", "/api/teams", "200", time.Millisecond)
			RecordSyncCycle(OutcomeSkipped, time.Millisecond, 5)
			RecordRateLimitHit("/api/teams")
		}()
	}
	wg.Wait()
}

func TestMetricsRegistration(t *testing.T) {
	collectors := []prometheus.Collector{
		APIRequestsTotal,
		APIRequestDuration,
		APIActiveRequests,
		APIRateLimitHits,
		SyncCyclesTotal,
		SyncCycleDuration,
		SyncLastSuccess,
		SnapshotTeams,
		ReconcileDropped,
		StoreReadErrors,
		StoreWrites,
		StoreGCRuns,
		ReferenceCacheHits,
		ReferenceCacheMisses,
		CircuitBreakerState,
		CircuitBreakerRequests,
		CircuitBreakerConsecutiveFailures,
		CircuitBreakerTransitions,
	}

	for _, m := range collectors {
		ch := make(chan *prometheus.Desc, 10)
		m.Describe(ch)
		close(ch)

		count := 0
		for range ch {
			count++
		}
		if count == 0 {
			t.Errorf("Metric has no descriptors")
		}
	}
}

func BenchmarkRecordAPIRequest(b *testing.B) {
	for i := 0; i < b.N; i++ {
		RecordAPIRequest("GET", "/api/teams", "200", 25*time.Millisecond)
	}
}

func TestRecordSyncCycle_ObservesDuration(t *testing.T) {
	before := histogramCount(t, SyncCycleDuration)

	RecordSyncCycle(OutcomeSkipped, 3*time.Millisecond, 5)

	if got := histogramCount(t, SyncCycleDuration); got != before+1 {
		t.Errorf("sync_cycle_duration_seconds count = %d, want %d", got, before+1)
	}
}

func TestRecordAPIRequest_ObservesDuration(t *testing.T) {
	obs, err := APIRequestDuration.GetMetricWithLabelValues("GET", "/api/checkpoints")
	if err != nil {
		t.Fatal(err)
	}
	hist, ok := obs.(prometheus.Histogram)
	if !ok {
		t.Fatalf("observer is %T, want prometheus.Histogram", obs)
	}
	before := histogramCount(t, hist)

	RecordAPIRequest("GET", "/api/checkpoints", "200", 15*time.Millisecond)

	if got := histogramCount(t, hist); got != before+1 {
		t.Errorf("api_request_duration_seconds count = %d, want %d", got, before+1)
	}
}
