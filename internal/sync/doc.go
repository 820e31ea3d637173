// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

/*
Package sync keeps the team snapshot current.

Each cycle loads the prior snapshot, fetches a fresh batch of team records,
reconciles the two and persists the result:

 1. Fetch: UpstreamClient performs one bounded GET against the external feed,
    retrying HTTP 429 with backoff. CircuitBreakerClient stops hammering a
    feed that keeps failing. In simulation mode SimulatedSource advances the
    stored positions instead.
 2. Reconcile: Reconcile validates every record, keeps the first occurrence
    of each id and carries forward prior teams the batch did not mention. A
    batch with no acceptable record leaves the snapshot unchanged.
 3. Persist: the result is saved with the prior ETag as precondition. A save
    that loses a race with another writer is retried once on a fresh load.

A failed fetch never fails a cycle. The stored snapshot is served and the
result is marked degraded with the classified UpstreamError
(timeout, format or unavailable).

Manager is the single writer. Concurrent Cycle calls share one in-flight
cycle, and SyncGate serves the stored snapshot to request-driven cycles that
arrive within the minimum interval of the last one.

TrimHistory implements incremental client polling: given the last point a
client holds for each team, it returns only the positions recorded after it.
*/
package sync
