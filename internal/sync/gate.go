// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

package sync

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// SyncGate limits how often request-driven cycles reach the upstream feed.
// After a completed cycle, further cycles within MinInterval are served from
// the stored snapshot. A MinInterval of zero disables the gate.
//
// The gate is a single-token bucket refilled once per MinInterval and
// drained by every completed cycle.
type SyncGate struct {
	mu          sync.Mutex
	minInterval time.Duration
	limiter     *rate.Limiter
	lastSyncAt  time.Time
	now         func() time.Time
}

// NewSyncGate creates a gate. A nil now uses time.Now.
func NewSyncGate(minInterval time.Duration, now func() time.Time) *SyncGate {
	if now == nil {
		now = time.Now
	}
	return &SyncGate{minInterval: minInterval, now: now}
}

// Allow reports whether a cycle may fetch now.
func (g *SyncGate) Allow() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.minInterval <= 0 || g.limiter == nil {
		return true
	}
	// Tolerate float rounding at the exact interval boundary.
	return g.limiter.TokensAt(g.now()) >= 1-1e-9
}

// MarkSynced records a completed cycle at the current time.
func (g *SyncGate) MarkSynced() {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	g.lastSyncAt = now
	if g.minInterval <= 0 {
		return
	}
	g.limiter = rate.NewLimiter(rate.Every(g.minInterval), 1)
	g.limiter.AllowN(now, 1)
}

// LastSync returns the time of the last completed cycle, zero if none.
func (g *SyncGate) LastSync() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastSyncAt
}

// MinInterval returns the configured interval.
func (g *SyncGate) MinInterval() time.Duration {
	return g.minInterval
}
