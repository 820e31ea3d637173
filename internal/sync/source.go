// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

package sync

import (
	"context"

	"github.com/tomtom215/trailwatch/internal/config"
	"github.com/tomtom215/trailwatch/internal/models"
	"github.com/tomtom215/trailwatch/internal/store"
)

// Source produces one batch of raw team records per cycle.
//
// Implementations return *UpstreamError on failure. Individual records that
// cannot be decoded are returned with RawTeam.Undecodable set rather than
// failing the batch.
type Source interface {
	FetchBatch(ctx context.Context) ([]models.RawTeam, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) ([]models.RawTeam, error)

// FetchBatch calls f.
func (f SourceFunc) FetchBatch(ctx context.Context) ([]models.RawTeam, error) {
	return f(ctx)
}

// NewSourceFromConfig builds the batch source described by cfg. With Simulate
// set, positions are generated from the stored snapshot and no breaker is
// returned. Otherwise the HTTP upstream is wrapped in a circuit breaker,
// which is also returned so callers can report its state.
func NewSourceFromConfig(cfg config.UpstreamConfig, st store.SnapshotStore) (Source, *CircuitBreakerClient) {
	if cfg.Simulate {
		return NewSimulatedSource(st, NewSimulator(nil, cfg.SimStep)), nil
	}
	cb := NewCircuitBreakerClient("upstream", NewUpstreamClient(cfg))
	return cb, cb
}
