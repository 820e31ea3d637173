// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

package sync

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/trailwatch/internal/config"
	"github.com/tomtom215/trailwatch/internal/logging"
	"github.com/tomtom215/trailwatch/internal/metrics"
	"github.com/tomtom215/trailwatch/internal/models"
	"github.com/tomtom215/trailwatch/internal/store"
	"github.com/tomtom215/trailwatch/internal/tracing"
)

// CycleResult is the outcome of one sync cycle.
type CycleResult struct {
	// Teams is the reconciled snapshot. Callers must not modify it; the
	// same result may be shared by coalesced callers.
	Teams []models.Team

	// Degraded is set when the fetch failed and Teams is the stored snapshot.
	Degraded    bool
	UpstreamErr error

	// PersistErr is set when the reconciled snapshot could not be saved.
	// Teams is still the fresh result.
	PersistErr error

	Reconcile ReconcileResult

	// Skipped is set when the gate served the stored snapshot without
	// fetching.
	Skipped bool

	At time.Time
}

// Err returns ErrNoData when the cycle produced no teams at all.
func (r CycleResult) Err() error {
	if len(r.Teams) == 0 {
		return ErrNoData
	}
	return nil
}

// Outcome returns the trailwatch_sync_cycles_total label for r.
func (r CycleResult) Outcome() string {
	switch {
	case len(r.Teams) == 0:
		return metrics.OutcomeNoData
	case r.Skipped:
		return metrics.OutcomeSkipped
	case r.Degraded:
		return metrics.OutcomeDegraded
	case r.PersistErr != nil:
		return metrics.OutcomePersistError
	default:
		return metrics.OutcomeSuccess
	}
}

// Status summarizes the manager for readiness checks.
type Status struct {
	LastCycle   time.Time `json:"last_cycle,omitempty"`
	LastSuccess time.Time `json:"last_success,omitempty"`
	Teams       int       `json:"teams"`
	Degraded    bool      `json:"degraded"`
}

// Manager runs sync cycles: load the prior snapshot, fetch (or simulate) a
// batch, reconcile, persist.
//
// It is the single writer of the snapshot. A mutex serializes
// load-reconcile-save and concurrent Cycle calls are coalesced so that
// overlapping polls share one cycle.
type Manager struct {
	store        store.SnapshotStore
	source       Source
	gate         *SyncGate
	pollInterval time.Duration
	now          func() time.Time

	mu    sync.Mutex
	group singleflight.Group

	statusMu sync.RWMutex
	status   Status
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithClock replaces time.Now for the manager and its gate.
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a manager that persists to st and reads batches from
// source. The source is fixed for the manager's lifetime.
func NewManager(st store.SnapshotStore, source Source, cfg config.SyncConfig, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:        st,
		source:       source,
		pollInterval: cfg.PollInterval,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.gate = NewSyncGate(cfg.MinInterval, m.now)
	return m
}

// Store returns the snapshot store.
func (m *Manager) Store() store.SnapshotStore {
	return m.store
}

// Status returns a copy of the latest cycle summary.
func (m *Manager) Status() Status {
	m.statusMu.RLock()
	defer m.statusMu.RUnlock()
	return m.status
}

// Cycle runs one sync cycle, or joins one already in flight. The shared cycle
// ignores the cancellation of whichever caller started it, so one poll going
// away cannot degrade the polls that joined it. The fetch stays bounded by
// the upstream timeout.
func (m *Manager) Cycle(ctx context.Context) CycleResult {
	shared := context.WithoutCancel(ctx)
	v, _, _ := m.group.Do("cycle", func() (interface{}, error) {
		return m.runCycle(shared), nil
	})
	return v.(CycleResult)
}

func (m *Manager) runCycle(ctx context.Context) CycleResult {
	start := m.now()
	ctx, span := tracing.Start(ctx, "sync.cycle")
	defer span.End()

	m.mu.Lock()
	defer m.mu.Unlock()

	var result CycleResult
	if m.gate.Allow() {
		result = m.syncOnce(ctx)
		m.gate.MarkSynced()
	} else {
		snap := m.load(ctx)
		result = CycleResult{Teams: snap.Teams, Skipped: true}
	}
	result.At = m.now()

	outcome := result.Outcome()
	span.SetAttributes(
		attribute.String("sync.outcome", outcome),
		attribute.Int("sync.teams", len(result.Teams)),
	)
	metrics.RecordSyncCycle(outcome, m.now().Sub(start), len(result.Teams))
	m.updateStatus(result)
	m.logCycle(ctx, result, outcome)
	return result
}

// syncOnce runs fetch, reconcile and persist. A save that conflicts with a
// concurrent writer is retried once against a fresh load.
func (m *Manager) syncOnce(ctx context.Context) CycleResult {
	var result CycleResult

	batch, err := m.fetch(ctx)
	if err != nil {
		result.Degraded = true
		result.UpstreamErr = err
		batch = nil
	}

	for attempt := 0; attempt < 2; attempt++ {
		prior := m.load(ctx)
		rec := m.reconcile(ctx, batch, prior.Teams)
		result.Reconcile = rec
		result.Teams = rec.Teams
		result.PersistErr = nil

		if !rec.Changed() {
			break
		}

		err := m.persist(ctx, rec.Teams, prior.ETag)
		if err == nil {
			break
		}
		result.PersistErr = err
		if !errors.Is(err, store.ErrSnapshotConflict) {
			break
		}
		logging.CtxFor(ctx, logging.ComponentSync).Warn().Err(err).Int("attempt", attempt+1).
			Msg("Snapshot changed during sync, reloading")
	}

	metrics.RecordReconcileDrops(result.Reconcile.Invalid, result.Reconcile.Duplicates)
	return result
}

func (m *Manager) load(ctx context.Context) models.Snapshot {
	ctx, span := tracing.Start(ctx, "sync.load")
	defer span.End()

	snap := m.store.Load(ctx)
	span.SetAttributes(
		attribute.Int("snapshot.teams", snap.Len()),
		attribute.String("snapshot.etag", snap.ETag),
	)
	return snap
}

func (m *Manager) fetch(ctx context.Context) ([]models.RawTeam, error) {
	ctx, span := tracing.Start(ctx, "sync.fetch")
	defer span.End()

	batch, err := m.source.FetchBatch(ctx)
	if err != nil {
		tracing.RecordError(span, err)
		span.SetAttributes(attribute.String("upstream.kind", string(UpstreamKind(err))))
		return nil, err
	}
	span.SetAttributes(attribute.Int("batch.records", len(batch)))
	return batch, nil
}

func (m *Manager) reconcile(ctx context.Context, batch []models.RawTeam, prior []models.Team) ReconcileResult {
	ctx, span := tracing.Start(ctx, "sync.reconcile")
	defer span.End()

	rec := Reconcile(batch, prior)
	span.SetAttributes(
		attribute.Int("reconcile.accepted", rec.Accepted),
		attribute.Int("reconcile.invalid", rec.Invalid),
		attribute.Int("reconcile.duplicates", rec.Duplicates),
		attribute.Int("reconcile.carried_forward", rec.CarriedForward),
		attribute.Bool("reconcile.fallback", rec.UsedFallback),
	)

	log := logging.CtxFor(ctx, logging.ComponentSync)
	for _, d := range rec.Drops {
		ev := log.Warn().Int("index", d.Index).Str("reason", d.Reason)
		if d.ID != nil {
			ev = ev.Int("team_id", *d.ID)
		}
		if d.Err != nil {
			ev = ev.Str("errors", logging.SanitizeError(d.Err))
		}
		ev.Msg("Dropping team record")
	}
	return rec
}

func (m *Manager) persist(ctx context.Context, teams []models.Team, ifMatch string) error {
	ctx, span := tracing.Start(ctx, "sync.persist")
	defer span.End()

	etag, err := m.store.Save(ctx, teams, ifMatch)
	if err != nil {
		tracing.RecordError(span, err)
		return err
	}
	span.SetAttributes(attribute.String("snapshot.etag", etag))
	return nil
}

func (m *Manager) updateStatus(r CycleResult) {
	m.statusMu.Lock()
	defer m.statusMu.Unlock()

	m.status.LastCycle = r.At
	m.status.Teams = len(r.Teams)
	if !r.Skipped {
		m.status.Degraded = r.Degraded
	}
	if r.Outcome() == metrics.OutcomeSuccess {
		m.status.LastSuccess = r.At
	}
}

func (m *Manager) logCycle(ctx context.Context, r CycleResult, outcome string) {
	log := logging.CtxFor(ctx, logging.ComponentSync)
	switch {
	case r.Degraded:
		log.Warn().
			Str("kind", string(UpstreamKind(r.UpstreamErr))).
			Str("error", logging.SanitizeError(r.UpstreamErr)).
			Int("teams", len(r.Teams)).
			Msg("Upstream fetch failed, serving stored snapshot")
	case r.PersistErr != nil:
		log.Error().
			Err(r.PersistErr).
			Int("teams", len(r.Teams)).
			Msg("Snapshot could not be persisted")
	default:
		log.Debug().
			Str("outcome", outcome).
			Int("teams", len(r.Teams)).
			Int("accepted", r.Reconcile.Accepted).
			Int("carried_forward", r.Reconcile.CarriedForward).
			Msg("Sync cycle completed")
	}
}

// Run executes a cycle every poll interval until ctx is done. With a zero
// poll interval it runs no cycles and just blocks until ctx is done.
func (m *Manager) Run(ctx context.Context) error {
	if m.pollInterval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(m.pollInterval)
	defer ticker.Stop()

	logging.Info().Dur("interval", m.pollInterval).Msg("Background sync poller started")
	for {
		select {
		case <-ctx.Done():
			logging.Info().Msg("Background sync poller stopped")
			return ctx.Err()
		case <-ticker.C:
			m.Cycle(logging.ContextWithNewCorrelationID(ctx))
		}
	}
}
