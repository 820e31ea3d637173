// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

package sync

import (
	"context"
	"errors"
	gosync "sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/tomtom215/trailwatch/internal/config"
	"github.com/tomtom215/trailwatch/internal/metrics"
	"github.com/tomtom215/trailwatch/internal/models"
	"github.com/tomtom215/trailwatch/internal/store"
)

func newMemStore(t *testing.T, teams ...models.Team) *store.FileStore {
	t.Helper()
	st := store.NewFileStore(afero.NewMemMapFs(), "/data")
	if len(teams) > 0 {
		if _, err := st.Save(context.Background(), teams, store.AnyVersion); err != nil {
			t.Fatalf("seed store: %v", err)
		}
	}
	return st
}

// countingSource returns batch (or err) and counts calls.
type countingSource struct {
	calls atomic.Int32
	batch []models.RawTeam
	err   error
}

func (s *countingSource) FetchBatch(context.Context) ([]models.RawTeam, error) {
	s.calls.Add(1)
	return s.batch, s.err
}

func TestManager_CycleMergesAndPersists(t *testing.T) {
	t.Parallel()

	st := newMemStore(t, team(1, "A", 1, 1), team(2, "B", 2, 2))
	src := &countingSource{batch: raw(team(2, "B", 2, 2, 2.5, 2.5), team(3, "C", 3, 3))}
	m := NewManager(st, src, config.SyncConfig{})

	res := m.Cycle(context.Background())
	if err := res.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}
	if res.Degraded || res.PersistErr != nil || res.Skipped {
		t.Fatalf("unexpected result flags: %+v", res)
	}
	checkTeamIDs(t, res.Teams, 2, 3, 1)
	if got := res.Outcome(); got != metrics.OutcomeSuccess {
		t.Errorf("Outcome() = %q, want success", got)
	}

	stored := st.Load(context.Background())
	checkTeamIDs(t, stored.Teams, 2, 3, 1)
	if len(stored.Teams[0].PositionHistory) != 2 {
		t.Errorf("stored team 2 history = %v, want the fresh history", stored.Teams[0].PositionHistory)
	}
}

func TestManager_UpstreamFailureServesStoredSnapshot(t *testing.T) {
	t.Parallel()

	st := newMemStore(t, team(1, "A", 1, 1))
	before := st.Load(context.Background())

	src := &countingSource{err: newUpstreamError(KindTimeout, opFetch, context.DeadlineExceeded)}
	m := NewManager(st, src, config.SyncConfig{})

	res := m.Cycle(context.Background())
	if !res.Degraded {
		t.Fatal("Degraded = false, want true")
	}
	if !errors.Is(res.UpstreamErr, ErrUpstreamTimeout) {
		t.Errorf("UpstreamErr = %v, want ErrUpstreamTimeout", res.UpstreamErr)
	}
	checkTeamIDs(t, res.Teams, 1)
	if res.Err() != nil {
		t.Errorf("Err() = %v, want nil with stored teams", res.Err())
	}
	if got := res.Outcome(); got != metrics.OutcomeDegraded {
		t.Errorf("Outcome() = %q, want degraded", got)
	}

	after := st.Load(context.Background())
	if after.ETag != before.ETag {
		t.Error("a failed fetch must not rewrite the snapshot")
	}
	if !m.Status().Degraded {
		t.Error("Status().Degraded = false")
	}
}

func TestManager_NoData(t *testing.T) {
	t.Parallel()

	src := &countingSource{err: newUpstreamError(KindUnavailable, opFetch, errNoUpstreamURL)}
	m := NewManager(newMemStore(t), src, config.SyncConfig{})

	res := m.Cycle(context.Background())
	if !errors.Is(res.Err(), ErrNoData) {
		t.Fatalf("Err() = %v, want ErrNoData", res.Err())
	}
	if got := res.Outcome(); got != metrics.OutcomeNoData {
		t.Errorf("Outcome() = %q, want no_data", got)
	}

	empty := &countingSource{batch: []models.RawTeam{}}
	res = NewManager(newMemStore(t), empty, config.SyncConfig{}).Cycle(context.Background())
	if !errors.Is(res.Err(), ErrNoData) || res.Degraded {
		t.Errorf("empty feed over empty store: Err=%v Degraded=%v", res.Err(), res.Degraded)
	}
}

func TestManager_AllInvalidBatchKeepsSnapshot(t *testing.T) {
	t.Parallel()

	st := newMemStore(t, team(1, "A", 1, 1))
	before := st.Load(context.Background())

	src := &countingSource{batch: raw(team(5, "Bad", 91, 0))}
	res := NewManager(st, src, config.SyncConfig{}).Cycle(context.Background())

	checkTeamIDs(t, res.Teams, 1)
	if !res.Reconcile.UsedFallback || res.Reconcile.Invalid != 1 {
		t.Errorf("Reconcile = %+v, want fallback with one invalid", res.Reconcile)
	}
	if st.Load(context.Background()).ETag != before.ETag {
		t.Error("fallback cycle must not rewrite the snapshot")
	}
}

func TestManager_GateServesStoredSnapshot(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	src := &countingSource{batch: raw(team(1, "A", 1, 1))}
	m := NewManager(newMemStore(t), src, config.SyncConfig{MinInterval: 10 * time.Second}, WithClock(clock.Now))

	first := m.Cycle(context.Background())
	if first.Skipped {
		t.Fatal("first cycle should fetch")
	}

	clock.Advance(3 * time.Second)
	second := m.Cycle(context.Background())
	if !second.Skipped {
		t.Fatal("cycle within the minimum interval should be skipped")
	}
	checkTeamIDs(t, second.Teams, 1)
	if got := second.Outcome(); got != metrics.OutcomeSkipped {
		t.Errorf("Outcome() = %q, want skipped", got)
	}
	if got := src.calls.Load(); got != 1 {
		t.Errorf("source calls = %d, want 1", got)
	}

	clock.Advance(10 * time.Second)
	if m.Cycle(context.Background()).Skipped {
		t.Error("cycle after the interval should fetch")
	}
	if got := src.calls.Load(); got != 2 {
		t.Errorf("source calls = %d, want 2", got)
	}
}

func TestManager_ConcurrentCyclesShareOneFetch(t *testing.T) {
	t.Parallel()

	entered := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32
	src := SourceFunc(func(context.Context) ([]models.RawTeam, error) {
		if calls.Add(1) == 1 {
			close(entered)
		}
		<-release
		return raw(team(1, "A", 1, 1), team(2, "B", 2, 2)), nil
	})

	m := NewManager(newMemStore(t), src, config.SyncConfig{MinInterval: time.Hour})

	const callers = 8
	results := make([]CycleResult, callers)
	var wg gosync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = m.Cycle(context.Background())
		}(i)
	}

	<-entered
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Errorf("source calls = %d, want 1", got)
	}
	for i, r := range results {
		if len(r.Teams) != 2 {
			t.Errorf("caller %d got %d teams, want 2", i, len(r.Teams))
		}
	}
}

func TestManager_SharedCycleIgnoresLeaderCancellation(t *testing.T) {
	t.Parallel()

	entered := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32
	src := SourceFunc(func(ctx context.Context) ([]models.RawTeam, error) {
		if calls.Add(1) == 1 {
			close(entered)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-release:
			return raw(team(1, "A", 1, 1)), nil
		}
	})

	m := NewManager(newMemStore(t), src, config.SyncConfig{MinInterval: time.Hour})

	leaderCtx, cancelLeader := context.WithCancel(context.Background())
	defer cancelLeader()

	var leader, follower CycleResult
	var wg gosync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		leader = m.Cycle(leaderCtx)
	}()
	<-entered

	wg.Add(1)
	go func() {
		defer wg.Done()
		follower = m.Cycle(context.Background())
	}()
	time.Sleep(20 * time.Millisecond)

	cancelLeader()
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Errorf("source calls = %d, want 1", got)
	}
	for name, r := range map[string]CycleResult{"leader": leader, "follower": follower} {
		if r.Degraded {
			t.Errorf("%s: Degraded = true (err %v), want false", name, r.UpstreamErr)
		}
		if len(r.Teams) != 1 {
			t.Errorf("%s: got %d teams, want 1", name, len(r.Teams))
		}
	}
}

// racingStore lets another writer replace the snapshot just before the
// first Save.
type racingStore struct {
	store.SnapshotStore
	once     gosync.Once
	intruder []models.Team
	saves    atomic.Int32
}

func (s *racingStore) Save(ctx context.Context, teams []models.Team, ifMatch string) (string, error) {
	s.once.Do(func() {
		_, _ = s.SnapshotStore.Save(ctx, s.intruder, store.AnyVersion)
	})
	s.saves.Add(1)
	return s.SnapshotStore.Save(ctx, teams, ifMatch)
}

func TestManager_RetriesOnConflict(t *testing.T) {
	t.Parallel()

	inner := newMemStore(t)
	st := &racingStore{SnapshotStore: inner, intruder: []models.Team{team(9, "Intruder", 9, 9)}}
	src := &countingSource{batch: raw(team(1, "A", 1, 1))}

	res := NewManager(st, src, config.SyncConfig{}).Cycle(context.Background())
	if res.PersistErr != nil {
		t.Fatalf("PersistErr = %v, want nil after retry", res.PersistErr)
	}
	checkTeamIDs(t, res.Teams, 1, 9)
	if got := st.saves.Load(); got != 2 {
		t.Errorf("saves = %d, want 2", got)
	}
	checkTeamIDs(t, inner.Load(context.Background()).Teams, 1, 9)
	if got := src.calls.Load(); got != 1 {
		t.Errorf("source calls = %d, want a single fetch", got)
	}
}

func TestManager_PersistFailureStillServesFreshTeams(t *testing.T) {
	t.Parallel()

	st := store.NewFileStore(afero.NewReadOnlyFs(afero.NewMemMapFs()), "/data")
	src := &countingSource{batch: raw(team(1, "A", 1, 1))}

	res := NewManager(st, src, config.SyncConfig{}).Cycle(context.Background())
	if !errors.Is(res.PersistErr, store.ErrPersistenceWrite) {
		t.Fatalf("PersistErr = %v, want ErrPersistenceWrite", res.PersistErr)
	}
	checkTeamIDs(t, res.Teams, 1)
	if got := res.Outcome(); got != metrics.OutcomePersistError {
		t.Errorf("Outcome() = %q, want persist_error", got)
	}
}

func TestManager_PersistSurvivesCallerCancellation(t *testing.T) {
	t.Parallel()

	st := newMemStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	src := SourceFunc(func(context.Context) ([]models.RawTeam, error) {
		cancel()
		return raw(team(1, "A", 1, 1)), nil
	})

	res := NewManager(st, src, config.SyncConfig{}).Cycle(ctx)
	if res.PersistErr != nil {
		t.Fatalf("PersistErr = %v, want nil", res.PersistErr)
	}
	checkTeamIDs(t, st.Load(context.Background()).Teams, 1)
}

func TestManager_Status(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	src := &countingSource{batch: raw(team(1, "A", 1, 1))}
	m := NewManager(newMemStore(t), src, config.SyncConfig{}, WithClock(clock.Now))

	if s := m.Status(); !s.LastCycle.IsZero() || s.Teams != 0 {
		t.Errorf("initial Status() = %+v", s)
	}

	m.Cycle(context.Background())
	s := m.Status()
	if !s.LastSuccess.Equal(clock.Now()) || !s.LastCycle.Equal(clock.Now()) {
		t.Errorf("Status() times = %+v, want %v", s, clock.Now())
	}
	if s.Teams != 1 || s.Degraded {
		t.Errorf("Status() = %+v", s)
	}

	src.err = newUpstreamError(KindFormat, opFetch, errors.New("HTTP status 502"))
	clock.Advance(time.Minute)
	m.Cycle(context.Background())
	s = m.Status()
	if !s.Degraded || s.LastSuccess.Equal(s.LastCycle) {
		t.Errorf("Status() after failure = %+v", s)
	}
}

func TestManager_Run(t *testing.T) {
	t.Parallel()

	t.Run("polls until cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		var calls atomic.Int32
		src := SourceFunc(func(context.Context) ([]models.RawTeam, error) {
			if calls.Add(1) == 3 {
				cancel()
			}
			return raw(team(1, "A", 1, 1)), nil
		})
		m := NewManager(newMemStore(t), src, config.SyncConfig{PollInterval: 5 * time.Millisecond})

		done := make(chan error, 1)
		go func() { done <- m.Run(ctx) }()

		select {
		case err := <-done:
			if !errors.Is(err, context.Canceled) {
				t.Errorf("Run() = %v, want context.Canceled", err)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("Run() did not stop")
		}
		if calls.Load() < 3 {
			t.Errorf("source calls = %d, want >= 3", calls.Load())
		}
	})

	t.Run("zero interval only waits", func(t *testing.T) {
		t.Parallel()

		src := &countingSource{}
		m := NewManager(newMemStore(t), src, config.SyncConfig{})
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		if err := m.Run(ctx); !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("Run() = %v, want context.DeadlineExceeded", err)
		}
		if src.calls.Load() != 0 {
			t.Error("Run() with a zero interval must not poll")
		}
	})
}
