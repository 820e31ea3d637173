// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

package sync

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/tomtom215/trailwatch/internal/models"
	"github.com/tomtom215/trailwatch/internal/store"
)

// DefaultSimStep is the default maximum movement per axis per cycle, in degrees.
const DefaultSimStep = 0.1

// Simulator advances team positions by a bounded random step. It stands in
// for the upstream feed during rehearsals and demos.
type Simulator struct {
	mu   sync.Mutex
	rng  *rand.Rand
	step float64
}

// NewSimulator creates a simulator. A nil rng is seeded from the clock; a
// step <= 0 uses DefaultSimStep.
func NewSimulator(rng *rand.Rand, step float64) *Simulator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // not security sensitive
	}
	if step <= 0 {
		step = DefaultSimStep
	}
	return &Simulator{rng: rng, step: step}
}

// Advance returns a copy of team with one new position appended:
// last + (u-0.5)*step per axis, u in [0,1). Latitude is clamped to [-90,90]
// and longitude wrapped into [-180,180). A team without history is returned
// unchanged.
func (s *Simulator) Advance(team models.Team) models.Team {
	out := team.Clone()
	last, ok := out.LastPosition()
	if !ok {
		return out
	}

	s.mu.Lock()
	dLat := (s.rng.Float64() - 0.5) * s.step
	dLng := (s.rng.Float64() - 0.5) * s.step
	s.mu.Unlock()

	out.PositionHistory = append(out.PositionHistory, models.Coordinate{
		Lat: clampLatitude(last.Lat + dLat),
		Lng: wrapLongitude(last.Lng + dLng),
	})
	return out
}

// AdvanceAll advances every team once.
func (s *Simulator) AdvanceAll(teams []models.Team) []models.Team {
	out := make([]models.Team, len(teams))
	for i := range teams {
		out[i] = s.Advance(teams[i])
	}
	return out
}

func clampLatitude(lat float64) float64 {
	return math.Max(-90, math.Min(90, lat))
}

// wrapLongitude maps lng into [-180, 180).
func wrapLongitude(lng float64) float64 {
	x := math.Mod(lng+180, 360)
	if x < 0 {
		x += 360
	}
	return x - 180
}

// SimulatedSource is a Source that advances the stored snapshot instead of
// calling the feed.
type SimulatedSource struct {
	store store.SnapshotStore
	sim   *Simulator
}

// NewSimulatedSource creates a source that reads teams from st.
func NewSimulatedSource(st store.SnapshotStore, sim *Simulator) *SimulatedSource {
	return &SimulatedSource{store: st, sim: sim}
}

// FetchBatch loads the current snapshot and returns every team advanced
// once, as raw records. An empty snapshot yields an empty batch.
func (s *SimulatedSource) FetchBatch(ctx context.Context) ([]models.RawTeam, error) {
	if err := ctx.Err(); err != nil {
		return nil, classifyTransportError("simulate", err)
	}
	snap := s.store.Load(ctx)
	return models.RawTeamsFrom(s.sim.AdvanceAll(snap.Teams)), nil
}
