// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

package sync

import (
	"github.com/tomtom215/trailwatch/internal/metrics"
	"github.com/tomtom215/trailwatch/internal/models"
	"github.com/tomtom215/trailwatch/internal/validation"
)

// Drop reasons.
const (
	DropInvalid   = metrics.DropInvalid
	DropDuplicate = metrics.DropDuplicate
)

// Drop records one fresh record that was not accepted.
type Drop struct {
	Index  int    // position in the fresh batch
	ID     *int   // record id, when present
	Reason string // DropInvalid or DropDuplicate
	Err    error  // validation error for DropInvalid
}

// ReconcileResult is the outcome of merging a fresh batch into the prior
// snapshot.
type ReconcileResult struct {
	Teams          []models.Team
	Accepted       int
	Invalid        int
	Duplicates     int
	CarriedForward int

	// UsedFallback is set when no fresh record was accepted and Teams is the
	// prior snapshot unchanged.
	UsedFallback bool

	Drops []Drop
}

// Changed reports whether the result differs from the prior snapshot and
// must be persisted.
func (r ReconcileResult) Changed() bool {
	return !r.UsedFallback
}

// Reconcile merges fresh records into prior. It never fails.
//
//  1. Invalid fresh records are dropped.
//  2. Among valid records the first occurrence of an id wins.
//  3. If nothing was accepted, prior is returned unchanged.
//  4. Otherwise prior teams whose id was not seen are appended in prior order.
//
// The output is the accepted fresh records in input order followed by the
// carried-forward prior teams.
func Reconcile(fresh []models.RawTeam, prior []models.Team) ReconcileResult {
	var res ReconcileResult
	seen := make(map[int]struct{}, len(fresh)+len(prior))
	accepted := make([]models.Team, 0, len(fresh)+len(prior))

	for i := range fresh {
		raw := &fresh[i]
		if verr := validation.ValidateTeam(raw); verr != nil {
			res.Invalid++
			res.Drops = append(res.Drops, Drop{Index: i, ID: raw.ID, Reason: DropInvalid, Err: verr})
			continue
		}
		id := *raw.ID
		if _, dup := seen[id]; dup {
			res.Duplicates++
			res.Drops = append(res.Drops, Drop{Index: i, ID: raw.ID, Reason: DropDuplicate})
			continue
		}
		seen[id] = struct{}{}
		accepted = append(accepted, raw.Team())
	}

	res.Accepted = len(accepted)
	if res.Accepted == 0 {
		res.Teams = prior
		res.UsedFallback = true
		return res
	}

	for i := range prior {
		if _, ok := seen[prior[i].ID]; ok {
			continue
		}
		seen[prior[i].ID] = struct{}{}
		accepted = append(accepted, prior[i].Clone())
		res.CarriedForward++
	}

	res.Teams = accepted
	return res
}

// TrimHistory returns copies of teams in which every team with a last-known
// point keeps only the history strictly after the first exact match of that
// point. Teams without a match keep their full history. teams is not
// modified.
func TrimHistory(teams []models.Team, lastKnown map[int]models.Coordinate) []models.Team {
	out := make([]models.Team, len(teams))
	for i := range teams {
		t := teams[i]
		point, ok := lastKnown[t.ID]
		if !ok {
			out[i] = t.Clone()
			continue
		}
		history := t.PositionHistory
		for j, c := range history {
			if c.Lat == point.Lat && c.Lng == point.Lng {
				history = history[j+1:]
				break
			}
		}
		t.PositionHistory = append(make([]models.Coordinate, 0, len(history)), history...)
		out[i] = t
	}
	return out
}
