// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

package sync

import (
	"testing"

	"github.com/tomtom215/trailwatch/internal/models"
)

// team builds a valid team whose history is the given lat,lng pairs.
func team(id int, name string, coords ...float64) models.Team {
	t := models.Team{
		ID:     id,
		Dorsal: 100 + id,
		Name:   name,
		Route:  models.RouteShort,
		Status: models.StatusInProgress,
	}
	for i := 0; i+1 < len(coords); i += 2 {
		t.PositionHistory = append(t.PositionHistory, models.Coordinate{Lat: coords[i], Lng: coords[i+1]})
	}
	return t
}

// raw converts teams to the upstream record shape.
func raw(teams ...models.Team) []models.RawTeam {
	return models.RawTeamsFrom(teams)
}

// checkTeamIDs fails unless teams carry exactly the given ids in order.
func checkTeamIDs(t *testing.T, teams []models.Team, want ...int) {
	t.Helper()
	if len(teams) != len(want) {
		t.Fatalf("got %d teams %v, want ids %v", len(teams), teamIDs(teams), want)
	}
	for i := range want {
		if teams[i].ID != want[i] {
			t.Fatalf("team ids = %v, want %v", teamIDs(teams), want)
		}
	}
}

func teamIDs(teams []models.Team) []int {
	ids := make([]int, len(teams))
	for i := range teams {
		ids[i] = teams[i].ID
	}
	return ids
}
