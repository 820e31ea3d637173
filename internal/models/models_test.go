// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

package models

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func TestRouteType_Valid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		route RouteType
		want  bool
	}{
		{RouteFamily, true},
		{RouteLong, true},
		{RouteShort, true},
		{"medium", false},
		{"", false},
		{"Family", false},
	}

	for _, tt := range tests {
		if got := tt.route.Valid(); got != tt.want {
			t.Errorf("RouteType(%q).Valid() = %v, want %v", tt.route, got, tt.want)
		}
	}
}

func TestTeamStatus_Valid(t *testing.T) {
	t.Parallel()

	for _, s := range TeamStatuses {
		if !s.Valid() {
			t.Errorf("TeamStatus(%q).Valid() = false, want true", s)
		}
	}
	for _, s := range []TeamStatus{"not_started", "in_progress", "done", ""} {
		if s.Valid() {
			t.Errorf("TeamStatus(%q).Valid() = true, want false", s)
		}
	}
}

func TestTeam_WireFormat(t *testing.T) {
	t.Parallel()

	team := Team{
		ID:              1,
		Dorsal:          100,
		Name:            "Alejandro",
		Route:           RouteFamily,
		Status:          StatusNotStarted,
		PositionHistory: []Coordinate{{Lat: 37.429731, Lng: -1.523433}},
	}

	data, err := json.Marshal(team)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	for _, want := range []string{`"routeCoordinates":[`, `"status":"not started"`, `"lat":37.429731`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("Marshal() = %s, missing %s", data, want)
		}
	}
}

func TestTeam_CloneIsDeep(t *testing.T) {
	t.Parallel()

	orig := Team{ID: 1, PositionHistory: []Coordinate{{Lat: 1, Lng: 1}}}
	c := orig.Clone()
	c.PositionHistory[0].Lat = 2
	c.PositionHistory = append(c.PositionHistory, Coordinate{Lat: 3})

	if orig.PositionHistory[0].Lat != 1 {
		t.Errorf("Clone() shares backing array with original")
	}
	if len(orig.PositionHistory) != 1 {
		t.Errorf("original history length = %d, want 1", len(orig.PositionHistory))
	}
}

func TestTeam_LastPosition(t *testing.T) {
	t.Parallel()

	var empty Team
	if _, ok := empty.LastPosition(); ok {
		t.Error("LastPosition() on empty history returned ok")
	}

	team := Team{PositionHistory: []Coordinate{{Lat: 1, Lng: 2}, {Lat: 3, Lng: 4}}}
	got, ok := team.LastPosition()
	if !ok || got != (Coordinate{Lat: 3, Lng: 4}) {
		t.Errorf("LastPosition() = %v, %v; want {3 4}, true", got, ok)
	}
}

func TestRawTeam_ConversionPreservesFields(t *testing.T) {
	t.Parallel()

	team := Team{
		ID:     7,
		Dorsal: 13,
		Name:   "Nombre Largo",
		Route:  RouteShort,
		Status: StatusWarning,
		PositionHistory: []Coordinate{
			{Lat: 37.429731, Lng: -1.523433},
			{Lat: 37.4302, Lng: -1.5242},
		},
	}

	raw := RawFromTeam(&team)
	back := raw.Team()

	if back.ID != team.ID || back.Dorsal != team.Dorsal || back.Name != team.Name {
		t.Errorf("identity fields changed: got %+v", back)
	}
	if back.Route != team.Route || back.Status != team.Status {
		t.Errorf("enum fields changed: got %s/%s", back.Route, back.Status)
	}
	if len(back.PositionHistory) != 2 || back.PositionHistory[1] != team.PositionHistory[1] {
		t.Errorf("history changed: got %v", back.PositionHistory)
	}

	// Raw form must not alias the source team.
	*raw.PositionHistory[0].Lat = 0
	if team.PositionHistory[0].Lat == 0 {
		t.Error("RawFromTeam aliases the source history")
	}
}

func TestRawTeam_DecodeKeepsMissingFieldsNil(t *testing.T) {
	t.Parallel()

	var raw RawTeam
	if err := json.Unmarshal([]byte(`{"id":1,"name":"x","routeCoordinates":[{"lat":1}]}`), &raw); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if raw.Dorsal != nil {
		t.Error("missing dorsal decoded as non-nil")
	}
	if raw.PositionHistory[0].Lng != nil {
		t.Error("missing lng decoded as non-nil")
	}
	if raw.ID == nil || *raw.ID != 1 {
		t.Error("id not decoded")
	}
}

func TestBuildMeta(t *testing.T) {
	t.Parallel()

	m := BuildMeta()
	if len(m.Routes) != len(RouteTypes) || len(m.Statuses) != len(TeamStatuses) {
		t.Fatalf("BuildMeta() sizes = %d/%d", len(m.Routes), len(m.Statuses))
	}
	if m.Routes[0].DisplayName != "Familiar" || m.Routes[0].Color != "teal" {
		t.Errorf("family label = %+v", m.Routes[0])
	}
	if m.Statuses[3].Color != "red" {
		t.Errorf("dangerous color = %q, want red", m.Statuses[3].Color)
	}
	if got := RouteType("medium").Label(); got.Color != "blue" || got.DisplayName != "medium" {
		t.Errorf("unknown route label = %+v", got)
	}
}
