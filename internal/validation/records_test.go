// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

package validation

import (
	"errors"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/trailwatch/internal/models"
)

func decodeRaw(t *testing.T, payload string) models.RawTeam {
	t.Helper()
	var raw models.RawTeam
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		t.Fatalf("decode %s: %v", payload, err)
	}
	return raw
}

const validTeamJSON = `{
	"id": 1, "dorsal": 100, "name": "Alejandro", "route": "family", "status": "not started",
	"routeCoordinates": [{"lat": 37.429731, "lng": -1.523433}, {"lat": 37.43, "lng": -1.524}]
}`

func TestValidateTeam(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		payload   string
		wantValid bool
		wantField string
	}{
		{name: "valid record", payload: validTeamJSON, wantValid: true},
		{
			name:      "missing id",
			payload:   `{"dorsal":1,"name":"a","route":"long","status":"finished","routeCoordinates":[{"lat":0,"lng":0}]}`,
			wantField: "id",
		},
		{
			name:      "missing name",
			payload:   `{"id":1,"dorsal":1,"route":"long","status":"finished","routeCoordinates":[{"lat":0,"lng":0}]}`,
			wantField: "name",
		},
		{
			name:      "unknown route",
			payload:   `{"id":1,"dorsal":1,"name":"a","route":"medium","status":"finished","routeCoordinates":[{"lat":0,"lng":0}]}`,
			wantField: "route",
		},
		{
			name:      "unknown status",
			payload:   `{"id":1,"dorsal":1,"name":"a","route":"long","status":"lost","routeCoordinates":[{"lat":0,"lng":0}]}`,
			wantField: "status",
		},
		{
			name:      "empty history",
			payload:   `{"id":1,"dorsal":1,"name":"a","route":"long","status":"warning","routeCoordinates":[]}`,
			wantField: "routeCoordinates",
		},
		{
			name:      "missing history",
			payload:   `{"id":1,"dorsal":1,"name":"a","route":"long","status":"warning"}`,
			wantField: "routeCoordinates",
		},
		{
			name:      "latitude 91",
			payload:   `{"id":1,"dorsal":1,"name":"a","route":"short","status":"dangerous","routeCoordinates":[{"lat":0,"lng":0},{"lat":91,"lng":0}]}`,
			wantField: "routeCoordinates[1].lat",
		},
		{
			name:      "longitude -180.5",
			payload:   `{"id":1,"dorsal":1,"name":"a","route":"short","status":"dangerous","routeCoordinates":[{"lat":0,"lng":-180.5}]}`,
			wantField: "routeCoordinates[0].lng",
		},
		{
			name:      "missing lng",
			payload:   `{"id":1,"dorsal":1,"name":"a","route":"short","status":"dangerous","routeCoordinates":[{"lat":0}]}`,
			wantField: "routeCoordinates[0].lng",
		},
		{
			name:      "boundary values are valid",
			payload:   `{"id":0,"dorsal":0,"name":"","route":"family","status":"in progress","routeCoordinates":[{"lat":-90,"lng":180},{"lat":90,"lng":-180}]}`,
			wantValid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			raw := decodeRaw(t, tt.payload)
			err := ValidateTeam(&raw)

			if tt.wantValid {
				if err != nil {
					t.Fatalf("ValidateTeam() = %v, want valid", err)
				}
				if !IsValidTeam(&raw) {
					t.Error("IsValidTeam() = false for valid record")
				}
				return
			}

			if err == nil {
				t.Fatal("ValidateTeam() = nil, want error")
			}
			if IsValidTeam(&raw) {
				t.Error("IsValidTeam() = true for invalid record")
			}
			found := false
			for _, f := range err.Fields() {
				if f == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("Fields() = %v, want to include %q", err.Fields(), tt.wantField)
			}
		})
	}
}

func TestValidateTeam_Undecodable(t *testing.T) {
	t.Parallel()

	raw := models.RawTeam{Undecodable: errors.New("cannot unmarshal string into int")}
	err := ValidateTeam(&raw)
	if err == nil {
		t.Fatal("ValidateTeam() = nil for undecodable record")
	}
	if got := err.Errors()[0].Tag(); got != "decode" {
		t.Errorf("Tag() = %q, want decode", got)
	}
}

func TestValidateRoute(t *testing.T) {
	t.Parallel()

	valid := models.Route{ID: 1, Type: models.RouteFamily, Coordinates: []models.Coordinate{{Lat: 37.4, Lng: -1.5}}}
	if err := ValidateRoute(&valid); err != nil {
		t.Errorf("ValidateRoute(valid) = %v", err)
	}

	badType := models.Route{ID: 2, Type: "medium", Coordinates: []models.Coordinate{{Lat: 0, Lng: 0}}}
	if err := ValidateRoute(&badType); err == nil {
		t.Error("ValidateRoute(bad type) = nil")
	}

	outOfBounds := models.Route{ID: 3, Type: models.RouteLong, Coordinates: []models.Coordinate{{Lat: 0, Lng: 200}}}
	if err := ValidateRoute(&outOfBounds); err == nil {
		t.Error("ValidateRoute(out of bounds) = nil")
	}

	empty := models.Route{ID: 4, Type: models.RouteShort}
	if err := ValidateRoute(&empty); err == nil {
		t.Error("ValidateRoute(no coordinates) = nil")
	}
}

func TestValidateCheckpoint(t *testing.T) {
	t.Parallel()

	valid := models.Checkpoint{ID: 1, Name: "Salida", Type: models.RouteShort, Coordinates: models.Coordinate{Lat: 37.4, Lng: -1.5}}
	if err := ValidateCheckpoint(&valid); err != nil {
		t.Errorf("ValidateCheckpoint(valid) = %v", err)
	}

	bad := models.Checkpoint{ID: 2, Type: models.RouteShort, Coordinates: models.Coordinate{Lat: -95, Lng: 0}}
	err := ValidateCheckpoint(&bad)
	if err == nil {
		t.Fatal("ValidateCheckpoint(out of bounds) = nil")
	}
	if got := err.Fields()[0]; got != "coordinates.lat" {
		t.Errorf("Fields()[0] = %q, want coordinates.lat", got)
	}
}

func TestCheckRoute_NilOnValid(t *testing.T) {
	t.Parallel()

	valid := models.Route{ID: 1, Type: models.RouteLong, Coordinates: []models.Coordinate{{Lat: 1, Lng: 1}}}
	if err := CheckRoute(&valid); err != nil {
		t.Errorf("CheckRoute(valid) = %v, want untyped nil", err)
	}
	cp := models.Checkpoint{ID: 1, Type: models.RouteLong, Coordinates: models.Coordinate{Lat: 1, Lng: 1}}
	if err := CheckCheckpoint(&cp); err != nil {
		t.Errorf("CheckCheckpoint(valid) = %v, want untyped nil", err)
	}
	cp.Type = "medium"
	if err := CheckCheckpoint(&cp); err == nil {
		t.Error("CheckCheckpoint(bad type) = nil")
	}
}
