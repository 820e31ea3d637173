// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

package models

// RouteType identifies which course a team or route belongs to.
type RouteType string

// Route types. The numeric route IDs generated by the seed tooling follow
// this declaration order (family=1, long=2, short=3).
const (
	RouteFamily RouteType = "family"
	RouteLong   RouteType = "long"
	RouteShort  RouteType = "short"
)

// RouteTypes lists every route type in canonical order.
var RouteTypes = []RouteType{RouteFamily, RouteLong, RouteShort}

// Valid reports whether r is a known route type.
func (r RouteType) Valid() bool {
	switch r {
	case RouteFamily, RouteLong, RouteShort:
		return true
	}
	return false
}

// TeamStatus is the race state of a team. Values are the wire strings used
// by the persisted data files, spaces included.
type TeamStatus string

const (
	StatusNotStarted TeamStatus = "not started"
	StatusInProgress TeamStatus = "in progress"
	StatusWarning    TeamStatus = "warning"
	StatusDangerous  TeamStatus = "dangerous"
	StatusFinished   TeamStatus = "finished"
)

// TeamStatuses lists every status in canonical order.
var TeamStatuses = []TeamStatus{
	StatusNotStarted,
	StatusInProgress,
	StatusWarning,
	StatusDangerous,
	StatusFinished,
}

// Valid reports whether s is a known status.
func (s TeamStatus) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusWarning, StatusDangerous, StatusFinished:
		return true
	}
	return false
}

// Coordinate is a WGS84 point.
type Coordinate struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng float64 `json:"lng" validate:"gte=-180,lte=180"`
}

// Team is one tracked participant as stored in a snapshot.
//
// PositionHistory is append-only across sync cycles: the first element is the
// start position and the last element is the current position. It is never
// empty for a stored team.
type Team struct {
	ID              int          `json:"id"`
	Dorsal          int          `json:"dorsal"`
	Name            string       `json:"name"`
	Route           RouteType    `json:"route"`
	Status          TeamStatus   `json:"status"`
	PositionHistory []Coordinate `json:"routeCoordinates"`
}

// LastPosition returns the current position of the team.
func (t *Team) LastPosition() (Coordinate, bool) {
	if len(t.PositionHistory) == 0 {
		return Coordinate{}, false
	}
	return t.PositionHistory[len(t.PositionHistory)-1], true
}

// Clone returns a deep copy of the team.
func (t *Team) Clone() Team {
	c := *t
	c.PositionHistory = append([]Coordinate(nil), t.PositionHistory...)
	return c
}

// Snapshot is the full persisted set of teams at one point in time.
//
// ETag identifies the persisted document the snapshot was read from. An empty
// ETag means no document existed.
type Snapshot struct {
	Teams []Team
	ETag  string
}

// Len returns the number of teams in the snapshot.
func (s Snapshot) Len() int {
	return len(s.Teams)
}
