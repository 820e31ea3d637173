// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

package models

// RawCoordinate is the upstream shape of a coordinate. Pointer fields let the
// validator tell a missing value apart from zero.
type RawCoordinate struct {
	Lat *float64 `json:"lat" validate:"required,gte=-90,lte=90"`
	Lng *float64 `json:"lng" validate:"required,gte=-180,lte=180"`
}

// RawTeam is a team record as received from the upstream feed, before
// validation. Only validated records are converted with Team.
//
// Undecodable is set by the fetcher when the element could not be decoded
// into this shape at all (wrong JSON types, not an object). Such records
// always fail validation.
type RawTeam struct {
	ID              *int            `json:"id" validate:"required"`
	Dorsal          *int            `json:"dorsal" validate:"required"`
	Name            *string         `json:"name" validate:"required"`
	Route           *RouteType      `json:"route" validate:"required,oneof=family long short"`
	Status          *TeamStatus     `json:"status" validate:"required,oneof='not started' 'in progress' warning dangerous finished"`
	PositionHistory []RawCoordinate `json:"routeCoordinates" validate:"required,min=1,dive"`

	Undecodable error `json:"-"`
}

// Team converts a validated raw record into the domain type. The caller must
// have validated r; missing fields are returned as zero values.
func (r *RawTeam) Team() Team {
	t := Team{}
	if r.ID != nil {
		t.ID = *r.ID
	}
	if r.Dorsal != nil {
		t.Dorsal = *r.Dorsal
	}
	if r.Name != nil {
		t.Name = *r.Name
	}
	if r.Route != nil {
		t.Route = *r.Route
	}
	if r.Status != nil {
		t.Status = *r.Status
	}
	t.PositionHistory = make([]Coordinate, 0, len(r.PositionHistory))
	for _, c := range r.PositionHistory {
		var pt Coordinate
		if c.Lat != nil {
			pt.Lat = *c.Lat
		}
		if c.Lng != nil {
			pt.Lng = *c.Lng
		}
		t.PositionHistory = append(t.PositionHistory, pt)
	}
	return t
}

// RawFromTeam builds the raw form of a domain team, used to feed locally
// produced records (simulation) through the same validation gate as upstream
// data.
func RawFromTeam(t *Team) RawTeam {
	id, dorsal, name := t.ID, t.Dorsal, t.Name
	route, status := t.Route, t.Status

	coords := make([]RawCoordinate, len(t.PositionHistory))
	for i := range t.PositionHistory {
		lat, lng := t.PositionHistory[i].Lat, t.PositionHistory[i].Lng
		coords[i] = RawCoordinate{Lat: &lat, Lng: &lng}
	}

	return RawTeam{
		ID:              &id,
		Dorsal:          &dorsal,
		Name:            &name,
		Route:           &route,
		Status:          &status,
		PositionHistory: coords,
	}
}

// RawTeamsFrom converts a slice of domain teams to raw records.
func RawTeamsFrom(teams []Team) []RawTeam {
	out := make([]RawTeam, len(teams))
	for i := range teams {
		out[i] = RawFromTeam(&teams[i])
	}
	return out
}
