// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

package models

// Route is the static geometry of one course.
type Route struct {
	ID          int          `json:"id"`
	Type        RouteType    `json:"type" validate:"required,oneof=family long short"`
	Coordinates []Coordinate `json:"coordinates" validate:"required,min=1,dive"`
}

// Checkpoint is a named point of interest along a route.
type Checkpoint struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Type        RouteType  `json:"type" validate:"required,oneof=family long short"`
	Group       string     `json:"group,omitempty"`
	Coordinates Coordinate `json:"coordinates"`
}
