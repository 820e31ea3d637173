// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

// Package models defines the data structures shared across Trailwatch.
//
// # Domain Types
//
//   - Team: a tracked participant with its append-only position history
//   - Snapshot: the persisted set of teams plus the ETag of the document it came from
//   - Route, Checkpoint: static reference geometry, read-only
//
// # I/O Types
//
// RawTeam and RawCoordinate mirror the upstream JSON shape with pointer
// fields so that the validator can distinguish a missing value from a zero.
// Upstream data only becomes a Team after validation:
//
//	if validation.IsValidTeam(raw) {
//	    team := raw.Team()
//	}
//
// # Response Types
//
// TeamsResponse, RoutesResponse and CheckpointsErrorResponse carry the
// polling contract ({teams, error?}). APIResponse is the generic envelope for
// the remaining endpoints.
//
// # Wire Format
//
// Status values contain spaces ("not started", "in progress") and a team's
// history is serialized as routeCoordinates. Both match the data files the
// service reads and writes.
package models
