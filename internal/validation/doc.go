// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

// Package validation provides struct validation using go-playground/validator v10.
//
// The package wraps a thread-safe singleton validator and translates field
// errors into the API's VALIDATION_ERROR format. It is also the single gate
// every team record passes before it can enter a snapshot.
//
// # Record Rules
//
// A team record is valid iff:
//   - id, dorsal and name are present (zero values are allowed)
//   - route is one of family, long, short
//   - status is one of "not started", "in progress", warning, dangerous, finished
//   - routeCoordinates holds at least one coordinate
//   - every coordinate has lat in [-90, 90] and lng in [-180, 180]
//
// Upstream records are decoded into models.RawTeam, whose pointer fields let
// "missing" be told apart from "zero". A record whose JSON could not be
// decoded at all carries models.RawTeam.Undecodable and fails with tag
// "decode".
//
// # Field Names
//
// Errors report JSON paths rather than Go field names:
//
//	routeCoordinates[1].lat must be less than or equal to 90
//	dorsal is required
//	route must be one of: family long short
//
// # API Error Integration
//
// ToAPIError produces errors matching the application format:
//
//	{
//	    "code": "VALIDATION_ERROR",
//	    "message": "route[0] must be one of: family long short",
//	    "details": {"field": "route[0]", "tag": "oneof", "value": "medium"}
//	}
//
// # Thread Safety
//
// The singleton validator is initialized once and safe for concurrent use.
// It caches struct reflection information per type.
//
// # See Also
//
//   - internal/sync: Reconcile drops records that fail ValidateTeam
//   - internal/api: Filter and reference validation
//   - github.com/go-playground/validator/v10: Underlying library
package validation
