// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

package validation

import (
	"github.com/tomtom215/trailwatch/internal/models"
)

// ValidateTeam is the single validation gate for team records entering a
// snapshot. A record is valid iff id and dorsal are present integers, name is
// present, route and status are known enum members, and the position history
// is non-empty with every coordinate in bounds.
//
// Returns nil for a valid record, or *RequestValidationError listing every
// failed field.
func ValidateTeam(raw *models.RawTeam) *RequestValidationError {
	if raw.Undecodable != nil {
		return &RequestValidationError{
			errors: []ValidationError{{
				field:   "record",
				tag:     "decode",
				message: "record could not be decoded: " + raw.Undecodable.Error(),
			}},
		}
	}
	return ValidateStruct(raw)
}

// IsValidTeam reports whether raw passes ValidateTeam.
func IsValidTeam(raw *models.RawTeam) bool {
	return ValidateTeam(raw) == nil
}

// ValidateRoute checks a route's type and every coordinate's bounds.
func ValidateRoute(r *models.Route) *RequestValidationError {
	return ValidateStruct(r)
}

// ValidateCheckpoint checks a checkpoint's type and coordinate bounds.
func ValidateCheckpoint(c *models.Checkpoint) *RequestValidationError {
	return ValidateStruct(c)
}

// CheckRoute is ValidateRoute with a plain error result, for use as a
// reference reader validate func.
func CheckRoute(r *models.Route) error {
	if verr := ValidateRoute(r); verr != nil {
		return verr
	}
	return nil
}

// CheckCheckpoint is ValidateCheckpoint with a plain error result.
func CheckCheckpoint(c *models.Checkpoint) error {
	if verr := ValidateCheckpoint(c); verr != nil {
		return verr
	}
	return nil
}
