// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

package api

// Client-facing error messages. The first three are part of the polling
// contract and are matched verbatim by the web client.
const (
	msgUpstreamDegraded = "Error connecting to external API. Showing cached data."
	msgNoTeamData       = "No team data available"
	detailNoTeamData    = "Both external API and local JSON file are empty or inaccessible."

	msgPersistFailed    = "Snapshot could not be persisted"
	msgPartialReference = "Some records failed validation"
	msgInternalError    = "Internal server error"
)

// Error codes used in the APIResponse envelope.
const (
	codeValidation = "VALIDATION_ERROR"
	codeInternal   = "INTERNAL_ERROR"
	codeNotReady   = "NOT_READY"
)
