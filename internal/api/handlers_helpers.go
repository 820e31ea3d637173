// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

package api

import (
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/goccy/go-json"

	"github.com/tomtom215/trailwatch/internal/logging"
	"github.com/tomtom215/trailwatch/internal/models"
	"github.com/tomtom215/trailwatch/internal/validation"
)

// respondJSON sends v as a JSON response with proper headers. Team data
// changes every cycle, so responses are never cached by intermediaries.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("ETag", generateETag(data))

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// generateETag returns a strong ETag for a response body.
func generateETag(data []byte) string {
	return `"` + strconv.FormatUint(xxhash.Sum64(data), 16) + `"`
}

// respondData sends data in the success envelope.
func respondData(w http.ResponseWriter, status int, statusText string, data interface{}) {
	respondJSON(w, status, &models.APIResponse{
		Status:   statusText,
		Data:     data,
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// respondError sends an error response in the APIResponse envelope
func respondError(w http.ResponseWriter, status int, code, message string, err error) {
	if err != nil {
		logging.Error().
			Str("code", logging.SanitizeValue(code)).
			Str("error", logging.SanitizeError(err)).
			Msg("API Error")
	}

	respondAPIError(w, status, &models.APIError{Code: code, Message: message})
}

func respondAPIError(w http.ResponseWriter, status int, apiErr *models.APIError) {
	respondJSON(w, status, &models.APIResponse{
		Status:   "error",
		Metadata: models.Metadata{Timestamp: time.Now()},
		Error:    apiErr,
	})
}

// validateRequest validates a struct using go-playground/validator.
// Returns nil if validation passes, or a models.APIError with the
// VALIDATION_ERROR code if it fails.
func validateRequest(v interface{}) *models.APIError {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return nil
	}

	apiErr := validationErr.ToAPIError()
	return &models.APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}
}

// parseCommaSeparated parses a comma-separated string into a slice
func parseCommaSeparated(value string) []string {
	if value == "" {
		return nil
	}

	var result []string
	parts := strings.Split(value, ",")
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// parseLastPoints reads lastPoint[<id>]=<lat>,<lng> query parameters.
// Entries with a non-integer id or a value that is not two finite numbers
// are ignored. When a key repeats, the first value is used.
func parseLastPoints(q url.Values) map[int]models.Coordinate {
	var points map[int]models.Coordinate
	for key, values := range q {
		if !strings.HasPrefix(key, "lastPoint[") || !strings.HasSuffix(key, "]") || len(values) == 0 {
			continue
		}
		id, err := strconv.Atoi(key[len("lastPoint[") : len(key)-1])
		if err != nil {
			continue
		}
		point, ok := parseLatLng(values[0])
		if !ok {
			continue
		}
		if points == nil {
			points = make(map[int]models.Coordinate)
		}
		points[id] = point
	}
	return points
}

func parseLatLng(s string) (models.Coordinate, bool) {
	latStr, lngStr, found := strings.Cut(s, ",")
	if !found {
		return models.Coordinate{}, false
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return models.Coordinate{}, false
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngStr), 64)
	if err != nil || !finite(lat) || !finite(lng) {
		return models.Coordinate{}, false
	}
	return models.Coordinate{Lat: lat, Lng: lng}, true
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
