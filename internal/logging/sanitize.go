// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

package logging

import (
	"strings"
)

// maxValueLen bounds untrusted values written to logs.
const maxValueLen = 200

// SanitizeValue prepares an untrusted string (query parameter, upstream
// payload excerpt, error text) for logging: newlines and other control
// characters are replaced so a value cannot forge log lines, and long values
// are truncated.
func SanitizeValue(value string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return ' '
		}
		return r
	}, value)
	return truncateString(cleaned, maxValueLen)
}

// SanitizeError is SanitizeValue applied to err's message. A nil error
// yields "".
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return SanitizeValue(err.Error())
}

// truncateString truncates a string to a maximum length.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
