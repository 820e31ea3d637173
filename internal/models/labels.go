// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

package models

var routeLabels = map[RouteType]EnumLabel{
	RouteFamily: {Value: string(RouteFamily), DisplayName: "Familiar", Color: "teal"},
	RouteShort:  {Value: string(RouteShort), DisplayName: "Corta", Color: "gold"},
	RouteLong:   {Value: string(RouteLong), DisplayName: "Larga", Color: "violet"},
}

var statusLabels = map[TeamStatus]EnumLabel{
	StatusNotStarted: {Value: string(StatusNotStarted), DisplayName: "No iniciado", Color: "inherit", Icon: "🔵"},
	StatusInProgress: {Value: string(StatusInProgress), DisplayName: "En progreso", Color: "green", Icon: "🟢"},
	StatusWarning:    {Value: string(StatusWarning), DisplayName: "Advertencia", Color: "orange", Icon: "🟠"},
	StatusDangerous:  {Value: string(StatusDangerous), DisplayName: "Peligro", Color: "red", Icon: "🔴"},
	StatusFinished:   {Value: string(StatusFinished), DisplayName: "Finalizado", Color: "inherit", Icon: "✅"},
}

// Label returns the presentation label for a route type. Unknown types fall
// back to their raw value in blue.
func (r RouteType) Label() EnumLabel {
	if l, ok := routeLabels[r]; ok {
		return l
	}
	return EnumLabel{Value: string(r), DisplayName: string(r), Color: "blue"}
}

// Label returns the presentation label for a status.
func (s TeamStatus) Label() EnumLabel {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return EnumLabel{Value: string(s), DisplayName: string(s), Color: "inherit", Icon: "⚪"}
}

// BuildMeta returns labels for every route type and status in canonical order.
func BuildMeta() Meta {
	m := Meta{
		Routes:   make([]EnumLabel, 0, len(RouteTypes)),
		Statuses: make([]EnumLabel, 0, len(TeamStatuses)),
	}
	for _, r := range RouteTypes {
		m.Routes = append(m.Routes, r.Label())
	}
	for _, s := range TeamStatuses {
		m.Statuses = append(m.Statuses, s.Label())
	}
	return m
}
