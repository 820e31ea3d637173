// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

// Package seed generates demo data: the canonical teams, random-walk routes
// and checkpoints derived from those routes.
package seed

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/spf13/afero"

	"github.com/tomtom215/trailwatch/internal/models"
)

// Base is the event's start coordinate. Every route begins here.
var Base = models.Coordinate{Lat: 37.429731, Lng: -1.523433}

// ErrExists is returned by WriteReference when the file exists and force is
// not set.
var ErrExists = errors.New("file already exists")

// routeSpec controls one generated route.
type routeSpec struct {
	Type        models.RouteType
	Points      int
	MaxDistance float64
}

var routeSpecs = []routeSpec{
	{Type: models.RouteFamily, Points: 5, MaxDistance: 0.005},
	{Type: models.RouteShort, Points: 10, MaxDistance: 0.01},
	{Type: models.RouteLong, Points: 15, MaxDistance: 0.02},
}

// Teams returns the five canonical teams, each with a short history
// starting at Base.
func Teams() []models.Team {
	return []models.Team{
		{
			ID: 1, Dorsal: 100, Name: "Alejandro",
			Route: models.RouteFamily, Status: models.StatusNotStarted,
			PositionHistory: []models.Coordinate{Base, {Lat: 37.43, Lng: -1.524}, {Lat: 37.431, Lng: -1.525}},
		},
		{
			ID: 2, Dorsal: 102, Name: "Antonio",
			Route: models.RouteLong, Status: models.StatusInProgress,
			PositionHistory: []models.Coordinate{Base, {Lat: 37.4305, Lng: -1.5245}, {Lat: 37.432, Lng: -1.526}},
		},
		{
			ID: 3, Dorsal: 13, Name: "Nombre Largo",
			Route: models.RouteShort, Status: models.StatusWarning,
			PositionHistory: []models.Coordinate{Base, {Lat: 37.4302, Lng: -1.5242}, {Lat: 37.4315, Lng: -1.5255}},
		},
		{
			ID: 4, Dorsal: 604, Name: "David",
			Route: models.RouteFamily, Status: models.StatusFinished,
			PositionHistory: []models.Coordinate{Base, {Lat: 37.4299, Lng: -1.5239}, {Lat: 37.4305, Lng: -1.5245}},
		},
		{
			ID: 5, Dorsal: 105, Name: "Enrique",
			Route: models.RouteLong, Status: models.StatusDangerous,
			PositionHistory: []models.Coordinate{Base, {Lat: 37.431, Lng: -1.525}, {Lat: 37.433, Lng: -1.527}},
		},
	}
}

// RouteID returns the id of a route type: its 1-based position in
// models.RouteTypes.
func RouteID(t models.RouteType) int {
	for i, rt := range models.RouteTypes {
		if rt == t {
			return i + 1
		}
	}
	return 0
}

// Routes generates the family, short and long routes. Each point is the
// previous one moved by up to ±MaxDistance per axis. A nil rng uses a
// clock-seeded source.
func Routes(rng *rand.Rand) []models.Route {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63())) //nolint:gosec // demo data
	}
	routes := make([]models.Route, 0, len(routeSpecs))
	for _, spec := range routeSpecs {
		coords := make([]models.Coordinate, 1, spec.Points)
		coords[0] = Base
		for i := 1; i < spec.Points; i++ {
			prev := coords[i-1]
			coords = append(coords, models.Coordinate{
				Lat: prev.Lat + (rng.Float64()-0.5)*spec.MaxDistance*2,
				Lng: prev.Lng + (rng.Float64()-0.5)*spec.MaxDistance*2,
			})
		}
		routes = append(routes, models.Route{
			ID:          RouteID(spec.Type),
			Type:        spec.Type,
			Coordinates: coords,
		})
	}
	return routes
}

// Checkpoints returns two checkpoints per route: the start/finish at its
// first point and a midpoint. Routes without coordinates are skipped.
func Checkpoints(routes []models.Route) []models.Checkpoint {
	var cps []models.Checkpoint
	for _, r := range routes {
		if len(r.Coordinates) == 0 {
			continue
		}
		label := r.Type.Label().DisplayName
		cps = append(cps,
			models.Checkpoint{
				ID:          len(cps) + 1,
				Name:        "Salida / Meta (" + label + ")",
				Type:        r.Type,
				Group:       "start",
				Coordinates: r.Coordinates[0],
			},
			models.Checkpoint{
				ID:          len(cps) + 2,
				Name:        "Punto medio (" + label + ")",
				Type:        r.Type,
				Group:       "midpoint",
				Coordinates: r.Coordinates[len(r.Coordinates)/2],
			},
		)
	}
	return cps
}

// WriteReference writes v as an indented JSON array to <dataDir>/<file>.
// An existing file is only replaced when force is set.
func WriteReference(fs afero.Fs, dataDir, file string, v interface{}, force bool) error {
	path := filepath.Join(dataDir, file)
	if !force {
		if _, err := fs.Stat(path); err == nil {
			return fmt.Errorf("%s: %w", path, ErrExists)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("stat %s: %w", path, err)
		}
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", file, err)
	}
	if err := fs.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dataDir, err)
	}
	if err := afero.WriteFile(fs, path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
