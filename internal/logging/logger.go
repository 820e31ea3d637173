// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Config selects how the process logs. The zero value logs JSON at info
// level to stderr.
type Config struct {
	// Level is one of trace, debug, info, warn, error, fatal, panic or
	// disabled. Unknown values fall back to info.
	Level string

	// Format is json or console.
	Format string

	// Caller adds file:line to every line.
	Caller bool

	// Service and Version are stamped on every line when set, so lines from
	// the server and from trailwatchctl can be told apart in one sink.
	Service string
	Version string

	// Output defaults to os.Stderr.
	Output io.Writer
}

// root is swapped whole on Init; readers never see a half-built logger.
var root atomic.Pointer[zerolog.Logger]

//nolint:gochecknoinits // logging must work before main calls Init
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.TimestampFieldName = "time"
	zerolog.MessageFieldName = "message"
	Init(Config{})
}

// Init replaces the process logger. It may be called again, for example once
// configuration has been loaded.
func Init(cfg Config) {
	zerolog.SetGlobalLevel(parseLevel(cfg.Level))
	l := build(cfg)
	root.Store(&l)
}

func build(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	zc := zerolog.New(out).With().Timestamp()
	if cfg.Service != "" {
		zc = zc.Str("service", cfg.Service)
	}
	if cfg.Version != "" {
		zc = zc.Str("version", cfg.Version)
	}
	if cfg.Caller {
		zc = zc.Caller()
	}
	return zc.Logger()
}

// parseLevel accepts zerolog's level names plus "warning".
func parseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

func current() *zerolog.Logger {
	return root.Load()
}

// Debug starts a debug-level line on the process logger.
func Debug() *zerolog.Event { return current().Debug() }

// Info starts an info-level line.
//
//	logging.Info().Int("teams", n).Msg("Snapshot loaded")
func Info() *zerolog.Event { return current().Info() }

// Warn starts a warn-level line.
func Warn() *zerolog.Event { return current().Warn() }

// Error starts an error-level line.
func Error() *zerolog.Event { return current().Error() }

// Fatal starts a fatal-level line. os.Exit(1) runs after it is written.
func Fatal() *zerolog.Event { return current().Fatal() }
