// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

package store

import (
	"fmt"
	"io"

	"github.com/spf13/afero"

	"github.com/tomtom215/trailwatch/internal/config"
)

// Open returns the snapshot store selected by cfg.Backend. The closer
// releases the store; it is a no-op for the file backend. fs is only used by
// the file backend.
func Open(cfg config.StoreConfig, fs afero.Fs) (SnapshotStore, io.Closer, error) {
	switch cfg.Backend {
	case config.StoreBackendFile, "":
		return NewFileStore(fs, cfg.DataDir), nopCloser{}, nil
	case config.StoreBackendBadger:
		bs, err := OpenBadger(BadgerConfig{
			Path:         cfg.BadgerPath,
			HistoryLimit: cfg.HistoryLimit,
		})
		if err != nil {
			return nil, nil, err
		}
		return bs, bs, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
