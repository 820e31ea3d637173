// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

package store

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"

	"github.com/tomtom215/trailwatch/internal/config"
)

func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("file", func(t *testing.T) {
		st, closer, err := Open(config.StoreConfig{Backend: config.StoreBackendFile, DataDir: "/data"}, afero.NewMemMapFs())
		if err != nil {
			t.Fatal(err)
		}
		if st.Backend() != BackendFile {
			t.Errorf("Backend() = %q", st.Backend())
		}
		if err := closer.Close(); err != nil {
			t.Errorf("Close() = %v", err)
		}
	})

	t.Run("badger", func(t *testing.T) {
		st, closer, err := Open(config.StoreConfig{
			Backend:    config.StoreBackendBadger,
			BadgerPath: filepath.Join(t.TempDir(), "badger"),
		}, nil)
		if err != nil {
			t.Fatal(err)
		}
		if st.Backend() != BackendBadger {
			t.Errorf("Backend() = %q", st.Backend())
		}
		if err := closer.Close(); err != nil {
			t.Errorf("Close() = %v", err)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if _, _, err := Open(config.StoreConfig{Backend: "s3"}, afero.NewMemMapFs()); err == nil {
			t.Error("Open(s3) = nil error")
		}
	})
}
