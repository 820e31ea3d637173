// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

package store

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/afero"

	"github.com/tomtom215/trailwatch/internal/models"
)

func checkpointReader(t *testing.T, content string) *ReferenceReader[models.Checkpoint] {
	t.Helper()
	fs := afero.NewMemMapFs()
	if content != "" {
		if err := afero.WriteFile(fs, "/data/"+CheckpointsFile, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return NewReferenceReader(fs, "/data", CheckpointsFile, func(c *models.Checkpoint) error {
		if !c.Type.Valid() {
			return errors.New("unknown route type")
		}
		return nil
	})
}

func TestReferenceReader_Read(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		content     string
		wantErr     error
		wantRecords int
		wantDropped int
	}{
		{
			name:    "missing file",
			wantErr: ErrReferenceMissing,
		},
		{
			name:    "whitespace only",
			content: "  \n",
			wantErr: ErrReferenceMissing,
		},
		{
			name:    "object instead of array",
			content: `{"id":1}`,
			wantErr: ErrReferenceFormat,
		},
		{
			name:    "broken array",
			content: `[{"id":1,`,
			wantErr: ErrReferenceFormat,
		},
		{
			name:    "empty array",
			content: `[]`,
			wantErr: ErrReferenceMissing,
		},
		{
			name:        "all valid",
			content:     `[{"id":1,"name":"Salida","type":"long","coordinates":{"lat":37.4,"lng":-1.5}},{"id":2,"name":"Meta","type":"short","coordinates":{"lat":37.5,"lng":-1.6}}]`,
			wantRecords: 2,
		},
		{
			name:        "invalid records dropped",
			content:     `[{"id":1,"name":"Salida","type":"long","coordinates":{"lat":37.4,"lng":-1.5}},{"id":"two"},{"id":3,"type":"medium"}]`,
			wantRecords: 1,
			wantDropped: 2,
		},
		{
			name:        "only invalid records",
			content:     `[{"id":3,"type":"medium"}]`,
			wantErr:     ErrReferenceMissing,
			wantDropped: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := checkpointReader(t, tt.content)

			res, err := r.Read(context.Background())
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Read() error = %v, want %v", err, tt.wantErr)
				}
			} else if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if len(res.Records) != tt.wantRecords {
				t.Errorf("records = %d, want %d", len(res.Records), tt.wantRecords)
			}
			if res.Dropped != tt.wantDropped {
				t.Errorf("dropped = %d, want %d", res.Dropped, tt.wantDropped)
			}
		})
	}
}

func TestReferenceReader_NilValidate(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, "/data/"+RoutesFile, []byte(`[{"id":1,"type":"anything","coordinates":[]}]`), 0o644)

	r := NewReferenceReader[models.Route](fs, "/data", RoutesFile, nil)
	res, err := r.Read(context.Background())
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(res.Records) != 1 || res.Records[0].Type != "anything" {
		t.Errorf("records = %+v", res.Records)
	}
	if r.Path() != "/data/"+RoutesFile {
		t.Errorf("Path() = %q", r.Path())
	}
}

func TestReferenceReader_ReadRaw(t *testing.T) {
	t.Parallel()
	r := checkpointReader(t, `[{"id":1}, 2, "three"]`)

	elems, err := r.ReadRaw()
	if err != nil {
		t.Fatalf("ReadRaw() error = %v", err)
	}
	if len(elems) != 3 {
		t.Fatalf("len = %d, want 3", len(elems))
	}
	if string(elems[1]) != "2" {
		t.Errorf("elems[1] = %s, want 2", elems[1])
	}
}
