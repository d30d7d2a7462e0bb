// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sidecar reads and writes the per-document JSON file that records
// detected page boundaries and manual overrides.
//
// A record with edited=1 is authoritative. Automatic detection never writes
// over it; callers skip Write when they used a manual range.
package sidecar

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/prospectus-splitter/pkg/types"
)

// Read loads the sidecar at path. A missing file yields an empty sidecar.
func Read(path string) (types.Sidecar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return types.Sidecar{}, nil
		}
		return nil, fmt.Errorf("reading sidecar: %w", err)
	}
	sc := types.Sidecar{}
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parsing sidecar %s: %w", path, err)
	}
	return sc, nil
}

// Write merges 1-based boundaries for t into the sidecar at path and
// persists the whole mapping. The record's edited flag is preserved. For
// cover_underwriter, start and end are stored as cover and underwriter.
func Write(path string, t types.ExtractionType, start, end int) error {
	sc, err := Read(path)
	if err != nil {
		return err
	}

	rec := types.OverrideRecord{Edited: sc.Get(t).Edited}
	if t == types.CoverUnderwriter {
		rec.Cover = types.IntPtr(start)
		rec.Underwriter = types.IntPtr(end)
	} else {
		rec.PageStart = types.IntPtr(start)
		rec.PageEnd = types.IntPtr(end)
	}
	sc[t] = rec

	return save(path, sc)
}

// save writes sc as indented JSON through a temporary file.
func save(path string, sc types.Sidecar) error {
	data, err := json.MarshalIndent(sc, "", "    ")
	if err != nil {
		return fmt.Errorf("marshaling sidecar: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".sidecar-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing sidecar: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// ShouldResplit decides whether a type is processed:
//
//	edited  output exists  action
//	0       yes            skip
//	0       no             automatic detection
//	1       any            rerun with the manual boundaries
//
// Edited values other than 1 count as 0.
func ShouldResplit(edited int, outputExists bool) bool {
	if edited == 1 {
		return true
	}
	return !outputExists
}
