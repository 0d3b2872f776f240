// Package store provides the small file-backed JSON stores behind the
// engine's process-wide state: balance snapshots, the processed-document
// registry, and the enrichment cache file. All writes go through a
// crash-safe swap protocol; the stores assume a single concurrent writer.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// SaveJSON persists v at path using the swap protocol: an existing file is
// renamed aside before the new content is written, the backup is removed
// only after the write succeeded, and on a failed write the backup is moved
// back so the previous good state survives a crash mid-write.
func SaveJSON(path string, v any) error {
	backup := path + ".backup"

	hadPrevious := false
	if _, err := os.Stat(path); err == nil {
		if err := os.Rename(path, backup); err != nil {
			return fmt.Errorf("store: moving %s aside: %w", path, err)
		}
		hadPrevious = true
	}

	if err := writeJSON(path, v); err != nil {
		if hadPrevious {
			if restoreErr := os.Rename(backup, path); restoreErr != nil {
				return errors.Join(err, fmt.Errorf("store: restoring backup: %w", restoreErr))
			}
		}
		return err
	}

	if hadPrevious {
		os.Remove(backup)
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("store: marshaling %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("store: writing %s: %w", path, err)
	}
	return nil
}

// LoadJSON reads path into v. A missing file is not an error; v is left
// untouched so callers start from their zero state.
func LoadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("store: reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("store: decoding %s: %w", path, err)
	}
	return nil
}
