// Package storejson is the file persistence layer: JSON documents written
// with a backup-then-overwrite dual write and read with restore-from-backup
// corruption recovery.
//
// Write order matters: the backup is written first, so if the main file
// corrupts the backup holds the previous good state, and if the backup
// write itself fails the main file is untouched.
package storejson

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrCorrupted means neither the main file nor its backup held valid JSON.
var ErrCorrupted = errors.New("corrupted data")

// BackupSuffix is inserted before the .json extension for backup files.
const BackupSuffix = "_backup"

// BackupPath returns the backup file path for a JSON file path.
func BackupPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + BackupSuffix + ext
}

// Read unmarshals the JSON document at path into v. If the main file fails
// to parse, the backup is restored over it and read once more; only when
// both copies are bad does Read fail with ErrCorrupted. A missing file is
// reported as os.ErrNotExist, not corruption.
func Read(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err == nil {
		return nil
	}

	backup, err := os.ReadFile(BackupPath(path))
	if err != nil {
		return fmt.Errorf("%w: %s (no readable backup)", ErrCorrupted, path)
	}
	if err := json.Unmarshal(backup, v); err != nil {
		return fmt.Errorf("%w: %s (backup also unreadable)", ErrCorrupted, path)
	}
	if err := writeAtomic(path, backup, 0); err != nil {
		return fmt.Errorf("restore %s from backup: %w", path, err)
	}
	return nil
}

// Write marshals v and writes it to the backup path and then the main
// path, each atomically.
func Write(path string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	if err := writeAtomic(BackupPath(path), data, 0); err != nil {
		return fmt.Errorf("write backup for %s: %w", path, err)
	}
	if err := writeAtomic(path, data, 0); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// writeAtomic writes data to path via a temp file in the same directory and
// a rename, so a crash mid-write never leaves a torn file.
//
// perm 0 preserves the existing file's mode, falling back to 0644.
func writeAtomic(path string, data []byte, perm os.FileMode) error {
	if perm == 0 {
		if st, err := os.Stat(path); err == nil {
			perm = st.Mode()
		} else {
			perm = 0o644
		}
	}

	dir := filepath.Dir(path)
	base := filepath.Base(path)

	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	tmpPath := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpPath)
		}
	}()

	// Best-effort; some filesystems may not support chmod here.
	_ = tmp.Chmod(perm)

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	// On Windows, renaming over an existing file fails. Remove first (not atomic).
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(path)
		if err2 := os.Rename(tmpPath, path); err2 != nil {
			return fmt.Errorf("rename temp file: %w", err)
		}
	}

	committed = true
	return nil
}
