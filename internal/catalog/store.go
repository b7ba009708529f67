// Package catalog owns the canonical jump catalog: an in-memory map of
// lower-cased jump name to record, loaded from and saved to the JSON data
// file. All reads go through the store, and the only mutation path is
// Replace, which batch approval calls after archiving a snapshot.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gosimple/slug"

	"github.com/jumpedia/jumpedia/internal/model"
	"github.com/jumpedia/jumpedia/internal/storejson"
)

// ErrNotFound means no jump with the given name exists.
var ErrNotFound = errors.New("no jump with that name exists")

// FileName is the catalog data file within the data directory.
const FileName = "jump_data.json"

// SnapshotDir holds pre-commit catalog snapshots, within the data directory.
const SnapshotDir = "snapshots"

// Store is the process-wide catalog. It assumes one command at a time; the
// dispatcher serializes access.
type Store struct {
	dataDir string
	records map[string]*model.Record
}

// Open loads the catalog from the data directory. A missing data file
// yields an empty catalog.
func Open(dataDir string) (*Store, error) {
	s := &Store{dataDir: dataDir, records: map[string]*model.Record{}}
	err := storejson.Read(s.path(), &s.records)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return s, nil
}

func (s *Store) path() string {
	return filepath.Join(s.dataDir, FileName)
}

// Get looks up a jump by name, case-insensitively.
func (s *Store) Get(name string) (*model.Record, bool) {
	r, ok := s.records[keyFor(name)]
	return r, ok
}

// Exists reports whether a jump with the name exists.
func (s *Store) Exists(name string) bool {
	_, ok := s.records[keyFor(name)]
	return ok
}

// Len returns the number of records.
func (s *Store) Len() int { return len(s.records) }

// All returns every record, ordered by catalog key so iteration is
// deterministic.
func (s *Store) All() []*model.Record {
	keys := make([]string, 0, len(s.records))
	for k := range s.records {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]*model.Record, 0, len(keys))
	for _, k := range keys {
		out = append(out, s.records[k])
	}
	return out
}

// Copy returns a deep copy of the catalog map for staged mutation. The
// live catalog is untouched until Replace commits the copy.
func (s *Store) Copy() map[string]*model.Record {
	out := make(map[string]*model.Record, len(s.records))
	for k, r := range s.records {
		out[k] = r.Clone()
	}
	return out
}

// Replace persists the given map and swaps it in as the live catalog.
// This is the single path by which the canonical catalog ever changes.
func (s *Store) Replace(records map[string]*model.Record) error {
	if err := storejson.Write(s.path(), records); err != nil {
		return err
	}
	s.records = records
	return nil
}

// Archive writes a timestamped snapshot of the current catalog, named
// after the given label, and returns the snapshot path.
func (s *Store) Archive(label string, now time.Time) (string, error) {
	name := fmt.Sprintf("%s_%s.json", now.UTC().Format("20060102-150405"), slug.Make(label))
	path := filepath.Join(s.dataDir, SnapshotDir, name)
	if err := storejson.Write(path, s.records); err != nil {
		return "", fmt.Errorf("archive catalog: %w", err)
	}
	return path, nil
}

func keyFor(name string) string {
	return (&model.Record{Name: name}).Key()
}
