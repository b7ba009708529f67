package batch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jumpedia/jumpedia/internal/storejson"
)

// FileName is the batch data file within the data directory.
const FileName = "batches.json"

// Store persists every batch, keyed by hash, in one JSON document. Like
// the catalog it assumes one command at a time.
type Store struct {
	dataDir string
	batches map[string]*Batch
}

// OpenStore loads the batch file from the data directory; a missing file
// yields an empty store.
func OpenStore(dataDir string) (*Store, error) {
	s := &Store{dataDir: dataDir, batches: map[string]*Batch{}}
	err := storejson.Read(s.path(), &s.batches)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load batches: %w", err)
	}
	return s, nil
}

func (s *Store) path() string {
	return filepath.Join(s.dataDir, FileName)
}

// Get returns the batch with the given hash.
func (s *Store) Get(hash string) (*Batch, error) {
	b, ok := s.batches[hash]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, hash)
	}
	return b, nil
}

// ByName returns the unlocked batch with the given display name, or nil.
// Locked batches do not reserve their name.
func (s *Store) ByName(name string) *Batch {
	for _, b := range s.batches {
		if !b.Locked() && strings.EqualFold(b.Name, name) {
			return b
		}
	}
	return nil
}

// List returns every batch, oldest first.
func (s *Store) List() []*Batch {
	out := make([]*Batch, 0, len(s.batches))
	for _, b := range s.batches {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Hash < out[j].Hash
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Put registers a batch and persists the store.
func (s *Store) Put(b *Batch) error {
	s.batches[b.Hash] = b
	return s.Save()
}

// Save writes the whole store back to disk.
func (s *Store) Save() error {
	return storejson.Write(s.path(), s.batches)
}
