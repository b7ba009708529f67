// Package channels maps chat channel IDs to how the bot treats them.
package channels

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Kind is the behavior of the bot in a channel.
type Kind string

const (
	// KindIgnored channels get no reaction at all.
	KindIgnored Kind = "ignored"
	// KindCommands channels accept and answer commands.
	KindCommands Kind = "commands"
	// KindAnnouncements channels only receive bot announcements.
	KindAnnouncements Kind = "announcements"
)

// ErrUnknownKind indicates a kind outside the known set.
var ErrUnknownKind = errors.New("unknown channel kind")

// FileName is the channel configuration file within the data directory.
const FileName = "channels.yaml"

// Store holds the channel-id to kind mapping, YAML on disk.
type Store struct {
	path  string
	kinds map[string]Kind
}

// Open loads the channel file from the data directory; a missing file
// yields an empty store.
func Open(dataDir string) (*Store, error) {
	s := &Store{
		path:  filepath.Join(dataDir, FileName),
		kinds: map[string]Kind{},
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read channel config: %w", err)
	}
	if err := yaml.Unmarshal(data, &s.kinds); err != nil {
		return nil, fmt.Errorf("parse channel config %s: %w", s.path, err)
	}
	for id, kind := range s.kinds {
		if !validKind(kind) {
			return nil, fmt.Errorf("%w: channel %s has kind %q", ErrUnknownKind, id, kind)
		}
	}
	return s, nil
}

func validKind(k Kind) bool {
	return k == KindIgnored || k == KindCommands || k == KindAnnouncements
}

// Get returns the kind of a channel. Unconfigured channels are ignored.
func (s *Store) Get(channelID string) Kind {
	if kind, ok := s.kinds[channelID]; ok {
		return kind
	}
	return KindIgnored
}

// Set assigns a kind to a channel and persists the store.
func (s *Store) Set(channelID string, kind Kind) error {
	if !validKind(kind) {
		return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	s.kinds[channelID] = kind
	return s.save()
}

// List returns configured channel IDs in sorted order.
func (s *Store) List() []string {
	ids := make([]string, 0, len(s.kinds))
	for id := range s.kinds {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *Store) save() error {
	data, err := yaml.Marshal(s.kinds)
	if err != nil {
		return fmt.Errorf("serialize channel config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}
