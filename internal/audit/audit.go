// Package audit provides an append-only audit log for catalog and batch
// mutations. One JSON object per line; the file is only ever appended to.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Entry represents a single audit log entry.
type Entry struct {
	Timestamp time.Time              `json:"ts"`
	Operation string                 `json:"op"`     // create, stage, status, approve, nuke, give, del, proof, rate
	Entity    string                 `json:"entity"` // batch, catalog, ownership, rating
	ID        string                 `json:"id,omitempty"`
	Actor     string                 `json:"actor,omitempty"`
	Outcome   string                 `json:"outcome,omitempty"`
	Extra     map[string]interface{} `json:"extra,omitempty"`
}

// Logger handles writing to the audit log.
type Logger struct {
	path    string
	enabled bool
	mu      sync.Mutex
}

// New creates an audit logger writing under the data directory. If enabled
// is false the logger is a no-op.
func New(dataDir string, enabled bool) *Logger {
	if !enabled {
		return &Logger{enabled: false}
	}
	return &Logger{
		path:    filepath.Join(dataDir, "audit.log"),
		enabled: true,
	}
}

// Log writes an entry to the audit log.
func (l *Logger) Log(entry Entry) error {
	if !l.enabled {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal audit entry: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("create audit directory: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(string(data) + "\n"); err != nil {
		return fmt.Errorf("write audit entry: %w", err)
	}

	return nil
}

// LogBatch records a batch operation: who did what to which batch, and
// how it came out.
func (l *Logger) LogBatch(op, hash, actor, outcome string) error {
	return l.Log(Entry{Operation: op, Entity: "batch", ID: hash, Actor: actor, Outcome: outcome})
}

// LogOwnership records a give/del/proof operation on a user's records.
func (l *Logger) LogOwnership(op, userID, jump string) error {
	return l.Log(Entry{Operation: op, Entity: "ownership", ID: jump, Actor: userID})
}

// Read reads all entries from the audit log. A missing log is empty, not
// an error.
func (l *Logger) Read() ([]Entry, error) {
	if !l.enabled {
		return nil, nil
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read audit log: %w", err)
	}

	var entries []Entry
	for _, line := range strings.Split(string(data), "\n") {
		if line == "" {
			continue
		}
		var entry Entry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			continue // Skip malformed entries
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// ReadForEntity reads entries for a specific entity ID.
func (l *Logger) ReadForEntity(entityID string) ([]Entry, error) {
	all, err := l.Read()
	if err != nil {
		return nil, err
	}

	var filtered []Entry
	for _, entry := range all {
		if entry.ID == entityID {
			filtered = append(filtered, entry)
		}
	}

	return filtered, nil
}

// Enabled returns true if the audit logger is enabled.
func (l *Logger) Enabled() bool {
	return l.enabled
}
