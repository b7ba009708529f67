// Package batch implements the staged-changeset workflow: moderators
// collect additions, edits and removals in a batch, validate it as a
// whole, and an admin approval commits it to the catalog in one step.
package batch

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/jumpedia/jumpedia/internal/model"
)

// Status is the batch lifecycle state.
type Status string

const (
	// StatusUnfinished batches accept content changes.
	StatusUnfinished Status = "unfinished"
	// StatusFinished batches validated cleanly and await approval. The
	// transition back to unfinished is allowed.
	StatusFinished Status = "finished"
	// StatusImplemented batches have been committed to the catalog. Terminal.
	StatusImplemented Status = "implemented"
	// StatusNuked batches were abandoned by an admin. Terminal.
	StatusNuked Status = "nuked"
)

var (
	// ErrLocked means the batch is implemented or nuked and read-only forever.
	ErrLocked = errors.New("batch is locked")

	// ErrNotFound means no batch with the given hash exists.
	ErrNotFound = errors.New("no batch with that hash exists")

	// ErrNotUnfinished means a content change was attempted outside the
	// unfinished state.
	ErrNotUnfinished = errors.New("batch contents can only change while unfinished")
)

// LogEntry is one line of a batch's append-only audit trail.
type LogEntry struct {
	Time    time.Time `json:"time"`
	Message string    `json:"message"`
}

// Batch is a staged changeset against the catalog. Add/Edit/Rem are keyed
// by lower-cased jump name; Rem keeps insertion order.
type Batch struct {
	Name          string                   `json:"name"`
	Hash          string                   `json:"hash"`
	Status        Status                   `json:"status"`
	CreatedAt     time.Time                `json:"created_at"`
	CreatedBy     string                   `json:"created_by"`
	ImplementedAt *time.Time               `json:"implemented_at,omitempty"`
	Log           []LogEntry               `json:"log"`
	Add           map[string]*model.Record `json:"add"`
	Edit          map[string]model.Patch   `json:"edit"`
	Rem           []string                 `json:"rem"`
}

// Locked reports whether the batch is in a terminal state. Locked batches
// reject every content mutation but stay readable forever.
func (b *Batch) Locked() bool {
	return b.Status == StatusImplemented || b.Status == StatusNuked
}

// Empty reports whether nothing is staged.
func (b *Batch) Empty() bool {
	return len(b.Add) == 0 && len(b.Edit) == 0 && len(b.Rem) == 0
}

// appendLog adds a line to the batch's permanent log. The log is never
// rewritten or truncated.
func (b *Batch) appendLog(now time.Time, format string, args ...interface{}) {
	b.Log = append(b.Log, LogEntry{Time: now, Message: fmt.Sprintf(format, args...)})
}

// newHash returns the immutable batch identifier: 8 random hex bytes.
func newHash() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate batch hash: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
