package batch

import (
	"fmt"
	"strings"
	"time"

	"github.com/jumpedia/jumpedia/internal/audit"
	"github.com/jumpedia/jumpedia/internal/catalog"
	"github.com/jumpedia/jumpedia/internal/identity"
	"github.com/jumpedia/jumpedia/internal/model"
	"github.com/jumpedia/jumpedia/internal/schema"
)

// Engine runs the batch state machine over the batch store and, on
// approval, the catalog. The clock is injected for tests.
type Engine struct {
	Catalog *catalog.Store
	Store   *Store
	Audit   *audit.Logger
	Now     func() time.Time
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now().UTC()
}

func (e *Engine) audit(op, hash string, actor identity.Actor, outcome string) {
	if e.Audit != nil {
		_ = e.Audit.LogBatch(op, hash, actor.Display(), outcome)
	}
}

// Create opens a new unfinished batch. The display name must not collide,
// case-insensitively, with another unlocked batch.
func (e *Engine) Create(actor identity.Actor, name string) (*Batch, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("batch name must not be empty")
	}
	if existing := e.Store.ByName(name); existing != nil {
		return nil, fmt.Errorf("an open batch named %q already exists (hash %s)", existing.Name, existing.Hash)
	}
	hash, err := newHash()
	if err != nil {
		return nil, err
	}
	b := &Batch{
		Name:      name,
		Hash:      hash,
		Status:    StatusUnfinished,
		CreatedAt: e.now(),
		CreatedBy: actor.Display(),
		Add:       map[string]*model.Record{},
		Edit:      map[string]model.Patch{},
	}
	b.appendLog(e.now(), "created by %s", actor.Display())
	if err := e.Store.Put(b); err != nil {
		return nil, err
	}
	e.audit("create", hash, actor, "ok")
	return b, nil
}

// unlocked fetches a batch and rejects content mutation outside the
// unfinished state.
func (e *Engine) unlocked(hash string) (*Batch, error) {
	b, err := e.Store.Get(hash)
	if err != nil {
		return nil, err
	}
	if b.Locked() {
		return nil, fmt.Errorf("%w: %s is %s", ErrLocked, b.Hash, b.Status)
	}
	if b.Status != StatusUnfinished {
		return nil, fmt.Errorf("%w (current status: %s)", ErrNotUnfinished, b.Status)
	}
	return b, nil
}

// StageAdd stages a new record. The record must carry every required
// attribute and no explicit tier. Re-staging a name already in add
// overwrites it, logged as an overwrite rather than rejected.
func (e *Engine) StageAdd(actor identity.Actor, hash string, rec *model.Record) error {
	b, err := e.unlocked(hash)
	if err != nil {
		return err
	}
	if err := schema.ValidateRecord(rec); err != nil {
		return err
	}
	key := rec.Key()
	if _, exists := b.Add[key]; exists {
		b.appendLog(e.now(), "%s overwrote staged addition %q", actor.Display(), rec.Name)
	} else {
		b.appendLog(e.now(), "%s staged addition %q", actor.Display(), rec.Name)
	}
	b.Add[key] = rec.Clone()
	e.audit("stage-add", hash, actor, key)
	return e.Store.Save()
}

// StageEdit stages a partial edit of an existing record.
func (e *Engine) StageEdit(actor identity.Actor, hash, name string, patch model.Patch) error {
	b, err := e.unlocked(hash)
	if err != nil {
		return err
	}
	if err := schema.ValidatePatch(patch); err != nil {
		return err
	}
	key := strings.ToLower(name)
	b.Edit[key] = patch
	b.appendLog(e.now(), "%s staged edit of %q", actor.Display(), name)
	e.audit("stage-edit", hash, actor, key)
	return e.Store.Save()
}

// StageRemove stages a removal. Staging the same name twice is reported,
// not silently ignored.
func (e *Engine) StageRemove(actor identity.Actor, hash, name string) error {
	b, err := e.unlocked(hash)
	if err != nil {
		return err
	}
	key := strings.ToLower(name)
	for _, staged := range b.Rem {
		if staged == key {
			return fmt.Errorf("%q is already staged for removal", name)
		}
	}
	b.Rem = append(b.Rem, key)
	b.appendLog(e.now(), "%s staged removal of %q", actor.Display(), name)
	e.audit("stage-rem", hash, actor, key)
	return e.Store.Save()
}

// Forget drops a previously staged entry from add, edit or rem.
func (e *Engine) Forget(actor identity.Actor, hash, op, name string) error {
	b, err := e.unlocked(hash)
	if err != nil {
		return err
	}
	key := strings.ToLower(name)
	switch op {
	case "add":
		if _, ok := b.Add[key]; !ok {
			return fmt.Errorf("nothing staged in add for %q", name)
		}
		delete(b.Add, key)
	case "edit":
		if _, ok := b.Edit[key]; !ok {
			return fmt.Errorf("nothing staged in edit for %q", name)
		}
		delete(b.Edit, key)
	case "rem":
		i := -1
		for j, staged := range b.Rem {
			if staged == key {
				i = j
				break
			}
		}
		if i < 0 {
			return fmt.Errorf("nothing staged in rem for %q", name)
		}
		b.Rem = append(b.Rem[:i], b.Rem[i+1:]...)
	default:
		return fmt.Errorf("expected `add`, `edit` or `rem` instead of %q", op)
	}
	b.appendLog(e.now(), "%s forgot %s entry %q", actor.Display(), op, name)
	e.audit("forget", hash, actor, op+":"+key)
	return e.Store.Save()
}

// Validate runs the full consistency check against the live catalog.
func (e *Engine) Validate(hash string) (*ValidationReport, error) {
	b, err := e.Store.Get(hash)
	if err != nil {
		return nil, err
	}
	return Validate(b, e.Catalog), nil
}

// SetStatus moves the batch between unfinished and finished. Finishing
// requires a clean validation; the full report blocks the transition
// otherwise. Every attempt lands in the batch log with its outcome.
func (e *Engine) SetStatus(actor identity.Actor, hash string, target Status) error {
	b, err := e.Store.Get(hash)
	if err != nil {
		return err
	}
	if b.Locked() {
		return fmt.Errorf("%w: %s is %s", ErrLocked, b.Hash, b.Status)
	}

	switch target {
	case StatusFinished:
		if b.Status != StatusUnfinished {
			return fmt.Errorf("cannot finish a batch that is %s", b.Status)
		}
		if report := Validate(b, e.Catalog); !report.OK() {
			b.appendLog(e.now(), "%s tried to finish: validation failed", actor.Display())
			_ = e.Store.Save()
			e.audit("status", hash, actor, "finish rejected")
			return report
		}
		b.Status = StatusFinished
	case StatusUnfinished:
		if b.Status != StatusFinished {
			return fmt.Errorf("cannot reopen a batch that is %s", b.Status)
		}
		b.Status = StatusUnfinished
	default:
		return fmt.Errorf("status can only be set to %s or %s", StatusUnfinished, StatusFinished)
	}

	b.appendLog(e.now(), "%s set status to %s", actor.Display(), target)
	e.audit("status", hash, actor, string(target))
	return e.Store.Save()
}

// Approve commits a finished batch to the catalog: archive a snapshot of
// the current catalog, apply removals, edits and additions to a copy,
// swap the copy in as the live catalog and lock the batch as implemented.
// Validation re-runs first since the catalog may have changed since the
// batch was finished. Admin only. Returns the snapshot path.
func (e *Engine) Approve(actor identity.Actor, hash string) (string, error) {
	if !actor.Admin {
		return "", identity.ErrPermissionDenied
	}
	b, err := e.Store.Get(hash)
	if err != nil {
		return "", err
	}
	if b.Locked() {
		return "", fmt.Errorf("%w: %s is %s", ErrLocked, b.Hash, b.Status)
	}
	if b.Status != StatusFinished {
		return "", fmt.Errorf("only finished batches can be approved (current status: %s)", b.Status)
	}
	if report := Validate(b, e.Catalog); !report.OK() {
		b.appendLog(e.now(), "%s tried to approve: validation failed", actor.Display())
		_ = e.Store.Save()
		e.audit("approve", hash, actor, "rejected")
		return "", report
	}

	snapshot, err := e.Catalog.Archive(b.Name, e.now())
	if err != nil {
		return "", err
	}

	staged := e.Catalog.Copy()

	for _, key := range b.Rem {
		delete(staged, key)
	}

	for key, patch := range b.Edit {
		rec, ok := staged[key]
		if !ok {
			// Validation proved existence; a miss here means the catalog
			// changed under us after the re-validation above.
			return "", fmt.Errorf("edit target %q vanished during approval", key)
		}
		if v, ok := patch[model.AttrName]; ok && v.Scalar != "" {
			newKey := strings.ToLower(v.Scalar)
			if newKey != key {
				delete(staged, key)
				staged[newKey] = rec
			}
		}
		if err := patch.Apply(rec); err != nil {
			return "", err
		}
		if _, ok := patch[model.AttrDiff]; ok {
			tier, err := schema.DeriveTier(rec.Diff)
			if err != nil {
				return "", err
			}
			rec.Tier = tier
		}
	}

	for key, rec := range b.Add {
		added := rec.Clone()
		tier, err := schema.DeriveTier(added.Diff)
		if err != nil {
			return "", err
		}
		added.Tier = tier
		staged[key] = added
	}

	if err := e.Catalog.Replace(staged); err != nil {
		return "", err
	}

	now := e.now()
	b.Status = StatusImplemented
	b.ImplementedAt = &now
	b.appendLog(now, "%s approved the batch (snapshot: %s)", actor.Display(), snapshot)
	e.audit("approve", hash, actor, "ok")
	return snapshot, e.Store.Save()
}

// Nuke abandons a batch from any non-terminal state. Admin only, terminal.
func (e *Engine) Nuke(actor identity.Actor, hash string) error {
	if !actor.Admin {
		return identity.ErrPermissionDenied
	}
	b, err := e.Store.Get(hash)
	if err != nil {
		return err
	}
	if b.Locked() {
		return fmt.Errorf("%w: %s is %s", ErrLocked, b.Hash, b.Status)
	}
	b.Status = StatusNuked
	b.appendLog(e.now(), "%s nuked the batch", actor.Display())
	e.audit("nuke", hash, actor, "ok")
	return e.Store.Save()
}
