package bot

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jumpedia/jumpedia/internal/batch"
	"github.com/jumpedia/jumpedia/internal/identity"
	"github.com/jumpedia/jumpedia/internal/model"
	"github.com/jumpedia/jumpedia/internal/schema"
)

const batchUsage = "Batch subcommands: `new <name>`, `list`, `show <batch>`, " +
	"`add <batch> attr=value...`, `edit <batch> <jump> attr=value...`, `rem <batch> <jump>`, " +
	"`forget <batch> add|edit|rem <jump>`, `finish <batch>`, `unfinish <batch>`, " +
	"`validate <batch>`, `approve <batch>`, `nuke <batch>`"

// batch routes the staged-changeset subcommands. Curation requires the
// moderator role; approve and nuke are checked against admin inside the
// engine.
func (b *Bot) batch(actor identity.Actor, args []string) (string, error) {
	if len(args) == 0 {
		return batchUsage, nil
	}

	sub := strings.ToLower(args[0])
	args = args[1:]

	switch sub {
	case "list", "show", "validate":
	default:
		if !actor.Moderator {
			return "", identity.ErrPermissionDenied
		}
	}

	switch sub {
	case "new":
		created, err := b.Batches.Create(actor, strings.Join(args, " "))
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Batch `%s` created! Its hash is `%s`.", created.Name, created.Hash), nil

	case "list":
		return b.batchList(), nil

	case "show":
		target, err := b.resolveBatch(strings.Join(args, " "))
		if err != nil {
			return "", err
		}
		return renderBatch(target), nil

	case "add":
		if len(args) < 2 {
			return "Enter the batch and the jump's `attr=value` pairs!", nil
		}
		target, err := b.resolveBatch(args[0])
		if err != nil {
			return "", err
		}
		rec, err := recordFromFields(args[1:])
		if err != nil {
			return "", err
		}
		if err := b.Batches.StageAdd(actor, target.Hash, rec); err != nil {
			return "", err
		}
		return fmt.Sprintf("Addition of `%s` staged!", rec.Name), nil

	case "edit":
		if len(args) < 3 {
			return "Enter the batch, the jump and the `attr=value` changes!", nil
		}
		target, err := b.resolveBatch(args[0])
		if err != nil {
			return "", err
		}
		name, fields := splitEditArgs(args[1:])
		if name == "" {
			return "Enter the jump to edit before the `attr=value` changes!", nil
		}
		patch, err := patchFromFields(fields)
		if err != nil {
			return "", err
		}
		if err := b.Batches.StageEdit(actor, target.Hash, name, patch); err != nil {
			return "", err
		}
		return fmt.Sprintf("Edit of `%s` staged!", name), nil

	case "rem":
		if len(args) < 2 {
			return "Enter the batch and the jump to remove!", nil
		}
		target, err := b.resolveBatch(args[0])
		if err != nil {
			return "", err
		}
		name := strings.Join(args[1:], " ")
		if err := b.Batches.StageRemove(actor, target.Hash, name); err != nil {
			return "", err
		}
		return fmt.Sprintf("Removal of `%s` staged!", name), nil

	case "forget":
		if len(args) < 3 {
			return "Enter the batch, `add`/`edit`/`rem` and the jump to forget!", nil
		}
		target, err := b.resolveBatch(args[0])
		if err != nil {
			return "", err
		}
		if err := b.Batches.Forget(actor, target.Hash, strings.ToLower(args[1]), strings.Join(args[2:], " ")); err != nil {
			return "", err
		}
		return "Staged entry forgotten!", nil

	case "finish", "unfinish":
		target, err := b.resolveBatch(strings.Join(args, " "))
		if err != nil {
			return "", err
		}
		status := batch.StatusFinished
		if sub == "unfinish" {
			status = batch.StatusUnfinished
		}
		if err := b.Batches.SetStatus(actor, target.Hash, status); err != nil {
			return "", err
		}
		return fmt.Sprintf("Batch `%s` is now %s!", target.Name, status), nil

	case "validate":
		target, err := b.resolveBatch(strings.Join(args, " "))
		if err != nil {
			return "", err
		}
		report, err := b.Batches.Validate(target.Hash)
		if err != nil {
			return "", err
		}
		if report.OK() {
			return "The batch validates cleanly!", nil
		}
		return "The batch did not validate:\n" + report.Error(), nil

	case "approve":
		target, err := b.resolveBatch(strings.Join(args, " "))
		if err != nil {
			return "", err
		}
		snapshot, err := b.Batches.Approve(actor, target.Hash)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Batch `%s` approved and implemented!\nCatalog snapshot: %s", target.Name, snapshot), nil

	case "nuke":
		target, err := b.resolveBatch(strings.Join(args, " "))
		if err != nil {
			return "", err
		}
		if err := b.Batches.Nuke(actor, target.Hash); err != nil {
			return "", err
		}
		return fmt.Sprintf("Batch `%s` has been nuked.", target.Name), nil

	default:
		return fmt.Sprintf("Unknown batch subcommand `%s`!\n%s", sub, batchUsage), nil
	}
}

// resolveBatch accepts a batch hash or, for unlocked batches, the display
// name.
func (b *Bot) resolveBatch(ref string) (*batch.Batch, error) {
	target, err := b.Batches.Store.Get(ref)
	if err == nil {
		return target, nil
	}
	if !errors.Is(err, batch.ErrNotFound) {
		return nil, err
	}
	if byName := b.Batches.Store.ByName(ref); byName != nil {
		return byName, nil
	}
	return nil, fmt.Errorf("%w: %s", batch.ErrNotFound, ref)
}

func (b *Bot) batchList() string {
	all := b.Batches.Store.List()
	if len(all) == 0 {
		return "There are no batches yet!"
	}
	var bld strings.Builder
	bld.WriteString("**Batches:**")
	for _, target := range all {
		fmt.Fprintf(&bld, "\n`%s` %s - %s (%d add, %d edit, %d rem)",
			target.Hash, target.Name, target.Status,
			len(target.Add), len(target.Edit), len(target.Rem))
	}
	return bld.String()
}

func renderBatch(target *batch.Batch) string {
	var bld strings.Builder
	fmt.Fprintf(&bld, "**Batch `%s`** (hash `%s`) - %s\nCreated %s by %s",
		target.Name, target.Hash, target.Status,
		target.CreatedAt.Format("2006-01-02 15:04"), target.CreatedBy)

	for name := range target.Add {
		fmt.Fprintf(&bld, "\nadd: %s", name)
	}
	for name, patch := range target.Edit {
		attrs := make([]string, 0, len(patch))
		for attr := range patch {
			attrs = append(attrs, attr)
		}
		fmt.Fprintf(&bld, "\nedit: %s (%s)", name, strings.Join(attrs, ", "))
	}
	for _, name := range target.Rem {
		fmt.Fprintf(&bld, "\nrem: %s", name)
	}

	bld.WriteString("\n\n**Log:**")
	for _, entry := range target.Log {
		fmt.Fprintf(&bld, "\n%s %s", entry.Time.Format("2006-01-02 15:04"), entry.Message)
	}
	return bld.String()
}

// splitEditArgs separates the leading jump-name tokens from the trailing
// attr=value tokens.
func splitEditArgs(args []string) (string, []string) {
	for i, arg := range args {
		if strings.Contains(arg, "=") {
			return strings.Join(args[:i], " "), args[i:]
		}
	}
	return strings.Join(args, " "), nil
}

// recordFromFields builds a new record from attr=value tokens. Values are
// resolved to canonical form; list attributes take comma-separated
// elements.
func recordFromFields(fields []string) (*model.Record, error) {
	rec := &model.Record{}
	for _, field := range fields {
		attr, value, err := parseField(field, false)
		if err != nil {
			return nil, err
		}
		if err := rec.Set(attr, value); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

// patchFromFields builds an edit patch from attr=value tokens. An empty
// value (`extra=`) clears the attribute.
func patchFromFields(fields []string) (model.Patch, error) {
	patch := model.Patch{}
	for _, field := range fields {
		attr, value, err := parseField(field, true)
		if err != nil {
			return nil, err
		}
		patch[attr] = value
	}
	return patch, nil
}

func parseField(field string, allowEmpty bool) (string, model.Value, error) {
	key, raw, found := strings.Cut(field, "=")
	if !found {
		return "", model.Value{}, fmt.Errorf("expected `attr=value` instead of `%s`", field)
	}
	attr, err := schema.ResolveAttribute(key)
	if err != nil {
		return "", model.Value{}, err
	}

	if raw == "" {
		if !allowEmpty {
			return "", model.Value{}, fmt.Errorf("missing a value for attribute `%s`", attr)
		}
		return attr, model.Value{}, nil
	}

	if model.ListAttributes[attr] {
		parts := strings.Split(raw, ",")
		elems := make([]string, 0, len(parts))
		for _, part := range parts {
			canonical, err := schema.ResolveValue(attr, strings.TrimSpace(part))
			if err != nil {
				return "", model.Value{}, err
			}
			elems = append(elems, canonical)
		}
		return attr, model.ListValue(elems...), nil
	}

	canonical, err := schema.ResolveValue(attr, raw)
	if err != nil {
		return "", model.Value{}, err
	}
	return attr, model.ScalarValue(canonical), nil
}
