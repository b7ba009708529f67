package batch

import (
	"sort"
	"strings"

	"github.com/jumpedia/jumpedia/internal/catalog"
	"github.com/jumpedia/jumpedia/internal/model"
)

// ValidationReport groups every violation found across add/edit/rem by
// category. Batch curation is a bulk workflow, so validation never stops
// at the first problem; the whole report comes back at once.
type ValidationReport struct {
	Empty           bool     `json:"empty,omitempty"`
	RemNotExist     []string `json:"rem_not_exist,omitempty"`
	EditNotExist    []string `json:"edit_not_exist,omitempty"`
	AddExists       []string `json:"add_exists,omitempty"`
	Overlap         []string `json:"overlap,omitempty"`
	RenameCollision []string `json:"rename_collision,omitempty"`
}

// OK reports whether the batch validated cleanly.
func (r *ValidationReport) OK() bool {
	return !r.Empty &&
		len(r.RemNotExist) == 0 &&
		len(r.EditNotExist) == 0 &&
		len(r.AddExists) == 0 &&
		len(r.Overlap) == 0 &&
		len(r.RenameCollision) == 0
}

// Error renders the full report, one category per line.
func (r *ValidationReport) Error() string {
	if r.Empty {
		return "empty: nothing is staged in this batch"
	}
	var lines []string
	add := func(category string, names []string) {
		if len(names) > 0 {
			lines = append(lines, category+": {"+strings.Join(names, ", ")+"}")
		}
	}
	add("rem_not_exist", r.RemNotExist)
	add("edit_not_exist", r.EditNotExist)
	add("add_exists", r.AddExists)
	add("overlap", r.Overlap)
	add("rename_collision", r.RenameCollision)
	return strings.Join(lines, "\n")
}

// Validate checks the batch against the live catalog. An empty changeset
// short-circuits every other check.
func Validate(b *Batch, cat *catalog.Store) *ValidationReport {
	r := &ValidationReport{}
	if b.Empty() {
		r.Empty = true
		return r
	}

	remSet := make(map[string]bool, len(b.Rem))
	for _, name := range b.Rem {
		remSet[name] = true
		if !cat.Exists(name) {
			r.RemNotExist = append(r.RemNotExist, name)
		}
	}

	for name := range b.Add {
		if cat.Exists(name) {
			r.AddExists = append(r.AddExists, name)
		}
		if remSet[name] {
			r.Overlap = append(r.Overlap, name)
		}
		if _, ok := b.Edit[name]; ok {
			r.Overlap = append(r.Overlap, name)
		}
	}

	// Post-edit target names, to catch two edits renaming onto each other.
	targets := make(map[string][]string, len(b.Edit))

	for name, patch := range b.Edit {
		if !cat.Exists(name) {
			r.EditNotExist = append(r.EditNotExist, name)
		}
		if remSet[name] {
			r.Overlap = append(r.Overlap, name)
		}

		target := name
		if v, ok := patch[model.AttrName]; ok && v.Scalar != "" {
			target = strings.ToLower(v.Scalar)
			// A rename may not take an existing record's name, unless it
			// is a case-only change of the record itself.
			if target != name && cat.Exists(target) {
				r.RenameCollision = append(r.RenameCollision, name)
			}
		}
		targets[target] = append(targets[target], name)
	}

	for _, sources := range targets {
		if len(sources) > 1 {
			r.RenameCollision = append(r.RenameCollision, sources...)
		}
	}

	sort.Strings(r.RemNotExist)
	sort.Strings(r.EditNotExist)
	sort.Strings(r.AddExists)
	sort.Strings(r.Overlap)
	sort.Strings(r.RenameCollision)
	return r
}
