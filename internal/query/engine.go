package query

import (
	"fmt"
	"sort"

	"github.com/jumpedia/jumpedia/internal/catalog"
	"github.com/jumpedia/jumpedia/internal/model"
)

// ResultThreshold is the result-set size above which the cooldown applies.
const ResultThreshold = 500

// PruneCap bounds how many stale ownership entries one list call may
// prune. Exceeding it aborts the prune instead of silently deleting a
// large part of a user's records.
const PruneCap = 25

// OwnershipSource supplies a user's owned jumps for the "mine"/user-ID
// scopes. Owned maps lower-cased jump name to the ownership entry.
type OwnershipSource interface {
	Owned(userID string) (map[string]model.OwnershipEntry, error)
	Prune(userID string, names []string) error
}

// Result is an ordered sequence of projected rows plus the match count.
// Rendering is the presentation layer's concern; only row order and the
// column order are guaranteed here.
type Result struct {
	Columns []string
	Rows    [][]string
	Count   int
}

// Engine evaluates parsed queries against the catalog and, for user
// scopes, the ownership store.
type Engine struct {
	Catalog   *catalog.Store
	Ownership OwnershipSource
	Limiter   *Limiter
}

// entry is one base-set row: the catalog record plus, for user scopes,
// the personal attribute values joined in by name.
type entry struct {
	rec      *model.Record
	personal map[string]string
}

// Run evaluates q on behalf of actorID ("mine" resolves to it).
func (e *Engine) Run(q *Query, actorID string) (*Result, error) {
	base, err := e.baseSet(q, actorID)
	if err != nil {
		return nil, err
	}

	matched := e.applyGroups(base, q.Groups)

	if len(matched) > ResultThreshold && e.Limiter != nil {
		if err := e.Limiter.Allow(actorID + "|list"); err != nil {
			return nil, err
		}
	}

	sortEntries(matched, q.SortKeys)

	userScope := q.Scope != "all"
	columns := projectColumns(q, userScope)
	rows := make([][]string, 0, len(matched))
	for _, en := range matched {
		row := make([]string, len(columns))
		for i, attr := range columns {
			if en.personal != nil {
				if v, ok := en.personal[attr]; ok {
					row[i] = v
					continue
				}
			}
			v, _ := en.rec.Get(attr)
			row[i] = v.String()
		}
		rows = append(rows, row)
	}

	return &Result{Columns: columns, Rows: rows, Count: len(rows)}, nil
}

// baseSet resolves the scope to the initial record set. User scopes join
// owned names against the catalog; names that no longer resolve are stale
// and get pruned, up to PruneCap.
func (e *Engine) baseSet(q *Query, actorID string) ([]*entry, error) {
	if q.Scope == "all" {
		records := e.Catalog.All()
		out := make([]*entry, len(records))
		for i, r := range records {
			out[i] = &entry{rec: r}
		}
		return out, nil
	}

	userID := q.Scope
	if q.Scope == "mine" {
		userID = actorID
	}
	owned, err := e.Ownership.Owned(userID)
	if err != nil {
		return nil, fmt.Errorf("load owned jumps: %w", err)
	}

	names := make([]string, 0, len(owned))
	for name := range owned {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []*entry
	var stale []string
	for _, name := range names {
		rec, ok := e.Catalog.Get(name)
		if !ok {
			stale = append(stale, name)
			continue
		}
		out = append(out, &entry{
			rec: rec,
			personal: map[string]string{
				model.AttrProof:     owned[name].Proof,
				model.AttrTimeGiven: owned[name].TimeGiven,
			},
		})
	}

	if len(stale) > 0 {
		if len(stale) > PruneCap {
			return nil, fmt.Errorf("%d owned jumps no longer exist in the catalog; refusing to prune more than %d at once", len(stale), PruneCap)
		}
		if err := e.Ownership.Prune(userID, stale); err != nil {
			return nil, fmt.Errorf("prune stale owned jumps: %w", err)
		}
	}

	return out, nil
}

// applyGroups evaluates the DNF filter: each group is an AND chain applied
// to the original base set, and group results union, preserving base
// order.
func (e *Engine) applyGroups(base []*entry, groups [][]Condition) []*entry {
	if len(groups) == 0 {
		return base
	}
	included := make(map[*entry]bool)
	for _, group := range groups {
		matched := base
		for _, cond := range group {
			var next []*entry
			for _, en := range matched {
				if Matches(en.rec, cond.Attr, cond.Value) {
					next = append(next, en)
				}
			}
			matched = next
		}
		for _, en := range matched {
			included[en] = true
		}
	}
	var out []*entry
	for _, en := range base {
		if included[en] {
			out = append(out, en)
		}
	}
	return out
}

func sortEntries(entries []*entry, keys []string) {
	if len(keys) == 0 {
		return
	}
	sort.SliceStable(entries, func(i, j int) bool {
		for _, attr := range keys {
			a, b := keyFor(entries[i].rec, attr), keyFor(entries[j].rec, attr)
			if c := compareKeys(a, b); c != 0 {
				return c < 0
			}
		}
		return false
	})
}

// projectColumns fixes the output attribute order: name first, personal
// attributes for user scopes, then the remaining attributes in canonical
// declaration order regardless of query token order.
func projectColumns(q *Query, userScope bool) []string {
	columns := []string{model.AttrName}
	if userScope && q.Projection != ProjectReferenced {
		columns = append(columns, model.PersonalAttributes...)
	}
	for _, attr := range model.Attributes {
		if attr == model.AttrName {
			continue
		}
		switch q.Projection {
		case ProjectAll:
			columns = append(columns, attr)
		default:
			for _, ref := range q.Referenced {
				if ref == attr {
					columns = append(columns, attr)
					break
				}
			}
		}
	}
	return columns
}
