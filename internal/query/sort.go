package query

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/jumpedia/jumpedia/internal/model"
	"github.com/jumpedia/jumpedia/internal/schema"
)

// sortKey is one record's comparison value for one attribute: either an
// index into a frozen reference order or a normalized string. Missing
// attributes sort last.
type sortKey struct {
	index   int
	str     string
	byIndex bool
	missing bool
}

// SortByKeys stably sorts records ascending by the given canonical
// attributes; later keys break ties of earlier ones.
//
// Location, tier and diff compare by index into their reference orders, so
// Beginner sorts after Practice Tier and before Low Elite rather than
// alphabetically. Everything else compares as a case- and
// width-normalized string.
func SortByKeys(records []*model.Record, keys []string) {
	if len(keys) == 0 {
		return
	}
	cache := make(map[*model.Record][]sortKey, len(records))
	keysFor := func(r *model.Record) []sortKey {
		if ks, ok := cache[r]; ok {
			return ks
		}
		ks := make([]sortKey, len(keys))
		for i, attr := range keys {
			ks[i] = keyFor(r, attr)
		}
		cache[r] = ks
		return ks
	}

	sort.SliceStable(records, func(i, j int) bool {
		a, b := keysFor(records[i]), keysFor(records[j])
		for k := range a {
			if c := compareKeys(a[k], b[k]); c != 0 {
				return c < 0
			}
		}
		return false
	})
}

func keyFor(r *model.Record, attr string) sortKey {
	cap, _ := schema.CapabilityFor(attr)
	switch cap.SortKey {
	case schema.SortByLocationIndex:
		if len(r.Location) == 0 {
			return sortKey{byIndex: true, missing: true}
		}
		return indexKey(model.LocationOrder, r.Location[0])
	case schema.SortByTierIndex:
		return indexKey(model.TierOrder, recordTier(r))
	case schema.SortByDiffIndex:
		return indexKey(model.DiffOrder, r.Diff)
	default:
		v, ok := r.Get(attr)
		if !ok || v.IsZero() {
			return sortKey{missing: true}
		}
		return sortKey{str: normalize(v.String())}
	}
}

func indexKey(order []string, value string) sortKey {
	i := model.IndexOf(order, value)
	if i < 0 {
		return sortKey{byIndex: true, missing: true}
	}
	return sortKey{byIndex: true, index: i}
}

func compareKeys(a, b sortKey) int {
	switch {
	case a.missing && b.missing:
		return 0
	case a.missing:
		return 1
	case b.missing:
		return -1
	case a.byIndex:
		return a.index - b.index
	case a.str < b.str:
		return -1
	case a.str > b.str:
		return 1
	}
	return 0
}

// normalize applies Unicode compatibility normalization and lower-casing
// so string sorting is stable across widths and case.
func normalize(s string) string {
	return strings.ToLower(norm.NFKC.String(s))
}
