// Package query interprets list-command token sequences: scope, "only"
// filter groups, "by" sort keys and the projection marker, evaluated over
// the catalog (or one user's owned jumps) into ordered, projected rows.
package query

import (
	"strings"

	"github.com/jumpedia/jumpedia/internal/model"
	"github.com/jumpedia/jumpedia/internal/schema"
)

// Matches evaluates one filter predicate against a record. attr and value
// must already be canonical (see schema.ResolveFilterValue).
func Matches(r *model.Record, attr, value string) bool {
	cap, ok := schema.CapabilityFor(attr)
	if !ok {
		return false
	}
	v, _ := r.Get(attr)

	switch cap.Filter {
	case schema.FilterExact:
		return strings.EqualFold(v.Scalar, value)
	case schema.FilterSubstring:
		return strings.Contains(strings.ToLower(v.Scalar), strings.ToLower(value))
	case schema.FilterTiered:
		if value == schema.BucketMain || value == schema.BucketElite {
			return schema.TierBucket(recordTier(r)) == value
		}
		if attr == model.AttrTier {
			return strings.EqualFold(recordTier(r), value)
		}
		return strings.EqualFold(v.Scalar, value)
	case schema.FilterList:
		for _, e := range v.List {
			if strings.EqualFold(e, value) {
				return true
			}
		}
		return false
	case schema.FilterListSubstring:
		for _, e := range v.List {
			if strings.Contains(strings.ToLower(e), strings.ToLower(value)) {
				return true
			}
		}
		return false
	}
	return false
}

// FilterRecords applies Matches over every record, preserving input order.
func FilterRecords(records []*model.Record, attr, value string) []*model.Record {
	var out []*model.Record
	for _, r := range records {
		if Matches(r, attr, value) {
			out = append(out, r)
		}
	}
	return out
}

// recordTier returns the stored tier, deriving it from diff for records
// persisted before tiers were stored.
func recordTier(r *model.Record) string {
	if r.Tier != "" {
		return r.Tier
	}
	tier, err := schema.DeriveTier(r.Diff)
	if err != nil {
		return ""
	}
	return tier
}
