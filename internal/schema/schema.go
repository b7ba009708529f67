// Package schema maps user-typed attribute and value spellings to their
// canonical forms and validates records against the fixed attribute set.
//
// All per-attribute behavior lives in one capability table consulted
// uniformly by resolution, filtering and sorting, so adding an attribute is
// a data change. Resolution is deterministic: every rule is a first-match
// walk over a frozen, ordered reference list.
package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jumpedia/jumpedia/internal/model"
)

var (
	// ErrUnknownAttribute means the token matches no attribute alias.
	ErrUnknownAttribute = errors.New("unknown attribute")

	// ErrInvalidValue means the token matches no entry in the attribute's
	// reference list.
	ErrInvalidValue = errors.New("invalid value")
)

// FilterMode selects how a canonical value is matched against a record
// attribute.
type FilterMode int

const (
	// FilterExact matches scalar values case-insensitively.
	FilterExact FilterMode = iota
	// FilterSubstring matches scalar values by case-insensitive substring.
	FilterSubstring
	// FilterList matches if any list element equals the value.
	FilterList
	// FilterListSubstring matches if any list element contains the value.
	FilterListSubstring
	// FilterTiered is FilterExact plus the synthetic main/elite buckets.
	FilterTiered
)

// SortKeyKind selects how an attribute contributes to sort comparisons.
type SortKeyKind int

const (
	// SortByString compares the normalized string value.
	SortByString SortKeyKind = iota
	// SortByLocationIndex compares the first location's LocationOrder index.
	SortByLocationIndex
	// SortByTierIndex compares the TierOrder index.
	SortByTierIndex
	// SortByDiffIndex compares the DiffOrder index.
	SortByDiffIndex
)

// Capability describes one canonical attribute's behavior.
type Capability struct {
	Filter  FilterMode
	SortKey SortKeyKind
	resolve func(token string, relaxed bool) (string, error)
}

// capabilities is the per-attribute behavior table. Attributes absent from
// the table (none today) would fall back to identity resolution.
var capabilities = map[string]Capability{
	model.AttrName:     {Filter: FilterSubstring, SortKey: SortByString, resolve: resolveName},
	model.AttrLocation: {Filter: FilterList, SortKey: SortByLocationIndex, resolve: resolveLocation},
	model.AttrDiff:     {Filter: FilterTiered, SortKey: SortByDiffIndex, resolve: resolveDiff},
	model.AttrTier:     {Filter: FilterTiered, SortKey: SortByTierIndex, resolve: resolveTier},
	model.AttrType:     {Filter: FilterExact, SortKey: SortByString, resolve: resolveIdentity},
	model.AttrFinder:   {Filter: FilterListSubstring, SortKey: SortByString, resolve: resolveIdentity},
	model.AttrTaser:    {Filter: FilterListSubstring, SortKey: SortByString, resolve: resolveIdentity},
	model.AttrProver:   {Filter: FilterListSubstring, SortKey: SortByString, resolve: resolveIdentity},
	model.AttrServer:   {Filter: FilterExact, SortKey: SortByString, resolve: resolveServer},
	model.AttrExtra:    {Filter: FilterListSubstring, SortKey: SortByString, resolve: resolveIdentity},
	model.AttrLinks:    {Filter: FilterListSubstring, SortKey: SortByString, resolve: resolveLinks},
}

// CapabilityFor returns the capability entry for a canonical attribute.
func CapabilityFor(attr string) (Capability, bool) {
	c, ok := capabilities[attr]
	return c, ok
}

// ResolveAttribute maps a user-typed attribute token to its canonical name.
// Matching is a case-insensitive exact match against the fixed alias list;
// it is deliberately not fuzzy.
func ResolveAttribute(token string) (string, error) {
	t := strings.ToLower(token)
	for _, attr := range model.Attributes {
		if t == attr {
			return attr, nil
		}
		for _, alias := range model.AttributeAliases[attr] {
			if t == alias {
				return attr, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAttribute, token)
}

// ResolveValue maps a user-typed value token to the canonical value for the
// given canonical attribute. Link values must carry the https scheme.
func ResolveValue(attr, token string) (string, error) {
	return resolveValue(attr, token, false)
}

// ResolveFilterValue is ResolveValue with the link-scheme requirement
// relaxed (filter values need not be full URLs) and with the synthetic
// "main"/"elite" buckets accepted for diff and tier.
func ResolveFilterValue(attr, token string) (string, error) {
	if attr == model.AttrDiff || attr == model.AttrTier {
		if b := strings.ToLower(token); b == BucketMain || b == BucketElite {
			return b, nil
		}
	}
	return resolveValue(attr, token, true)
}

func resolveValue(attr, token string, relaxed bool) (string, error) {
	c, ok := capabilities[attr]
	if !ok || c.resolve == nil {
		return token, nil
	}
	return c.resolve(token, relaxed)
}

func resolveIdentity(token string, _ bool) (string, error) {
	return token, nil
}

func resolveName(token string, _ bool) (string, error) {
	if len(token) > model.MaxNameLength {
		return "", fmt.Errorf("%w: name longer than %d characters", ErrInvalidValue, model.MaxNameLength)
	}
	return token, nil
}

// resolveLocation matches the full kingdom name or its first word. The one
// possessive entry also matches with the apostrophe dropped, so "bowsers"
// and "bowser's" both resolve to Bowser's Kingdom.
func resolveLocation(token string, _ bool) (string, error) {
	t := strings.ToLower(token)
	for _, loc := range model.LocationOrder {
		low := strings.ToLower(loc)
		first, _, _ := strings.Cut(low, " ")
		if t == low || t == first {
			return loc, nil
		}
		if strings.Contains(low, "'") {
			stripped := strings.ReplaceAll(low, "'", "")
			strippedFirst, _, _ := strings.Cut(stripped, " ")
			if t == stripped || t == strippedFirst {
				return loc, nil
			}
		}
	}
	return "", fmt.Errorf("%w: for attribute %q the value %q doesn't exist", ErrInvalidValue, model.AttrLocation, token)
}

// resolveDiff accepts an exact fractional token as-is, otherwise matches
// the first word of each DiffOrder entry in order. The enumeration order is
// load-bearing: "5" hits "5/10" before "5.5/10", "low" hits "Low Elite".
func resolveDiff(token string, _ bool) (string, error) {
	t := strings.ToLower(token)
	if strings.HasSuffix(t, "/10") {
		if i := model.IndexOf(model.DiffOrder, t); i >= 0 {
			return model.DiffOrder[i], nil
		}
		return "", fmt.Errorf("%w: for attribute %q the value %q doesn't exist", ErrInvalidValue, model.AttrDiff, token)
	}
	first, _, _ := strings.Cut(t, " ")
	for _, diff := range model.DiffOrder {
		head, _, _ := strings.Cut(strings.ToLower(diff), "/10")
		head, _, _ = strings.Cut(head, " ")
		if first == head {
			return diff, nil
		}
	}
	return "", fmt.Errorf("%w: for attribute %q the value %q doesn't exist", ErrInvalidValue, model.AttrDiff, token)
}

// resolveTier matches the token as a substring of each tier's first word,
// first match wins: "pract" resolves to Practice Tier.
func resolveTier(token string, _ bool) (string, error) {
	t := strings.ToLower(token)
	if t == "" {
		return "", fmt.Errorf("%w: empty tier", ErrInvalidValue)
	}
	for _, tier := range model.TierOrder {
		first, _, _ := strings.Cut(strings.ToLower(tier), " ")
		if strings.Contains(first, t) {
			return tier, nil
		}
	}
	return "", fmt.Errorf("%w: for attribute %q the value %q doesn't exist", ErrInvalidValue, model.AttrTier, token)
}

// resolveServer checks the token for membership in any alias of each
// canonical server, in declaration order.
func resolveServer(token string, _ bool) (string, error) {
	t := strings.ToLower(token)
	if t == "" {
		return "", fmt.Errorf("%w: empty server", ErrInvalidValue)
	}
	for _, srv := range model.ServerNames {
		if strings.Contains(strings.ToLower(srv.Canonical), t) {
			return srv.Canonical, nil
		}
		for _, alias := range srv.Aliases {
			if strings.Contains(strings.ToLower(alias), t) {
				return srv.Canonical, nil
			}
		}
	}
	return "", fmt.Errorf("%w: for attribute %q the value %q doesn't exist", ErrInvalidValue, model.AttrServer, token)
}

func resolveLinks(token string, relaxed bool) (string, error) {
	if !relaxed && !strings.HasPrefix(token, model.LinkScheme) {
		return "", fmt.Errorf("%w: links must start with %s", ErrInvalidValue, model.LinkScheme)
	}
	return token, nil
}

// Synthetic filter buckets for diff and tier.
const (
	BucketMain  = "main"
	BucketElite = "elite"
)
