// Package model defines the jump record type and the frozen reference
// enumerations the rest of the system resolves, filters and sorts against.
package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Value is a single attribute value: either a scalar string or an ordered
// list of strings. Exactly one of the two forms is populated; list-valued
// attributes always use List, everything else uses Scalar.
type Value struct {
	Scalar string
	List   []string
}

// ScalarValue wraps a plain string.
func ScalarValue(s string) Value { return Value{Scalar: s} }

// ListValue wraps an ordered list of strings.
func ListValue(items ...string) Value { return Value{List: items} }

// IsZero reports whether the value is empty in either form.
func (v Value) IsZero() bool {
	return v.Scalar == "" && len(v.List) == 0
}

// IsList reports whether the value holds the list form.
func (v Value) IsList() bool { return v.List != nil }

// String renders the value for display. Lists join with ", " like the
// original bot output.
func (v Value) String() string {
	if v.IsList() {
		return strings.Join(v.List, ", ")
	}
	return v.Scalar
}

// MarshalJSON emits the scalar as a JSON string and the list as an array.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.IsList() {
		return json.Marshal(v.List)
	}
	return json.Marshal(v.Scalar)
}

// UnmarshalJSON accepts either a JSON string or an array of strings.
func (v *Value) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = Value{Scalar: s}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("attribute value must be a string or a list of strings: %w", err)
	}
	*v = Value{List: list}
	return nil
}

// Record is one catalog entry ("jump"). Attribute access is uniform through
// Get/Set so the query, batch and rendering layers never branch on field
// names; the struct keeps the schema fixed and the JSON stable.
type Record struct {
	Name     string   `json:"name"`
	Location []string `json:"location,omitempty"`
	Diff     string   `json:"diff,omitempty"`
	Tier     string   `json:"tier,omitempty"`
	Type     string   `json:"type,omitempty"`
	Finder   []string `json:"finder,omitempty"`
	Taser    []string `json:"taser,omitempty"`
	Prover   []string `json:"prover,omitempty"`
	Server   string   `json:"server,omitempty"`
	Extra    []string `json:"extra,omitempty"`
	Links    []string `json:"links,omitempty"`
}

// Key returns the catalog key for the record: the lower-cased name.
func (r *Record) Key() string { return strings.ToLower(r.Name) }

// Get returns the value of a canonical attribute. The second return is
// false for attribute names outside the canonical set.
func (r *Record) Get(attr string) (Value, bool) {
	switch attr {
	case AttrName:
		return ScalarValue(r.Name), true
	case AttrLocation:
		return Value{List: r.Location}, true
	case AttrDiff:
		return ScalarValue(r.Diff), true
	case AttrTier:
		return ScalarValue(r.Tier), true
	case AttrType:
		return ScalarValue(r.Type), true
	case AttrFinder:
		return Value{List: r.Finder}, true
	case AttrTaser:
		return Value{List: r.Taser}, true
	case AttrProver:
		return Value{List: r.Prover}, true
	case AttrServer:
		return ScalarValue(r.Server), true
	case AttrExtra:
		return Value{List: r.Extra}, true
	case AttrLinks:
		return Value{List: r.Links}, true
	}
	return Value{}, false
}

// Set assigns a canonical attribute. A zero value clears the attribute.
func (r *Record) Set(attr string, v Value) error {
	switch attr {
	case AttrName:
		r.Name = v.Scalar
	case AttrLocation:
		r.Location = v.List
	case AttrDiff:
		r.Diff = v.Scalar
	case AttrTier:
		r.Tier = v.Scalar
	case AttrType:
		r.Type = v.Scalar
	case AttrFinder:
		r.Finder = v.List
	case AttrTaser:
		r.Taser = v.List
	case AttrProver:
		r.Prover = v.List
	case AttrServer:
		r.Server = v.Scalar
	case AttrExtra:
		r.Extra = v.List
	case AttrLinks:
		r.Links = v.List
	default:
		return fmt.Errorf("unknown attribute %q", attr)
	}
	return nil
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	c := *r
	c.Location = append([]string(nil), r.Location...)
	c.Finder = append([]string(nil), r.Finder...)
	c.Taser = append([]string(nil), r.Taser...)
	c.Prover = append([]string(nil), r.Prover...)
	c.Extra = append([]string(nil), r.Extra...)
	c.Links = append([]string(nil), r.Links...)
	return &c
}

// Patch is a partial record used by batch edits: canonical attribute name
// to new value. A zero value means "delete this attribute".
type Patch map[string]Value

// Apply merges the patch into the record. Values set; zero values delete.
// The caller is responsible for re-deriving tier when diff changes.
func (p Patch) Apply(r *Record) error {
	for attr, v := range p {
		if err := r.Set(attr, v); err != nil {
			return err
		}
	}
	return nil
}

// OwnershipEntry is one per-user owned jump: the proof link (may be empty)
// and the time the jump was given. Joined to the catalog by name at read
// time, never by pointer, so canonical edits propagate and deletions
// surface as stale entries.
type OwnershipEntry struct {
	Proof     string `json:"proof"`
	TimeGiven string `json:"time_given"`
}
