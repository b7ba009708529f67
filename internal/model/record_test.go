package model

import "testing"

func TestValue(t *testing.T) {
	t.Run("string rendering", func(t *testing.T) {
		if got := ScalarValue("3/10").String(); got != "3/10" {
			t.Errorf("got %q", got)
		}
		if got := ListValue("a", "b").String(); got != "a, b" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("zero forms", func(t *testing.T) {
		if !(Value{}).IsZero() {
			t.Error("empty value must be zero")
		}
		if ScalarValue("x").IsZero() || ListValue("x").IsZero() {
			t.Error("populated values must not be zero")
		}
	})
}

func TestRecordGetSet(t *testing.T) {
	r := &Record{}

	for _, attr := range Attributes {
		if _, ok := r.Get(attr); !ok {
			t.Errorf("Get(%q) unknown", attr)
		}
	}
	if _, ok := r.Get("bogus"); ok {
		t.Error("Get(bogus) succeeded")
	}
	if err := r.Set("bogus", ScalarValue("x")); err == nil {
		t.Error("Set(bogus) succeeded")
	}

	t.Run("round trip", func(t *testing.T) {
		if err := r.Set(AttrDiff, ScalarValue("3/10")); err != nil {
			t.Fatal(err)
		}
		if err := r.Set(AttrLocation, ListValue("Cap Kingdom")); err != nil {
			t.Fatal(err)
		}
		if v, _ := r.Get(AttrDiff); v.Scalar != "3/10" {
			t.Errorf("diff = %+v", v)
		}
		if v, _ := r.Get(AttrLocation); len(v.List) != 1 || v.List[0] != "Cap Kingdom" {
			t.Errorf("location = %+v", v)
		}
	})

	t.Run("key lower-cases the name", func(t *testing.T) {
		r := &Record{Name: "Cap Skip"}
		if r.Key() != "cap skip" {
			t.Errorf("Key = %q", r.Key())
		}
	})
}

func TestClone(t *testing.T) {
	r := &Record{
		Name:     "Cap Skip",
		Location: []string{"Cap Kingdom"},
		Links:    []string{"https://x"},
	}
	c := r.Clone()
	c.Location[0] = "Moon Kingdom"
	c.Links = append(c.Links, "https://y")

	if r.Location[0] != "Cap Kingdom" || len(r.Links) != 1 {
		t.Errorf("clone shares slices: %+v", r)
	}
}

func TestPatchApply(t *testing.T) {
	r := &Record{
		Name:     "Cap Skip",
		Location: []string{"Cap Kingdom"},
		Diff:     "3/10",
		Extra:    []string{"note"},
	}
	p := Patch{
		AttrDiff:  ScalarValue("4/10"),
		AttrExtra: {},
	}
	if err := p.Apply(r); err != nil {
		t.Fatal(err)
	}
	if r.Diff != "4/10" {
		t.Errorf("Diff = %q", r.Diff)
	}
	if len(r.Extra) != 0 {
		t.Errorf("Extra = %v, zero value must clear", r.Extra)
	}
	if r.Name != "Cap Skip" || r.Location[0] != "Cap Kingdom" {
		t.Errorf("untouched attributes changed: %+v", r)
	}
}

func TestIndexOf(t *testing.T) {
	if i := IndexOf(TierOrder, "practice tier"); i != 0 {
		t.Errorf("IndexOf = %d", i)
	}
	if i := IndexOf(TierOrder, "Unproven"); i != len(TierOrder)-1 {
		t.Errorf("IndexOf = %d", i)
	}
	if i := IndexOf(TierOrder, "nope"); i != -1 {
		t.Errorf("IndexOf = %d", i)
	}
}

func TestFrozenEnumerations(t *testing.T) {
	if len(LocationOrder) != 18 {
		t.Errorf("LocationOrder has %d entries", len(LocationOrder))
	}
	if len(TierOrder) != 13 {
		t.Errorf("TierOrder has %d entries", len(TierOrder))
	}
	if len(DiffOrder) != 33 {
		t.Errorf("DiffOrder has %d entries", len(DiffOrder))
	}
	if DiffOrder[len(DiffOrder)-1] != UnprovenTier {
		t.Errorf("DiffOrder must end with %s", UnprovenTier)
	}
	if TierOrder[MainTierBoundary] != "Master" {
		t.Errorf("main boundary = %q", TierOrder[MainTierBoundary])
	}
}
