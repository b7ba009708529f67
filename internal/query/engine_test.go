package query

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jumpedia/jumpedia/internal/model"
	"github.com/jumpedia/jumpedia/internal/testutil"
)

type fakeOwnership struct {
	entries map[string]map[string]model.OwnershipEntry
	pruned  map[string][]string
}

func (f *fakeOwnership) Owned(userID string) (map[string]model.OwnershipEntry, error) {
	out := make(map[string]model.OwnershipEntry, len(f.entries[userID]))
	for k, v := range f.entries[userID] {
		out[k] = v
	}
	return out, nil
}

func (f *fakeOwnership) Prune(userID string, names []string) error {
	if f.pruned == nil {
		f.pruned = map[string][]string{}
	}
	f.pruned[userID] = append(f.pruned[userID], names...)
	return nil
}

func runQuery(t *testing.T, e *Engine, tokens ...string) *Result {
	t.Helper()
	q, err := Parse(tokens)
	if err != nil {
		t.Fatalf("parse %v: %v", tokens, err)
	}
	res, err := e.Run(q, "actor")
	if err != nil {
		t.Fatalf("run %v: %v", tokens, err)
	}
	return res
}

func names(res *Result) []string {
	out := make([]string, len(res.Rows))
	for i, row := range res.Rows {
		out[i] = row[0]
	}
	return out
}

func assertNames(t *testing.T, res *Result, want ...string) {
	t.Helper()
	got := names(res)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestRunFilters(t *testing.T) {
	alice := testutil.Jump("Alice Jump", "Cap Kingdom", "2/10", "Database")
	alice.Finder = []string{"Alice", "Bob"}
	bobOnly := testutil.Jump("Bob Jump", "Sand Kingdom", "4/10", "SMO Trickjumping Server")
	bobOnly.Finder = []string{"Bob"}

	store, _ := testutil.SeedCatalog(t, alice, bobOnly)
	e := &Engine{Catalog: store}

	t.Run("server filters exactly", func(t *testing.T) {
		res := runQuery(t, e, "all", "only", "server", "db")
		assertNames(t, res, "Alice Jump")
	})

	t.Run("server never matches by substring", func(t *testing.T) {
		if Matches(alice, model.AttrServer, "Data") {
			t.Error("substring `Data` must not match server `Database`")
		}
	})

	t.Run("finder matches by substring", func(t *testing.T) {
		res := runQuery(t, e, "all", "only", "finder", "ali")
		assertNames(t, res, "Alice Jump")
	})

	t.Run("finder list elements each match", func(t *testing.T) {
		res := runQuery(t, e, "all", "only", "finder", "bob")
		assertNames(t, res, "Alice Jump", "Bob Jump")
	})

	t.Run("or unions groups in base order", func(t *testing.T) {
		res := runQuery(t, e, "all", "only", "kingdom", "sand", "or", "kingdom", "cap")
		assertNames(t, res, "Alice Jump", "Bob Jump")
	})

	t.Run("and narrows within a group", func(t *testing.T) {
		res := runQuery(t, e, "all", "only", "finder", "bob", "and", "server", "db")
		assertNames(t, res, "Alice Jump")
	})

	t.Run("elite bucket on this catalog is empty", func(t *testing.T) {
		res := runQuery(t, e, "all", "only", "tier", "elite")
		if res.Count != 0 {
			t.Errorf("got %v", names(res))
		}
	})
}

func TestRunSorting(t *testing.T) {
	store, _ := testutil.SeedCatalog(t, testutil.SampleJumps()...)
	e := &Engine{Catalog: store}

	t.Run("diff sorts by enumeration index", func(t *testing.T) {
		res := runQuery(t, e, "all", "by", "diff")
		assertNames(t, res, "Cap Skip", "Sand Clip", "Metro Dive", "Moon Vault", "Lost Hop")
	})

	t.Run("unproven sorts after hell tier", func(t *testing.T) {
		res := runQuery(t, e, "all", "by", "diff")
		got := names(res)
		if got[len(got)-1] != "Lost Hop" {
			t.Errorf("Unproven jump must sort last, got %v", got)
		}
		if got[len(got)-2] != "Moon Vault" {
			t.Errorf("Hell Tier jump must sort before Unproven, got %v", got)
		}
	})

	t.Run("location sorts by kingdom order not alphabet", func(t *testing.T) {
		res := runQuery(t, e, "all", "by", "kingdom")
		// Cap < Sand < Lost < Metro < Moon in the kingdom enumeration.
		assertNames(t, res, "Cap Skip", "Sand Clip", "Lost Hop", "Metro Dive", "Moon Vault")
	})

	t.Run("later keys break ties", func(t *testing.T) {
		a := testutil.Jump("Second", "Cap Kingdom", "5/10", "Database")
		b := testutil.Jump("First", "Cap Kingdom", "1/10", "Database")
		store, _ := testutil.SeedCatalog(t, a, b)
		e := &Engine{Catalog: store}
		res := runQuery(t, e, "all", "by", "kingdom", "diff")
		assertNames(t, res, "First", "Second")
	})
}

func TestRunProjection(t *testing.T) {
	store, _ := testutil.SeedCatalog(t, testutil.Jump("I5", "Metro Kingdom", "3/10", "Database"))
	e := &Engine{Catalog: store}

	t.Run("default shows name plus referenced attributes", func(t *testing.T) {
		res := runQuery(t, e, "all", "only", "diff", "3")
		wantCols := []string{model.AttrName, model.AttrDiff}
		if len(res.Columns) != len(wantCols) || res.Columns[0] != wantCols[0] || res.Columns[1] != wantCols[1] {
			t.Fatalf("Columns = %v, want %v", res.Columns, wantCols)
		}
		assertNames(t, res, "I5")
		if res.Rows[0][1] != "3/10" {
			t.Errorf("diff cell = %q", res.Rows[0][1])
		}
	})

	t.Run("plus shows every attribute in canonical order", func(t *testing.T) {
		res := runQuery(t, e, "all", "+")
		if len(res.Columns) != len(model.Attributes) {
			t.Fatalf("Columns = %v", res.Columns)
		}
		for i, attr := range model.Attributes {
			if res.Columns[i] != attr {
				t.Fatalf("Columns = %v", res.Columns)
			}
		}
	})

	t.Run("columns follow canonical order not mention order", func(t *testing.T) {
		res := runQuery(t, e, "all", "only", "server", "db", "and", "diff", "3")
		wantCols := []string{model.AttrName, model.AttrDiff, model.AttrServer}
		if len(res.Columns) != len(wantCols) {
			t.Fatalf("Columns = %v, want %v", res.Columns, wantCols)
		}
		for i := range wantCols {
			if res.Columns[i] != wantCols[i] {
				t.Fatalf("Columns = %v, want %v", res.Columns, wantCols)
			}
		}
	})
}

func TestRunUserScope(t *testing.T) {
	store, _ := testutil.SeedCatalog(t, testutil.SampleJumps()...)

	owned := &fakeOwnership{entries: map[string]map[string]model.OwnershipEntry{
		"actor": {
			"cap skip": {Proof: "https://example.com/proof", TimeGiven: "2024-01-02 03:04:05 (UTC)"},
		},
		"777": {
			"sand clip": {},
		},
	}}
	e := &Engine{Catalog: store, Ownership: owned}

	t.Run("mine resolves to the actor", func(t *testing.T) {
		res := runQuery(t, e, "mine")
		assertNames(t, res, "Cap Skip")
	})

	t.Run("personal columns join in", func(t *testing.T) {
		res := runQuery(t, e, "mine")
		wantCols := []string{model.AttrName, model.AttrProof, model.AttrTimeGiven}
		if len(res.Columns) != len(wantCols) {
			t.Fatalf("Columns = %v, want %v", res.Columns, wantCols)
		}
		if res.Rows[0][1] != "https://example.com/proof" {
			t.Errorf("proof cell = %q", res.Rows[0][1])
		}
	})

	t.Run("numeric scope targets that user", func(t *testing.T) {
		res := runQuery(t, e, "777")
		assertNames(t, res, "Sand Clip")
	})

	t.Run("stale owned names get pruned", func(t *testing.T) {
		stale := &fakeOwnership{entries: map[string]map[string]model.OwnershipEntry{
			"actor": {
				"cap skip": {},
				"ghost":    {},
			},
		}}
		e := &Engine{Catalog: store, Ownership: stale}
		res := runQuery(t, e, "mine")
		assertNames(t, res, "Cap Skip")
		if got := stale.pruned["actor"]; len(got) != 1 || got[0] != "ghost" {
			t.Errorf("pruned = %v", stale.pruned)
		}
	})

	t.Run("prune aborts past the cap", func(t *testing.T) {
		entries := map[string]model.OwnershipEntry{}
		for i := 0; i < PruneCap+1; i++ {
			entries[fmt.Sprintf("ghost %d", i)] = model.OwnershipEntry{}
		}
		big := &fakeOwnership{entries: map[string]map[string]model.OwnershipEntry{"actor": entries}}
		e := &Engine{Catalog: store, Ownership: big}
		q, err := Parse([]string{"mine"})
		if err != nil {
			t.Fatal(err)
		}
		if _, err := e.Run(q, "actor"); err == nil {
			t.Fatal("expected prune-cap error")
		}
		if len(big.pruned["actor"]) != 0 {
			t.Errorf("pruned despite cap: %v", big.pruned)
		}
	})
}

func TestRunCooldown(t *testing.T) {
	records := make([]*model.Record, ResultThreshold+1)
	for i := range records {
		records[i] = testutil.Jump(fmt.Sprintf("Jump %03d", i), "Cap Kingdom", "3/10", "Database")
	}
	store, _ := testutil.SeedCatalog(t, records...)

	clock := time.Unix(1_700_000_000, 0)
	limiter := NewLimiter(10*time.Second, func() time.Time { return clock })
	e := &Engine{Catalog: store, Limiter: limiter}

	q, err := Parse([]string{"all"})
	if err != nil {
		t.Fatal(err)
	}

	res, err := e.Run(q, "actor")
	if err != nil {
		t.Fatalf("first large query: %v", err)
	}
	if res.Count != ResultThreshold+1 {
		t.Fatalf("Count = %d", res.Count)
	}

	clock = clock.Add(2 * time.Second)
	_, err = e.Run(q, "actor")
	var rl *RateLimitedError
	if !errors.As(err, &rl) {
		t.Fatalf("expected RateLimitedError, got %v", err)
	}
	if rl.Remaining != 8*time.Second {
		t.Errorf("Remaining = %v, want 8s", rl.Remaining)
	}

	// The rejected call must not restart the window.
	clock = clock.Add(9 * time.Second)
	if _, err := e.Run(q, "actor"); err != nil {
		t.Fatalf("query after cooldown: %v", err)
	}

	t.Run("other actors are unaffected", func(t *testing.T) {
		clock = clock.Add(time.Second)
		if _, err := e.Run(q, "someone-else"); err != nil {
			t.Fatalf("other actor: %v", err)
		}
	})

	t.Run("small results never wait", func(t *testing.T) {
		small, err := Parse([]string{"all", "only", "name", "Jump 000"})
		if err != nil {
			t.Fatal(err)
		}
		for i := 0; i < 3; i++ {
			if _, err := e.Run(small, "actor"); err != nil {
				t.Fatalf("small query %d: %v", i, err)
			}
		}
	})
}
