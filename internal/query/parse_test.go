package query

import (
	"errors"
	"strings"
	"testing"

	"github.com/jumpedia/jumpedia/internal/model"
)

func TestParseScope(t *testing.T) {
	cases := []struct {
		tokens []string
		scope  string
	}{
		{nil, "all"},
		{[]string{"all"}, "all"},
		{[]string{"ALL"}, "all"},
		{[]string{"mine"}, "mine"},
		{[]string{"123456789"}, "123456789"},
	}
	for _, c := range cases {
		q, err := Parse(c.tokens)
		if err != nil {
			t.Errorf("Parse(%v): %v", c.tokens, err)
			continue
		}
		if q.Scope != c.scope {
			t.Errorf("Parse(%v).Scope = %q, want %q", c.tokens, q.Scope, c.scope)
		}
	}

	t.Run("bad scope is a syntax error", func(t *testing.T) {
		var serr *SyntaxError
		if _, err := Parse([]string{"everything"}); !errors.As(err, &serr) {
			t.Fatalf("expected SyntaxError, got %v", err)
		}
	})
}

func TestParseOnly(t *testing.T) {
	t.Run("single condition", func(t *testing.T) {
		q, err := Parse([]string{"all", "only", "diff", "3"})
		if err != nil {
			t.Fatal(err)
		}
		want := [][]Condition{{{Attr: model.AttrDiff, Value: "3/10"}}}
		assertGroups(t, q.Groups, want)
	})

	t.Run("and extends the group", func(t *testing.T) {
		q, err := Parse([]string{"all", "only", "diff", "3", "and", "server", "db"})
		if err != nil {
			t.Fatal(err)
		}
		want := [][]Condition{{
			{Attr: model.AttrDiff, Value: "3/10"},
			{Attr: model.AttrServer, Value: "Database"},
		}}
		assertGroups(t, q.Groups, want)
	})

	t.Run("or starts a new group", func(t *testing.T) {
		q, err := Parse([]string{"all", "only", "diff", "3", "or", "kingdom", "metro"})
		if err != nil {
			t.Fatal(err)
		}
		want := [][]Condition{
			{{Attr: model.AttrDiff, Value: "3/10"}},
			{{Attr: model.AttrLocation, Value: "Metro Kingdom"}},
		}
		assertGroups(t, q.Groups, want)
	})

	t.Run("aliases resolve inside conditions", func(t *testing.T) {
		q, err := Parse([]string{"all", "only", "k", "metro"})
		if err != nil {
			t.Fatal(err)
		}
		if q.Groups[0][0].Attr != model.AttrLocation {
			t.Errorf("got attr %q", q.Groups[0][0].Attr)
		}
	})

	t.Run("bucket filter values accepted", func(t *testing.T) {
		q, err := Parse([]string{"all", "only", "tier", "elite"})
		if err != nil {
			t.Fatal(err)
		}
		if q.Groups[0][0].Value != "elite" {
			t.Errorf("got value %q", q.Groups[0][0].Value)
		}
	})

	t.Run("missing value reported", func(t *testing.T) {
		var serr *SyntaxError
		if _, err := Parse([]string{"all", "only", "diff"}); !errors.As(err, &serr) {
			t.Fatalf("expected SyntaxError, got %v", err)
		}
	})

	t.Run("dangling and reported", func(t *testing.T) {
		var serr *SyntaxError
		if _, err := Parse([]string{"all", "only", "diff", "3", "and"}); !errors.As(err, &serr) {
			t.Fatalf("expected SyntaxError, got %v", err)
		}
	})

	t.Run("unknown attribute names the alternatives", func(t *testing.T) {
		_, err := Parse([]string{"all", "only", "bogus", "3"})
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "`location`") {
			t.Errorf("hint missing from %q", err.Error())
		}
	})
}

func TestParseBy(t *testing.T) {
	t.Run("multiple sort keys in order", func(t *testing.T) {
		q, err := Parse([]string{"all", "by", "kingdom", "diff"})
		if err != nil {
			t.Fatal(err)
		}
		if len(q.SortKeys) != 2 || q.SortKeys[0] != model.AttrLocation || q.SortKeys[1] != model.AttrDiff {
			t.Errorf("SortKeys = %v", q.SortKeys)
		}
	})

	t.Run("only before by", func(t *testing.T) {
		q, err := Parse([]string{"all", "only", "server", "db", "by", "diff"})
		if err != nil {
			t.Fatal(err)
		}
		if len(q.Groups) != 1 || len(q.SortKeys) != 1 {
			t.Errorf("Groups = %v, SortKeys = %v", q.Groups, q.SortKeys)
		}
	})

	t.Run("by without attribute reported", func(t *testing.T) {
		var serr *SyntaxError
		if _, err := Parse([]string{"all", "by"}); !errors.As(err, &serr) {
			t.Fatalf("expected SyntaxError, got %v", err)
		}
	})

	t.Run("only after by rejected", func(t *testing.T) {
		if _, err := Parse([]string{"all", "by", "diff", "only", "server", "db"}); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestParseProjection(t *testing.T) {
	cases := []struct {
		tokens []string
		want   Projection
	}{
		{[]string{"all"}, ProjectDefault},
		{[]string{"all", "+"}, ProjectAll},
		{[]string{"all", "only", "diff", "3", "-"}, ProjectReferenced},
	}
	for _, c := range cases {
		q, err := Parse(c.tokens)
		if err != nil {
			t.Errorf("Parse(%v): %v", c.tokens, err)
			continue
		}
		if q.Projection != c.want {
			t.Errorf("Parse(%v).Projection = %v, want %v", c.tokens, q.Projection, c.want)
		}
	}
}

func TestParseReferenced(t *testing.T) {
	q, err := Parse([]string{"all", "only", "diff", "3", "and", "server", "db", "by", "diff"})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{model.AttrDiff, model.AttrServer}
	if len(q.Referenced) != len(want) {
		t.Fatalf("Referenced = %v, want %v", q.Referenced, want)
	}
	for i := range want {
		if q.Referenced[i] != want[i] {
			t.Fatalf("Referenced = %v, want %v", q.Referenced, want)
		}
	}
}

func assertGroups(t *testing.T, got, want [][]Condition) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d groups, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if len(got[i]) != len(want[i]) {
			t.Fatalf("group %d: got %v, want %v", i, got[i], want[i])
		}
		for j := range want[i] {
			if got[i][j] != want[i][j] {
				t.Errorf("group %d cond %d: got %+v, want %+v", i, j, got[i][j], want[i][j])
			}
		}
	}
}
