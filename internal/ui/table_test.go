package ui

import (
	"strings"
	"testing"
)

func TestTable(t *testing.T) {
	t.Run("exact layout", func(t *testing.T) {
		got := Table(
			[]string{"name", "diff"},
			[][]string{
				{"Cap Skip", "3/10"},
				{"I5", "10/10"},
			},
		)
		want := strings.Join([]string{
			"NAME:     > DIFF: ",
			"Cap Skip  | 3/10",
			"I5        | 10/10",
		}, "\n")
		if got != want {
			t.Errorf("got:\n%s\nwant:\n%s", got, want)
		}
	})

	t.Run("column widens for long values", func(t *testing.T) {
		got := Table(
			[]string{"name", "server"},
			[][]string{{"X", "SMO Trickjumping Server"}},
		)
		lines := strings.Split(got, "\n")
		if len(lines) != 2 {
			t.Fatalf("got %q", got)
		}
		header, row := lines[0], lines[1]
		if !strings.HasPrefix(header, "NAME: ") {
			t.Errorf("header = %q", header)
		}
		if strings.Index(header, "> ") != strings.Index(row, "| ") {
			t.Errorf("separators misaligned:\n%q\n%q", header, row)
		}
	})

	t.Run("underscored titles spell out", func(t *testing.T) {
		got := Table([]string{"time_given"}, nil)
		if got != "TIME GIVEN: " {
			t.Errorf("got %q", got)
		}
	})

	t.Run("no columns yields nothing", func(t *testing.T) {
		if got := Table(nil, nil); got != "" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("short rows pad out", func(t *testing.T) {
		got := Table([]string{"name", "proof"}, [][]string{{"Cap Skip"}})
		lines := strings.Split(got, "\n")
		if len(lines) != 2 {
			t.Fatalf("got %q", got)
		}
		if !strings.Contains(lines[1], "Cap Skip") || !strings.Contains(lines[1], "| ") {
			t.Errorf("row = %q", lines[1])
		}
	})
}
