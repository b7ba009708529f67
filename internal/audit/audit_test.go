package audit

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLogger(t *testing.T) {
	dataDir := t.TempDir()
	l := New(dataDir, true)

	if err := l.LogBatch("create", "abcd1234", "Mod (100)", "ok"); err != nil {
		t.Fatal(err)
	}
	if err := l.LogOwnership("give", "1", "cap skip"); err != nil {
		t.Fatal(err)
	}

	t.Run("entries read back in order", func(t *testing.T) {
		entries, err := l.Read()
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 2 {
			t.Fatalf("entries = %v", entries)
		}
		if entries[0].Entity != "batch" || entries[0].Operation != "create" || entries[0].Outcome != "ok" {
			t.Errorf("entries[0] = %+v", entries[0])
		}
		if entries[1].Entity != "ownership" || entries[1].ID != "cap skip" || entries[1].Actor != "1" {
			t.Errorf("entries[1] = %+v", entries[1])
		}
		if entries[0].Timestamp.IsZero() {
			t.Error("timestamp not stamped")
		}
	})

	t.Run("filter by entity id", func(t *testing.T) {
		entries, err := l.ReadForEntity("abcd1234")
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 1 || entries[0].Entity != "batch" {
			t.Errorf("entries = %v", entries)
		}
	})

	t.Run("malformed lines skipped", func(t *testing.T) {
		path := filepath.Join(dataDir, "audit.log")
		f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := f.WriteString("{broken\n"); err != nil {
			t.Fatal(err)
		}
		f.Close()

		entries, err := l.Read()
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 2 {
			t.Errorf("entries = %v", entries)
		}
	})
}

func TestDisabledLogger(t *testing.T) {
	dataDir := t.TempDir()
	l := New(dataDir, false)

	if l.Enabled() {
		t.Error("Enabled() = true")
	}
	if err := l.LogBatch("create", "x", "y", "z"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dataDir, "audit.log")); !os.IsNotExist(err) {
		t.Error("disabled logger wrote a file")
	}
	entries, err := l.Read()
	if err != nil || entries != nil {
		t.Errorf("entries = %v, err = %v", entries, err)
	}
}
