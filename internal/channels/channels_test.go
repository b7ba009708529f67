package channels

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStore(t *testing.T) {
	dataDir := t.TempDir()

	s, err := Open(dataDir)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("unconfigured channels are ignored", func(t *testing.T) {
		if got := s.Get("anything"); got != KindIgnored {
			t.Errorf("got %q", got)
		}
	})

	if err := s.Set("general", KindCommands); err != nil {
		t.Fatal(err)
	}
	if err := s.Set("news", KindAnnouncements); err != nil {
		t.Fatal(err)
	}

	t.Run("set and get", func(t *testing.T) {
		if got := s.Get("general"); got != KindCommands {
			t.Errorf("got %q", got)
		}
	})

	t.Run("list is sorted", func(t *testing.T) {
		ids := s.List()
		if len(ids) != 2 || ids[0] != "general" || ids[1] != "news" {
			t.Errorf("ids = %v", ids)
		}
	})

	t.Run("invalid kind rejected", func(t *testing.T) {
		if err := s.Set("x", Kind("loud")); err == nil {
			t.Error("expected ErrUnknownKind")
		}
	})

	t.Run("reopen sees the same mapping", func(t *testing.T) {
		reopened, err := Open(dataDir)
		if err != nil {
			t.Fatal(err)
		}
		if got := reopened.Get("news"); got != KindAnnouncements {
			t.Errorf("got %q", got)
		}
	})

	t.Run("bad kind on disk rejected at open", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, FileName), []byte("general: loud\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Open(dir); err == nil {
			t.Error("expected ErrUnknownKind")
		}
	})
}
