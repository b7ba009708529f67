package secret

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeSecret(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "keys.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestGetKey(t *testing.T) {
	path := writeSecret(t, `{"PASTEE_KEY": "abc123"}`)

	t.Run("present key", func(t *testing.T) {
		got, err := GetKey(path, "PASTEE_KEY")
		if err != nil {
			t.Fatal(err)
		}
		if got != "abc123" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("missing key", func(t *testing.T) {
		if _, err := GetKey(path, "OTHER"); !errors.Is(err, ErrNoSuchKey) {
			t.Errorf("expected ErrNoSuchKey, got %v", err)
		}
	})

	t.Run("non-json path rejected", func(t *testing.T) {
		if _, err := GetKey("/etc/passwd", "PASTEE_KEY"); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := GetKey(filepath.Join(t.TempDir(), "nope.json"), "K"); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		bad := writeSecret(t, `{`)
		if _, err := GetKey(bad, "K"); err == nil {
			t.Error("expected error")
		}
	})
}
