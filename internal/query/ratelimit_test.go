package query

import (
	"errors"
	"testing"
	"time"
)

func TestLimiter(t *testing.T) {
	clock := time.Unix(0, 0)
	l := NewLimiter(10*time.Second, func() time.Time { return clock })

	if err := l.Allow("a"); err != nil {
		t.Fatalf("first call: %v", err)
	}

	t.Run("rejection keeps the window start", func(t *testing.T) {
		clock = clock.Add(4 * time.Second)
		var rl *RateLimitedError
		if err := l.Allow("a"); !errors.As(err, &rl) {
			t.Fatalf("expected RateLimitedError, got %v", err)
		}
		if rl.Remaining != 6*time.Second {
			t.Errorf("Remaining = %v, want 6s", rl.Remaining)
		}

		// If the rejected call had restarted the window this would still
		// be inside it.
		clock = clock.Add(6 * time.Second)
		if err := l.Allow("a"); err != nil {
			t.Fatalf("call at window end: %v", err)
		}
	})

	t.Run("keys are independent", func(t *testing.T) {
		if err := l.Allow("b"); err != nil {
			t.Fatalf("fresh key: %v", err)
		}
	})
}
