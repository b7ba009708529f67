package query

import (
	"fmt"
	"time"
)

// RateLimitedError tells the caller how long to wait before retrying.
type RateLimitedError struct {
	Remaining time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("please wait %s before requesting another large result", e.Remaining.Round(time.Second))
}

// Limiter is a simple cooldown-timestamp map keyed per actor and command.
// It is the only cross-call shared state in the core; the clock is
// injected so tests run deterministically.
type Limiter struct {
	cooldown time.Duration
	now      func() time.Time
	last     map[string]time.Time
}

// NewLimiter creates a limiter with the given cooldown window. now may be
// nil to use the wall clock.
func NewLimiter(cooldown time.Duration, now func() time.Time) *Limiter {
	if now == nil {
		now = time.Now
	}
	return &Limiter{cooldown: cooldown, now: now, last: map[string]time.Time{}}
}

// Allow checks the cooldown for the key. A call inside the window fails
// with RateLimitedError and leaves the window start untouched; a call
// outside it succeeds and restarts the window.
func (l *Limiter) Allow(key string) error {
	now := l.now()
	if last, ok := l.last[key]; ok {
		if elapsed := now.Sub(last); elapsed < l.cooldown {
			return &RateLimitedError{Remaining: l.cooldown - elapsed}
		}
	}
	l.last[key] = now
	return nil
}
