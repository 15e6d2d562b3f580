// internal/app/system/ratelimit/ratelimit.go
package ratelimit

import (
	"sync"
	"time"

	"github.com/dalemusser/placementhub/internal/app/system/clock"
	"github.com/dalemusser/waffle/pantry/text"
)

// sweepAt is the window count above which Allow drops expired windows.
const sweepAt = 1024

// Limiter counts hits per key in a fixed window that starts with the
// first hit. It is safe for concurrent use. Keys are folded, so "Rep1"
// and "rep1" share a window.
type Limiter struct {
	mu       sync.Mutex
	windows  map[string]*window
	limit    int           // max hits per window
	duration time.Duration // window duration
	clock    clock.Clock
}

type window struct {
	count     int
	expiresAt time.Time
}

// New creates a limiter allowing limit hits per duration.
func New(limit int, duration time.Duration, clk clock.Clock) *Limiter {
	if clk == nil {
		clk = clock.System{}
	}
	return &Limiter{
		windows:  make(map[string]*window),
		limit:    limit,
		duration: duration,
		clock:    clk,
	}
}

// Allow records one hit for key and reports whether it was within the limit.
func (l *Limiter) Allow(key string) bool {
	key = text.Fold(key)
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	if len(l.windows) > sweepAt {
		l.sweep(now)
	}
	w, exists := l.windows[key]

	if !exists || now.After(w.expiresAt) {
		l.windows[key] = &window{
			count:     1,
			expiresAt: now.Add(l.duration),
		}
		return true
	}

	if w.count >= l.limit {
		return false
	}

	w.count++
	return true
}

// Remaining returns how many hits are left for key in the current window.
func (l *Limiter) Remaining(key string) int {
	key = text.Fold(key)
	l.mu.Lock()
	defer l.mu.Unlock()

	w, exists := l.windows[key]
	if !exists || l.clock.Now().After(w.expiresAt) {
		return l.limit
	}

	remaining := l.limit - w.count
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Blocked reports whether key has used up its window.
func (l *Limiter) Blocked(key string) bool {
	return l.Remaining(key) == 0
}

// RetryAfter returns how long until key's window ends, or zero.
func (l *Limiter) RetryAfter(key string) time.Duration {
	key = text.Fold(key)
	l.mu.Lock()
	defer l.mu.Unlock()

	w, exists := l.windows[key]
	if !exists {
		return 0
	}
	if d := w.expiresAt.Sub(l.clock.Now()); d > 0 {
		return d
	}
	return 0
}

// Reset clears the window for key.
func (l *Limiter) Reset(key string) {
	key = text.Fold(key)
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.windows, key)
}

// sweep removes expired windows. Callers hold l.mu.
func (l *Limiter) sweep(now time.Time) {
	for key, w := range l.windows {
		if now.After(w.expiresAt) {
			delete(l.windows, key)
		}
	}
}
