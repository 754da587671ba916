package ratelimit

import (
	"sync"
	"time"
)

// Limiter is the capability injected into HTTP middleware. Allow reports
// whether the caller identified by key may proceed. Implementations are
// best-effort and advisory, never part of the admission atomicity path.
type Limiter interface {
	Allow(key string) bool
}

type windowEntry struct {
	count       int
	windowStart time.Time
}

// WindowLimiter is a fixed-window counter: at most maxRequests per key per
// window. Counts reset at window boundaries rather than sliding.
type WindowLimiter struct {
	mu          sync.Mutex
	entries     map[string]*windowEntry
	window      time.Duration
	maxRequests int
	lastSweep   time.Time
	now         func() time.Time
}

func NewWindowLimiter(window time.Duration, maxRequests int) *WindowLimiter {
	return &WindowLimiter{
		entries:     make(map[string]*windowEntry),
		window:      window,
		maxRequests: maxRequests,
		now:         time.Now,
	}
}

func (l *WindowLimiter) Allow(key string) bool {
	if l.maxRequests <= 0 || l.window <= 0 {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	entry, ok := l.entries[key]
	if !ok || now.Sub(entry.windowStart) >= l.window {
		l.entries[key] = &windowEntry{count: 1, windowStart: now}
		return true
	}

	if entry.count >= l.maxRequests {
		return false
	}

	entry.count++
	return true
}

// sweep drops stale windows opportunistically, no background goroutine.
func (l *WindowLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.window {
		return
	}
	l.lastSweep = now

	for key, entry := range l.entries {
		if now.Sub(entry.windowStart) >= l.window {
			delete(l.entries, key)
		}
	}
}
