package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWindowLimiterEnforcesThreshold(t *testing.T) {
	now := time.Unix(1000, 0)
	limiter := NewWindowLimiter(time.Minute, 3)
	limiter.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow("1.2.3.4"), "request %d within threshold", i)
	}
	assert.False(t, limiter.Allow("1.2.3.4"), "over threshold")

	// Other keys are counted independently.
	assert.True(t, limiter.Allow("5.6.7.8"))
}

func TestWindowLimiterResetsAfterWindow(t *testing.T) {
	now := time.Unix(1000, 0)
	limiter := NewWindowLimiter(time.Minute, 1)
	limiter.now = func() time.Time { return now }

	assert.True(t, limiter.Allow("1.2.3.4"))
	assert.False(t, limiter.Allow("1.2.3.4"))

	now = now.Add(61 * time.Second)
	assert.True(t, limiter.Allow("1.2.3.4"), "new window admits again")
}

func TestWindowLimiterSweepsStaleEntries(t *testing.T) {
	now := time.Unix(1000, 0)
	limiter := NewWindowLimiter(time.Minute, 5)
	limiter.now = func() time.Time { return now }

	limiter.Allow("a")
	limiter.Allow("b")

	now = now.Add(2 * time.Minute)
	limiter.Allow("c")

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	assert.Len(t, limiter.entries, 1, "stale windows swept on access")
}

func TestWindowLimiterDisabled(t *testing.T) {
	limiter := NewWindowLimiter(0, 0)
	for i := 0; i < 100; i++ {
		assert.True(t, limiter.Allow("x"))
	}
}
