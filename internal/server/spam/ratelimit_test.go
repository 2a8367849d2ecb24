package spam

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_PerIPBudget(t *testing.T) {
	rl := NewRateLimiter()
	now := time.Now()

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("10.0.0.1", "a"+string(rune('0'+i))+"@example.com", now))
	}
	assert.False(t, rl.Allow("10.0.0.1", "fresh@example.com", now), "4th submission from same IP must be denied")
	assert.True(t, rl.Allow("10.0.0.2", "fresh@example.com", now), "other IPs are unaffected")
}

func TestRateLimiter_PerEmailBudget(t *testing.T) {
	rl := NewRateLimiter()
	now := time.Now()

	assert.True(t, rl.Allow("10.0.0.1", "repeat@example.com", now))
	assert.True(t, rl.Allow("10.0.0.2", "repeat@example.com", now))
	assert.False(t, rl.Allow("10.0.0.3", "repeat@example.com", now), "3rd submission for same email must be denied")
}

func TestRateLimiter_WindowSlides(t *testing.T) {
	rl := NewRateLimiter()
	start := time.Now()

	for i := 0; i < 3; i++ {
		email := "x" + string(rune('0'+i)) + "@example.com"
		assert.True(t, rl.Allow("10.0.0.1", email, start.Add(time.Duration(i)*time.Minute)))
	}
	assert.False(t, rl.Allow("10.0.0.1", "y@example.com", start.Add(30*time.Minute)))

	// An hour after the first attempts, the window has moved past them.
	assert.True(t, rl.Allow("10.0.0.1", "y@example.com", start.Add(65*time.Minute)))
}

func TestRateLimiter_DeniedAttemptsNotRecorded(t *testing.T) {
	rl := NewRateLimiter()
	now := time.Now()

	assert.True(t, rl.Allow("10.0.0.1", "a@example.com", now))
	assert.True(t, rl.Allow("10.0.0.1", "a@example.com", now))
	// Email budget exhausted; these denials must not consume IP budget.
	assert.False(t, rl.Allow("10.0.0.1", "a@example.com", now))
	assert.False(t, rl.Allow("10.0.0.1", "a@example.com", now))
	assert.True(t, rl.Allow("10.0.0.1", "b@example.com", now))
}
