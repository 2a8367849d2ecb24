package spam

import (
	"sync"
	"time"
)

const (
	rateWindow  = time.Hour
	maxPerIP    = 3
	maxPerEmail = 2
)

// RateLimiter enforces the public contact form's submission budget:
// at most 3 submissions per IP and 2 per email address in a sliding
// one-hour window. State is in memory; restarting the server resets it,
// which is acceptable for this traffic profile.
type RateLimiter struct {
	mu      sync.Mutex
	history map[string][]time.Time
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{history: make(map[string][]time.Time)}
}

// Allow records the attempt and reports whether it is within budget.
// Denied attempts are not recorded.
func (r *RateLimiter) Allow(ip, email string, now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := now.Add(-rateWindow)
	r.evict(cutoff)

	ipKey := "ip:" + ip
	emailKey := "email:" + email

	if len(r.history[ipKey]) >= maxPerIP {
		return false
	}
	if len(r.history[emailKey]) >= maxPerEmail {
		return false
	}

	r.history[ipKey] = append(r.history[ipKey], now)
	r.history[emailKey] = append(r.history[emailKey], now)
	return true
}

// evict drops timestamps older than cutoff. Caller must hold mu.
func (r *RateLimiter) evict(cutoff time.Time) {
	for key, stamps := range r.history {
		kept := stamps[:0]
		for _, ts := range stamps {
			if ts.After(cutoff) {
				kept = append(kept, ts)
			}
		}
		if len(kept) == 0 {
			delete(r.history, key)
		} else {
			r.history[key] = kept
		}
	}
}
