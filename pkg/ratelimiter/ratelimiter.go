// Package ratelimiter is an in-memory sliding window limiter keyed by string.
package ratelimiter

import (
	"sync"
	"time"
)

// Limiter allows at most MaxAttempts per key within Window.
//
//	rl := ratelimiter.New(3, 15*time.Minute)
//	defer rl.Stop()
//
//	if !rl.Allow(email) {
//	    return
//	}
type Limiter struct {
	mu          sync.Mutex
	attempts    map[string][]time.Time
	maxAttempts int
	window      time.Duration
	now         func() time.Time
	stopCleanup chan struct{}
	stopped     bool
}

// New creates a limiter and starts its cleanup goroutine. Call Stop to release it.
func New(maxAttempts int, window time.Duration) *Limiter {
	rl := newLimiter(maxAttempts, window, time.Now)
	go rl.cleanup(time.Minute)
	return rl
}

func newLimiter(maxAttempts int, window time.Duration, now func() time.Time) *Limiter {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Limiter{
		attempts:    make(map[string][]time.Time),
		maxAttempts: maxAttempts,
		window:      window,
		now:         now,
		stopCleanup: make(chan struct{}),
	}
}

// Allow records an attempt for key and reports whether it is within the limit.
// Rejected attempts are not recorded.
func (rl *Limiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	valid := rl.validLocked(key, now)

	if len(valid) >= rl.maxAttempts {
		rl.attempts[key] = valid
		return false
	}

	rl.attempts[key] = append(valid, now)
	return true
}

// RetryAfter returns how long until key may attempt again, zero if it may now.
func (rl *Limiter) RetryAfter(key string) time.Duration {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	valid := rl.validLocked(key, now)
	if len(valid) < rl.maxAttempts {
		return 0
	}

	// valid is in insertion order so the oldest attempt expires first
	return valid[0].Add(rl.window).Sub(now)
}

// Reset forgets every attempt for key
func (rl *Limiter) Reset(key string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.attempts, key)
}

func (rl *Limiter) validLocked(key string, now time.Time) []time.Time {
	cutoff := now.Add(-rl.window)
	attempts := rl.attempts[key]

	valid := make([]time.Time, 0, len(attempts)+1)
	for _, t := range attempts {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}
	return valid
}

// prune drops keys with no attempt inside the window
func (rl *Limiter) prune() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-rl.window)
	for key, attempts := range rl.attempts {
		if len(attempts) == 0 || !attempts[len(attempts)-1].After(cutoff) {
			delete(rl.attempts, key)
		}
	}
}

func (rl *Limiter) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.prune()
		case <-rl.stopCleanup:
			return
		}
	}
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (rl *Limiter) Stop() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if !rl.stopped {
		close(rl.stopCleanup)
		rl.stopped = true
	}
}

// Len returns the number of tracked keys
func (rl *Limiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.attempts)
}
