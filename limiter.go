package blogdesk

import (
	"sync"
	"time"
)

// RateLimiter limits attempts per key (usually a client IP) inside a sliding
// window. It guards login and content generation.
type RateLimiter struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
	max      int
	window   time.Duration
	stop     chan struct{}
	once     sync.Once
}

// NewRateLimiter creates a RateLimiter that allows max attempts per window.
// Call Stop to end its cleanup goroutine.
func NewRateLimiter(max int, window time.Duration) *RateLimiter {
	l := &RateLimiter{
		attempts: make(map[string][]time.Time),
		max:      max,
		window:   window,
		stop:     make(chan struct{}),
	}
	go l.cleanup()
	return l
}

func (l *RateLimiter) cleanup() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()
	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
		}
		cutoff := time.Now().Add(-l.window)
		l.mu.Lock()
		for key, hits := range l.attempts {
			if kept := prune(hits, cutoff); len(kept) == 0 {
				delete(l.attempts, key)
			} else {
				l.attempts[key] = kept
			}
		}
		l.mu.Unlock()
	}
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (l *RateLimiter) Stop() {
	l.once.Do(func() { close(l.stop) })
}

// Allow checks the limit and records the attempt when it is allowed.
func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	kept := prune(l.attempts[key], time.Now().Add(-l.window))
	if len(kept) >= l.max {
		l.attempts[key] = kept
		return false
	}
	l.attempts[key] = append(kept, time.Now())
	return true
}

// Check returns true if key has not exceeded the limit. It does not record
// an attempt; call Record separately, e.g. only on a failed login.
func (l *RateLimiter) Check(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	kept := prune(l.attempts[key], time.Now().Add(-l.window))
	l.attempts[key] = kept
	return len(kept) < l.max
}

// Record registers an attempt for key.
func (l *RateLimiter) Record(key string) {
	l.mu.Lock()
	l.attempts[key] = append(l.attempts[key], time.Now())
	l.mu.Unlock()
}

// Reset forgets every attempt for key, e.g. after a successful login.
func (l *RateLimiter) Reset(key string) {
	l.mu.Lock()
	delete(l.attempts, key)
	l.mu.Unlock()
}

func prune(hits []time.Time, cutoff time.Time) []time.Time {
	kept := hits[:0]
	for _, t := range hits {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}
