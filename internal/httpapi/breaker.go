package httpapi

import (
	"sync"
	"time"
)

// Breaker is an in-memory circuit breaker over the remote listing
// service. It opens after threshold failures inside window and stays
// open for openDuration; while open, query calls fail fast instead of
// piling timeouts onto a struggling upstream.
type Breaker struct {
	mu           sync.Mutex
	failures     []time.Time
	threshold    int
	window       time.Duration
	openUntil    time.Time
	openDuration time.Duration
}

// NewBreaker creates a configured breaker.
func NewBreaker(threshold int, window, openDuration time.Duration) *Breaker {
	return &Breaker{
		threshold:    threshold,
		window:       window,
		openDuration: openDuration,
		failures:     make([]time.Time, 0, threshold),
	}
}

// RecordFailure records one failed call and opens the breaker when the
// threshold is reached within the window.
func (b *Breaker) RecordFailure() {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-b.window)
	i := 0
	for ; i < len(b.failures); i++ {
		if b.failures[i].After(cutoff) {
			break
		}
	}
	if i > 0 {
		b.failures = append([]time.Time{}, b.failures[i:]...)
	}
	b.failures = append(b.failures, now)

	if len(b.failures) >= b.threshold {
		b.openUntil = now.Add(b.openDuration)
	}
}

// RecordSuccess resets the failure history.
func (b *Breaker) RecordSuccess() {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = b.failures[:0]
	b.openUntil = time.Time{}
}

// IsOpen reports whether the breaker currently rejects calls.
func (b *Breaker) IsOpen() bool {
	if b == nil {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return time.Now().Before(b.openUntil)
}
