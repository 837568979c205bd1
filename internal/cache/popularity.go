package cache

import (
	"sync"
	"time"
)

// PopularityTracker counts lookups per cache key inside a fixed window.
// A key whose count reaches the threshold within the current window is
// "popular" and qualifies for the extended TTL. Counts reset when the
// window rolls over; this is a timestamp check, not a sliding log.
type PopularityTracker struct {
	mu        sync.Mutex
	window    time.Duration
	threshold int
	buckets   map[string]*popularityBucket

	now func() time.Time // overridable in tests
}

type popularityBucket struct {
	count       int
	windowStart time.Time
}

// NewPopularityTracker creates a tracker. Non-positive arguments fall back
// to 10 hits within 10 minutes.
func NewPopularityTracker(threshold int, window time.Duration) *PopularityTracker {
	if threshold <= 0 {
		threshold = 10
	}
	if window <= 0 {
		window = 10 * time.Minute
	}
	return &PopularityTracker{
		window:    window,
		threshold: threshold,
		buckets:   make(map[string]*popularityBucket),
		now:       time.Now,
	}
}

// Record counts one lookup for key and reports whether the key is popular
// in the current window.
func (t *PopularityTracker) Record(key string) bool {
	now := t.now()

	t.mu.Lock()
	defer t.mu.Unlock()

	b, ok := t.buckets[key]
	if !ok || now.Sub(b.windowStart) >= t.window {
		b = &popularityBucket{windowStart: now}
		t.buckets[key] = b
	}
	b.count++

	// Opportunistic sweep: drop stale buckets once the map grows. Keeps
	// memory bounded without a janitor goroutine.
	if len(t.buckets) > 4096 {
		for k, v := range t.buckets {
			if now.Sub(v.windowStart) >= t.window {
				delete(t.buckets, k)
			}
		}
	}

	return b.count >= t.threshold
}

// Popular reports whether key is currently popular without counting a hit.
func (t *PopularityTracker) Popular(key string) bool {
	now := t.now()

	t.mu.Lock()
	defer t.mu.Unlock()

	b, ok := t.buckets[key]
	if !ok || now.Sub(b.windowStart) >= t.window {
		return false
	}
	return b.count >= t.threshold
}
