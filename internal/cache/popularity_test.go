package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPopularityThreshold(t *testing.T) {
	tr := NewPopularityTracker(3, time.Minute)

	assert.False(t, tr.Record("k"))
	assert.False(t, tr.Record("k"))
	assert.True(t, tr.Record("k"))
	assert.True(t, tr.Popular("k"))

	assert.False(t, tr.Popular("other"))
}

func TestPopularityWindowReset(t *testing.T) {
	now := time.Now()
	tr := NewPopularityTracker(2, time.Minute)
	tr.now = func() time.Time { return now }

	tr.Record("k")
	assert.True(t, tr.Record("k"))

	// Advance past the window: the count starts over.
	now = now.Add(2 * time.Minute)
	assert.False(t, tr.Popular("k"))
	assert.False(t, tr.Record("k"))
}

func TestPopularityDefaults(t *testing.T) {
	tr := NewPopularityTracker(0, 0)
	assert.Equal(t, 10, tr.threshold)
	assert.Equal(t, 10*time.Minute, tr.window)
}
