package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewStoreFallsBackToMemory(t *testing.T) {
	store := NewStore(Config{}, nil)

	mem, ok := store.(*MemoryStore)
	assert.True(t, ok, "no redis address must select the memory backend")
	if ok {
		mem.Close()
	}
}
