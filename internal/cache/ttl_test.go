package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTLForByTab(t *testing.T) {
	p := DefaultTTLPolicy()

	tests := []struct {
		name string
		key  Key
		want time.Duration
	}{
		{"default tab", SearchKey("q", "c", "p", ""), p.SearchDefault},
		{"news", SearchKey("q", "c", "p", "news"), p.SearchNews},
		{"staff", SearchKey("q", "c", "p", "staff"), p.SearchStaff},
		{"programs", SearchKey("q", "c", "p", "programs"), p.SearchPrograms},
		{"unknown tab falls back", SearchKey("q", "c", "p", "events"), p.SearchDefault},
		{"suggestions", SuggestKey("q", "all"), p.Suggest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.TTLFor(tt.key, false))
		})
	}
}

func TestTTLForPopularExtension(t *testing.T) {
	p := DefaultTTLPolicy()
	k := SearchKey("q", "c", "p", "news")

	base := p.TTLFor(k, false)
	extended := p.TTLFor(k, true)
	assert.Equal(t, base*time.Duration(p.PopularFactor), extended)

	// Factor of 1 disables the extension.
	p.PopularFactor = 1
	assert.Equal(t, base, p.TTLFor(k, true))
}
