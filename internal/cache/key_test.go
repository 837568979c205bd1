package cache

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchKeyStable(t *testing.T) {
	a := SearchKey("nursing programs", "uni-web", "_default", "programs")
	b := SearchKey("Nursing   Programs", "Uni-Web", "_default", "Programs")

	// Same inputs modulo case/whitespace must produce the same key.
	require.Equal(t, a.String(), b.String())
	assert.True(t, strings.HasPrefix(a.String(), "search:uni-web:_default:programs:"))
}

func TestSearchKeyPartitionsByTab(t *testing.T) {
	all := SearchKey("campus map", "uni-web", "_default", "")
	news := SearchKey("campus map", "uni-web", "_default", "news")
	staff := SearchKey("campus map", "uni-web", "_default", "staff")

	assert.Equal(t, DefaultTab, all.Tab)
	assert.NotEqual(t, all.String(), news.String())
	assert.NotEqual(t, news.String(), staff.String())

	// Hash covers only the query; tabs alone separate the entries.
	assert.Equal(t, all.Hash, news.Hash)
}

func TestSearchKeyDelimiterSafety(t *testing.T) {
	k := SearchKey("query", "col:with:colons", "_default", "all")
	parts := strings.Split(k.String(), ":")
	require.Len(t, parts, 5)
	assert.Equal(t, "col-with-colons", parts[1])
}

func TestSuggestKey(t *testing.T) {
	k := SuggestKey("bio", "staff")
	assert.True(t, strings.HasPrefix(k.String(), "suggest:staff:"))

	// Empty type defaults to all.
	assert.True(t, strings.HasPrefix(SuggestKey("bio", "").String(), "suggest:all:"))

	// Suggestion and search keys for the same query never collide.
	assert.NotEqual(t, k.String(), SearchKey("bio", "uni-web", "_default", "staff").String())
}

func TestNormalizeQuery(t *testing.T) {
	assert.Equal(t, "open day", NormalizeQuery("  Open   Day \t"))
	assert.Equal(t, "", NormalizeQuery("   "))
}
