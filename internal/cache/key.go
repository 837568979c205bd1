package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// ContentType selects the key scheme and the TTL table row.
type ContentType string

const (
	ContentSearch  ContentType = "search"
	ContentSuggest ContentType = "suggest"
)

// DefaultTab is used when a request carries no tab selector.
const DefaultTab = "all"

// Key is the structured cache key for a piece of backend content.
// Session IDs are deliberately not part of the key: two users issuing the
// same query share the same cached payload.
type Key struct {
	Content    ContentType
	Collection string
	Profile    string
	Tab        string
	Type       string // suggestions only
	Hash       string // sha256 of the normalized query, hex
}

// String converts the structured key into the final string used in Redis/map.
//
//	search:<collection>:<profile>:<tab>:<hash>
//	suggest:<type>:<hash>
func (k Key) String() string {
	switch k.Content {
	case ContentSuggest:
		return strings.Join([]string{string(ContentSuggest), k.Type, k.Hash}, ":")
	default:
		return strings.Join([]string{string(ContentSearch), k.Collection, k.Profile, k.Tab, k.Hash}, ":")
	}
}

// SearchKey derives the cache key for a full-results or per-tab search.
// An empty tab maps to DefaultTab so tabbed and untabbed requests for the
// same query stay distinct from each other but stable among themselves.
func SearchKey(query, collection, profile, tab string) Key {
	if tab == "" {
		tab = DefaultTab
	}
	return Key{
		Content:    ContentSearch,
		Collection: segment(collection),
		Profile:    segment(profile),
		Tab:        segment(tab),
		Hash:       hashQuery(query),
	}
}

// SuggestKey derives the cache key for an autocomplete lookup.
func SuggestKey(query, suggestType string) Key {
	if suggestType == "" {
		suggestType = "all"
	}
	return Key{
		Content: ContentSuggest,
		Type:    segment(suggestType),
		Hash:    hashQuery(query),
	}
}

// NormalizeQuery canonicalizes a user query before hashing: trim,
// lower-case, collapse runs of whitespace. "Nursing  Programs" and
// "nursing programs" hit the same entry.
func NormalizeQuery(q string) string {
	return strings.Join(strings.Fields(strings.ToLower(q)), " ")
}

func hashQuery(q string) string {
	sum := sha256.Sum256([]byte(NormalizeQuery(q)))
	return hex.EncodeToString(sum[:])
}

// segment sanitizes a key component so it cannot collide with the ":"
// delimiter or vary by case.
func segment(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.ReplaceAll(s, ":", "-")
}
