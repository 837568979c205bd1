package cache

import "time"

// TTLPolicy holds the expiry durations for each content type and tab.
// The values can be adjusted based on how fresh each result subset needs
// to be; news moves fast, program pages barely change between semesters.
type TTLPolicy struct {
	// Search result TTLs per tab
	SearchDefault  time.Duration
	SearchNews     time.Duration
	SearchStaff    time.Duration
	SearchPrograms time.Duration

	// Autocomplete suggestions
	Suggest time.Duration

	// PopularFactor multiplies the base TTL for popular queries.
	PopularFactor int
}

// DefaultTTLPolicy returns the standard TTL table.
func DefaultTTLPolicy() TTLPolicy {
	return TTLPolicy{
		SearchDefault:  15 * time.Minute,
		SearchNews:     5 * time.Minute,
		SearchStaff:    30 * time.Minute,
		SearchPrograms: time.Hour,

		Suggest: 6 * time.Hour,

		PopularFactor: 4,
	}
}

// Tab names as the results page sends them, lower-cased.
const (
	TabNews     = "news"
	TabStaff    = "staff"
	TabPrograms = "programs"
)

// TTLFor selects the expiry for a cache entry. Popular entries get the
// base TTL multiplied by PopularFactor so hot queries survive longer
// between backend refreshes.
func (p TTLPolicy) TTLFor(k Key, popular bool) time.Duration {
	var base time.Duration

	switch k.Content {
	case ContentSuggest:
		base = p.Suggest
	default:
		switch k.Tab {
		case TabNews:
			base = p.SearchNews
		case TabStaff:
			base = p.SearchStaff
		case TabPrograms:
			base = p.SearchPrograms
		default:
			base = p.SearchDefault
		}
	}

	if popular && p.PopularFactor > 1 {
		return base * time.Duration(p.PopularFactor)
	}
	return base
}
