package funnelback

import (
	"context"
	"errors"
	"fmt"
)

// SearchRequest is a query against the hosted search backend.
type SearchRequest struct {
	Query      string
	Collection string
	Profile    string
	// Form selects the backend presentation template; the results page
	// uses it as the tab selector ("all", "news", "staff", "programs").
	Form string
}

func (r *SearchRequest) Validate() error {
	if r.Query == "" {
		return errors.New("query is required")
	}
	if r.Collection == "" {
		return errors.New("collection is required")
	}
	return nil
}

// SuggestRequest is an autocomplete lookup.
type SuggestRequest struct {
	Query string
	// Type restricts which buckets are populated: "all" (default),
	// "general", "staff" or "programs".
	Type string
}

func (r *SuggestRequest) Validate() error {
	if r.Query == "" {
		return errors.New("query is required")
	}
	switch r.Type {
	case "", TypeAll, TypeGeneral, TypeStaff, TypePrograms:
		return nil
	default:
		return fmt.Errorf("invalid suggestion type %q", r.Type)
	}
}

const (
	TypeAll      = "all"
	TypeGeneral  = "general"
	TypeStaff    = "staff"
	TypePrograms = "programs"
)

// Suggestions is the autocomplete response shape served to the results
// page. Buckets excluded by the request type stay empty, never null.
type Suggestions struct {
	General  []string `json:"general"`
	Staff    []string `json:"staff"`
	Programs []string `json:"programs"`
}

// Client is the upstream search interface. Implemented by the HTTP client
// below and by test fakes.
type Client interface {
	// Search returns the rendered HTML results fragment.
	Search(ctx context.Context, req *SearchRequest) ([]byte, error)
	// Suggest returns autocomplete suggestions grouped by bucket.
	Suggest(ctx context.Context, req *SuggestRequest) (*Suggestions, error)
}

// UpstreamError is returned when the backend answers with a non-2xx
// status. The gateway maps it to a 502 for search and suggestions.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("funnelback: upstream status %d", e.Status)
}

// IsUpstream reports whether err (or anything it wraps) is an UpstreamError.
func IsUpstream(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}
