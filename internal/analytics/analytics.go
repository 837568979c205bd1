// Package analytics emits per-request search events: a structured log line
// and Prometheus counters. Raw queries and session IDs stay out of metric
// labels; logs carry the query hash and whether a session was attached.
package analytics

import (
	"context"
	"time"

	"unisearch-gateway/internal/metrics"
	"unisearch-gateway/pkg/logging"

	"go.uber.org/zap"
)

// Cache results as recorded on events.
const (
	ResultHit    = "hit"
	ResultMiss   = "miss"
	ResultBypass = "bypass" // request answered without consulting the cache
)

// SearchEvent describes one served search request.
type SearchEvent struct {
	QueryHash   string
	Collection  string
	Profile     string
	Tab         string
	SessionID   string
	CacheResult string
	Popular     bool
	Latency     time.Duration
}

// SuggestEvent describes one served autocomplete request.
type SuggestEvent struct {
	QueryHash   string
	Type        string
	SessionID   string
	CacheResult string
	Latency     time.Duration
}

// Recorder is the single sink for search analytics.
type Recorder struct{}

func NewRecorder() *Recorder {
	return &Recorder{}
}

// SearchServed records a completed search request.
func (r *Recorder) SearchServed(ctx context.Context, ev SearchEvent) {
	metrics.SearchesTotal.WithLabelValues(ev.Tab, ev.CacheResult).Inc()

	logging.L(ctx).Info("search_served",
		zap.String("query_hash", ev.QueryHash),
		zap.String("collection", ev.Collection),
		zap.String("profile", ev.Profile),
		zap.String("tab", ev.Tab),
		zap.String("session_id", ev.SessionID),
		zap.Bool("session_present", ev.SessionID != ""),
		zap.String("cache_result", ev.CacheResult),
		zap.Bool("popular", ev.Popular),
		zap.Duration("latency", ev.Latency),
	)
}

// SuggestServed records a completed autocomplete request.
func (r *Recorder) SuggestServed(ctx context.Context, ev SuggestEvent) {
	metrics.SuggestionsTotal.WithLabelValues(ev.Type, ev.CacheResult).Inc()

	logging.L(ctx).Info("suggest_served",
		zap.String("query_hash", ev.QueryHash),
		zap.String("type", ev.Type),
		zap.String("session_id", ev.SessionID),
		zap.Bool("session_present", ev.SessionID != ""),
		zap.String("cache_result", ev.CacheResult),
		zap.Duration("latency", ev.Latency),
	)
}
