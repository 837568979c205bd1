package handlers

import (
	"net/http"
	"time"

	"unisearch-gateway/internal/analytics"
	"unisearch-gateway/internal/cache"
	"unisearch-gateway/internal/funnelback"
	"unisearch-gateway/internal/metrics"
	"unisearch-gateway/internal/session"
	"unisearch-gateway/pkg/logging"

	"go.uber.org/zap"
)

// SearchHandler serves /api/search and /api/suggestions: cache lookup
// first, Funnelback on a miss, best-effort write-back with the TTL the
// policy selects for the content type and tab.
type SearchHandler struct {
	Cache      cache.Store
	TTL        cache.TTLPolicy
	Popularity *cache.PopularityTracker
	Backend    funnelback.Client
	Sessions   *session.Service
	Analytics  *analytics.Recorder

	DefaultCollection string
	DefaultProfile    string
}

func NewSearchHandler(
	store cache.Store,
	ttl cache.TTLPolicy,
	popularity *cache.PopularityTracker,
	backend funnelback.Client,
	sessions *session.Service,
	recorder *analytics.Recorder,
	defaultCollection, defaultProfile string,
) *SearchHandler {
	return &SearchHandler{
		Cache:             store,
		TTL:               ttl,
		Popularity:        popularity,
		Backend:           backend,
		Sessions:          sessions,
		Analytics:         recorder,
		DefaultCollection: defaultCollection,
		DefaultProfile:    defaultProfile,
	}
}

// Search handles GET /api/search?query&collection&profile&form&tab&sessionId.
// The response is an HTML fragment. sessionId feeds session tracking and
// analytics only; it never reaches the cache key.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.L(ctx)
	start := time.Now()

	q := r.URL.Query()
	query := q.Get("query")
	if query == "" {
		writeJSONError(w, http.StatusBadRequest, "query parameter is required")
		return
	}

	collection := q.Get("collection")
	if collection == "" {
		collection = h.DefaultCollection
	}
	profile := q.Get("profile")
	if profile == "" {
		profile = h.DefaultProfile
	}

	// Tab selection: explicit tab param wins, otherwise the legacy form
	// param the results page still sends.
	tab := q.Get("tab")
	if tab == "" {
		tab = q.Get("form")
	}

	sessionID := h.touchSession(q.Get("sessionId"))

	key := cache.SearchKey(query, collection, profile, tab)
	cacheKey := key.String()
	popular := h.Popularity.Record(cacheKey)

	cached, hit, cacheErr := h.Cache.Get(ctx, cacheKey)
	if cacheErr != nil {
		// Cache is best-effort; log and treat as miss.
		logger.Warn("search_cache_get_error", zap.Error(cacheErr))
	}

	if hit {
		w.Header().Set("X-Cache", "HIT")
		writeHTML(w, http.StatusOK, cached)

		h.Analytics.SearchServed(ctx, analytics.SearchEvent{
			QueryHash:   key.Hash,
			Collection:  key.Collection,
			Profile:     key.Profile,
			Tab:         key.Tab,
			SessionID:   sessionID,
			CacheResult: analytics.ResultHit,
			Popular:     popular,
			Latency:     time.Since(start),
		})
		return
	}

	body, err := h.Backend.Search(ctx, &funnelback.SearchRequest{
		Query:      query,
		Collection: collection,
		Profile:    profile,
		Form:       tab,
	})
	if err != nil {
		logger.Error("search_backend_error",
			zap.String("query_hash", key.Hash),
			zap.String("tab", key.Tab),
			zap.Error(err),
		)
		writeHTML(w, http.StatusBadGateway, []byte(errorFragment))
		return
	}

	ttl := h.TTL.TTLFor(key, popular)
	if popular {
		metrics.PopularTTLExtensionsTotal.Inc()
	}
	if err := h.Cache.Set(ctx, cacheKey, body, ttl); err != nil {
		logger.Warn("search_cache_set_error", zap.Error(err))
	}

	w.Header().Set("X-Cache", "MISS")
	writeHTML(w, http.StatusOK, body)

	h.Analytics.SearchServed(ctx, analytics.SearchEvent{
		QueryHash:   key.Hash,
		Collection:  key.Collection,
		Profile:     key.Profile,
		Tab:         key.Tab,
		SessionID:   sessionID,
		CacheResult: analytics.ResultMiss,
		Popular:     popular,
		Latency:     time.Since(start),
	})
}

// touchSession refreshes a live session and returns the ID when the token
// is well formed. Invalid or expired tokens degrade to anonymous.
func (h *SearchHandler) touchSession(id string) string {
	if id == "" || !session.WellFormed(id) {
		return ""
	}
	h.Sessions.Touch(id)
	return id
}
