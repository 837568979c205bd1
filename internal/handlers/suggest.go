package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"unisearch-gateway/internal/analytics"
	"unisearch-gateway/internal/cache"
	"unisearch-gateway/internal/funnelback"
	"unisearch-gateway/internal/metrics"
	"unisearch-gateway/pkg/logging"

	"go.uber.org/zap"
)

// Suggestions handles GET /api/suggestions?query&type&sessionId.
// Responds with {"general":[],"staff":[],"programs":[]}; cached per
// normalized query + type.
func (h *SearchHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.L(ctx)
	start := time.Now()

	q := r.URL.Query()
	query := q.Get("query")
	if query == "" {
		writeJSONError(w, http.StatusBadRequest, "query parameter is required")
		return
	}

	suggestType := q.Get("type")
	if suggestType == "" {
		suggestType = funnelback.TypeAll
	}

	sessionID := h.touchSession(q.Get("sessionId"))

	key := cache.SuggestKey(query, suggestType)
	cacheKey := key.String()
	popular := h.Popularity.Record(cacheKey)

	cached, hit, cacheErr := h.Cache.Get(ctx, cacheKey)
	if cacheErr != nil {
		logger.Warn("suggest_cache_get_error", zap.Error(cacheErr))
	}

	if hit {
		w.Header().Set("X-Cache", "HIT")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(cached)

		h.Analytics.SuggestServed(ctx, analytics.SuggestEvent{
			QueryHash:   key.Hash,
			Type:        key.Type,
			SessionID:   sessionID,
			CacheResult: analytics.ResultHit,
			Latency:     time.Since(start),
		})
		return
	}

	suggestions, err := h.Backend.Suggest(ctx, &funnelback.SuggestRequest{
		Query: query,
		Type:  suggestType,
	})
	if err != nil {
		logger.Error("suggest_backend_error",
			zap.String("query_hash", key.Hash),
			zap.String("type", key.Type),
			zap.Error(err),
		)
		writeJSONError(w, http.StatusInternalServerError, "failed to load suggestions")
		return
	}

	body, err := json.Marshal(suggestions)
	if err != nil {
		logger.Warn("suggest_marshal_error", zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, "failed to load suggestions")
		return
	}

	if popular {
		metrics.PopularTTLExtensionsTotal.Inc()
	}
	if err := h.Cache.Set(ctx, cacheKey, body, h.TTL.TTLFor(key, popular)); err != nil {
		logger.Warn("suggest_cache_set_error", zap.Error(err))
	}

	w.Header().Set("X-Cache", "MISS")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)

	h.Analytics.SuggestServed(ctx, analytics.SuggestEvent{
		QueryHash:   key.Hash,
		Type:        key.Type,
		SessionID:   sessionID,
		CacheResult: analytics.ResultMiss,
		Latency:     time.Since(start),
	})
}
