package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"unisearch-gateway/internal/analytics"
	"unisearch-gateway/internal/cache"
	"unisearch-gateway/internal/funnelback"
	"unisearch-gateway/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockBackend struct {
	searchCalls  int
	suggestCalls int
	html         []byte
	suggestions  *funnelback.Suggestions
	err          error
	lastSearch   *funnelback.SearchRequest
	lastSuggest  *funnelback.SuggestRequest
}

func (m *mockBackend) Search(_ context.Context, req *funnelback.SearchRequest) ([]byte, error) {
	m.searchCalls++
	m.lastSearch = req
	if m.err != nil {
		return nil, m.err
	}
	return m.html, nil
}

func (m *mockBackend) Suggest(_ context.Context, req *funnelback.SuggestRequest) (*funnelback.Suggestions, error) {
	m.suggestCalls++
	m.lastSuggest = req
	if m.err != nil {
		return nil, m.err
	}
	return m.suggestions, nil
}

func newTestSearchHandler(t *testing.T, backend *mockBackend) *SearchHandler {
	t.Helper()

	store := cache.NewMemoryStore(time.Minute)
	t.Cleanup(func() { store.Close() })

	sessions := session.NewService(time.Minute)
	t.Cleanup(func() { sessions.Close() })

	return NewSearchHandler(
		store,
		cache.DefaultTTLPolicy(),
		cache.NewPopularityTracker(100, time.Minute),
		backend,
		sessions,
		analytics.NewRecorder(),
		"uni-web",
		"_default",
	)
}

func TestSearchMissThenHit(t *testing.T) {
	backend := &mockBackend{html: []byte(`<div class="results">hello</div>`)}
	h := newTestSearchHandler(t, backend)

	req := httptest.NewRequest(http.MethodGet, "/api/search?query=library+hours&form=news&sessionId=sess_1_abc", nil)
	rr := httptest.NewRecorder()
	h.Search(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "MISS", rr.Header().Get("X-Cache"))
	assert.Equal(t, `<div class="results">hello</div>`, rr.Body.String())
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	require.Equal(t, 1, backend.searchCalls)
	assert.Equal(t, "news", backend.lastSearch.Form)

	// Second identical request (different session) is served from cache.
	req2 := httptest.NewRequest(http.MethodGet, "/api/search?query=Library++Hours&form=news&sessionId=sess_2_def", nil)
	rr2 := httptest.NewRecorder()
	h.Search(rr2, req2)

	require.Equal(t, http.StatusOK, rr2.Code)
	assert.Equal(t, "HIT", rr2.Header().Get("X-Cache"))
	assert.Equal(t, rr.Body.String(), rr2.Body.String())
	assert.Equal(t, 1, backend.searchCalls, "cache hit must not call the backend")
}

func TestSearchTabsCachedSeparately(t *testing.T) {
	backend := &mockBackend{html: []byte("<div></div>")}
	h := newTestSearchHandler(t, backend)

	for _, tab := range []string{"news", "staff", "programs"} {
		req := httptest.NewRequest(http.MethodGet, "/api/search?query=smith&tab="+tab, nil)
		rr := httptest.NewRecorder()
		h.Search(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)
	}

	assert.Equal(t, 3, backend.searchCalls, "each tab is a distinct cache entry")
}

func TestSearchMissingQuery(t *testing.T) {
	backend := &mockBackend{}
	h := newTestSearchHandler(t, backend)

	req := httptest.NewRequest(http.MethodGet, "/api/search", nil)
	rr := httptest.NewRecorder()
	h.Search(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, 0, backend.searchCalls)
}

func TestSearchBackendErrorRendersFragment(t *testing.T) {
	backend := &mockBackend{err: &funnelback.UpstreamError{Status: 503}}
	h := newTestSearchHandler(t, backend)

	req := httptest.NewRequest(http.MethodGet, "/api/search?query=anything", nil)
	rr := httptest.NewRecorder()
	h.Search(rr, req)

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Contains(t, rr.Body.String(), "Error Loading Results")
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
}

func TestSearchTouchesSession(t *testing.T) {
	backend := &mockBackend{html: []byte("<div></div>")}
	h := newTestSearchHandler(t, backend)

	sess := h.Sessions.Issue()

	req := httptest.NewRequest(http.MethodGet, "/api/search?query=q&sessionId="+sess.ID, nil)
	rr := httptest.NewRecorder()
	h.Search(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	_, ok := h.Sessions.Validate(sess.ID)
	assert.True(t, ok, "session should still be live after use")
}

func TestSearchPopularQueryGetsExtendedTTL(t *testing.T) {
	backend := &mockBackend{html: []byte("<div></div>")}
	h := newTestSearchHandler(t, backend)
	h.Popularity = cache.NewPopularityTracker(2, time.Minute)

	// First request: below the threshold.
	h.Search(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/search?query=open+day", nil))

	key := cache.SearchKey("open day", "uni-web", "_default", "")
	assert.False(t, h.Popularity.Popular(key.String()))

	// Second lookup crosses the threshold; the entry now qualifies for
	// the extended TTL on its next write.
	h.Search(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/search?query=open+day", nil))
	assert.True(t, h.Popularity.Popular(key.String()))
}
