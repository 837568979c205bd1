package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"unisearch-gateway/internal/funnelback"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestionsMissThenHit(t *testing.T) {
	backend := &mockBackend{
		suggestions: &funnelback.Suggestions{
			General:  []string{"biology", "biomedicine"},
			Staff:    []string{},
			Programs: []string{"BSc Biology"},
		},
	}
	h := newTestSearchHandler(t, backend)

	req := httptest.NewRequest(http.MethodGet, "/api/suggestions?query=bio", nil)
	rr := httptest.NewRecorder()
	h.Suggestions(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "MISS", rr.Header().Get("X-Cache"))
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var got funnelback.Suggestions
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, []string{"biology", "biomedicine"}, got.General)
	assert.Equal(t, []string{"BSc Biology"}, got.Programs)
	require.Equal(t, 1, backend.suggestCalls)
	assert.Equal(t, funnelback.TypeAll, backend.lastSuggest.Type)

	// Case-insensitive repeat is a hit.
	rr2 := httptest.NewRecorder()
	h.Suggestions(rr2, httptest.NewRequest(http.MethodGet, "/api/suggestions?query=BIO", nil))
	assert.Equal(t, "HIT", rr2.Header().Get("X-Cache"))
	assert.Equal(t, 1, backend.suggestCalls)
	assert.JSONEq(t, rr.Body.String(), rr2.Body.String())
}

func TestSuggestionsTypeSeparatesEntries(t *testing.T) {
	backend := &mockBackend{suggestions: &funnelback.Suggestions{General: []string{}, Staff: []string{}, Programs: []string{}}}
	h := newTestSearchHandler(t, backend)

	h.Suggestions(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/suggestions?query=bio&type=staff", nil))
	h.Suggestions(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/suggestions?query=bio&type=programs", nil))

	assert.Equal(t, 2, backend.suggestCalls, "different type values are distinct cache entries")
}

func TestSuggestionsMissingQuery(t *testing.T) {
	backend := &mockBackend{}
	h := newTestSearchHandler(t, backend)

	rr := httptest.NewRecorder()
	h.Suggestions(rr, httptest.NewRequest(http.MethodGet, "/api/suggestions", nil))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, 0, backend.suggestCalls)
}

func TestSuggestionsBackendError(t *testing.T) {
	backend := &mockBackend{err: &funnelback.UpstreamError{Status: 500}}
	h := newTestSearchHandler(t, backend)

	rr := httptest.NewRecorder()
	h.Suggestions(rr, httptest.NewRequest(http.MethodGet, "/api/suggestions?query=bio", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.NotEmpty(t, body["error"])
}
