package handlers

import (
	"encoding/json"
	"net/http"
)

// errorFragment is the inline HTML served when the search backend fails.
// The results page drops it straight into the results container.
const errorFragment = `<div class="search-error"><h2>Error Loading Results</h2><p>Search is temporarily unavailable. Please try again in a moment.</p></div>`

// writeJSON is a small helper to send JSON responses consistently.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeJSONError sends the generic error body used by the JSON endpoints.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeHTML sends an HTML fragment.
func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
