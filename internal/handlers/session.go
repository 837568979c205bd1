package handlers

import (
	"net/http"

	"unisearch-gateway/internal/session"

	"github.com/go-chi/chi/v5"
)

// SessionHandler serves /api/session: issuing and refresh/lookup.
type SessionHandler struct {
	Sessions *session.Service
}

func NewSessionHandler(svc *session.Service) *SessionHandler {
	return &SessionHandler{Sessions: svc}
}

// Issue handles POST /api/session.
func (h *SessionHandler) Issue(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusCreated, h.Sessions.Issue())
}

// Get handles GET /api/session/{id}: validates the token and refreshes
// its expiry, mirroring the refresh-on-interaction behavior of the old
// client-side trackers.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if !h.Sessions.Touch(id) {
		writeJSONError(w, http.StatusNotFound, "unknown or expired session")
		return
	}

	sess, ok := h.Sessions.Validate(id)
	if !ok {
		writeJSONError(w, http.StatusNotFound, "unknown or expired session")
		return
	}
	writeJSON(w, http.StatusOK, sess)
}
