package handlers

import (
	"net/http"

	"unisearch-gateway/internal/clientinfo"
)

// ClientInfoHandler serves GET /api/client-info.
type ClientInfoHandler struct {
	Resolver *clientinfo.Resolver
}

func NewClientInfoHandler(resolver *clientinfo.Resolver) *ClientInfoHandler {
	return &ClientInfoHandler{Resolver: resolver}
}

func (h *ClientInfoHandler) ClientInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Resolver.Resolve(r))
}
