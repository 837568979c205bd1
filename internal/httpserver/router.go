package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"unisearch-gateway/internal/cache"
	"unisearch-gateway/internal/handlers"
	"unisearch-gateway/internal/metrics"
	"unisearch-gateway/internal/middleware"
)

// SetupRouter wires middleware and routes onto r.
func SetupRouter(
	r *chi.Mux,
	baseLogger *zap.Logger,
	searchHandler *handlers.SearchHandler,
	clientInfoHandler *handlers.ClientInfoHandler,
	sessionHandler *handlers.SessionHandler,
	store cache.Store,
) {
	r.Use(metrics.Middleware)

	// base middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)

	r.Use(middleware.LoggingContext(baseLogger))
	r.Use(middleware.Recoverer())               // panic recovery
	r.Use(middleware.Timeout(15 * time.Second)) // request timeout
	r.Use(middleware.MaxBodySize(64 * 1024))    // GET-heavy API, small bodies

	// routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/search", searchHandler.Search)
		r.Get("/suggestions", searchHandler.Suggestions)
		r.Get("/client-info", clientInfoHandler.ClientInfo)
		r.Post("/session", sessionHandler.Issue)
		r.Get("/session/{id}", sessionHandler.Get)
	})

	// health check: report the cache backend too, so a broken Redis shows
	// up here before it shows up as latency.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("cache unavailable"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Handle("/metrics", metrics.Handler())
}
