package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"unisearch-gateway/internal/analytics"
	"unisearch-gateway/internal/cache"
	"unisearch-gateway/internal/clientinfo"
	"unisearch-gateway/internal/config"
	"unisearch-gateway/internal/funnelback"
	"unisearch-gateway/internal/handlers"
	"unisearch-gateway/internal/httpserver"
	"unisearch-gateway/internal/metrics"
	"unisearch-gateway/internal/session"
	"unisearch-gateway/pkg/logging"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("gateway exited with error: %v", err)
	}
}

func run() error {
	// ----- Logger -----
	logger := logging.DefaultLogger()
	defer logger.Sync()

	// ----- Metrics -----
	metrics.Register()

	// ----- Config -----
	cfg, err := config.NewFromEnv()
	if err != nil {
		logger.Error("config error", zap.Error(err))
		return err
	}

	logger.Info("loaded config",
		zap.String("port", cfg.Port),
		zap.String("version", cfg.GatewayVersion),
		zap.String("redis_addr", cfg.RedisAddr),
		zap.String("funnelback_base_url", cfg.FunnelbackBaseURL),
		zap.String("collection", cfg.FunnelbackCollection),
		zap.Duration("funnelback_timeout", cfg.FunnelbackTimeout),
	)

	// ----- Redis client (only when configured) -----
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})

		// Fail fast if Redis is misconfigured
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Error("redis connection failed", zap.Error(err))
			return err
		}
		logger.Info("redis connection established",
			zap.String("addr", cfg.RedisAddr),
		)
	} else {
		logger.Info("no redis configured, using in-memory cache")
	}

	// ----- Cache -----
	store := cache.NewStore(cache.Config{
		RedisAddr: cfg.RedisAddr,
		Prefix:    cfg.CachePrefix,
	}, redisClient)
	if closer, ok := store.(interface{ Close() error }); ok {
		defer closer.Close()
	}
	store = cache.NewLoggingStore(store)

	ttlPolicy := cache.DefaultTTLPolicy()
	popularity := cache.NewPopularityTracker(cfg.PopularThreshold, cfg.PopularWindow)

	// ----- Funnelback client -----
	backend, err := funnelback.NewClient(funnelback.Config{
		BaseURL:            cfg.FunnelbackBaseURL,
		Collection:         cfg.FunnelbackCollection,
		Profile:            cfg.FunnelbackProfile,
		StaffCollection:    cfg.FunnelbackStaffCollection,
		ProgramsCollection: cfg.FunnelbackProgramsCollection,
		UpstreamTimeout:    cfg.FunnelbackTimeout,
	}, logger)
	if err != nil {
		return err
	}
	if closer, ok := backend.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	// ----- Sessions + analytics -----
	sessions := session.NewService(cfg.SessionTTL)
	defer sessions.Close()

	recorder := analytics.NewRecorder()

	// ----- Handlers -----
	searchHandler := handlers.NewSearchHandler(
		store,
		ttlPolicy,
		popularity,
		backend,
		sessions,
		recorder,
		cfg.FunnelbackCollection,
		cfg.FunnelbackProfile,
	)
	clientInfoHandler := handlers.NewClientInfoHandler(clientinfo.NewResolver())
	sessionHandler := handlers.NewSessionHandler(sessions)

	// ----- Router + middleware -----
	r := chi.NewRouter()
	httpserver.SetupRouter(r, logger, searchHandler, clientInfoHandler, sessionHandler, store)

	// ----- HTTP server -----
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logger.Info("starting gateway",
		zap.String("addr", srv.Addr),
		zap.String("version", cfg.GatewayVersion),
	)

	// Start server in background
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", zap.Error(err))
		}
	}()

	// ----- Graceful shutdown -----
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
		return err
	}

	logger.Info("server shutdown complete")
	return nil
}
