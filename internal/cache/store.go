package cache

import (
	"context"
	"time"
)

// Store is the cache interface used by the handlers.
// Implemented by the memory store (dev / no Redis configured) and the
// Redis store (prod). Values are opaque payloads: rendered HTML fragments
// for search results, JSON for suggestions.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}
