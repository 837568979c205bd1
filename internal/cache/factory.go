package cache

import (
	"time"

	"github.com/redis/go-redis/v9"
)

type Config struct {
	// RedisAddr selects the backend: empty means the in-memory fallback.
	RedisAddr string
	Prefix    string
	// MemoryCleanupInterval is the janitor period for the memory backend.
	MemoryCleanupInterval time.Duration
}

// NewStore picks the cache backend. With a Redis address configured the
// gateway caches in Redis; without one it falls back to the in-memory
// store instead of silently disabling caching.
func NewStore(cfg Config, redisClient *redis.Client) Store {
	if cfg.RedisAddr != "" && redisClient != nil {
		return NewRedisStore(redisClient, RedisConfig{
			Prefix: cfg.Prefix,
		})
	}
	return NewMemoryStore(cfg.MemoryCleanupInterval)
}
