// Package config loads gateway configuration from the environment.
package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port           string `envconfig:"PORT" default:"8080"`
	GatewayVersion string `envconfig:"GATEWAY_VERSION" default:"v1"`

	// RedisAddr empty means caching falls back to the in-memory store.
	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB"`
	CachePrefix   string `envconfig:"CACHE_PREFIX" default:"unisearch"`

	FunnelbackBaseURL            string        `envconfig:"FUNNELBACK_BASE_URL" required:"true"`
	FunnelbackCollection         string        `envconfig:"FUNNELBACK_COLLECTION" default:"university-web"`
	FunnelbackProfile            string        `envconfig:"FUNNELBACK_PROFILE" default:"_default"`
	FunnelbackStaffCollection    string        `envconfig:"FUNNELBACK_STAFF_COLLECTION"`
	FunnelbackProgramsCollection string        `envconfig:"FUNNELBACK_PROGRAMS_COLLECTION"`
	FunnelbackTimeout            time.Duration `envconfig:"FUNNELBACK_TIMEOUT" default:"10s"`

	SessionTTL time.Duration `envconfig:"SESSION_TTL" default:"30m"`

	PopularThreshold int           `envconfig:"POPULAR_THRESHOLD" default:"10"`
	PopularWindow    time.Duration `envconfig:"POPULAR_WINDOW" default:"10m"`
}

// NewFromEnv processes the environment into a Config.
func NewFromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
