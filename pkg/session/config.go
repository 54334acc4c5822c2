package session

import "time"

// Config holds session configuration.
type Config struct {
	TTL             time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"5m"`
	// SecureCookies sets the Secure flag. Enable it everywhere except plain http development.
	SecureCookies bool `env:"SESSION_SECURE_COOKIES" envDefault:"false"`
	// Store selects the backend: "memory" or "redis".
	Store       string `env:"SESSION_STORE" envDefault:"memory"`
	RedisPrefix string `env:"SESSION_REDIS_PREFIX" envDefault:"session"`
}

// DefaultConfig mirrors the env defaults.
func DefaultConfig() Config {
	return Config{
		TTL:             24 * time.Hour,
		CleanupInterval: 5 * time.Minute,
		Store:           "memory",
		RedisPrefix:     DefaultRedisPrefix,
	}
}
