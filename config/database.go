package config

import "time"

// DBConfig contains PostgreSQL database configuration.
type DBConfig struct {
	Host     string `env:"HOST"     envDefault:"localhost"`
	Port     int    `env:"PORT"     envDefault:"5432"`
	User     string `env:"USER"     envDefault:"jobtrail"`
	Password string `env:"PASSWORD" envDefault:"jobtrail"`
	Name     string `env:"NAME"     envDefault:"jobtrail"`
	SSLMode  string `env:"SSL_MODE" envDefault:"disable"` // Use 'disable' for local dev, 'require' for production
	// RunMigrationsOnStart controls whether the application automatically applies migrations during startup.
	RunMigrationsOnStart bool `env:"RUN_MIGRATIONS_ON_START" envDefault:"true"`
}

// RedisConfig contains Redis configuration for the principal cache.
// Redis is optional; an empty URI disables caching and every request
// is verified against the identity provider.
type RedisConfig struct {
	URI      string `env:"URI"      envDefault:""`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB"       envDefault:"0"`
}

// Enabled reports whether a Redis endpoint is configured.
func (r RedisConfig) Enabled() bool { return r.URI != "" }

// CacheConfig contains tuning for the verified-principal cache.
type CacheConfig struct {
	// PrincipalTTL caps how long a verified bearer token is reused without
	// re-verification. The effective TTL is never longer than the token's
	// own expiry.
	PrincipalTTL time.Duration `env:"CACHE_PRINCIPAL_TTL" envDefault:"5m"`
}

// Sanitize applies guardrails to cache configuration values.
func (c *CacheConfig) Sanitize() {
	if c.PrincipalTTL <= 0 {
		c.PrincipalTTL = 5 * time.Minute
	}
}
