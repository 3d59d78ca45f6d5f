package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - log.go: Log level and handler format
//   - auth.go: Sessions, password hashing and login throttling
//   - database.go: PostgreSQL and Redis configuration
//   - http.go: HTTP server and rate limit configuration
type AppConfig struct {
	// IsDev controls development mode behavior (insecure cookies, error detail).
	// Set DEV=true or NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	Log LogConfig

	// Authentication configuration
	Auth AuthConfig

	// Database configuration
	Postgres DBConfig    `envPrefix:"DB_"`
	Redis    RedisConfig `envPrefix:"REDIS_"`

	// HTTP server configuration
	HTTP      HTTPConfig
	RateLimit RateLimitConfig `envPrefix:"RATE_LIMIT_"`
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.Log.Sanitize()
	c.Auth.Sanitize()
	c.HTTP.Sanitize()
	c.RateLimit.Sanitize()

	// Check NODE_ENV for dev mode
	c.detectDevMode()
}

// detectDevMode checks both DEV and NODE_ENV environment variables.
// NODE_ENV is checked as a fallback (common in frontend tooling).
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}

// SecureCookies reports whether session cookies must carry the Secure flag.
func (c *AppConfig) SecureCookies() bool {
	return !c.IsDev
}

// ThrottleEnabled reports whether failed logins are counted in Redis.
func (c *AppConfig) ThrottleEnabled() bool {
	return c.Auth.LoginMaxFailures > 0
}
