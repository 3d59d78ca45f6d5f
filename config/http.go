package config

import "time"

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT"     envDefault:"30s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT"    envDefault:"30s"`
	IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT"     envDefault:"120s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// MetricsEnabled exposes Prometheus metrics on /metrics.
	MetricsEnabled bool `env:"HTTP_METRICS_ENABLED" envDefault:"true"`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	if h.Addr == "" {
		h.Addr = ":8080"
	}
	if h.ReadTimeout <= 0 {
		h.ReadTimeout = 30 * time.Second
	}
	if h.WriteTimeout <= 0 {
		h.WriteTimeout = 30 * time.Second
	}
	if h.IdleTimeout <= 0 {
		h.IdleTimeout = 120 * time.Second
	}
	if h.ShutdownTimeout <= 0 {
		h.ShutdownTimeout = 10 * time.Second
	}
}

// RateLimitConfig controls the in-process request limiters.
type RateLimitConfig struct {
	Enabled bool `env:"ENABLED" envDefault:"true"`

	// LoginPerMinute is the number of login attempts allowed per client IP.
	LoginPerMinute int `env:"LOGIN_PER_MINUTE" envDefault:"10"`
	LoginBurst     int `env:"LOGIN_BURST"      envDefault:"10"`

	// APIPerMinute is the number of API calls allowed per signed-in user.
	APIPerMinute int `env:"API_PER_MINUTE" envDefault:"300"`
	APIBurst     int `env:"API_BURST"      envDefault:"60"`
}

// Sanitize applies guardrails to rate limit configuration values.
func (r *RateLimitConfig) Sanitize() {
	if r.LoginPerMinute < 1 {
		r.LoginPerMinute = 1
	}
	if r.LoginBurst < 1 {
		r.LoginBurst = 1
	}
	if r.APIPerMinute < 1 {
		r.APIPerMinute = 1
	}
	if r.APIBurst < 1 {
		r.APIBurst = 1
	}
}
