package config

import (
	"reflect"
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestAppConfig_Defaults(t *testing.T) {
	t.Setenv("NODE_ENV", "")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	expected := AuthConfig{
		SessionCookieName:  "session_token",
		SessionMaxAge:      7 * 24 * time.Hour,
		BcryptCost:         10,
		LoginMaxFailures:   10,
		LoginFailureWindow: 15 * time.Minute,
	}
	if !reflect.DeepEqual(cfg.Auth, expected) {
		t.Fatalf("unexpected auth config: got %+v want %+v", cfg.Auth, expected)
	}
	if cfg.IsDev {
		t.Fatal("expected production mode by default")
	}
	if !cfg.SecureCookies() {
		t.Fatal("expected secure cookies outside development")
	}
	if !cfg.ThrottleEnabled() {
		t.Fatal("expected login throttling by default")
	}
	if cfg.HTTP.Addr != ":8080" || cfg.HTTP.ShutdownTimeout != 10*time.Second {
		t.Fatalf("unexpected http config: %+v", cfg.HTTP)
	}
	if cfg.Postgres.Name != "batisuivi" || !cfg.Postgres.RunMigrationsOnStart {
		t.Fatalf("unexpected postgres config: %+v", cfg.Postgres)
	}
	if cfg.Log != (LogConfig{Level: "info", Format: "json"}) {
		t.Fatalf("unexpected log config: %+v", cfg.Log)
	}
}

func TestLogConfig_Sanitize(t *testing.T) {
	tests := []struct {
		in   LogConfig
		want LogConfig
	}{
		{LogConfig{Level: " DEBUG ", Format: "Text"}, LogConfig{Level: "debug", Format: "text"}},
		{LogConfig{Level: "warning", Format: "json"}, LogConfig{Level: "warn", Format: "json"}},
		{LogConfig{Level: "verbose", Format: "logfmt"}, LogConfig{Level: "info", Format: "json"}},
		{LogConfig{}, LogConfig{Level: "info", Format: "json"}},
	}
	for _, tt := range tests {
		got := tt.in
		got.Sanitize()
		if got != tt.want {
			t.Errorf("Sanitize(%+v) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestAppConfig_ParseAuthEnv(t *testing.T) {
	t.Setenv("SESSION_COOKIE_NAME", "bs_session")
	t.Setenv("SESSION_MAX_AGE", "12h")
	t.Setenv("SESSION_HASH_KEY", "0123456789abcdef0123456789abcdef")
	t.Setenv("APP_COOKIE_DOMAIN", "chantiers.example.com")
	t.Setenv("PASSWORD_BCRYPT_COST", "12")
	t.Setenv("LOGIN_MAX_FAILURES", "0")
	t.Setenv("LOGIN_FAILURE_WINDOW", "30m")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}

	expected := AuthConfig{
		SessionCookieName:  "bs_session",
		SessionMaxAge:      12 * time.Hour,
		SessionHashKey:     "0123456789abcdef0123456789abcdef",
		CookieDomain:       "chantiers.example.com",
		BcryptCost:         12,
		LoginMaxFailures:   0,
		LoginFailureWindow: 30 * time.Minute,
	}
	if !reflect.DeepEqual(cfg.Auth, expected) {
		t.Fatalf("unexpected auth config: got %+v want %+v", cfg.Auth, expected)
	}
	if cfg.ThrottleEnabled() {
		t.Fatal("LOGIN_MAX_FAILURES=0 must disable throttling")
	}
}

func TestAppConfig_DevMode(t *testing.T) {
	tests := []struct {
		name    string
		dev     string
		nodeEnv string
		want    bool
	}{
		{name: "default", want: false},
		{name: "DEV flag", dev: "true", want: true},
		{name: "NODE_ENV development", nodeEnv: "development", want: true},
		{name: "NODE_ENV dev uppercase", nodeEnv: "DEV", want: true},
		{name: "NODE_ENV production", nodeEnv: "production", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DEV", tt.dev)
			t.Setenv("NODE_ENV", tt.nodeEnv)
			if tt.dev == "" {
				t.Setenv("DEV", "false")
			}

			var cfg AppConfig
			if err := env.Parse(&cfg); err != nil {
				t.Fatalf("parse config: %v", err)
			}
			cfg.Sanitize()

			if cfg.IsDev != tt.want {
				t.Fatalf("IsDev = %v, want %v", cfg.IsDev, tt.want)
			}
			if cfg.SecureCookies() == tt.want {
				t.Fatalf("SecureCookies must be the inverse of IsDev")
			}
		})
	}
}

func TestAuthConfig_Sanitize(t *testing.T) {
	cfg := AuthConfig{
		BcryptCost:         2,
		LoginMaxFailures:   -3,
		LoginFailureWindow: time.Second,
	}
	cfg.Sanitize()

	if cfg.SessionCookieName != "session_token" {
		t.Errorf("SessionCookieName = %q", cfg.SessionCookieName)
	}
	if cfg.SessionMaxAge != 7*24*time.Hour {
		t.Errorf("SessionMaxAge = %v", cfg.SessionMaxAge)
	}
	if cfg.BcryptCost != 10 {
		t.Errorf("BcryptCost = %d, want 10", cfg.BcryptCost)
	}
	if cfg.LoginMaxFailures != 0 {
		t.Errorf("LoginMaxFailures = %d, want 0", cfg.LoginMaxFailures)
	}
	if cfg.LoginFailureWindow != time.Minute {
		t.Errorf("LoginFailureWindow = %v, want 1m", cfg.LoginFailureWindow)
	}
}

func TestRateLimitConfig_Sanitize(t *testing.T) {
	cfg := RateLimitConfig{LoginPerMinute: 0, LoginBurst: -1, APIPerMinute: 120, APIBurst: 0}
	cfg.Sanitize()

	expected := RateLimitConfig{LoginPerMinute: 1, LoginBurst: 1, APIPerMinute: 120, APIBurst: 1}
	if !reflect.DeepEqual(cfg, expected) {
		t.Fatalf("got %+v want %+v", cfg, expected)
	}
}

func TestHTTPConfig_Sanitize(t *testing.T) {
	var cfg HTTPConfig
	cfg.Sanitize()

	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.ReadTimeout != 30*time.Second || cfg.WriteTimeout != 30*time.Second {
		t.Errorf("timeouts = %v/%v", cfg.ReadTimeout, cfg.WriteTimeout)
	}
	if cfg.IdleTimeout != 120*time.Second {
		t.Errorf("IdleTimeout = %v", cfg.IdleTimeout)
	}
}
