package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/batisuivi/batisuivi/config"
	"github.com/batisuivi/batisuivi/internal/adapters/passwordhash"
	redisadapter "github.com/batisuivi/batisuivi/internal/adapters/redis"
	httpx "github.com/batisuivi/batisuivi/internal/http"
	"github.com/batisuivi/batisuivi/internal/ports"
	"github.com/gorilla/securecookie"
	"github.com/redis/go-redis/v9"
)

// ErrSessionKeyRequired is returned outside development when SESSION_HASH_KEY is unset.
var ErrSessionKeyRequired = errors.New("SESSION_HASH_KEY is required outside development")

// AuthConfig contains configuration for the authentication adapters.
type AuthConfig struct {
	Auth        config.AuthConfig
	IsDev       bool
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// SessionHashKey returns the configured cookie signing key. In development an
// empty key is replaced by a random one, so sessions do not survive a restart.
func SessionHashKey(cfg AuthConfig) ([]byte, error) {
	if cfg.Auth.SessionHashKey != "" {
		return []byte(cfg.Auth.SessionHashKey), nil
	}
	if !cfg.IsDev {
		return nil, ErrSessionKeyRequired
	}
	if cfg.Logger != nil {
		cfg.Logger.Warn("SESSION_HASH_KEY not set; using a random key for this process")
	}
	return securecookie.GenerateRandomKey(32), nil
}

// BuildSessionManager creates the cookie session manager.
func BuildSessionManager(cfg AuthConfig) (*httpx.SessionManager, error) {
	key, err := SessionHashKey(cfg)
	if err != nil {
		return nil, err
	}
	sessions, err := httpx.NewSessionManager(httpx.SessionConfig{
		CookieName: cfg.Auth.SessionCookieName,
		MaxAge:     cfg.Auth.SessionMaxAge,
		HashKey:    key,
		Secure:     !cfg.IsDev,
		Domain:     cfg.Auth.CookieDomain,
	})
	if err != nil {
		return nil, fmt.Errorf("session manager: %w", err)
	}
	return sessions, nil
}

// BuildPasswordHasher creates the bcrypt hasher.
func BuildPasswordHasher(cfg config.AuthConfig) *passwordhash.Bcrypt {
	return passwordhash.New(cfg.BcryptCost)
}

// BuildLoginThrottle returns the Redis login throttle, or nil when throttling is
// disabled or no Redis client is available.
//
//nolint:ireturn // nil interface disables throttling in AuthService.
func BuildLoginThrottle(cfg AuthConfig) ports.LoginThrottle {
	if cfg.Auth.LoginMaxFailures <= 0 {
		return nil
	}
	if cfg.RedisClient == nil {
		if cfg.Logger != nil {
			cfg.Logger.Warn("login throttling disabled: redis client not configured",
				"max_failures", cfg.Auth.LoginMaxFailures)
		}
		return nil
	}
	return redisadapter.NewLoginThrottle(cfg.RedisClient, redisadapter.LoginThrottleOptions{
		MaxFailures: cfg.Auth.LoginMaxFailures,
		Window:      cfg.Auth.LoginFailureWindow,
	})
}
