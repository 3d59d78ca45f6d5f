// Package redis provides Redis-based adapters for batisuivi.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/batisuivi/batisuivi/internal/ports"
	"github.com/redis/go-redis/v9"
)

var _ ports.LoginThrottle = (*LoginThrottle)(nil)

// LoginThrottleOptions configures a LoginThrottle.
type LoginThrottleOptions struct {
	// MaxFailures is the number of failures after which a key is blocked. Zero disables throttling.
	MaxFailures int
	// Window is how long failures are remembered, counted from the first failure.
	Window time.Duration
	// Prefix namespaces keys; defaults to "login_fail:".
	Prefix string
}

// LoginThrottle counts failed logins per identifier in Redis so the limit holds
// across every server instance.
type LoginThrottle struct {
	client      redis.UniversalClient
	prefix      string
	maxFailures int
	window      time.Duration
}

// NewLoginThrottle creates a Redis-backed login throttle.
func NewLoginThrottle(client redis.UniversalClient, opts LoginThrottleOptions) *LoginThrottle {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = "login_fail:"
	}
	window := opts.Window
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &LoginThrottle{
		client:      client,
		prefix:      prefix,
		maxFailures: opts.MaxFailures,
		window:      window,
	}
}

func (t *LoginThrottle) key(k string) string {
	return t.prefix + strings.ToLower(strings.TrimSpace(k))
}

// Blocked reports whether key has reached the failure limit within the window.
func (t *LoginThrottle) Blocked(ctx context.Context, key string) (bool, error) {
	if t.maxFailures <= 0 || key == "" {
		return false, nil
	}
	val, err := t.client.Get(ctx, t.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis get: %w", err)
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return false, fmt.Errorf("parse failure count: %w", err)
	}
	return n >= t.maxFailures, nil
}

// recordFailure increments the counter and sets the window on any key left
// without a TTL, in a single atomic step.
var recordFailure = redis.NewScript(`
local n = redis.call('INCR', KEYS[1])
if redis.call('PTTL', KEYS[1]) < 0 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return n
`)

// RecordFailure increments the counter, starting the window on the first failure.
func (t *LoginThrottle) RecordFailure(ctx context.Context, key string) error {
	if t.maxFailures <= 0 || key == "" {
		return nil
	}
	err := recordFailure.Run(ctx, t.client, []string{t.key(key)}, t.window.Milliseconds()).Err()
	if err != nil {
		return fmt.Errorf("redis record failure: %w", err)
	}
	return nil
}

// Reset clears the counter for key.
func (t *LoginThrottle) Reset(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	return t.client.Del(ctx, t.key(key)).Err()
}
