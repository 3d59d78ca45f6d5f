package httpx

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/batisuivi/batisuivi/internal/observability/metrics"
	"golang.org/x/time/rate"
)

// Limiter names used in logs and metrics.
const (
	limiterLogin = "login"
	limiterAPI   = "api"
)

// RateLimiterConfig holds the token bucket settings.
type RateLimiterConfig struct {
	LoginRate       rate.Limit // login attempts per second per client IP
	LoginBurst      int
	APIRate         rate.Limit // authenticated API calls per second per user
	APIBurst        int
	CleanupInterval time.Duration
	// IdleTTL is how long an unused bucket is kept.
	IdleTTL time.Duration
}

// DefaultRateLimiterConfig allows 10 logins per minute per IP and 300 API calls
// per minute per user.
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		LoginRate:       rate.Limit(10.0 / 60.0),
		LoginBurst:      10,
		APIRate:         rate.Limit(300.0 / 60.0),
		APIBurst:        60,
		CleanupInterval: 5 * time.Minute,
		IdleTTL:         10 * time.Minute,
	}
}

type keyedLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

type limiterSet struct {
	mu       sync.RWMutex
	limiters map[string]*keyedLimiter
	rate     rate.Limit
	burst    int
}

func newLimiterSet(r rate.Limit, burst int) *limiterSet {
	return &limiterSet{limiters: make(map[string]*keyedLimiter), rate: r, burst: burst}
}

func (s *limiterSet) get(key string, now time.Time) *rate.Limiter {
	s.mu.RLock()
	kl, ok := s.limiters[key]
	s.mu.RUnlock()
	if ok {
		s.mu.Lock()
		kl.lastAccess = now
		s.mu.Unlock()
		return kl.limiter
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if kl, ok := s.limiters[key]; ok {
		kl.lastAccess = now
		return kl.limiter
	}
	kl = &keyedLimiter{limiter: rate.NewLimiter(s.rate, s.burst), lastAccess: now}
	s.limiters[key] = kl
	return kl.limiter
}

func (s *limiterSet) evictIdle(cutoff time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, kl := range s.limiters {
		if kl.lastAccess.Before(cutoff) {
			delete(s.limiters, key)
		}
	}
}

func (s *limiterSet) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.limiters)
}

// RateLimiter applies per-IP limits to login and per-user limits to the API.
type RateLimiter struct {
	config  RateLimiterConfig
	login   *limiterSet
	api     *limiterSet
	metrics *metrics.Collector
	logger  *slog.Logger

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter creates a RateLimiter and starts its cleanup goroutine.
func NewRateLimiter(config RateLimiterConfig, c *metrics.Collector, logger *slog.Logger) *RateLimiter {
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = 5 * time.Minute
	}
	if config.IdleTTL <= 0 {
		config.IdleTTL = 2 * config.CleanupInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	rl := &RateLimiter{
		config:  config,
		login:   newLimiterSet(config.LoginRate, config.LoginBurst),
		api:     newLimiterSet(config.APIRate, config.APIBurst),
		metrics: c,
		logger:  logger,
		stopCh:  make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

// LoginMiddleware limits requests per client IP.
func (rl *RateLimiter) LoginMiddleware() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			if !rl.login.get(ip, time.Now()).Allow() {
				rl.reject(w, limiterLogin, rl.config.LoginRate, slog.String("ip", ip))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// APIMiddleware limits requests per authenticated user. It must run after the
// guard; requests without a session user pass through.
func (rl *RateLimiter) APIMiddleware() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := SessionUserFromContext(r.Context())
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			if !rl.api.get(user.ID, time.Now()).Allow() {
				rl.reject(w, limiterAPI, rl.config.APIRate, slog.String("user_id", user.ID))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (rl *RateLimiter) reject(w http.ResponseWriter, limiter string, limit rate.Limit, who slog.Attr) {
	rl.metrics.RecordRateLimited(limiter)
	rl.logger.Warn("rate limit exceeded", who, slog.String("limit_type", limiter))
	w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(limit)))
	WriteError(w, ErrorParams{Code: http.StatusTooManyRequests, ErrCode: "rate_limited", Message: msgTooManyRequests})
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-rl.stopCh:
			return
		case now := <-ticker.C:
			cutoff := now.Add(-rl.config.IdleTTL)
			rl.login.evictIdle(cutoff)
			rl.api.evictIdle(cutoff)
		}
	}
}

// retryAfterSeconds is the time to earn one token, rounded up.
func retryAfterSeconds(limit rate.Limit) int {
	if limit <= 0 || limit == rate.Inf {
		return 1
	}
	return int(math.Max(1, math.Ceil(1/float64(limit)-1e-9)))
}

// clientIP returns the remote host without the port. Forwarded headers are ignored.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
