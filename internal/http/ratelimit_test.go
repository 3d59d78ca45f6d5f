package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	domainauth "github.com/batisuivi/batisuivi/internal/domain/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func newTestRateLimiter(t *testing.T, burst int) *RateLimiter {
	t.Helper()
	rl := NewRateLimiter(RateLimiterConfig{
		LoginRate:       rate.Every(time.Hour),
		LoginBurst:      burst,
		APIRate:         rate.Every(time.Hour),
		APIBurst:        burst,
		CleanupInterval: time.Hour,
	}, nil, nil)
	t.Cleanup(rl.Stop)
	return rl
}

func TestRateLimiter_LoginPerIP(t *testing.T) {
	rl := newTestRateLimiter(t, 2)
	h := rl.LoginMiddleware()(okHandler)

	send := func(remote string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1:5000").Code)
	assert.Equal(t, http.StatusOK, send("10.0.0.1:5001").Code)

	rec := send("10.0.0.1:5002")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "3600", rec.Header().Get("Retry-After"))
	assert.Equal(t, "Trop de requêtes", decodeEnvelope(t, rec).Error)

	assert.Equal(t, http.StatusOK, send("10.0.0.2:5000").Code, "other clients keep their own bucket")
	assert.Equal(t, 2, rl.login.len())
}

func TestRateLimiter_APIPerUser(t *testing.T) {
	rl := newTestRateLimiter(t, 1)
	h := rl.APIMiddleware()(okHandler)

	send := func(user *domainauth.SessionUser) int {
		req := httptest.NewRequest(http.MethodGet, "/api/chantiers", nil)
		req = req.WithContext(SetSessionUserInContext(req.Context(), user))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	alice := sessionUser("alice", domainauth.RoleCAFF)
	bob := sessionUser("bob", domainauth.RoleRDC)

	assert.Equal(t, http.StatusOK, send(alice))
	assert.Equal(t, http.StatusTooManyRequests, send(alice))
	assert.Equal(t, http.StatusOK, send(bob))
	assert.Equal(t, http.StatusOK, send(nil), "requests without a session are not counted")
	assert.Equal(t, http.StatusOK, send(nil))
}

func TestLimiterSet_EvictIdle(t *testing.T) {
	s := newLimiterSet(rate.Every(time.Second), 1)
	now := time.Now()
	s.get("old", now.Add(-time.Hour))
	s.get("fresh", now)

	s.evictIdle(now.Add(-time.Minute))

	assert.Equal(t, 1, s.len())
	s.mu.RLock()
	_, ok := s.limiters["fresh"]
	s.mu.RUnlock()
	assert.True(t, ok)
}

func TestRetryAfterSeconds(t *testing.T) {
	assert.Equal(t, 6, retryAfterSeconds(rate.Limit(10.0/60.0)))
	assert.Equal(t, 2, retryAfterSeconds(rate.Limit(0.5)))
	assert.Equal(t, 1, retryAfterSeconds(rate.Limit(5)))
	assert.Equal(t, 1, retryAfterSeconds(rate.Inf))
	assert.Equal(t, 1, retryAfterSeconds(0))
}

func TestRateLimiter_StopTwice(t *testing.T) {
	rl := NewRateLimiter(DefaultRateLimiterConfig(), nil, nil)
	assert.NotPanics(t, func() {
		rl.Stop()
		rl.Stop()
	})
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "[2001:db8::1]:443"
	assert.Equal(t, "2001:db8::1", clientIP(req))

	req.RemoteAddr = "unix"
	assert.Equal(t, "unix", clientIP(req))
}
