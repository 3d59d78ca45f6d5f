package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_RecordLogin(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordLogin("success")
	c.RecordLogin("bad_password")
	c.RecordLogin("bad_password")

	assert.InDelta(t, 1, testutil.ToFloat64(c.logins.WithLabelValues("success")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(c.logins.WithLabelValues("bad_password")), 0)
}

func TestCollector_RecordGuardAndRequests(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordGuard(DecisionForbidden)
	c.RecordRequest(http.MethodGet, http.StatusForbidden, 20*time.Millisecond)
	c.RecordStorageError("timeout")
	c.RecordRateLimited("login")

	assert.InDelta(t, 1, testutil.ToFloat64(c.guard.WithLabelValues(DecisionForbidden)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(c.requests.WithLabelValues("GET", "403")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(c.storageErrors.WithLabelValues("timeout")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(c.rateLimitDrops.WithLabelValues("login")), 0)

	n, err := testutil.GatherAndCount(reg, "batisuivi_http_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCollector_NilIsNoop(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.RecordLogin("success")
		c.RecordGuard(DecisionAllowed)
		c.RecordRequest(http.MethodGet, 200, time.Second)
		c.RecordStorageError("x")
		c.RecordRateLimited("api")
	})
}

func TestHandler_ServesRegisteredMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordLogin("success")

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `batisuivi_auth_login_total{outcome="success"} 1`)
}
