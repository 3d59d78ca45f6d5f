// Package metrics collects and exposes Prometheus metrics for authentication and HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Guard decisions.
const (
	DecisionAllowed         = "allowed"
	DecisionUnauthenticated = "unauthenticated"
	DecisionForbidden       = "forbidden"
)

// Collector records auth and HTTP metrics. A nil *Collector is a valid no-op.
type Collector struct {
	logins         *prometheus.CounterVec
	guard          *prometheus.CounterVec
	requests       *prometheus.CounterVec
	duration       prometheus.Histogram
	storageErrors  *prometheus.CounterVec
	rateLimitDrops *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "batisuivi_auth_login_total",
			Help: "Login attempts by outcome.",
		}, []string{"outcome"}),
		guard: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "batisuivi_auth_guard_total",
			Help: "Access guard decisions.",
		}, []string{"decision"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "batisuivi_http_requests_total",
			Help: "HTTP requests by method and status code.",
		}, []string{"method", "status"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "batisuivi_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
		storageErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "batisuivi_storage_errors_total",
			Help: "Server errors surfaced to clients, by error class.",
		}, []string{"class"}),
		rateLimitDrops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "batisuivi_http_rate_limited_total",
			Help: "Requests rejected by a rate limiter.",
		}, []string{"limiter"}),
	}

	reg.MustRegister(c.logins, c.guard, c.requests, c.duration, c.storageErrors, c.rateLimitDrops)
	return c
}

// RecordLogin counts one login attempt.
func (c *Collector) RecordLogin(outcome string) {
	if c == nil {
		return
	}
	c.logins.WithLabelValues(outcome).Inc()
}

// RecordGuard counts one access guard decision.
func (c *Collector) RecordGuard(decision string) {
	if c == nil {
		return
	}
	c.guard.WithLabelValues(decision).Inc()
}

// RecordRequest counts a finished request and observes its latency.
func (c *Collector) RecordRequest(method string, status int, d time.Duration) {
	if c == nil {
		return
	}
	c.requests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	c.duration.Observe(d.Seconds())
}

// RecordStorageError counts a 5xx caused by an error of the given class.
func (c *Collector) RecordStorageError(class string) {
	if c == nil {
		return
	}
	c.storageErrors.WithLabelValues(class).Inc()
}

// RecordRateLimited counts a request rejected by the named limiter.
func (c *Collector) RecordRateLimited(limiter string) {
	if c == nil {
		return
	}
	c.rateLimitDrops.WithLabelValues(limiter).Inc()
}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
