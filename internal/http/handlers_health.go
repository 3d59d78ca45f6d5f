package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

const readinessTimeout = 2 * time.Second

// HealthCheck probes one dependency for GET /readyz.
type HealthCheck struct {
	Name  string
	Probe func(context.Context) error
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// healthHandler answers liveness probes. It never touches dependencies.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeHealth(w, r, http.StatusOK, healthResponse{Status: "ok"})
}

// readinessHandler runs every check concurrently and answers 503 when any fails.
// The body only names the failing dependency; the cause is logged.
func readinessHandler(checks []HealthCheck, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		results := make([]error, len(checks))
		var g errgroup.Group
		for i, c := range checks {
			g.Go(func() error {
				results[i] = c.Probe(ctx)
				return nil
			})
		}
		_ = g.Wait()

		resp := healthResponse{Status: "ok", Checks: make(map[string]string, len(checks))}
		status := http.StatusOK
		for i, c := range checks {
			if results[i] != nil {
				logger.WarnContext(r.Context(), "readiness check failed",
					slog.String("check", c.Name), slog.Any("error", results[i]))
				resp.Checks[c.Name] = "down"
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[c.Name] = "ok"
		}
		writeHealth(w, r, status, resp)
	}
}

func writeHealth(w http.ResponseWriter, r *http.Request, status int, body healthResponse) {
	if r.Method == http.MethodHead {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		return
	}
	WriteJSON(w, status, body)
}
