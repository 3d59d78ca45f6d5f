package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/batisuivi/batisuivi/internal/domain/auth"
	"github.com/batisuivi/batisuivi/internal/observability/metrics"
	"github.com/batisuivi/batisuivi/internal/service"
	"github.com/prometheus/client_golang/prometheus"
)

// RouterServices holds everything the HTTP router needs. Auth and Sessions
// are required; entity routes are registered only when their service is set.
type RouterServices struct {
	Auth      *service.AuthService
	Sessions  *SessionManager
	Users     *service.UserService
	Salaries  *service.SalarieService
	Chantiers *service.ChantierService
	Dashboard *service.DashboardService

	RateLimiter *RateLimiter
	Metrics     *metrics.Collector

	// Gatherer backs GET /metrics; the route is skipped when nil.
	Gatherer prometheus.Gatherer

	// HealthChecks back GET /readyz.
	HealthChecks []HealthCheck

	IsDev  bool
	Logger *slog.Logger
}

// NewRouter creates and configures the HTTP router.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}
	errs := &ErrorRenderer{Logger: logger, Metrics: services.Metrics, Dev: services.IsDev}
	guard := NewGuard(GuardOptions{Sessions: services.Sessions, Resolver: services.Auth, Metrics: services.Metrics})
	r := &routeRegistrar{mux: http.NewServeMux(), guard: guard, limiter: services.RateLimiter}

	authHandlers := &AuthHandlers{Auth: services.Auth, Sessions: services.Sessions, Errors: errs}
	pages := &PageHandlers{Logger: logger}

	registerAuthRoutes(r, authHandlers)
	registerPageRoutes(r, pages)
	registerCatalogRoutes(r)
	if services.Users != nil {
		registerUserRoutes(r, &UserHandlers{Svc: services.Users, Errors: errs})
	}
	if services.Salaries != nil {
		registerSalarieRoutes(r, &SalarieHandlers{Svc: services.Salaries, Errors: errs})
	}
	if services.Chantiers != nil {
		registerChantierRoutes(r, &ChantierHandlers{Svc: services.Chantiers, Errors: errs})
	}
	if services.Users != nil && services.Dashboard != nil {
		registerProfileRoutes(r, &ProfileHandlers{Users: services.Users, Dashboard: services.Dashboard, Errors: errs})
	}

	r.mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	r.mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))
	r.mux.Handle("GET /readyz", readinessHandler(services.HealthChecks, logger))
	r.mux.Handle("HEAD /readyz", readinessHandler(services.HealthChecks, logger))
	if services.Gatherer != nil {
		r.mux.Handle("GET /metrics", metrics.Handler(services.Gatherer))
	}
	r.mux.Handle("/api/", http.HandlerFunc(apiNotFound))

	return Chain(r.mux,
		Recover(logger),
		Metrics(services.Metrics),
		Logging(logger),
		BrowserDetection(),
	)
}

// routeRegistrar attaches the guard and the per-user limiter to protected routes.
type routeRegistrar struct {
	mux     *http.ServeMux
	guard   *Guard
	limiter *RateLimiter
}

func (rr *routeRegistrar) public(pattern string, h http.HandlerFunc, mws ...Middleware) {
	rr.mux.Handle(pattern, Chain(h, mws...))
}

func (rr *routeRegistrar) protected(pattern string, gate Middleware, h http.HandlerFunc) {
	mws := []Middleware{gate}
	if rr.limiter != nil {
		mws = append(mws, rr.limiter.APIMiddleware())
	}
	rr.mux.Handle(pattern, Chain(h, mws...))
}

func (rr *routeRegistrar) space(pattern string, s domainauth.Space, h http.HandlerFunc) {
	rr.protected(pattern, rr.guard.RequireSpace(s), h)
}

func (rr *routeRegistrar) policy(pattern string, p domainauth.Policy, h http.HandlerFunc) {
	rr.protected(pattern, rr.guard.RequirePolicy(p), h)
}

func registerAuthRoutes(r *routeRegistrar, h *AuthHandlers) {
	var loginMws []Middleware
	if r.limiter != nil {
		loginMws = append(loginMws, r.limiter.LoginMiddleware())
	}
	r.public("POST /api/auth/login", h.Login, loginMws...)
	r.public("POST /api/auth/logout", h.Logout)
	r.protected("GET /api/auth/me", r.guard.RequireAuth(), h.Me)
}

func registerPageRoutes(r *routeRegistrar, h *PageHandlers) {
	r.public("GET "+PathLogin, h.Login)
	r.public("GET "+PathAccessDenied, h.AccessDenied)
	r.space("GET /{$}", domainauth.SpaceAccueil, h.Home)
}

func registerCatalogRoutes(r *routeRegistrar) {
	r.space("GET /api/configuration/roles", domainauth.SpaceConfiguration, RoleCatalog)
	r.space("GET /api/admin/spaces", domainauth.SpaceAdmin, AccessTable)
}

func registerProfileRoutes(r *routeRegistrar, h *ProfileHandlers) {
	r.space("GET /api/profil", domainauth.SpaceMonProfil, h.Get)
	r.space("PUT /api/profil/mot-de-passe", domainauth.SpaceMonProfil, h.ChangePassword)
	r.space("GET /api/accueil", domainauth.SpaceAccueil, h.Accueil)
}

func registerUserRoutes(r *routeRegistrar, h *UserHandlers) {
	r.policy("GET /api/users", domainauth.UsersList(), h.List)
	r.policy("POST /api/users", domainauth.UsersCreate(), h.Create)
	r.policy("GET /api/users/{id}", domainauth.UsersGet(), h.Get)
	r.policy("PUT /api/users/{id}", domainauth.UsersUpdate(), h.Update)
	r.policy("PATCH /api/users/{id}/active", domainauth.UsersSetActive(), h.SetActive)
	r.policy("PATCH /api/users/{id}/role", domainauth.UsersSetRole(), h.SetRole)
	r.policy("PUT /api/users/{id}/password", domainauth.UsersResetPassword(), h.ResetPassword)
}

func registerSalarieRoutes(r *routeRegistrar, h *SalarieHandlers) {
	r.policy("GET /api/salaries", domainauth.SalariesList(), h.List)
	r.policy("POST /api/salaries", domainauth.SalariesCreate(), h.Create)
	r.policy("GET /api/salaries/{id}", domainauth.SalariesGet(), h.Get)
	r.policy("PUT /api/salaries/{id}", domainauth.SalariesUpdate(), h.Update)
	r.policy("DELETE /api/salaries/{id}", domainauth.SalariesDelete(), h.Delete)
}

func registerChantierRoutes(r *routeRegistrar, h *ChantierHandlers) {
	r.policy("GET /api/chantiers", domainauth.ChantiersList(), h.List)
	r.policy("POST /api/chantiers", domainauth.ChantiersCreate(), h.Create)
	r.policy("GET /api/chantiers/{id}", domainauth.ChantiersGet(), h.Get)
	r.policy("PUT /api/chantiers/{id}", domainauth.ChantiersUpdate(), h.Update)
	r.policy("DELETE /api/chantiers/{id}", domainauth.ChantiersDelete(), h.Delete)
}

func apiNotFound(w http.ResponseWriter, _ *http.Request) {
	WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Message: msgNotFound})
}
