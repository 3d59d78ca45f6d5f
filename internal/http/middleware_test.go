package httpx

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	domainauth "github.com/batisuivi/batisuivi/internal/domain/auth"
	"github.com/batisuivi/batisuivi/internal/observability/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type guardFixture struct {
	guard    *Guard
	sessions *SessionManager
	resolver *mapResolver
	reg      *prometheus.Registry
}

func newGuardFixture(t *testing.T, users ...*domainauth.SessionUser) *guardFixture {
	t.Helper()
	f := &guardFixture{
		sessions: newTestSessions(t),
		resolver: newMapResolver(users...),
		reg:      prometheus.NewRegistry(),
	}
	f.guard = NewGuard(GuardOptions{
		Sessions: f.sessions,
		Resolver: f.resolver,
		Metrics:  metrics.NewCollector(f.reg),
	})
	return f
}

func (f *guardFixture) request(t *testing.T, h http.Handler, req *http.Request, userID string) *httptest.ResponseRecorder {
	t.Helper()
	if userID != "" {
		req.AddCookie(sessionCookie(t, f.sessions, userID))
	}
	rec := httptest.NewRecorder()
	BrowserDetection()(h).ServeHTTP(rec, req)
	return rec
}

func TestGuard_RequireSpace(t *testing.T) {
	f := newGuardFixture(t,
		sessionUser("caff", domainauth.RoleCAFF),
		sessionUser("admin", domainauth.RoleAdmin),
		sessionUser("ouvrier", domainauth.RoleOuvrier),
	)

	tests := []struct {
		name     string
		space    domainauth.Space
		userID   string
		wantCode int
		wantErr  string
	}{
		{"no cookie", domainauth.SpaceConfiguration, "", http.StatusUnauthorized, "Non authentifié"},
		{"unknown user", domainauth.SpaceConfiguration, "ghost", http.StatusUnauthorized, "Non authentifié"},
		{"caff enters configuration", domainauth.SpaceConfiguration, "caff", http.StatusOK, ""},
		{"caff kept out of admin", domainauth.SpaceAdmin, "caff", http.StatusForbidden, "Accès non autorisé"},
		{"admin enters admin", domainauth.SpaceAdmin, "admin", http.StatusOK, ""},
		{"ouvrier enters staff", domainauth.SpaceStaff, "ouvrier", http.StatusOK, ""},
		{"ouvrier kept out of rdc", domainauth.SpaceRDC, "ouvrier", http.StatusForbidden, "Accès non autorisé"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := f.guard.RequireSpace(tt.space)(okHandler)
			rec := f.request(t, h, httptest.NewRequest(http.MethodGet, "/api/x", nil), tt.userID)

			require.Equal(t, tt.wantCode, rec.Code)
			if tt.wantErr != "" {
				assert.JSONEq(t, `{"error":"`+tt.wantErr+`"}`, rec.Body.String())
				assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			}
		})
	}
}

func TestGuard_PutsUserInContext(t *testing.T) {
	f := newGuardFixture(t, sessionUser("caff", domainauth.RoleCAFF))

	var got *domainauth.SessionUser
	h := f.guard.RequireAuth()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got, _ = SessionUserFromContext(r.Context())
	}))
	f.request(t, h, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil), "caff")

	require.NotNil(t, got)
	assert.Equal(t, "caff", got.ID)
	assert.Equal(t, domainauth.RoleCAFF, got.Role)
}

func TestGuard_ResolvesOnEveryRequest(t *testing.T) {
	f := newGuardFixture(t, sessionUser("caff", domainauth.RoleCAFF))
	h := f.guard.RequireAuth()(okHandler)
	cookie := sessionCookie(t, f.sessions, "caff")

	send := func() int {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send())
	assert.Equal(t, http.StatusOK, send())
	assert.Equal(t, 2, f.resolver.calls)

	f.resolver.remove("caff")
	assert.Equal(t, http.StatusUnauthorized, send(), "deactivation applies to the very next request")
}

func TestGuard_RequirePolicy(t *testing.T) {
	f := newGuardFixture(t,
		sessionUser("caff", domainauth.RoleCAFF),
		sessionUser("admin", domainauth.RoleAdmin),
	)

	h := f.guard.RequirePolicy(domainauth.UsersSetRole())(okHandler)
	assert.Equal(t, http.StatusForbidden, f.request(t, h, httptest.NewRequest(http.MethodPatch, "/api/users/1/role", nil), "caff").Code)
	assert.Equal(t, http.StatusOK, f.request(t, h, httptest.NewRequest(http.MethodPatch, "/api/users/1/role", nil), "admin").Code)

	h = f.guard.RequirePolicy(domainauth.UsersSetActive())(okHandler)
	assert.Equal(t, http.StatusOK, f.request(t, h, httptest.NewRequest(http.MethodPatch, "/api/users/1/active", nil), "caff").Code)
}

func TestGuard_BrowserRedirects(t *testing.T) {
	f := newGuardFixture(t, sessionUser("ouvrier", domainauth.RoleOuvrier))
	h := f.guard.RequireSpace(domainauth.SpaceConfiguration)(okHandler)

	browserReq := func() *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/configuration?onglet=roles", nil)
		req.Header.Set("Accept", "text/html,application/xhtml+xml")
		return req
	}

	rec := f.request(t, h, browserReq(), "")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?redirect_uri=%2Fconfiguration%3Fonglet%3Droles", rec.Header().Get("Location"))

	rec = f.request(t, h, browserReq(), "ouvrier")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, PathAccessDenied, rec.Header().Get("Location"))
}

func TestGuard_RecordsDecisions(t *testing.T) {
	f := newGuardFixture(t, sessionUser("caff", domainauth.RoleCAFF))
	h := f.guard.RequireSpace(domainauth.SpaceCAFF)(okHandler)
	admin := f.guard.RequireSpace(domainauth.SpaceAdmin)(okHandler)

	f.request(t, h, httptest.NewRequest(http.MethodGet, "/api/x", nil), "caff")
	f.request(t, h, httptest.NewRequest(http.MethodGet, "/api/x", nil), "")
	f.request(t, admin, httptest.NewRequest(http.MethodGet, "/api/x", nil), "caff")

	expected := `
# HELP batisuivi_auth_guard_total Access guard decisions.
# TYPE batisuivi_auth_guard_total counter
batisuivi_auth_guard_total{decision="allowed"} 1
batisuivi_auth_guard_total{decision="forbidden"} 1
batisuivi_auth_guard_total{decision="unauthenticated"} 1
`
	require.NoError(t, testutil.GatherAndCompare(f.reg, strings.NewReader(expected), "batisuivi_auth_guard_total"))
}

func TestGuard_UnknownSpacePanics(t *testing.T) {
	f := newGuardFixture(t)
	assert.Panics(t, func() { f.guard.RequireSpace(domainauth.Space("CHANTIERS")) })
}

func TestNewGuard_PanicsWithoutDependencies(t *testing.T) {
	assert.Panics(t, func() { NewGuard(GuardOptions{}) })
	assert.Panics(t, func() { NewGuard(GuardOptions{Sessions: newTestSessions(t)}) })
}

func TestIsBrowserRequest(t *testing.T) {
	tests := []struct {
		path   string
		accept string
		want   bool
	}{
		{"/", "text/html", true},
		{"/configuration", "text/html,application/xhtml+xml;q=0.9", true},
		{"/configuration", "application/json", false},
		{"/configuration", "", false},
		{"/api/users", "text/html", false},
	}
	for _, tt := range tests {
		t.Run(tt.path+" "+tt.accept, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}
			assert.Equal(t, tt.want, IsBrowserRequest(req))
		})
	}
}

func TestSafeRedirectPath(t *testing.T) {
	tests := map[string]string{
		"":                         "/",
		"/chantiers":               "/chantiers",
		"/chantiers?page=2":        "/chantiers?page=2",
		"https://evil.example/x":   "/",
		"//evil.example/x":         "/",
		`/\evil.example`:           "/",
		"relative/path":            "/",
		"javascript:alert(1)":      "/",
		"/profil#mot-de-passe":     "/profil#mot-de-passe",
		"http://localhost/accueil": "/",
	}
	for in, want := range tests {
		assert.Equal(t, want, safeRedirectPath(in), in)
	}
}

func TestRecover(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))
	h := Recover(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/x", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Erreur interne du serveur"}`, rec.Body.String())
	assert.Contains(t, logs.String(), `"msg":"panic"`)
}

func TestLoggingAndMetrics(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))
	reg := prometheus.NewRegistry()
	c := metrics.NewCollector(reg)

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.WriteHeader(http.StatusOK)
	}), Metrics(c), Logging(logger))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/x", nil))

	assert.Contains(t, logs.String(), `"status":418`)
	n, err := testutil.GatherAndCount(reg, "batisuivi_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
