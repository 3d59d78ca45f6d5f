package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"runtime/debug"
	"strings"
	"time"

	domainauth "github.com/batisuivi/batisuivi/internal/domain/auth"
	"github.com/batisuivi/batisuivi/internal/observability/metrics"
)

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain applies mws so that the first one is the outermost.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &respWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

// Metrics returns a middleware recording request counts and latency.
func Metrics(c *metrics.Collector) Middleware {
	return func(next http.Handler) http.Handler {
		if c == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &respWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			c.RecordRequest(r.Method, ww.status, time.Since(start))
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *respWriter) WriteHeader(status int) {
	if !w.wroteHeader {
		w.status = status
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *respWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler { //nolint:errorlint // sentinel compared by identity
						panic(err)
					}
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					WriteError(w, ErrorParams{Code: http.StatusInternalServerError, Message: msgInternal})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// SessionResolver turns a session user id into a live SessionUser, or nil.
type SessionResolver interface {
	ResolveSession(ctx context.Context, userID string) *domainauth.SessionUser
}

// GuardOptions configures a Guard.
type GuardOptions struct {
	Sessions *SessionManager
	Resolver SessionResolver
	Metrics  *metrics.Collector
}

// Guard gates handlers on a resolved session and an allowed role set.
type Guard struct {
	sessions *SessionManager
	resolver SessionResolver
	metrics  *metrics.Collector
}

// NewGuard creates a Guard. Sessions and Resolver are required.
func NewGuard(opts GuardOptions) *Guard {
	if opts.Sessions == nil || opts.Resolver == nil {
		panic("httpx: guard requires a session manager and a resolver") //nolint:forbidigo // Fail fast during server setup.
	}
	return &Guard{sessions: opts.Sessions, resolver: opts.Resolver, metrics: opts.Metrics}
}

// CurrentUser resolves the session user of r, reading the store on every call
// unless an upstream middleware already placed the user in the context.
func (g *Guard) CurrentUser(r *http.Request) *domainauth.SessionUser {
	if user, ok := SessionUserFromContext(r.Context()); ok {
		return user
	}
	userID, ok := g.sessions.UserID(r)
	if !ok {
		return nil
	}
	return g.resolver.ResolveSession(r.Context(), userID)
}

// RequireAuth lets any authenticated user through.
func (g *Guard) RequireAuth() Middleware {
	return g.require(nil)
}

// RequireRoles lets users whose role is in allowed through.
func (g *Guard) RequireRoles(allowed domainauth.RoleSet) Middleware {
	return g.require(&allowed)
}

// RequireSpace gates on the role set of space. An undeclared space panics when
// the route is registered.
func (g *Guard) RequireSpace(space domainauth.Space) Middleware {
	return g.RequireRoles(space.MustRoles())
}

// RequirePolicy gates on the role set of a per-operation policy.
func (g *Guard) RequirePolicy(p domainauth.Policy) Middleware {
	return g.RequireRoles(p.Roles)
}

func (g *Guard) require(allowed *domainauth.RoleSet) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := g.CurrentUser(r)
			var err error
			switch {
			case user == nil:
				err = domainauth.ErrUnauthenticated
			case allowed != nil:
				_, err = domainauth.Authorize(user, *allowed)
			}

			switch {
			case errors.Is(err, domainauth.ErrUnauthenticated):
				g.metrics.RecordGuard(metrics.DecisionUnauthenticated)
				denyUnauthenticated(w, r)
				return
			case errors.Is(err, domainauth.ErrForbidden):
				g.metrics.RecordGuard(metrics.DecisionForbidden)
				denyForbidden(w, r)
				return
			}

			g.metrics.RecordGuard(metrics.DecisionAllowed)
			ctx := SetSessionUserInContext(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func denyUnauthenticated(w http.ResponseWriter, r *http.Request) {
	if IsBrowserRequest(r) {
		redirectToLogin(w, r)
		return
	}
	WriteError(w, ErrorParams{Code: http.StatusUnauthorized, Message: msgUnauthenticated})
}

func denyForbidden(w http.ResponseWriter, r *http.Request) {
	if IsBrowserRequest(r) {
		http.Redirect(w, r, PathAccessDenied, http.StatusSeeOther)
		return
	}
	WriteError(w, ErrorParams{Code: http.StatusForbidden, Message: msgForbidden})
}

// browserRequestKey is an unexported context key type for browser request detection.
type browserRequestKey struct{}

// BrowserDetection marks requests as browser navigation or API calls so the
// guard can pick redirects or JSON envelopes.
func BrowserDetection() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), browserRequestKey{}, isBrowserRequest(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IsBrowserRequest returns true if the current request is from a browser.
func IsBrowserRequest(r *http.Request) bool {
	if isBrowser, ok := r.Context().Value(browserRequestKey{}).(bool); ok {
		return isBrowser
	}
	return isBrowserRequest(r)
}

// isBrowserRequest: anything outside /api/ whose Accept header includes text/html.
func isBrowserRequest(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return false
	}
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

// redirectToLogin sends browsers to the login page with the current URL as redirect_uri.
func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	q := url.Values{}
	q.Set("redirect_uri", safeRedirectPath(r.URL.RequestURI()))
	http.Redirect(w, r, PathLogin+"?"+q.Encode(), http.StatusSeeOther)
}

// safeRedirectPath ensures the provided redirect is a same-origin relative path
// starting with "/" and not an absolute URL. Returns "/" when invalid.
func safeRedirectPath(candidate string) string {
	if candidate == "" {
		return "/"
	}
	if strings.HasPrefix(candidate, "//") || strings.HasPrefix(candidate, `/\`) {
		return "/"
	}
	u, err := url.Parse(candidate)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") {
		return "/"
	}
	return candidate
}
