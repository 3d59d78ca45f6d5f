package httpx

import (
	"context"

	domainauth "github.com/batisuivi/batisuivi/internal/domain/auth"
)

// sessionKey is an unexported context key type to avoid collisions across packages.
type sessionKey struct{}

// SetSessionUserInContext returns a child context that carries user.
// If user is nil, the original ctx is returned unchanged.
func SetSessionUserInContext(ctx context.Context, user *domainauth.SessionUser) context.Context {
	if user == nil {
		return ctx
	}
	return context.WithValue(ctx, sessionKey{}, user)
}

// SessionUserFromContext returns the resolved session user and whether one is present.
func SessionUserFromContext(ctx context.Context) (*domainauth.SessionUser, bool) {
	if user, ok := ctx.Value(sessionKey{}).(*domainauth.SessionUser); ok && user != nil {
		return user, true
	}
	return nil, false
}
