package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
)

const (
	// DefaultSessionCookieName is the cookie carrying the signed user id.
	DefaultSessionCookieName = "session_token"
	// DefaultSessionMaxAge is the cookie lifetime.
	DefaultSessionMaxAge = 7 * 24 * time.Hour

	minHashKeyLen = 32
)

// ErrWeakSessionKey is returned when the signing key is shorter than 32 bytes.
var ErrWeakSessionKey = errors.New("session hash key must be at least 32 bytes")

// SessionConfig configures a SessionManager.
type SessionConfig struct {
	CookieName string
	MaxAge     time.Duration
	// HashKey signs the cookie value with HMAC-SHA256.
	HashKey []byte
	// Secure sets the Secure attribute; enabled outside development.
	Secure bool
	Domain string
}

// SessionManager issues, reads and clears the session cookie. The cookie value
// is the user id, signed so it cannot be forged; no session state is kept on
// the server.
type SessionManager struct {
	codec  *securecookie.SecureCookie
	name   string
	maxAge time.Duration
	secure bool
	domain string
}

// NewSessionManager builds a SessionManager from cfg.
func NewSessionManager(cfg SessionConfig) (*SessionManager, error) {
	if len(cfg.HashKey) < minHashKeyLen {
		return nil, ErrWeakSessionKey
	}
	name := cfg.CookieName
	if name == "" {
		name = DefaultSessionCookieName
	}
	maxAge := cfg.MaxAge
	if maxAge <= 0 {
		maxAge = DefaultSessionMaxAge
	}

	codec := securecookie.New(cfg.HashKey, nil)
	codec.MaxAge(int(maxAge.Seconds()))
	codec.SetSerializer(securecookie.JSONEncoder{})

	return &SessionManager{
		codec:  codec,
		name:   name,
		maxAge: maxAge,
		secure: cfg.Secure,
		domain: cfg.Domain,
	}, nil
}

// CookieName returns the session cookie name.
func (m *SessionManager) CookieName() string { return m.name }

// Create sets the session cookie for userID.
func (m *SessionManager) Create(w http.ResponseWriter, userID string) error {
	if userID == "" {
		return errors.New("create session: empty user id")
	}
	value, err := m.codec.Encode(m.name, userID)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	http.SetCookie(w, m.cookie(value, int(m.maxAge.Seconds())))
	return nil
}

// UserID returns the user id carried by the request's session cookie. ok is
// false when the cookie is missing, tampered with or past its max age.
func (m *SessionManager) UserID(r *http.Request) (string, bool) {
	c, err := r.Cookie(m.name)
	if err != nil || c.Value == "" {
		return "", false
	}
	var userID string
	if err := m.codec.Decode(m.name, c.Value, &userID); err != nil || userID == "" {
		return "", false
	}
	return userID, true
}

// Delete clears the session cookie. Calling it without a session is harmless.
func (m *SessionManager) Delete(w http.ResponseWriter) {
	c := m.cookie("", -1)
	c.Expires = time.Unix(0, 0)
	http.SetCookie(w, c)
}

func (m *SessionManager) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     m.name,
		Value:    value,
		Path:     "/",
		Domain:   m.domain,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
