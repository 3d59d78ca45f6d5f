package config

import "time"

// Bounds accepted for the bcrypt work factor.
const (
	minBcryptCost = 4
	maxBcryptCost = 31
)

// AuthConfig groups session and credential settings.
type AuthConfig struct {
	// SessionCookieName is the name of the cookie carrying the signed user id.
	SessionCookieName string `env:"SESSION_COOKIE_NAME" envDefault:"session_token"`

	// SessionMaxAge is the cookie lifetime. The signature expires with it.
	SessionMaxAge time.Duration `env:"SESSION_MAX_AGE" envDefault:"168h"`

	// SessionHashKey signs session cookies. At least 32 bytes.
	// When empty in development a random key is generated per process.
	SessionHashKey string `env:"SESSION_HASH_KEY"`

	// CookieDomain is the domain for session cookies.
	// Leave empty to use the request domain.
	CookieDomain string `env:"APP_COOKIE_DOMAIN" envDefault:""`

	// BcryptCost is the bcrypt work factor for new password digests.
	BcryptCost int `env:"PASSWORD_BCRYPT_COST" envDefault:"10"`

	// LoginMaxFailures blocks an identifier after this many failed logins. Zero disables it.
	LoginMaxFailures int `env:"LOGIN_MAX_FAILURES" envDefault:"10"`

	// LoginFailureWindow is how long failed logins are remembered.
	LoginFailureWindow time.Duration `env:"LOGIN_FAILURE_WINDOW" envDefault:"15m"`
}

// Sanitize applies guardrails to authentication configuration values.
func (a *AuthConfig) Sanitize() {
	if a.SessionCookieName == "" {
		a.SessionCookieName = "session_token"
	}
	if a.SessionMaxAge <= 0 {
		a.SessionMaxAge = 7 * 24 * time.Hour
	}
	if a.BcryptCost < minBcryptCost || a.BcryptCost > maxBcryptCost {
		a.BcryptCost = 10
	}
	if a.LoginMaxFailures < 0 {
		a.LoginMaxFailures = 0
	}
	if a.LoginFailureWindow < time.Minute {
		a.LoginFailureWindow = time.Minute
	}
}
