package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	domainauth "github.com/batisuivi/batisuivi/internal/domain/auth"
	apperrors "github.com/batisuivi/batisuivi/internal/errors"
	obserrors "github.com/batisuivi/batisuivi/internal/observability/errors"
	"github.com/batisuivi/batisuivi/internal/ports"
)

// ErrInvalidCredentials is returned by Authenticate for every failed login.
// The cause is logged, never returned.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Login outcomes reported to the LoginRecorder and written to logs.
const (
	LoginSuccess           = "success"
	LoginUnknownOrInactive = "unknown_or_inactive"
	LoginBadPassword       = "bad_password"
	LoginThrottled         = "throttled"
	LoginError             = "error"
)

// LoginRecorder receives one outcome per Authenticate call.
type LoginRecorder interface {
	RecordLogin(outcome string)
}

type storageErrorRecorder interface {
	RecordStorageError(class string)
}

// dummyVerifier is implemented by hashers that can spend the cost of a verify
// without a stored digest, so unknown identifiers take as long as bad passwords.
type dummyVerifier interface {
	Burn(plaintext string)
}

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Users  ports.UserStore
	Hasher ports.PasswordHasher
	Config AuthServiceConfig
}

// AuthServiceConfig holds the optional collaborators of AuthService.
type AuthServiceConfig struct {
	Throttle ports.LoginThrottle // nil disables throttling
	Metrics  LoginRecorder
	Logger   *slog.Logger
	Now      func() time.Time
}

// AuthService authenticates identifier/password pairs and resolves session
// tokens to live users.
type AuthService struct {
	users    ports.UserStore
	hasher   ports.PasswordHasher
	throttle ports.LoginThrottle
	metrics  LoginRecorder
	logger   *slog.Logger
	now      func() time.Time
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	if opts.Users == nil {
		panic("UserStore is required")
	}
	if opts.Hasher == nil {
		panic("PasswordHasher is required")
	}
	logger := opts.Config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Config.Now
	if now == nil {
		now = time.Now
	}
	return &AuthService{
		users:    opts.Users,
		hasher:   opts.Hasher,
		throttle: opts.Config.Throttle,
		metrics:  opts.Config.Metrics,
		logger:   logger.With("component", "auth"),
		now:      now,
	}
}

// LoginCandidates returns the values matched against identifiant and email:
// the literal input and, for email-shaped input, its lower-cased local part.
func LoginCandidates(login string) []string {
	if login == "" {
		return nil
	}
	out := []string{login}
	if at := strings.Index(login, "@"); at > 0 {
		out = append(out, strings.ToLower(login[:at]))
	}
	return out
}

// Authenticate verifies a login and password. Every rejection returns
// ErrInvalidCredentials; only storage failures return another error.
func (s *AuthService) Authenticate(ctx context.Context, login, password string) (*domainauth.SessionUser, error) {
	if login == "" || password == "" {
		return nil, s.reject(ctx, login, LoginUnknownOrInactive)
	}

	if s.blocked(ctx, login) {
		if b, ok := s.hasher.(dummyVerifier); ok {
			b.Burn(password)
		}
		return nil, s.reject(ctx, login, LoginThrottled)
	}

	user, err := s.users.FindActiveByLogin(ctx, LoginCandidates(login))
	if err != nil {
		if apperrors.IsNotFound(err) {
			if b, ok := s.hasher.(dummyVerifier); ok {
				b.Burn(password)
			}
			s.recordFailure(ctx, login)
			return nil, s.reject(ctx, login, LoginUnknownOrInactive)
		}
		s.record(LoginError)
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.recordFailure(ctx, login)
		return nil, s.reject(ctx, login, LoginBadPassword)
	}

	if s.throttle != nil {
		if resetErr := s.throttle.Reset(ctx, login); resetErr != nil {
			s.logger.WarnContext(ctx, "reset login throttle failed", "error", resetErr)
		}
	}
	if touchErr := s.users.TouchLastLogin(ctx, user.ID, s.now().UTC()); touchErr != nil {
		s.logger.WarnContext(ctx, "record last login failed", "user_id", user.ID, "error", touchErr)
	}

	s.record(LoginSuccess)
	s.logger.InfoContext(ctx, "login succeeded", "user_id", user.ID, "role", user.Role)
	return user.SessionUser(), nil
}

// ResolveSession returns the session user for a token, or nil when the token is
// empty, unknown, points to an inactive account, or the lookup fails.
func (s *AuthService) ResolveSession(ctx context.Context, userID string) *domainauth.SessionUser {
	if userID == "" {
		return nil
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			s.logger.ErrorContext(ctx, "resolve session failed", "error", err)
			if r, ok := s.metrics.(storageErrorRecorder); ok {
				r.RecordStorageError(obserrors.Classify(err))
			}
		}
		return nil
	}
	if !user.Actif {
		return nil
	}
	return user.SessionUser()
}

func (s *AuthService) blocked(ctx context.Context, login string) bool {
	if s.throttle == nil {
		return false
	}
	blocked, err := s.throttle.Blocked(ctx, login)
	if err != nil {
		s.logger.WarnContext(ctx, "login throttle unavailable", "error", err)
		return false
	}
	return blocked
}

func (s *AuthService) recordFailure(ctx context.Context, login string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, login); err != nil {
		s.logger.WarnContext(ctx, "record login failure failed", "error", err)
	}
}

func (s *AuthService) reject(ctx context.Context, login, cause string) error {
	s.record(cause)
	s.logger.InfoContext(ctx, "login rejected", "identifiant", login, "cause", cause)
	return ErrInvalidCredentials
}

func (s *AuthService) record(outcome string) {
	if s.metrics != nil {
		s.metrics.RecordLogin(outcome)
	}
}
