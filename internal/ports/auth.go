// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters and internal/data; orchestration in internal/service.
package ports

import (
	"context"
	"time"

	"github.com/batisuivi/batisuivi/internal/domain/model"
)

// UserStore is the credential store consulted by authentication and session resolution.
// Lookups return an error satisfying errors.IsNotFound (internal/errors) when no row matches.
type UserStore interface {
	// FindActiveByLogin returns the first active user whose identifiant or email
	// equals any of the candidates. Matching is case-sensitive.
	FindActiveByLogin(ctx context.Context, candidates []string) (*model.User, error)
	// GetByID returns the user regardless of its active flag.
	GetByID(ctx context.Context, id string) (*model.User, error)
	// TouchLastLogin records a successful login time.
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
}

// PasswordHasher hashes and verifies plaintext passwords with a salted adaptive hash.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Verify reports whether plaintext matches digest. A mismatch is false, never an error.
	Verify(plaintext, digest string) bool
}

// LoginThrottle counts failed logins per identifier within a sliding window.
type LoginThrottle interface {
	// Blocked reports whether key has reached the failure limit.
	Blocked(ctx context.Context, key string) (bool, error)
	// RecordFailure increments the failure counter for key.
	RecordFailure(ctx context.Context, key string) error
	// Reset clears the failure counter for key.
	Reset(ctx context.Context, key string) error
}
