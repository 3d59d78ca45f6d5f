// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.
package auth

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/batisuivi/batisuivi/internal/domain/model"
	apperrors "github.com/batisuivi/batisuivi/internal/errors"
	"github.com/batisuivi/batisuivi/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.UserStore      = (*MemoryUserStore)(nil)
	_ ports.PasswordHasher = PlainHasher{}
	_ ports.LoginThrottle  = (*MemoryThrottle)(nil)
)

// MemoryUserStore is an in-memory credential store. Candidates are tried in
// order and ties go to the earliest inserted user, as in the SQL store.
type MemoryUserStore struct {
	mu    sync.Mutex
	users []*model.User

	// Err, when set, is returned by every lookup.
	Err error
	// TouchErr, when set, is returned by TouchLastLogin.
	TouchErr error
}

// NewMemoryUserStore creates a store seeded with users.
func NewMemoryUserStore(users ...*model.User) *MemoryUserStore {
	m := &MemoryUserStore{}
	for _, u := range users {
		m.Add(u)
	}
	return m
}

// Add stores a copy of u.
func (m *MemoryUserStore) Add(u *model.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	m.users = append(m.users, &cp)
}

// SetActive flips the active flag of the user with id.
func (m *MemoryUserStore) SetActive(id string, actif bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u := m.find(id); u != nil {
		u.Actif = actif
	}
}

// Get returns a copy of the stored user, or nil.
func (m *MemoryUserStore) Get(id string) *model.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u := m.find(id); u != nil {
		cp := *u
		return &cp
	}
	return nil
}

func (m *MemoryUserStore) FindActiveByLogin(_ context.Context, candidates []string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for _, c := range candidates {
		for _, u := range m.users {
			if u.Actif && (u.Identifiant == c || (u.Email != nil && *u.Email == c)) {
				cp := *u
				return &cp, nil
			}
		}
	}
	return nil, apperrors.NotFound("utilisateur introuvable")
}

func (m *MemoryUserStore) GetByID(_ context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if u := m.find(id); u != nil {
		cp := *u
		return &cp, nil
	}
	return nil, apperrors.NotFound("utilisateur introuvable")
}

func (m *MemoryUserStore) TouchLastLogin(_ context.Context, id string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.TouchErr != nil {
		return m.TouchErr
	}
	if u := m.find(id); u != nil {
		u.LastLoginAt = &at
		return nil
	}
	return apperrors.NotFound("utilisateur introuvable")
}

func (m *MemoryUserStore) find(id string) *model.User {
	for _, u := range m.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// PlainHasher is a reversible, zero-cost hasher for tests. Never use it outside tests.
type PlainHasher struct{}

const plainPrefix = "plain:"

func (PlainHasher) Hash(plaintext string) (string, error) { return plainPrefix + plaintext, nil }

func (PlainHasher) Verify(plaintext, digest string) bool {
	return strings.HasPrefix(digest, plainPrefix) && digest[len(plainPrefix):] == plaintext
}

// MemoryThrottle counts failures per lower-cased key without expiry.
type MemoryThrottle struct {
	mu       sync.Mutex
	failures map[string]int

	MaxFailures int
	// Err, when set, is returned by every method.
	Err error
}

// NewMemoryThrottle creates a throttle blocking after maxFailures failures.
func NewMemoryThrottle(maxFailures int) *MemoryThrottle {
	return &MemoryThrottle{failures: make(map[string]int), MaxFailures: maxFailures}
}

func (m *MemoryThrottle) Blocked(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return false, m.Err
	}
	return m.MaxFailures > 0 && m.failures[normalize(key)] >= m.MaxFailures, nil
}

func (m *MemoryThrottle) RecordFailure(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.failures[normalize(key)]++
	return nil
}

func (m *MemoryThrottle) Reset(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	delete(m.failures, normalize(key))
	return nil
}

// Failures returns the current count for key.
func (m *MemoryThrottle) Failures(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.failures[normalize(key)]
}

func normalize(key string) string { return strings.ToLower(strings.TrimSpace(key)) }
