// Package passwordhash provides the bcrypt implementation of ports.PasswordHasher.
package passwordhash

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"github.com/batisuivi/batisuivi/internal/ports"
	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the work factor used when none is configured.
const DefaultCost = bcrypt.DefaultCost

// maxRawLen is the longest input bcrypt accepts verbatim.
const maxRawLen = 72

// fallbackDummy is a complete cost-10 digest, used only if generating the burn
// digest fails. It must parse, or Burn would return before hashing.
const fallbackDummy = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

var _ ports.PasswordHasher = (*Bcrypt)(nil)

// Bcrypt hashes passwords with bcrypt. The salt is embedded in the digest.
type Bcrypt struct {
	cost int
	// dummy is verified against when no account matched so unknown identifiers
	// cost the same CPU time as wrong passwords.
	dummy []byte
}

// New returns a Bcrypt hasher. Costs outside bcrypt's range fall back to DefaultCost.
func New(cost int) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("batisuivi-dummy-password"), cost)
	if err != nil {
		dummy = []byte(fallbackDummy)
	}
	return &Bcrypt{cost: cost, dummy: dummy}
}

// Hash returns the bcrypt digest of plaintext.
func (b *Bcrypt) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(prepare(plaintext), b.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt hash: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches digest. Malformed digests never match.
func (b *Bcrypt) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), prepare(plaintext)) == nil
}

// Burn performs a verification against a throwaway digest and discards the result.
func (b *Bcrypt) Burn(plaintext string) {
	_ = bcrypt.CompareHashAndPassword(b.dummy, prepare(plaintext))
}

// Cost returns the configured work factor.
func (b *Bcrypt) Cost() int { return b.cost }

// prepare maps inputs longer than bcrypt's 72-byte limit to the base64 of their
// SHA-256 so every byte of a long password contributes to the digest.
func prepare(plaintext string) []byte {
	if len(plaintext) <= maxRawLen {
		return []byte(plaintext)
	}
	sum := sha256.Sum256([]byte(plaintext))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}
