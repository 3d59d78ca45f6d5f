// Package auth contains domain-level types for authentication and authorization.
// It is pure and free of framework/adapter concerns.
package auth

import (
	"errors"
	"fmt"
	"strings"
)

// Role represents an application's authorization role.
// Keep string form for easy persistence and JSON; the set is closed.
type Role string

const (
	RolePrepa   Role = "PREPA"
	RoleCE      Role = "CE"
	RoleRDC     Role = "RDC"
	RoleCAFF    Role = "CAFF"
	RoleRH      Role = "RH"
	RoleAutre   Role = "AUTRE"
	RoleOuvrier Role = "OUVRIER"
	RoleAdmin   Role = "ADMIN"
)

// ErrInvalidRole is returned when a value is not one of the declared roles.
var ErrInvalidRole = errors.New("invalid role")

// AllRoles returns every declared role in a stable order.
func AllRoles() []Role {
	return []Role{RolePrepa, RoleCE, RoleRDC, RoleCAFF, RoleRH, RoleAutre, RoleOuvrier, RoleAdmin}
}

// Valid reports whether r is one of the declared roles.
func (r Role) Valid() bool {
	return r.bit() != 0
}

func (r Role) String() string { return string(r) }

// ParseRole converts s into a Role. Matching is exact (roles are upper-case).
func ParseRole(s string) (Role, error) {
	r := Role(strings.TrimSpace(s))
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
	return r, nil
}

// UnmarshalText implements encoding.TextUnmarshaler so undeclared roles are
// rejected while decoding JSON payloads.
func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func (r Role) bit() RoleSet {
	switch r {
	case RolePrepa:
		return 1 << 0
	case RoleCE:
		return 1 << 1
	case RoleRDC:
		return 1 << 2
	case RoleCAFF:
		return 1 << 3
	case RoleRH:
		return 1 << 4
	case RoleAutre:
		return 1 << 5
	case RoleOuvrier:
		return 1 << 6
	case RoleAdmin:
		return 1 << 7
	default:
		return 0
	}
}

// RoleSet is an immutable set of roles stored as a bitmask.
type RoleSet uint16

// NewRoleSet builds a set from the given roles. Undeclared roles are ignored.
func NewRoleSet(roles ...Role) RoleSet {
	var s RoleSet
	for _, r := range roles {
		s |= r.bit()
	}
	return s
}

// Contains reports whether r is a member of the set.
func (s RoleSet) Contains(r Role) bool {
	b := r.bit()
	return b != 0 && s&b == b
}

// Empty reports whether the set has no members.
func (s RoleSet) Empty() bool { return s == 0 }

// Roles lists the members in AllRoles order.
func (s RoleSet) Roles() []Role {
	out := make([]Role, 0, len(AllRoles()))
	for _, r := range AllRoles() {
		if s.Contains(r) {
			out = append(out, r)
		}
	}
	return out
}

// HasAccess reports whether role is a member of allowed.
func HasAccess(role Role, allowed RoleSet) bool {
	return allowed.Contains(role)
}

// SessionUser is the authorization-facing projection of a user exposed to
// request handlers. It never carries the password hash.
type SessionUser struct {
	ID          string  `json:"id"`
	Identifiant string  `json:"identifiant"`
	Email       *string `json:"email"`
	Nom         *string `json:"nom"`
	Prenom      *string `json:"prenom"`
	Role        Role    `json:"role"`
	SalarieID   *string `json:"salarieId"`
}

var (
	// ErrUnauthenticated means no valid session resolved for the request.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden means the session is valid but its role is not allowed.
	ErrForbidden = errors.New("forbidden")
)

// Authorize checks user against allowed. A nil user yields ErrUnauthenticated;
// a role outside allowed yields ErrForbidden.
func Authorize(user *SessionUser, allowed RoleSet) (*SessionUser, error) {
	if user == nil {
		return nil, ErrUnauthenticated
	}
	if !HasAccess(user.Role, allowed) {
		return nil, ErrForbidden
	}
	return user, nil
}
