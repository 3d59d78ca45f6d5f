package auth

import (
	"errors"
	"fmt"
)

// Space is a named functional area of the application with its own set of
// allowed roles.
type Space string

const (
	SpaceConfiguration Space = "CONFIGURATION"
	SpaceCAFF          Space = "CAFF"
	SpaceRDC           Space = "RDC"
	SpaceStaff         Space = "STAFF"
	SpaceOuvriers      Space = "OUVRIERS"
	SpaceMonProfil     Space = "MON_PROFIL"
	SpaceInterventions Space = "INTERVENTIONS"
	SpaceAccueil       Space = "ACCUEIL"
	SpaceAdmin         Space = "ADMIN"
)

// ErrUnknownSpace is a configuration error: the space is not declared.
var ErrUnknownSpace = errors.New("unknown space")

// everyone is every declared role. STAFF, MON_PROFIL and ACCUEIL resolve to it.
var everyone = NewRoleSet(AllRoles()...)

// AllSpaces returns every declared space in a stable order.
func AllSpaces() []Space {
	return []Space{
		SpaceConfiguration,
		SpaceCAFF,
		SpaceRDC,
		SpaceStaff,
		SpaceOuvriers,
		SpaceMonProfil,
		SpaceInterventions,
		SpaceAccueil,
		SpaceAdmin,
	}
}

// Roles returns the roles allowed to enter s. ok is false for an undeclared space.
func (s Space) Roles() (roles RoleSet, ok bool) {
	switch s {
	case SpaceConfiguration:
		return NewRoleSet(RoleCAFF, RoleAdmin), true
	case SpaceCAFF:
		return NewRoleSet(RoleCAFF, RoleAdmin), true
	case SpaceRDC:
		return NewRoleSet(RoleRDC, RoleCAFF, RoleAdmin), true
	case SpaceStaff:
		// Resolves to every declared role: entering STAFF only requires a session.
		return everyone, true
	case SpaceOuvriers:
		return NewRoleSet(RoleOuvrier, RoleCE, RoleAdmin), true
	case SpaceMonProfil:
		return everyone, true
	case SpaceInterventions:
		return NewRoleSet(RolePrepa, RoleCE, RoleRDC, RoleCAFF, RoleAdmin), true
	case SpaceAccueil:
		return everyone, true
	case SpaceAdmin:
		return NewRoleSet(RoleAdmin), true
	default:
		return 0, false
	}
}

// MustRoles is Roles for call sites wired at startup; an undeclared space panics.
func (s Space) MustRoles() RoleSet {
	roles, ok := s.Roles()
	if !ok {
		panic(fmt.Sprintf("%v: %q", ErrUnknownSpace, string(s))) //nolint:forbidigo // Fail fast during server setup.
	}
	return roles
}

// ValidateSpaceTable checks that every declared space maps to a non-empty role set.
func ValidateSpaceTable() error {
	for _, s := range AllSpaces() {
		roles, ok := s.Roles()
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownSpace, string(s))
		}
		if roles.Empty() {
			return fmt.Errorf("space %q has no allowed roles", string(s))
		}
	}
	return nil
}

// SpaceEntry is a row of the space table, used for catalog endpoints.
// Universal is set when every role may enter, which makes the guard a plain
// authentication check.
type SpaceEntry struct {
	Space     Space  `json:"space"`
	Roles     []Role `json:"roles"`
	Universal bool   `json:"universal"`
}

// SpaceTable returns a fresh copy of the space table.
func SpaceTable() []SpaceEntry {
	out := make([]SpaceEntry, 0, len(AllSpaces()))
	for _, s := range AllSpaces() {
		roles := s.MustRoles()
		out = append(out, SpaceEntry{Space: s, Roles: roles.Roles(), Universal: roles == everyone})
	}
	return out
}

// SpacesFor lists the spaces role may enter.
func SpacesFor(role Role) []Space {
	var out []Space
	for _, s := range AllSpaces() {
		if HasAccess(role, s.MustRoles()) {
			out = append(out, s)
		}
	}
	return out
}
