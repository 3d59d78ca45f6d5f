//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/batisuivi/batisuivi/internal/domain/auth"
)

const (
	maxIdentifiantLen = 64
	maxNameLen        = 100
	minPasswordLen    = 8
	maxPasswordLen    = 128
)

var (
	ErrIdentifiantRequired = errors.New("identifiant is required")
	ErrPasswordTooShort    = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong     = errors.New("password cannot exceed 128 bytes")
	ErrInvalidEmail        = errors.New("email is not a valid address")
)

// User is a credential record. The password hash never leaves the server.
type User struct {
	ID           string     `json:"id"                db:"id"`
	Identifiant  string     `json:"identifiant"       db:"identifiant"`
	Email        *string    `json:"email"             db:"email"`
	PasswordHash string     `json:"-"                 db:"password_hash"`
	Nom          *string    `json:"nom"               db:"nom"`
	Prenom       *string    `json:"prenom"            db:"prenom"`
	Role         auth.Role  `json:"role"              db:"role"`
	SalarieID    *string    `json:"salarieId"         db:"salarie_id"`
	Actif        bool       `json:"actif"             db:"actif"`
	LastLoginAt  *time.Time `json:"derniereConnexion" db:"last_login_at"`
	CreatedAt    time.Time  `json:"createdAt"         db:"created_at"`
	UpdatedAt    time.Time  `json:"updatedAt"         db:"updated_at"`
}

// SessionUser projects u onto the fields exposed to request handlers.
func (u *User) SessionUser() *auth.SessionUser {
	if u == nil {
		return nil
	}
	return &auth.SessionUser{
		ID:          u.ID,
		Identifiant: u.Identifiant,
		Email:       u.Email,
		Nom:         u.Nom,
		Prenom:      u.Prenom,
		Role:        u.Role,
		SalarieID:   u.SalarieID,
	}
}

// UsersListOptions controls paging and filtering for listing users.
type UsersListOptions struct {
	Limit  int
	Offset int
	Q      *string    // ILIKE on identifiant, email, nom, prenom
	Role   *auth.Role // exact match
	Actif  *bool      // exact match
}

// CreateUserRequest carries the fields needed to create an account.
type CreateUserRequest struct {
	Identifiant string    `json:"identifiant"`
	MotDePasse  string    `json:"motDePasse"`
	Email       *string   `json:"email,omitempty"`
	Nom         *string   `json:"nom,omitempty"`
	Prenom      *string   `json:"prenom,omitempty"`
	Role        auth.Role `json:"role"`
	SalarieID   *string   `json:"salarieId,omitempty"`
}

// Validate normalizes and validates the request in place.
func (r *CreateUserRequest) Validate() error {
	r.Identifiant = strings.TrimSpace(r.Identifiant)
	if r.Identifiant == "" {
		return ErrIdentifiantRequired
	}
	if utf8.RuneCountInString(r.Identifiant) > maxIdentifiantLen {
		return errors.New("identifiant cannot exceed 64 characters")
	}
	if !r.Role.Valid() {
		return auth.ErrInvalidRole
	}
	if err := ValidatePassword(r.MotDePasse); err != nil {
		return err
	}
	var err error
	if r.Email, err = normalizeEmail(r.Email); err != nil {
		return err
	}
	r.Nom = trimOptional(r.Nom)
	r.Prenom = trimOptional(r.Prenom)
	r.SalarieID = trimOptional(r.SalarieID)
	return validateNames(r.Nom, r.Prenom)
}

// UpdateUserRequest carries profile updates. Role, active flag and password
// have dedicated operations with their own policies.
type UpdateUserRequest struct {
	Email     *string `json:"email,omitempty"`
	Nom       *string `json:"nom,omitempty"`
	Prenom    *string `json:"prenom,omitempty"`
	SalarieID *string `json:"salarieId,omitempty"`
}

// HasUpdates reports whether any field is set.
func (r *UpdateUserRequest) HasUpdates() bool {
	return r.Email != nil || r.Nom != nil || r.Prenom != nil || r.SalarieID != nil
}

// Validate normalizes and validates the request in place.
func (r *UpdateUserRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	var err error
	if r.Email, err = normalizeEmail(r.Email); err != nil {
		return err
	}
	r.Nom = trimOptional(r.Nom)
	r.Prenom = trimOptional(r.Prenom)
	return validateNames(r.Nom, r.Prenom)
}

// SetActiveRequest toggles the active flag of an account.
type SetActiveRequest struct {
	Actif *bool `json:"actif"`
}

// SetRoleRequest changes the role of an account.
type SetRoleRequest struct {
	Role auth.Role `json:"role"`
}

// ResetPasswordRequest sets a new password for another account.
type ResetPasswordRequest struct {
	MotDePasse string `json:"motDePasse"`
}

// ChangePasswordRequest changes the caller's own password.
type ChangePasswordRequest struct {
	MotDePasseActuel  string `json:"motDePasseActuel"`
	NouveauMotDePasse string `json:"nouveauMotDePasse"`
}

// ValidatePassword enforces length bounds on a plaintext password.
func ValidatePassword(p string) error {
	if utf8.RuneCountInString(p) < minPasswordLen {
		return ErrPasswordTooShort
	}
	if len(p) > maxPasswordLen {
		return ErrPasswordTooLong
	}
	return nil
}

func normalizeEmail(email *string) (*string, error) {
	email = trimOptional(email)
	if email == nil {
		return nil, nil
	}
	addr, err := mail.ParseAddress(*email)
	if err != nil || addr.Address != *email {
		return nil, ErrInvalidEmail
	}
	return email, nil
}

func validateNames(names ...*string) error {
	for _, n := range names {
		if n != nil && utf8.RuneCountInString(*n) > maxNameLen {
			return errors.New("name fields cannot exceed 100 characters")
		}
	}
	return nil
}

// trimOptional trims v and maps blank strings to nil.
func trimOptional(v *string) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return nil
	}
	return &s
}
