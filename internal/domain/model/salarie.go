//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/batisuivi/batisuivi/internal/domain/auth"
)

// Salarie is an employee record. It may be linked to at most one user account.
type Salarie struct {
	ID        string    `json:"id"        db:"id"`
	Nom       string    `json:"nom"       db:"nom"`
	Prenom    string    `json:"prenom"    db:"prenom"`
	Poste     *string   `json:"poste"     db:"poste"`
	Telephone *string   `json:"telephone" db:"telephone"`
	Email     *string   `json:"email"     db:"email"`
	Actif     bool      `json:"actif"     db:"actif"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// SalariesListOptions controls paging and filtering for listing employees.
type SalariesListOptions struct {
	Limit  int
	Offset int
	Q      *string // ILIKE on nom, prenom, poste
	Actif  *bool
}

// SalarieAccount is the optional account created alongside an employee.
type SalarieAccount struct {
	Identifiant string    `json:"identifiant"`
	MotDePasse  string    `json:"motDePasse"`
	Role        auth.Role `json:"role"`
}

// CreateSalarieRequest represents parameters to create a Salarie.
type CreateSalarieRequest struct {
	Nom       string          `json:"nom"`
	Prenom    string          `json:"prenom"`
	Poste     *string         `json:"poste,omitempty"`
	Telephone *string         `json:"telephone,omitempty"`
	Email     *string         `json:"email,omitempty"`
	Actif     *bool           `json:"actif,omitempty"`
	Compte    *SalarieAccount `json:"compte,omitempty"`
}

// Validate normalizes and validates the request in place.
func (r *CreateSalarieRequest) Validate() error {
	r.Nom = strings.TrimSpace(r.Nom)
	r.Prenom = strings.TrimSpace(r.Prenom)
	if r.Nom == "" || r.Prenom == "" {
		return errors.New("nom and prenom are required")
	}
	if err := validateNames(&r.Nom, &r.Prenom); err != nil {
		return err
	}
	r.Poste = trimOptional(r.Poste)
	r.Telephone = trimOptional(r.Telephone)
	var err error
	if r.Email, err = normalizeEmail(r.Email); err != nil {
		return err
	}
	if r.Compte != nil {
		return r.AccountRequest().Validate()
	}
	return nil
}

// AccountRequest maps the embedded account to a user creation request.
// It returns nil when no account was requested.
func (r *CreateSalarieRequest) AccountRequest() *CreateUserRequest {
	if r.Compte == nil {
		return nil
	}
	return &CreateUserRequest{
		Identifiant: r.Compte.Identifiant,
		MotDePasse:  r.Compte.MotDePasse,
		Email:       r.Email,
		Nom:         &r.Nom,
		Prenom:      &r.Prenom,
		Role:        r.Compte.Role,
	}
}

// UpdateSalarieRequest represents parameters to update a Salarie.
type UpdateSalarieRequest struct {
	Nom       *string `json:"nom,omitempty"`
	Prenom    *string `json:"prenom,omitempty"`
	Poste     *string `json:"poste,omitempty"`
	Telephone *string `json:"telephone,omitempty"`
	Email     *string `json:"email,omitempty"`
	Actif     *bool   `json:"actif,omitempty"`
}

// Validate validates UpdateSalarieRequest.
func (r *UpdateSalarieRequest) Validate() error {
	if r.Nom == nil && r.Prenom == nil && r.Poste == nil && r.Telephone == nil && r.Email == nil && r.Actif == nil {
		return errors.New("at least one field must be updated")
	}
	for _, v := range []*string{r.Nom, r.Prenom} {
		if v != nil && strings.TrimSpace(*v) == "" {
			return errors.New("nom and prenom cannot be empty")
		}
		if v != nil && utf8.RuneCountInString(*v) > maxNameLen {
			return errors.New("name fields cannot exceed 100 characters")
		}
	}
	var err error
	if r.Email, err = normalizeEmail(r.Email); err != nil {
		return err
	}
	return nil
}
