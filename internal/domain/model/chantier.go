//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const maxChantierNomLen = 255

// ChantierStatut is the lifecycle state of a construction site.
type ChantierStatut string

const (
	ChantierAVenir  ChantierStatut = "A_VENIR"
	ChantierEnCours ChantierStatut = "EN_COURS"
	ChantierTermine ChantierStatut = "TERMINE"
)

// Valid reports whether the statut is supported.
func (s ChantierStatut) Valid() bool {
	switch s {
	case ChantierAVenir, ChantierEnCours, ChantierTermine:
		return true
	default:
		return false
	}
}

// ParseChantierStatut normalizes a statut string and reports whether it is supported.
func ParseChantierStatut(value string) (ChantierStatut, bool) {
	s := ChantierStatut(strings.ToUpper(strings.TrimSpace(value)))
	if s.Valid() {
		return s, true
	}
	return "", false
}

// Chantier represents a construction site.
type Chantier struct {
	ID        string         `json:"id"        db:"id"`
	Nom       string         `json:"nom"       db:"nom"`
	Adresse   *string        `json:"adresse"   db:"adresse"`
	Client    *string        `json:"client"    db:"client"`
	Statut    ChantierStatut `json:"statut"    db:"statut"`
	DateDebut *time.Time     `json:"dateDebut" db:"date_debut"`
	DateFin   *time.Time     `json:"dateFin"   db:"date_fin"`
	CreatedAt time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time      `json:"updatedAt" db:"updated_at"`
}

// ChantiersListOptions controls paging and filtering for listing chantiers.
type ChantiersListOptions struct {
	Limit  int
	Offset int
	Q      *string // ILIKE on nom, client, adresse
	Statut *ChantierStatut
}

// CreateChantierRequest represents parameters to create a Chantier.
type CreateChantierRequest struct {
	Nom       string         `json:"nom"`
	Adresse   *string        `json:"adresse,omitempty"`
	Client    *string        `json:"client,omitempty"`
	Statut    ChantierStatut `json:"statut,omitempty"`
	DateDebut *time.Time     `json:"dateDebut,omitempty"`
	DateFin   *time.Time     `json:"dateFin,omitempty"`
}

// Validate normalizes and validates the request in place. Statut defaults to A_VENIR.
func (r *CreateChantierRequest) Validate() error {
	r.Nom = strings.TrimSpace(r.Nom)
	if r.Nom == "" {
		return errors.New("nom is required")
	}
	if utf8.RuneCountInString(r.Nom) > maxChantierNomLen {
		return errors.New("nom cannot exceed 255 characters")
	}
	if r.Statut == "" {
		r.Statut = ChantierAVenir
	}
	if !r.Statut.Valid() {
		return errors.New("statut must be one of A_VENIR, EN_COURS, TERMINE")
	}
	r.Adresse = trimOptional(r.Adresse)
	r.Client = trimOptional(r.Client)
	return validateDates(r.DateDebut, r.DateFin)
}

// UpdateChantierRequest represents parameters to update a Chantier.
type UpdateChantierRequest struct {
	Nom       *string         `json:"nom,omitempty"`
	Adresse   *string         `json:"adresse,omitempty"`
	Client    *string         `json:"client,omitempty"`
	Statut    *ChantierStatut `json:"statut,omitempty"`
	DateDebut *time.Time      `json:"dateDebut,omitempty"`
	DateFin   *time.Time      `json:"dateFin,omitempty"`
}

// Validate validates UpdateChantierRequest.
func (r *UpdateChantierRequest) Validate() error {
	if r.Nom == nil && r.Adresse == nil && r.Client == nil && r.Statut == nil && r.DateDebut == nil && r.DateFin == nil {
		return errors.New("at least one field must be updated")
	}
	if r.Nom != nil {
		nom := strings.TrimSpace(*r.Nom)
		if nom == "" {
			return errors.New("nom cannot be empty")
		}
		if utf8.RuneCountInString(nom) > maxChantierNomLen {
			return errors.New("nom cannot exceed 255 characters")
		}
		r.Nom = &nom
	}
	if r.Statut != nil && !r.Statut.Valid() {
		return errors.New("statut must be one of A_VENIR, EN_COURS, TERMINE")
	}
	return validateDates(r.DateDebut, r.DateFin)
}

func validateDates(debut, fin *time.Time) error {
	if debut != nil && fin != nil && fin.Before(*debut) {
		return errors.New("dateFin cannot be before dateDebut")
	}
	return nil
}

// DashboardSummary is the ACCUEIL landing page payload.
type DashboardSummary struct {
	ChantiersParStatut map[ChantierStatut]int `json:"chantiersParStatut"`
	SalariesActifs     int                    `json:"salariesActifs"`
	UtilisateursActifs int                    `json:"utilisateursActifs"`
}
