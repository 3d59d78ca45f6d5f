package service

import (
	"context"
	"fmt"

	"github.com/batisuivi/batisuivi/internal/domain/model"
	"github.com/batisuivi/batisuivi/internal/ports"
)

// ChantierServiceOptions groups dependencies for ChantierService.
type ChantierServiceOptions struct {
	Repo ports.ChantierRepository
}

// ChantierService manages construction sites.
type ChantierService struct {
	repo ports.ChantierRepository
}

// NewChantierService constructs a new ChantierService.
func NewChantierService(opts ChantierServiceOptions) *ChantierService {
	if opts.Repo == nil {
		panic("ChantierRepository is required")
	}
	return &ChantierService{repo: opts.Repo}
}

// List returns a page of chantiers.
func (s *ChantierService) List(ctx context.Context, opts model.ChantiersListOptions) ([]*model.Chantier, error) {
	return s.repo.List(ctx, opts)
}

// GetByID retrieves a chantier by ID.
func (s *ChantierService) GetByID(ctx context.Context, id string) (*model.Chantier, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates and inserts a chantier.
func (s *ChantierService) Create(ctx context.Context, req *model.CreateChantierRequest) (*model.Chantier, error) {
	if err := req.Validate(); err != nil {
		return nil, invalid(err)
	}
	out, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create chantier: %w", err)
	}
	return out, nil
}

// Update validates and applies changes to a chantier.
func (s *ChantierService) Update(ctx context.Context, id string, req model.UpdateChantierRequest) (*model.Chantier, error) {
	if err := req.Validate(); err != nil {
		return nil, invalid(err)
	}
	out, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("update chantier: %w", err)
	}
	return out, nil
}

// Delete deletes a chantier by ID.
func (s *ChantierService) Delete(ctx context.Context, id string) (bool, error) {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete chantier: %w", err)
	}
	return ok, nil
}
