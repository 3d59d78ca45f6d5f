package service

import (
	"context"
	"fmt"

	domainauth "github.com/batisuivi/batisuivi/internal/domain/auth"
	"github.com/batisuivi/batisuivi/internal/domain/model"
	"github.com/batisuivi/batisuivi/internal/ports"
)

// SalarieServiceOptions groups dependencies for SalarieService.
type SalarieServiceOptions struct {
	Repo   ports.SalarieRepository
	Hasher ports.PasswordHasher // required only to create linked accounts
}

// SalarieService manages employees and their optional linked account.
type SalarieService struct {
	repo   ports.SalarieRepository
	hasher ports.PasswordHasher
}

// NewSalarieService constructs a new SalarieService.
func NewSalarieService(opts SalarieServiceOptions) *SalarieService {
	if opts.Repo == nil {
		panic("SalarieRepository is required")
	}
	return &SalarieService{repo: opts.Repo, hasher: opts.Hasher}
}

// List returns a page of employees.
func (s *SalarieService) List(ctx context.Context, opts model.SalariesListOptions) ([]*model.Salarie, error) {
	return s.repo.List(ctx, opts)
}

// GetByID retrieves an employee by ID.
func (s *SalarieService) GetByID(ctx context.Context, id string) (*model.Salarie, error) {
	return s.repo.GetByID(ctx, id)
}

// Create inserts an employee. When the request carries an account, the
// employee and the account are created together or not at all. The account
// role follows the same assignment rule as UserService.Create.
func (s *SalarieService) Create(
	ctx context.Context,
	actor *domainauth.SessionUser,
	req *model.CreateSalarieRequest,
) (*model.Salarie, error) {
	if err := req.Validate(); err != nil {
		return nil, invalid(err)
	}

	var account *ports.NewAccount
	if accReq := req.AccountRequest(); accReq != nil {
		if s.hasher == nil {
			return nil, fmt.Errorf("create salarie: account creation is not configured")
		}
		if err := accReq.Validate(); err != nil {
			return nil, invalid(err)
		}
		if err := checkAssignable(actor, accReq.Role); err != nil {
			return nil, err
		}
		digest, err := s.hasher.Hash(accReq.MotDePasse)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		account = &ports.NewAccount{Request: accReq, PasswordHash: digest}
	}

	out, err := s.repo.Create(ctx, req, account)
	if err != nil {
		return nil, fmt.Errorf("create salarie: %w", err)
	}
	return out, nil
}

// Update applies changes to an employee.
func (s *SalarieService) Update(ctx context.Context, id string, req model.UpdateSalarieRequest) (*model.Salarie, error) {
	if err := req.Validate(); err != nil {
		return nil, invalid(err)
	}
	out, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("update salarie: %w", err)
	}
	return out, nil
}

// Delete removes an employee. Employees linked to an account are refused by storage.
func (s *SalarieService) Delete(ctx context.Context, id string) (bool, error) {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete salarie: %w", err)
	}
	return ok, nil
}
