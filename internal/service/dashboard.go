package service

import (
	"context"
	"fmt"

	"github.com/batisuivi/batisuivi/internal/domain/model"
	"github.com/batisuivi/batisuivi/internal/ports"
	"golang.org/x/sync/errgroup"
)

// DashboardServiceOptions groups dependencies for DashboardService.
type DashboardServiceOptions struct {
	Chantiers ports.ChantierRepository
	Salaries  ports.SalarieRepository
	Users     ports.UserRepository
}

// DashboardService builds the home page summary.
type DashboardService struct {
	chantiers ports.ChantierRepository
	salaries  ports.SalarieRepository
	users     ports.UserRepository
}

// NewDashboardService constructs a new DashboardService.
func NewDashboardService(opts DashboardServiceOptions) *DashboardService {
	if opts.Chantiers == nil || opts.Salaries == nil || opts.Users == nil {
		panic("DashboardService requires chantier, salarie and user repositories")
	}
	return &DashboardService{chantiers: opts.Chantiers, salaries: opts.Salaries, users: opts.Users}
}

// Summary loads the dashboard counters concurrently. The first failure cancels the others.
func (s *DashboardService) Summary(ctx context.Context) (*model.DashboardSummary, error) {
	var out model.DashboardSummary
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		counts, err := s.chantiers.CountByStatut(gctx)
		if err != nil {
			return fmt.Errorf("count chantiers: %w", err)
		}
		out.ChantiersParStatut = counts
		return nil
	})
	g.Go(func() error {
		n, err := s.salaries.CountActive(gctx)
		if err != nil {
			return fmt.Errorf("count salaries: %w", err)
		}
		out.SalariesActifs = n
		return nil
	})
	g.Go(func() error {
		n, err := s.users.CountActive(gctx)
		if err != nil {
			return fmt.Errorf("count users: %w", err)
		}
		out.UtilisateursActifs = n
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}
