// Package devseed fills a development database with one account per role and
// a handful of employees and construction sites.
package devseed

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/batisuivi/batisuivi/internal/data"
	domainauth "github.com/batisuivi/batisuivi/internal/domain/auth"
	"github.com/batisuivi/batisuivi/internal/domain/model"
	apperrors "github.com/batisuivi/batisuivi/internal/errors"
	"github.com/batisuivi/batisuivi/internal/ports"
	"github.com/batisuivi/batisuivi/internal/service"
)

// DefaultPassword is the password given to every seeded account.
const DefaultPassword = "batisuivi-dev"

// Services bundles the dependencies needed for development seeding.
type Services struct {
	Users     *service.UserService
	Salaries  *service.SalarieService
	Chantiers *service.ChantierService
}

// NewServices constructs all required services for seeding using the provided DB.
func NewServices(db *sql.DB, hasher ports.PasswordHasher) Services {
	return Services{
		Users:     service.NewUserService(service.UserServiceOptions{Users: data.NewUserRepo(db), Hasher: hasher}),
		Salaries:  service.NewSalarieService(service.SalarieServiceOptions{Repo: data.NewSalarieRepo(db), Hasher: hasher}),
		Chantiers: service.NewChantierService(service.ChantierServiceOptions{Repo: data.NewChantierRepo(db)}),
	}
}

// Run executes the full development seeding workflow. It is safe to run twice:
// existing accounts are kept and lists that already hold rows are skipped.
func Run(ctx context.Context, svcs Services, password string, logger *slog.Logger) error {
	if password == "" {
		password = DefaultPassword
	}
	if logger == nil {
		logger = slog.Default()
	}

	failures := seedUsers(ctx, svcs.Users, password, logger)
	if err := seedSalaries(ctx, svcs.Salaries, password, logger); err != nil {
		logger.ErrorContext(ctx, "failed to seed salaries", "error", err)
		failures++
	}
	if err := seedChantiers(ctx, svcs.Chantiers, logger); err != nil {
		logger.ErrorContext(ctx, "failed to seed chantiers", "error", err)
		failures++
	}
	if failures > 0 {
		return fmt.Errorf("%d seed errors; check logs", failures)
	}
	return nil
}

// RoleIdentifiant is the login of the seeded account for role.
func RoleIdentifiant(role domainauth.Role) string {
	return strings.ToLower(role.String())
}

func seedUsers(ctx context.Context, svc *service.UserService, password string, logger *slog.Logger) int {
	failures := 0
	for _, role := range domainauth.AllRoles() {
		req := &model.CreateUserRequest{
			Identifiant: RoleIdentifiant(role),
			MotDePasse:  password,
			Email:       ptr(RoleIdentifiant(role) + "@batisuivi.local"),
			Prenom:      ptr(role.String()),
			Role:        role,
		}
		created, err := createUser(ctx, svc, req)
		if err != nil {
			logger.ErrorContext(ctx, "failed to create user", "identifiant", req.Identifiant, "error", err)
			failures++
			continue
		}
		msg := "user already exists"
		if created {
			msg = "created user"
		}
		logger.InfoContext(ctx, msg, "identifiant", req.Identifiant, "role", role)
	}
	return failures
}

func createUser(ctx context.Context, svc *service.UserService, req *model.CreateUserRequest) (bool, error) {
	if _, err := svc.Create(ctx, nil, req); err != nil {
		if apperrors.IsConflict(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func seedSalaries(ctx context.Context, svc *service.SalarieService, password string, logger *slog.Logger) error {
	existing, err := svc.List(ctx, model.SalariesListOptions{Limit: 1})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		logger.InfoContext(ctx, "salaries already seeded")
		return nil
	}

	for _, req := range defaultSalaries(password) {
		s, err := svc.Create(ctx, nil, req)
		if err != nil {
			return fmt.Errorf("create salarie %s %s: %w", req.Prenom, req.Nom, err)
		}
		logger.InfoContext(ctx, "created salarie", "id", s.ID, "linked_account", req.Compte != nil)
	}
	return nil
}

func defaultSalaries(password string) []*model.CreateSalarieRequest {
	return []*model.CreateSalarieRequest{
		{Nom: "Martin", Prenom: "Luc", Poste: ptr("Chef d'équipe"), Compte: &model.SalarieAccount{
			Identifiant: "luc.martin", MotDePasse: password, Role: domainauth.RoleCE,
		}},
		{Nom: "Bernard", Prenom: "Sofia", Poste: ptr("Maçon"), Compte: &model.SalarieAccount{
			Identifiant: "sofia.bernard", MotDePasse: password, Role: domainauth.RoleOuvrier,
		}},
		{Nom: "Petit", Prenom: "Hugo", Poste: ptr("Coffreur")},
	}
}

func seedChantiers(ctx context.Context, svc *service.ChantierService, logger *slog.Logger) error {
	existing, err := svc.List(ctx, model.ChantiersListOptions{Limit: 1})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		logger.InfoContext(ctx, "chantiers already seeded")
		return nil
	}

	start := time.Now().UTC().Truncate(24 * time.Hour)
	for _, req := range defaultChantiers(start) {
		c, err := svc.Create(ctx, req)
		if err != nil {
			return fmt.Errorf("create chantier %q: %w", req.Nom, err)
		}
		logger.InfoContext(ctx, "created chantier", "id", c.ID, "statut", c.Statut)
	}
	return nil
}

func defaultChantiers(start time.Time) []*model.CreateChantierRequest {
	later := start.AddDate(0, 2, 0)
	earlier := start.AddDate(0, -6, 0)
	return []*model.CreateChantierRequest{
		{Nom: "Résidence Les Tilleuls", Adresse: ptr("12 rue des Tilleuls, Lyon"), Client: ptr("OPH Lyon"),
			Statut: model.ChantierEnCours, DateDebut: &earlier},
		{Nom: "Groupe scolaire Jean Moulin", Client: ptr("Ville de Villeurbanne"),
			Statut: model.ChantierAVenir, DateDebut: &later},
		{Nom: "Entrepôt Nord", Statut: model.ChantierTermine, DateDebut: &earlier, DateFin: &start},
	}
}

func ptr[T any](v T) *T { return &v }
