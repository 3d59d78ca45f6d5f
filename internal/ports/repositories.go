package ports

import (
	"context"

	"github.com/batisuivi/batisuivi/internal/domain/auth"
	"github.com/batisuivi/batisuivi/internal/domain/model"
)

// UserRepository administers user accounts. Users are never hard-deleted.
type UserRepository interface {
	UserStore
	List(ctx context.Context, opts model.UsersListOptions) ([]*model.User, error)
	// Create inserts an account; passwordHash is the already hashed password.
	Create(ctx context.Context, req *model.CreateUserRequest, passwordHash string) (*model.User, error)
	Update(ctx context.Context, id string, req model.UpdateUserRequest) (*model.User, error)
	SetActive(ctx context.Context, id string, actif bool) (*model.User, error)
	SetRole(ctx context.Context, id string, role auth.Role) (*model.User, error)
	SetPasswordHash(ctx context.Context, id, passwordHash string) error
	CountActive(ctx context.Context) (int, error)
}

// SalarieRepository persists employees.
type SalarieRepository interface {
	List(ctx context.Context, opts model.SalariesListOptions) ([]*model.Salarie, error)
	GetByID(ctx context.Context, id string) (*model.Salarie, error)
	// Create inserts the employee and, when account is non-nil, its linked user
	// account in the same transaction.
	Create(ctx context.Context, req *model.CreateSalarieRequest, account *NewAccount) (*model.Salarie, error)
	Update(ctx context.Context, id string, req model.UpdateSalarieRequest) (*model.Salarie, error)
	Delete(ctx context.Context, id string) (bool, error)
	CountActive(ctx context.Context) (int, error)
}

// NewAccount is a validated account ready to be inserted with a hashed password.
type NewAccount struct {
	Request      *model.CreateUserRequest
	PasswordHash string
}

// ChantierRepository persists construction sites.
type ChantierRepository interface {
	List(ctx context.Context, opts model.ChantiersListOptions) ([]*model.Chantier, error)
	GetByID(ctx context.Context, id string) (*model.Chantier, error)
	Create(ctx context.Context, req *model.CreateChantierRequest) (*model.Chantier, error)
	Update(ctx context.Context, id string, req model.UpdateChantierRequest) (*model.Chantier, error)
	Delete(ctx context.Context, id string) (bool, error)
	CountByStatut(ctx context.Context) (map[model.ChantierStatut]int, error)
}
