package service

import (
	"context"
	"fmt"
	"log/slog"

	domainauth "github.com/batisuivi/batisuivi/internal/domain/auth"
	"github.com/batisuivi/batisuivi/internal/domain/model"
	apperrors "github.com/batisuivi/batisuivi/internal/errors"
	"github.com/batisuivi/batisuivi/internal/ports"
	"github.com/google/uuid"
)

// Messages returned to the acting user when an administrative rule blocks the change.
const (
	msgSelfRoleChange     = "Vous ne pouvez pas modifier votre propre rôle"
	msgSelfDeactivation   = "Vous ne pouvez pas désactiver votre propre compte"
	msgWrongCurrentPasswd = "Mot de passe actuel incorrect"
	msgRoleNotAssignable  = "Vous ne pouvez pas attribuer ce rôle"
)

// UserServiceOptions groups dependencies for UserService.
type UserServiceOptions struct {
	Users  ports.UserRepository
	Hasher ports.PasswordHasher
	Logger *slog.Logger
}

// UserService administers accounts. Rules that depend on who is acting
// take the acting SessionUser explicitly.
type UserService struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	logger *slog.Logger
}

// NewUserService constructs a new UserService.
func NewUserService(opts UserServiceOptions) *UserService {
	if opts.Users == nil {
		panic("UserRepository is required")
	}
	if opts.Hasher == nil {
		panic("PasswordHasher is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{users: opts.Users, hasher: opts.Hasher, logger: logger.With("component", "users")}
}

// List returns a page of users.
func (s *UserService) List(ctx context.Context, opts model.UsersListOptions) ([]*model.User, error) {
	return s.users.List(ctx, opts)
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

// Create validates the request, hashes the password and inserts the account.
// A nil actor is a trusted operator (admin CLI, seeding) and may assign any role.
func (s *UserService) Create(
	ctx context.Context,
	actor *domainauth.SessionUser,
	req *model.CreateUserRequest,
) (*model.User, error) {
	if err := req.Validate(); err != nil {
		return nil, invalid(err)
	}
	if err := checkAssignable(actor, req.Role); err != nil {
		return nil, err
	}
	digest, err := s.hasher.Hash(req.MotDePasse)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u, err := s.users.Create(ctx, req, digest)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.logger.InfoContext(ctx, "user created", "user_id", u.ID, "role", u.Role)
	return u, nil
}

// Update applies profile changes.
func (s *UserService) Update(ctx context.Context, id string, req model.UpdateUserRequest) (*model.User, error) {
	if err := req.Validate(); err != nil {
		return nil, invalid(err)
	}
	u, err := s.users.Update(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return u, nil
}

// SetActive activates or deactivates an account. An actor cannot deactivate themselves.
func (s *UserService) SetActive(
	ctx context.Context,
	actor *domainauth.SessionUser,
	id string,
	actif bool,
) (*model.User, error) {
	if !actif && isSelf(actor, id) {
		return nil, apperrors.Validation(msgSelfDeactivation)
	}
	u, err := s.users.SetActive(ctx, id, actif)
	if err != nil {
		return nil, fmt.Errorf("set active: %w", err)
	}
	s.logger.InfoContext(ctx, "user active flag changed", "user_id", id, "actif", actif, "by", actorID(actor))
	return u, nil
}

// SetRole changes an account's role. An actor cannot change their own role.
func (s *UserService) SetRole(
	ctx context.Context,
	actor *domainauth.SessionUser,
	id string,
	role domainauth.Role,
) (*model.User, error) {
	if !role.Valid() {
		return nil, invalid(domainauth.ErrInvalidRole)
	}
	if isSelf(actor, id) {
		return nil, apperrors.Validation(msgSelfRoleChange)
	}
	u, err := s.users.SetRole(ctx, id, role)
	if err != nil {
		return nil, fmt.Errorf("set role: %w", err)
	}
	s.logger.InfoContext(ctx, "user role changed", "user_id", id, "role", role, "by", actorID(actor))
	return u, nil
}

// ResetPassword replaces another account's password.
func (s *UserService) ResetPassword(ctx context.Context, id, password string) error {
	if err := model.ValidatePassword(password); err != nil {
		return invalid(err)
	}
	digest, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.SetPasswordHash(ctx, id, digest); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	return nil
}

// ChangePassword changes the actor's own password after checking the current one.
func (s *UserService) ChangePassword(
	ctx context.Context,
	actor *domainauth.SessionUser,
	req model.ChangePasswordRequest,
) error {
	if actor == nil {
		return apperrors.Wrap(domainauth.ErrUnauthenticated, apperrors.ErrCodeUnauthenticated, "Non authentifié")
	}
	if err := model.ValidatePassword(req.NouveauMotDePasse); err != nil {
		return invalid(err)
	}
	u, err := s.users.GetByID(ctx, actor.ID)
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}
	if !s.hasher.Verify(req.MotDePasseActuel, u.PasswordHash) {
		return apperrors.Validation(msgWrongCurrentPasswd)
	}
	digest, err := s.hasher.Hash(req.NouveauMotDePasse)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.SetPasswordHash(ctx, u.ID, digest); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	return nil
}

// CountActive returns the number of active accounts.
func (s *UserService) CountActive(ctx context.Context) (int, error) {
	return s.users.CountActive(ctx)
}

func invalid(err error) error {
	return apperrors.Wrap(err, apperrors.ErrCodeValidation, err.Error())
}

// isSelf reports whether id names the actor's own account. Storage accepts any
// spelling uuid.Parse does, so ids are compared as UUIDs when both parse.
func isSelf(actor *domainauth.SessionUser, id string) bool {
	if actor == nil {
		return false
	}
	a, errA := uuid.Parse(actor.ID)
	b, errB := uuid.Parse(id)
	if errA == nil && errB == nil {
		return a == b
	}
	return actor.ID == id
}

// checkAssignable refuses roles the actor could not grant through a role change.
func checkAssignable(actor *domainauth.SessionUser, role domainauth.Role) error {
	if actor == nil || domainauth.CanAssignRole(actor.Role, role) {
		return nil
	}
	return apperrors.Wrap(domainauth.ErrForbidden, apperrors.ErrCodeForbidden, msgRoleNotAssignable)
}

func actorID(actor *domainauth.SessionUser) string {
	if actor == nil {
		return ""
	}
	return actor.ID
}
