package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/batisuivi/batisuivi/internal/data/database"
	"github.com/batisuivi/batisuivi/internal/data/pgxutil"
	"github.com/batisuivi/batisuivi/internal/domain/auth"
	"github.com/batisuivi/batisuivi/internal/domain/model"
	apperrors "github.com/batisuivi/batisuivi/internal/errors"
	"github.com/batisuivi/batisuivi/internal/ports"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const userNotFound = "utilisateur introuvable"

var _ ports.UserRepository = (*UserRepo)(nil)

// UserRepo provides database operations for user accounts.
type UserRepo struct {
	DB  *sql.DB
	now Clock
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db, now: systemClock}
}

// NewUserRepoWithClock creates a UserRepo whose timestamps come from now.
func NewUserRepoWithClock(db *sql.DB, now Clock) *UserRepo {
	return &UserRepo{DB: db, now: now}
}

const (
	userSelect = `
		SELECT id, identifiant, email, password_hash, nom, prenom, role, salarie_id, actif,
		       last_login_at, created_at, updated_at
		FROM users`

	userReturning = ` RETURNING id, identifiant, email, password_hash, nom, prenom, role, salarie_id, actif,
		last_login_at, created_at, updated_at`

	// The earliest candidate wins; ties go to the oldest account.
	// LEAST skips the NULL position of a column that did not match.
	userFindActiveByLoginQuery = userSelect + `
		WHERE actif AND (identifiant = ANY($1::text[]) OR email = ANY($1::text[]))
		ORDER BY LEAST(array_position($1::text[], identifiant), array_position($1::text[], email)),
		         created_at, id
		LIMIT 1`

	userGetByIDQuery = userSelect + ` WHERE id = $1`
)

func userColumns() []string {
	return []string{
		"id", "identifiant", "email", "password_hash", "nom", "prenom", "role",
		"salarie_id", "actif", "last_login_at", "created_at", "updated_at",
	}
}

// FindActiveByLogin returns the active user matching the earliest candidate on
// identifiant or email.
func (r *UserRepo) FindActiveByLogin(ctx context.Context, candidates []string) (*model.User, error) {
	if len(candidates) == 0 {
		return nil, apperrors.NotFound(userNotFound)
	}
	var out model.User
	err := pgxutil.WithConn(ctx, r.DB, func(conn *pgx.Conn) error {
		var e error
		out, e = collectOne[model.User](ctx, conn, userFindActiveByLoginQuery, candidates)
		return e
	})
	if err != nil {
		return nil, mapErr(err, userNotFound)
	}
	return &out, nil
}

// GetByID retrieves a user by ID regardless of its active flag.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	if err := checkID(id, userNotFound); err != nil {
		return nil, err
	}
	var out model.User
	err := pgxutil.WithConn(ctx, r.DB, func(conn *pgx.Conn) error {
		var e error
		out, e = collectOne[model.User](ctx, conn, userGetByIDQuery, id)
		return e
	})
	if err != nil {
		return nil, mapErr(err, userNotFound)
	}
	return &out, nil
}

// TouchLastLogin records the time of a successful login.
func (r *UserRepo) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	return r.exec(ctx, `UPDATE users SET last_login_at = $2 WHERE id = $1`, id, at.UTC())
}

// List retrieves users with optional filters, newest first.
func (r *UserRepo) List(ctx context.Context, opts model.UsersListOptions) ([]*model.User, error) {
	limit, offset := pageBounds(opts.Limit, opts.Offset)
	query, args := database.BuildListQuery(database.NewListQueryOptions("users",
		database.WithColumns(userColumns()...),
		database.WithConditions(userConditions(opts)...),
		database.WithOrderBy("created_at", "DESC"),
		database.WithLimit(limit),
		database.WithOffset(offset),
	))

	var out []*model.User
	err := pgxutil.WithConn(ctx, r.DB, func(conn *pgx.Conn) error {
		var e error
		out, e = collectAll[model.User](ctx, conn, query, args...)
		return e
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", apperrors.MapDBError(err))
	}
	return out, nil
}

func userConditions(opts model.UsersListOptions) []database.Condition {
	var conds []database.Condition
	if opts.Q != nil && strings.TrimSpace(*opts.Q) != "" {
		conds = append(conds, database.WhereRawCond(
			"(identifiant ILIKE $1 OR email ILIKE $1 OR nom ILIKE $1 OR prenom ILIKE $1)",
			likePattern(*opts.Q),
		))
	}
	if opts.Role != nil {
		conds = append(conds, database.WhereCond("role", database.Equal, string(*opts.Role)))
	}
	if opts.Actif != nil {
		conds = append(conds, database.WhereCond("actif", database.Equal, *opts.Actif))
	}
	return conds
}

// Create inserts a new account with an already hashed password.
func (r *UserRepo) Create(ctx context.Context, req *model.CreateUserRequest, passwordHash string) (*model.User, error) {
	if req == nil {
		return nil, errors.New("create user request is required")
	}
	var out *model.User
	err := pgxutil.WithConn(ctx, r.DB, func(conn *pgx.Conn) error {
		var e error
		out, e = insertUser(ctx, conn, insertUserParams{
			req:          req,
			passwordHash: passwordHash,
			salarieID:    req.SalarieID,
			now:          r.now(),
		})
		return e
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return out, nil
}

type insertUserParams struct {
	req          *model.CreateUserRequest
	passwordHash string
	salarieID    *string
	now          time.Time
}

func insertUser(ctx context.Context, q querier, p insertUserParams) (*model.User, error) {
	u, err := collectOne[model.User](ctx, q, `
		INSERT INTO users (id, identifiant, email, password_hash, nom, prenom, role, salarie_id, actif, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE, $9, $9)`+userReturning,
		uuid.NewString(),
		p.req.Identifiant,
		p.req.Email,
		p.passwordHash,
		p.req.Nom,
		p.req.Prenom,
		string(p.req.Role),
		p.salarieID,
		p.now,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Update applies profile changes. Blank salarieId unlinks the employee.
func (r *UserRepo) Update(ctx context.Context, id string, req model.UpdateUserRequest) (*model.User, error) {
	if err := checkID(id, userNotFound); err != nil {
		return nil, err
	}
	u := newUpdateBuilder(r.now())
	u.setOptional("email", req.Email)
	u.setOptional("nom", req.Nom)
	u.setOptional("prenom", req.Prenom)
	u.setNullable("salarie_id", req.SalarieID)
	return r.update(ctx, id, u)
}

// SetActive flips the active flag.
func (r *UserRepo) SetActive(ctx context.Context, id string, actif bool) (*model.User, error) {
	if err := checkID(id, userNotFound); err != nil {
		return nil, err
	}
	u := newUpdateBuilder(r.now())
	u.set("actif", actif)
	return r.update(ctx, id, u)
}

// SetRole changes the account role.
func (r *UserRepo) SetRole(ctx context.Context, id string, role auth.Role) (*model.User, error) {
	if err := checkID(id, userNotFound); err != nil {
		return nil, err
	}
	u := newUpdateBuilder(r.now())
	u.set("role", string(role))
	return r.update(ctx, id, u)
}

// SetPasswordHash replaces the stored password hash.
func (r *UserRepo) SetPasswordHash(ctx context.Context, id, passwordHash string) error {
	if err := checkID(id, userNotFound); err != nil {
		return err
	}
	return r.exec(ctx, `UPDATE users SET password_hash = $2, updated_at = $3 WHERE id = $1`,
		id, passwordHash, r.now())
}

// CountActive returns the number of active accounts.
func (r *UserRepo) CountActive(ctx context.Context) (int, error) {
	query, args := database.BuildListQuery(database.NewListQueryOptions("users",
		database.WithCountOnly(),
		database.WithCondition(database.WhereCond("actif", database.Equal, true)),
	))
	var n int
	err := pgxutil.WithConn(ctx, r.DB, func(conn *pgx.Conn) error {
		var e error
		n, e = countRows(ctx, conn, query, args...)
		return e
	})
	if err != nil {
		return 0, fmt.Errorf("count active users: %w", err)
	}
	return n, nil
}

func (r *UserRepo) update(ctx context.Context, id string, u *updateBuilder) (*model.User, error) {
	query, args := u.build("users", id, userReturning)
	var out model.User
	err := pgxutil.WithConn(ctx, r.DB, func(conn *pgx.Conn) error {
		var e error
		out, e = collectOne[model.User](ctx, conn, query, args...)
		return e
	})
	if err != nil {
		return nil, mapErr(err, userNotFound)
	}
	return &out, nil
}

func (r *UserRepo) exec(ctx context.Context, query string, args ...any) error {
	var affected int64
	err := pgxutil.WithConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, e := conn.Exec(ctx, query, args...)
		affected = ct.RowsAffected()
		return e
	})
	if err != nil {
		return apperrors.MapDBError(err)
	}
	if affected == 0 {
		return apperrors.NotFound(userNotFound)
	}
	return nil
}
