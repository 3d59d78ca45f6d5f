package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/batisuivi/batisuivi/internal/data/database"
	"github.com/batisuivi/batisuivi/internal/data/pgxutil"
	"github.com/batisuivi/batisuivi/internal/domain/model"
	apperrors "github.com/batisuivi/batisuivi/internal/errors"
	"github.com/batisuivi/batisuivi/internal/ports"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const salarieNotFound = "salarié introuvable"

var _ ports.SalarieRepository = (*SalarieRepo)(nil)

// SalarieRepo provides database operations for employees.
type SalarieRepo struct {
	DB  *sql.DB
	now Clock
}

// NewSalarieRepo creates a new SalarieRepo.
func NewSalarieRepo(db *sql.DB) *SalarieRepo {
	return &SalarieRepo{DB: db, now: systemClock}
}

const salarieReturning = ` RETURNING id, nom, prenom, poste, telephone, email, actif, created_at, updated_at`

func salarieColumns() []string {
	return []string{"id", "nom", "prenom", "poste", "telephone", "email", "actif", "created_at", "updated_at"}
}

// List retrieves employees ordered by nom, prenom.
func (r *SalarieRepo) List(ctx context.Context, opts model.SalariesListOptions) ([]*model.Salarie, error) {
	limit, offset := pageBounds(opts.Limit, opts.Offset)
	var conds []database.Condition
	if opts.Q != nil && strings.TrimSpace(*opts.Q) != "" {
		conds = append(conds, database.WhereRawCond(
			"(nom ILIKE $1 OR prenom ILIKE $1 OR poste ILIKE $1)", likePattern(*opts.Q),
		))
	}
	if opts.Actif != nil {
		conds = append(conds, database.WhereCond("actif", database.Equal, *opts.Actif))
	}
	query, args := database.BuildListQuery(database.NewListQueryOptions("salaries",
		database.WithColumns(salarieColumns()...),
		database.WithConditions(conds...),
		database.WithOrderBy("nom", "ASC"),
		database.WithLimit(limit),
		database.WithOffset(offset),
	))

	var out []*model.Salarie
	err := pgxutil.WithConn(ctx, r.DB, func(conn *pgx.Conn) error {
		var e error
		out, e = collectAll[model.Salarie](ctx, conn, query, args...)
		return e
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list salaries: %w", apperrors.MapDBError(err))
	}
	return out, nil
}

// GetByID retrieves an employee by ID.
func (r *SalarieRepo) GetByID(ctx context.Context, id string) (*model.Salarie, error) {
	if err := checkID(id, salarieNotFound); err != nil {
		return nil, err
	}
	var out model.Salarie
	err := pgxutil.WithConn(ctx, r.DB, func(conn *pgx.Conn) error {
		var e error
		out, e = collectOne[model.Salarie](ctx, conn,
			`SELECT id, nom, prenom, poste, telephone, email, actif, created_at, updated_at
			 FROM salaries WHERE id = $1`, id)
		return e
	})
	if err != nil {
		return nil, mapErr(err, salarieNotFound)
	}
	return &out, nil
}

// Create inserts an employee and, when account is set, its linked user in one transaction.
func (r *SalarieRepo) Create(
	ctx context.Context,
	req *model.CreateSalarieRequest,
	account *ports.NewAccount,
) (*model.Salarie, error) {
	if req == nil {
		return nil, errors.New("create salarie request is required")
	}
	actif := true
	if req.Actif != nil {
		actif = *req.Actif
	}
	now := r.now()

	var out model.Salarie
	err := pgxutil.WithTx(ctx, r.DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		var e error
		out, e = collectOne[model.Salarie](ctx, tx, `
			INSERT INTO salaries (id, nom, prenom, poste, telephone, email, actif, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)`+salarieReturning,
			uuid.NewString(), req.Nom, req.Prenom, req.Poste, req.Telephone, req.Email, actif, now,
		)
		if e != nil || account == nil {
			return e
		}
		_, e = insertUser(ctx, tx, insertUserParams{
			req:          account.Request,
			passwordHash: account.PasswordHash,
			salarieID:    &out.ID,
			now:          now,
		})
		return e
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// Update applies changes to an employee.
func (r *SalarieRepo) Update(ctx context.Context, id string, req model.UpdateSalarieRequest) (*model.Salarie, error) {
	if err := checkID(id, salarieNotFound); err != nil {
		return nil, err
	}
	u := newUpdateBuilder(r.now())
	if req.Nom != nil {
		u.set("nom", strings.TrimSpace(*req.Nom))
	}
	if req.Prenom != nil {
		u.set("prenom", strings.TrimSpace(*req.Prenom))
	}
	u.setNullable("poste", req.Poste)
	u.setNullable("telephone", req.Telephone)
	u.setNullable("email", req.Email)
	setPtr(u, "actif", req.Actif)

	query, args := u.build("salaries", id, salarieReturning)
	var out model.Salarie
	err := pgxutil.WithConn(ctx, r.DB, func(conn *pgx.Conn) error {
		var e error
		out, e = collectOne[model.Salarie](ctx, conn, query, args...)
		return e
	})
	if err != nil {
		return nil, mapErr(err, salarieNotFound)
	}
	return &out, nil
}

// Delete removes an employee. Employees linked to an account cannot be deleted.
func (r *SalarieRepo) Delete(ctx context.Context, id string) (bool, error) {
	if checkID(id, salarieNotFound) != nil {
		return false, nil
	}
	var rows int64
	err := pgxutil.WithConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM salaries WHERE id = $1`, id)
		rows = ct.RowsAffected()
		return err
	})
	if err != nil {
		return false, apperrors.MapDBError(err)
	}
	return rows > 0, nil
}

// CountActive returns the number of active employees.
func (r *SalarieRepo) CountActive(ctx context.Context) (int, error) {
	var n int
	err := pgxutil.WithConn(ctx, r.DB, func(conn *pgx.Conn) error {
		var e error
		n, e = countRows(ctx, conn, `SELECT COUNT(*) FROM salaries WHERE actif`)
		return e
	})
	if err != nil {
		return 0, fmt.Errorf("count active salaries: %w", err)
	}
	return n, nil
}
