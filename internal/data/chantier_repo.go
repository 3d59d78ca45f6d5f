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

const chantierNotFound = "chantier introuvable"

var _ ports.ChantierRepository = (*ChantierRepo)(nil)

// ChantierRepo provides database operations for construction sites.
type ChantierRepo struct {
	DB  *sql.DB
	now Clock
}

// NewChantierRepo creates a new ChantierRepo.
func NewChantierRepo(db *sql.DB) *ChantierRepo {
	return &ChantierRepo{DB: db, now: systemClock}
}

const chantierReturning = ` RETURNING id, nom, adresse, client, statut, date_debut, date_fin, created_at, updated_at`

func chantierColumns() []string {
	return []string{"id", "nom", "adresse", "client", "statut", "date_debut", "date_fin", "created_at", "updated_at"}
}

// List retrieves chantiers, newest first.
func (r *ChantierRepo) List(ctx context.Context, opts model.ChantiersListOptions) ([]*model.Chantier, error) {
	limit, offset := pageBounds(opts.Limit, opts.Offset)
	var conds []database.Condition
	if opts.Q != nil && strings.TrimSpace(*opts.Q) != "" {
		conds = append(conds, database.WhereRawCond(
			"(nom ILIKE $1 OR client ILIKE $1 OR adresse ILIKE $1)", likePattern(*opts.Q),
		))
	}
	if opts.Statut != nil {
		conds = append(conds, database.WhereCond("statut", database.Equal, string(*opts.Statut)))
	}
	query, args := database.BuildListQuery(database.NewListQueryOptions("chantiers",
		database.WithColumns(chantierColumns()...),
		database.WithConditions(conds...),
		database.WithOrderBy("created_at", "DESC"),
		database.WithLimit(limit),
		database.WithOffset(offset),
	))

	var out []*model.Chantier
	err := pgxutil.WithConn(ctx, r.DB, func(conn *pgx.Conn) error {
		var e error
		out, e = collectAll[model.Chantier](ctx, conn, query, args...)
		return e
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list chantiers: %w", apperrors.MapDBError(err))
	}
	return out, nil
}

// GetByID retrieves a chantier by ID.
func (r *ChantierRepo) GetByID(ctx context.Context, id string) (*model.Chantier, error) {
	if err := checkID(id, chantierNotFound); err != nil {
		return nil, err
	}
	var out model.Chantier
	err := pgxutil.WithConn(ctx, r.DB, func(conn *pgx.Conn) error {
		var e error
		out, e = collectOne[model.Chantier](ctx, conn,
			`SELECT id, nom, adresse, client, statut, date_debut, date_fin, created_at, updated_at
			 FROM chantiers WHERE id = $1`, id)
		return e
	})
	if err != nil {
		return nil, mapErr(err, chantierNotFound)
	}
	return &out, nil
}

// Create inserts a new chantier.
func (r *ChantierRepo) Create(ctx context.Context, req *model.CreateChantierRequest) (*model.Chantier, error) {
	if req == nil {
		return nil, errors.New("create chantier request is required")
	}
	var out model.Chantier
	err := pgxutil.WithConn(ctx, r.DB, func(conn *pgx.Conn) error {
		var e error
		out, e = collectOne[model.Chantier](ctx, conn, `
			INSERT INTO chantiers (id, nom, adresse, client, statut, date_debut, date_fin, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)`+chantierReturning,
			uuid.NewString(), req.Nom, req.Adresse, req.Client, string(req.Statut),
			req.DateDebut, req.DateFin, r.now(),
		)
		return e
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// Update applies changes to a chantier.
func (r *ChantierRepo) Update(ctx context.Context, id string, req model.UpdateChantierRequest) (*model.Chantier, error) {
	if err := checkID(id, chantierNotFound); err != nil {
		return nil, err
	}
	u := newUpdateBuilder(r.now())
	u.setOptional("nom", req.Nom)
	u.setNullable("adresse", req.Adresse)
	u.setNullable("client", req.Client)
	if req.Statut != nil {
		u.set("statut", string(*req.Statut))
	}
	setPtr(u, "date_debut", req.DateDebut)
	setPtr(u, "date_fin", req.DateFin)

	query, args := u.build("chantiers", id, chantierReturning)
	var out model.Chantier
	err := pgxutil.WithConn(ctx, r.DB, func(conn *pgx.Conn) error {
		var e error
		out, e = collectOne[model.Chantier](ctx, conn, query, args...)
		return e
	})
	if err != nil {
		return nil, mapErr(err, chantierNotFound)
	}
	return &out, nil
}

// Delete deletes a chantier by ID.
func (r *ChantierRepo) Delete(ctx context.Context, id string) (bool, error) {
	if checkID(id, chantierNotFound) != nil {
		return false, nil
	}
	var rows int64
	err := pgxutil.WithConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM chantiers WHERE id = $1`, id)
		rows = ct.RowsAffected()
		return err
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete chantier: %w", apperrors.MapDBError(err))
	}
	return rows > 0, nil
}

type statutCount struct {
	Statut model.ChantierStatut `db:"statut"`
	N      int64                `db:"n"`
}

// CountByStatut returns the number of chantiers per statut. Every statut is present.
func (r *ChantierRepo) CountByStatut(ctx context.Context) (map[model.ChantierStatut]int, error) {
	var rows []*statutCount
	err := pgxutil.WithConn(ctx, r.DB, func(conn *pgx.Conn) error {
		var e error
		rows, e = collectAll[statutCount](ctx, conn, `SELECT statut, COUNT(*) AS n FROM chantiers GROUP BY statut`)
		return e
	})
	if err != nil {
		return nil, fmt.Errorf("count chantiers by statut: %w", err)
	}
	out := map[model.ChantierStatut]int{
		model.ChantierAVenir:  0,
		model.ChantierEnCours: 0,
		model.ChantierTermine: 0,
	}
	for _, row := range rows {
		out[row.Statut] = int(row.N)
	}
	return out, nil
}
