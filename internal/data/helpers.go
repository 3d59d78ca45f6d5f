package data

import (
	"context"
	"strings"

	apperrors "github.com/batisuivi/batisuivi/internal/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// defaultListLimit is applied when callers pass a non-positive limit.
const defaultListLimit = 50

// querier is satisfied by both *pgx.Conn and pgx.Tx so inserts can run inside
// or outside a transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func collectOne[T any](ctx context.Context, q querier, query string, args ...any) (T, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		var zero T
		return zero, err
	}
	defer rows.Close()
	return pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
}

func collectAll[T any](ctx context.Context, q querier, query string, args ...any) ([]*T, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[T])
}

func countRows(ctx context.Context, q querier, query string, args ...any) (int, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	defer rows.Close()
	n, err := pgx.CollectOneRow(rows, pgx.RowTo[int64])
	return int(n), err
}

// mapErr maps database errors onto the AppError taxonomy, replacing the generic
// not-found message with one naming the entity.
func mapErr(err error, notFound string) error {
	mapped := apperrors.MapDBError(err)
	if apperrors.IsNotFound(mapped) {
		return apperrors.Wrap(err, apperrors.ErrCodeNotFound, notFound)
	}
	return mapped
}

// checkID rejects ids that are not UUIDs before they reach Postgres, where
// they would surface as a cast error instead of a miss.
func checkID(id, notFound string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.NotFound(notFound)
	}
	return nil
}

func likePattern(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.TrimSpace(q)) + "%"
}

func pageBounds(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	return limit, max(offset, 0)
}
