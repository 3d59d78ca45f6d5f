// Package pgxutil runs native pgx code on connections borrowed from a
// database/sql pool opened with the pgx stdlib driver.
package pgxutil

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
)

// ErrNotPgx is returned when the pool was not opened with the "pgx" driver.
var ErrNotPgx = errors.New("pgxutil: driver connection is not *stdlib.Conn")

// ReadOnly is the option set for transactions that only read.
var ReadOnly = pgx.TxOptions{AccessMode: pgx.ReadOnly}

// WithConn borrows one connection from db for the duration of fn.
func WithConn(ctx context.Context, db *sql.DB, fn func(*pgx.Conn) error) error {
	sqlConn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer func() { _ = sqlConn.Close() }()

	return sqlConn.Raw(func(driverConn any) error {
		c, ok := driverConn.(*stdlib.Conn)
		if !ok {
			return fmt.Errorf("%w (got %T)", ErrNotPgx, driverConn)
		}
		return fn(c.Conn())
	})
}

// WithTx runs fn inside a transaction. The transaction commits when fn returns
// nil and rolls back otherwise; fn's error is returned as is.
func WithTx(ctx context.Context, db *sql.DB, opts pgx.TxOptions, fn func(pgx.Tx) error) error {
	return WithConn(ctx, db, func(c *pgx.Conn) error {
		return pgx.BeginTxFunc(ctx, c, opts, fn)
	})
}
