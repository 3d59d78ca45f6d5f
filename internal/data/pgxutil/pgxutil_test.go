package pgxutil

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/batisuivi/batisuivi/internal/testutil"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithConn(t *testing.T) {
	db := testutil.SetupTestDB(t)

	var n int
	err := WithConn(context.Background(), db, func(c *pgx.Conn) error {
		return c.QueryRow(context.Background(), "SELECT 1 + 1").Scan(&n)
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	_, err := db.ExecContext(ctx, "CREATE TABLE tx_probe (v INT)")
	require.NoError(t, err)

	boom := errors.New("boom")
	err = WithTx(ctx, db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		if _, e := tx.Exec(ctx, "INSERT INTO tx_probe (v) VALUES (1)"); e != nil {
			return e
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	require.NoError(t, WithTx(ctx, db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, e := tx.Exec(ctx, "INSERT INTO tx_probe (v) VALUES (2)")
		return e
	}))

	var total int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COALESCE(SUM(v), 0) FROM tx_probe").Scan(&total))
	assert.Equal(t, 2, total)
}

func TestWithTx_ReadOnly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	err := WithTx(ctx, db, ReadOnly, func(tx pgx.Tx) error {
		_, e := tx.Exec(ctx, "CREATE TABLE ro_probe (v INT)")
		return e
	})
	assert.Error(t, err)
}

func TestWithConn_ClosedPool(t *testing.T) {
	db, err := sql.Open("pgx", "postgres://nobody@127.0.0.1:1/none")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	err = WithConn(context.Background(), db, func(*pgx.Conn) error { return nil })
	assert.ErrorContains(t, err, "acquire connection")
}
