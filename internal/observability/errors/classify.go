// Package errors turns arbitrary errors into low-cardinality labels for the
// storage error counter and structured logs.
package errors

import (
	"context"
	"database/sql"
	"database/sql/driver"
	goerrors "errors"
	"net"

	apperrors "github.com/batisuivi/batisuivi/internal/errors"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE classes, keyed by the first two characters of the code.
var pgClasses = map[string]string{
	"08": "pg_connection",
	"22": "pg_data",
	"23": "pg_constraint",
	"28": "pg_auth",
	"40": "pg_rollback",
	"42": "pg_syntax",
	"53": "pg_resources",
	"57": "pg_operator",
}

// Classify returns "" for nil. AppError codes win over the cause, except
// internal errors, which are classified by what they wrap.
func Classify(err error) string {
	if err == nil {
		return ""
	}
	if goerrors.Is(err, context.DeadlineExceeded) {
		return string(apperrors.ErrCodeTimeout)
	}
	if goerrors.Is(err, context.Canceled) {
		return string(apperrors.ErrCodeCanceled)
	}
	code := apperrors.GetCode(err)
	if code != "" && code != apperrors.ErrCodeInternal {
		return string(code)
	}

	var pgErr *pgconn.PgError
	var netErr net.Error
	switch {
	case goerrors.As(err, &pgErr):
		if len(pgErr.Code) >= 2 {
			if class, ok := pgClasses[pgErr.Code[:2]]; ok {
				return class
			}
		}
		return "pg_other"
	case goerrors.Is(err, sql.ErrConnDone), goerrors.Is(err, driver.ErrBadConn):
		return "pg_connection"
	case goerrors.As(err, &netErr):
		return "network"
	case code == apperrors.ErrCodeInternal:
		return string(code)
	}
	return "unknown"
}
