package errors

import (
	"context"
	"errors"
	"regexp"
	"slices"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// Key (identifiant)=(caff) already exists.
	reKeyField = regexp.MustCompile(`Key \(([^)]+)\)=`)
	// ... is still referenced from table "users".
	reReferencedFrom = regexp.MustCompile(`is still referenced from table "?([^"]+)"?`)
	// ... is not present in table "salaries".
	reNotPresent = regexp.MustCompile(`is not present in table "?([^"]+)"?`)
)

// tableLabels names each table the way users see it.
var tableLabels = map[string]string{
	"users":     "Utilisateur",
	"salaries":  "Salarié",
	"chantiers": "Chantier",
}

// constraintMessages override the generic message for named constraints.
var constraintMessages = map[string]string{
	"users_identifiant_key":  "Cet identifiant est déjà utilisé.",
	"users_email_key":        "Cet email est déjà utilisé.",
	"users_salarie_key":      "Ce salarié est déjà lié à un compte utilisateur.",
	"users_salarie_id_fkey":  "Ce salarié est lié à un compte utilisateur.",
	"users_role_check":       "Rôle inconnu.",
	"chantiers_statut_check": "Statut de chantier invalide.",
	"chantiers_dates_check":  "La date de fin doit suivre la date de début.",
}

// Expression index segments that must not be mistaken for a column.
var sqlFunctions = []string{"lower", "upper", "trim", "md5"}

// MapDBError translates pgx and Postgres errors into AppErrors:
//
//	pgx.ErrNoRows          → not_found
//	unique_violation       → conflict (Field set when it can be recovered)
//	foreign_key_violation  → foreign_key
//	check / not null       → validation
//	context deadline/cancel → timeout / canceled
//
// Other errors are returned unchanged.
func MapDBError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		return Wrap(err, ErrCodeTimeout, "La requête a expiré, veuillez réessayer.")
	case errors.Is(err, context.Canceled):
		return Wrap(err, ErrCodeCanceled, "La requête a été annulée.")
	case errors.Is(err, pgx.ErrNoRows):
		return Wrap(err, ErrCodeNotFound, "Ressource introuvable")
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		appErr := Wrap(pgErr, ErrCodeConflict, "Cette valeur existe déjà.")
		appErr.Field = uniqueField(pgErr)
		return withConstraintMessage(appErr, pgErr)
	case pgerrcode.ForeignKeyViolation:
		return withConstraintMessage(Wrap(pgErr, ErrCodeForeignKey, foreignKeyMessage(pgErr)), pgErr)
	case pgerrcode.CheckViolation:
		appErr := Wrap(pgErr, ErrCodeValidation, "Valeur invalide.")
		appErr.Field = pgErr.ColumnName
		return withConstraintMessage(appErr, pgErr)
	case pgerrcode.NotNullViolation:
		appErr := Wrap(pgErr, ErrCodeValidation, "Champ obligatoire manquant.")
		appErr.Field = pgErr.ColumnName
		return appErr
	default:
		return Wrap(pgErr, ErrCodeInternal, "Erreur de base de données.")
	}
}

func withConstraintMessage(appErr *AppError, pgErr *pgconn.PgError) *AppError {
	if msg, ok := constraintMessages[pgErr.ConstraintName]; ok {
		appErr.Message = msg
	}
	return appErr
}

// uniqueField prefers ColumnName, then the Detail key, then the constraint name.
func uniqueField(pgErr *pgconn.PgError) string {
	if pgErr.ColumnName != "" {
		return pgErr.ColumnName
	}
	if m := reKeyField.FindStringSubmatch(pgErr.Detail); len(m) == 2 {
		return m[1]
	}
	return inferFieldFromConstraint(pgErr.ConstraintName)
}

func foreignKeyMessage(pgErr *pgconn.PgError) string {
	if m := reReferencedFrom.FindStringSubmatch(pgErr.Detail); len(m) == 2 {
		return "Suppression impossible : élément utilisé par " + tableLabel(m[1]) + "."
	}
	if m := reNotPresent.FindStringSubmatch(pgErr.Detail); len(m) == 2 {
		return "Référence invalide : " + tableLabel(m[1]) + " introuvable."
	}
	if pgErr.TableName != "" {
		return "Opération impossible : élément utilisé par " + tableLabel(pgErr.TableName) + "."
	}
	return "Opération impossible : élément utilisé ailleurs."
}

// inferFieldFromConstraint reads "<table>_<column>_<suffix>". Longer names are
// multi-column constraints and yield "".
func inferFieldFromConstraint(name string) string {
	parts := strings.Split(name, "_")
	if len(parts) != 3 || slices.Contains(sqlFunctions, strings.ToLower(parts[1])) {
		return ""
	}
	return parts[1]
}

func tableLabel(table string) string {
	table = strings.ToLower(strings.TrimSpace(table))
	if label, ok := tableLabels[table]; ok {
		return label
	}
	words := strings.Fields(strings.ReplaceAll(table, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
