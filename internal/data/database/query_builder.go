// Package database builds sanitized list and count queries for the repositories.
package database

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
)

type ConditionType string

const (
	Equal              ConditionType = "="
	NotEqual           ConditionType = "!="
	GreaterThan        ConditionType = ">"
	LessThan           ConditionType = "<"
	LessThanOrEqual    ConditionType = "<="
	GreaterThanOrEqual ConditionType = ">="
	ILike              ConditionType = "ILIKE"
	Custom             ConditionType = "CUSTOM"
	defaultLimit                     = -1
	defaultOffset                    = -1
)

var placeholderRe = regexp.MustCompile(`\$(\d+)`)

type Condition struct {
	Field    string
	Type     ConditionType
	Value    any
	rawQuery string
	params   []any
}

// WhereCond compares a sanitized column with a single parameter.
func WhereCond(field string, condType ConditionType, value any) Condition {
	if condType == Custom {
		//nolint:forbidigo // panic prevents misuse; custom conditions must provide raw SQL via WhereRawCond.
		panic("Use WhereRawCond for Custom type")
	}
	return Condition{Field: field, Type: condType, Value: value}
}

// WhereRawCond embeds rawQuery verbatim. Its $1..$n placeholders refer to params
// and are renumbered to fit the surrounding query. rawQuery is NOT sanitized.
func WhereRawCond(rawQuery string, params ...any) Condition {
	return Condition{Type: Custom, rawQuery: rawQuery, params: params}
}

type ListQueryOptions struct {
	Table      string
	Columns    []string
	CountOnly  bool
	Conditions []Condition
	OrderBy    string
	OrderDir   string
	Limit      int
	Offset     int
}

type ListQueryOption func(*ListQueryOptions)

func NewListQueryOptions(table string, opts ...ListQueryOption) *ListQueryOptions {
	options := &ListQueryOptions{
		Table:  table,
		Limit:  defaultLimit,
		Offset: defaultOffset,
	}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// WithColumns sets the columns to select.
func WithColumns(cols ...string) ListQueryOption {
	return func(o *ListQueryOptions) { o.Columns = cols }
}

// WithCondition adds a single condition.
func WithCondition(cond Condition) ListQueryOption {
	return func(o *ListQueryOptions) { o.Conditions = append(o.Conditions, cond) }
}

// WithConditions sets the entire list of conditions.
func WithConditions(conds ...Condition) ListQueryOption {
	return func(o *ListQueryOptions) { o.Conditions = conds }
}

// WithOrderBy sets the ordering column and direction.
func WithOrderBy(column, direction string) ListQueryOption {
	return func(o *ListQueryOptions) {
		o.OrderBy = column
		o.OrderDir = direction
	}
}

// WithLimit sets the limit. Accepts 0.
func WithLimit(limit int) ListQueryOption {
	return func(o *ListQueryOptions) {
		if limit >= 0 {
			o.Limit = limit
		}
	}
}

// WithOffset sets the offset. Accepts 0.
func WithOffset(offset int) ListQueryOption {
	return func(o *ListQueryOptions) {
		if offset >= 0 {
			o.Offset = offset
		}
	}
}

// WithCountOnly sets the query to count only.
func WithCountOnly() ListQueryOption {
	return func(o *ListQueryOptions) { o.CountOnly = true }
}

// sanitizeIdentifier quotes identifiers like "column" or "table.column".
func sanitizeIdentifier(ident string) string {
	return pgx.Identifier(strings.Split(ident, ".")).Sanitize()
}

// BuildListQuery constructs a SQL query string and arguments from options, sanitizing identifiers.
//
//	query, args := BuildListQuery(NewListQueryOptions("users",
//		WithColumns("id", "identifiant"),
//		WithCondition(WhereCond("actif", Equal, true)),
//		WithCondition(WhereRawCond("(nom ILIKE $1 OR prenom ILIKE $1)", "%dup%")),
//		WithOrderBy("created_at", "DESC"),
//		WithLimit(10),
//	))
func BuildListQuery(options *ListQueryOptions) (string, []any) {
	if options == nil {
		return "", nil
	}

	var query strings.Builder
	switch {
	case options.CountOnly:
		query.WriteString("SELECT COUNT(*) ")
	case len(options.Columns) == 0:
		query.WriteString("SELECT * ")
	default:
		cols := make([]string, len(options.Columns))
		for i, c := range options.Columns {
			cols[i] = sanitizeIdentifier(c)
		}
		query.WriteString("SELECT " + strings.Join(cols, ", ") + " ")
	}
	query.WriteString("FROM ")
	query.WriteString(sanitizeIdentifier(options.Table))

	where, args := buildWhereClause(options.Conditions)
	if where != "" {
		query.WriteString(" " + where)
	}
	if options.CountOnly {
		return query.String(), args
	}

	if options.OrderBy != "" {
		query.WriteString(" ORDER BY " + sanitizeIdentifier(options.OrderBy))
		if dir := strings.ToUpper(options.OrderDir); dir == "ASC" || dir == "DESC" {
			query.WriteString(" " + dir)
		}
	}
	if options.Limit != defaultLimit {
		args = append(args, options.Limit)
		query.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
	}
	if options.Offset != defaultOffset {
		args = append(args, options.Offset)
		query.WriteString(fmt.Sprintf(" OFFSET $%d", len(args)))
	}
	return query.String(), args
}

func buildWhereClause(conds []Condition) (string, []any) {
	parts := make([]string, 0, len(conds))
	var args []any
	for _, cond := range conds {
		var part string
		part, args = processCondition(cond, args)
		if part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(parts, " AND "), args
}

func processCondition(cond Condition, args []any) (string, []any) {
	switch cond.Type {
	case Custom:
		return renumber(cond, args)
	case Equal, NotEqual, GreaterThan, LessThan, LessThanOrEqual, GreaterThanOrEqual, ILike:
		if cond.Field == "" {
			return "", args
		}
		args = append(args, cond.Value)
		return fmt.Sprintf("%s %s $%d", sanitizeIdentifier(cond.Field), cond.Type, len(args)), args
	default:
		return "", args
	}
}

// renumber rewrites $n placeholders of a raw condition so they follow args.
// A placeholder reused within the raw query maps to a single parameter.
func renumber(cond Condition, args []any) (string, []any) {
	if cond.rawQuery == "" {
		return "", args
	}
	idx := make(map[int]int)
	out := placeholderRe.ReplaceAllStringFunc(cond.rawQuery, func(m string) string {
		n, err := strconv.Atoi(m[1:])
		if err != nil || n < 1 || n > len(cond.params) {
			return m
		}
		if _, ok := idx[n]; !ok {
			args = append(args, cond.params[n-1])
			idx[n] = len(args)
		}
		return fmt.Sprintf("$%d", idx[n])
	})
	return out, args
}
