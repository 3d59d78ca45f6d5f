package data

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// updateBuilder accumulates a SET clause with positional parameters.
// updated_at is always the first assignment.
type updateBuilder struct {
	parts []string
	args  []any
}

func newUpdateBuilder(now time.Time) *updateBuilder {
	return &updateBuilder{
		parts: []string{"updated_at = $1"},
		args:  []any{now},
	}
}

func (u *updateBuilder) set(column string, value any) {
	u.args = append(u.args, value)
	u.parts = append(u.parts, fmt.Sprintf("%s = $%d", column, len(u.args)))
}

// setOptional assigns *v when v is non-nil.
func (u *updateBuilder) setOptional(column string, v *string) {
	if v != nil {
		u.set(column, *v)
	}
}

// setNullable assigns *v when non-blank and NULL when blank; nil leaves the column unchanged.
func (u *updateBuilder) setNullable(column string, v *string) {
	if v == nil {
		return
	}
	if strings.TrimSpace(*v) == "" {
		u.parts = append(u.parts, column+" = NULL")
		return
	}
	u.set(column, strings.TrimSpace(*v))
}

func setPtr[T any](u *updateBuilder, column string, v *T) {
	if v != nil {
		u.set(column, *v)
	}
}

func (u *updateBuilder) build(table, id, returning string) (string, []any) {
	args := append(u.args, id) //nolint:gocritic // builder is single-use
	return "UPDATE " + table + " SET " + strings.Join(u.parts, ", ") +
		" WHERE id = $" + strconv.Itoa(len(args)) + returning, args
}
