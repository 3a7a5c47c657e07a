package repository

import (
	"strconv"
	"strings"
)

// Where accumulates AND-ed SQL predicates with positional arguments.
// Absent values are skipped so a nil filter never turns into "= ''".
type Where struct {
	conds []string
	args  []any
}

func (w *Where) next(v any) string {
	w.args = append(w.args, v)
	return "$" + strconv.Itoa(len(w.args))
}

// Eq adds "col = $n" when v is non-nil.
func Eq[T any](w *Where, col string, v *T) {
	if v == nil {
		return
	}
	w.conds = append(w.conds, col+" = "+w.next(*v))
}

// Since adds "col >= $n" for the change-date filter.
func (w *Where) Since(col string, c ChangedSince) {
	if c.MinLastChanged == nil {
		return
	}
	w.conds = append(w.conds, col+" >= "+w.next(c.MinLastChanged.Time))
}

// SQL renders the WHERE clause, or "" when nothing was added.
func (w *Where) SQL() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// Page renders ORDER BY orderCol LIMIT/OFFSET and binds the window values.
func (w *Where) Page(orderCol string, p Page) string {
	skip, limit := p.Skip, p.Limit
	if skip < 0 {
		skip = 0
	}
	if limit < 0 {
		limit = 0
	}
	return " ORDER BY " + orderCol + " LIMIT " + w.next(limit) + " OFFSET " + w.next(skip)
}

// Args returns the bound values in placeholder order.
func (w *Where) Args() []any { return w.args }
