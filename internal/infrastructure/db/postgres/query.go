package postgres

import (
	"strconv"
	"strings"

	"document-manager-api/internal/domain/criteria"
)

// Filter accumulates AND-ed conditions with positional arguments.
type Filter struct {
	conds []string
	args  []any
}

func NewFilter(args ...any) *Filter {
	return &Filter{args: args}
}

// Arg registers v and returns its placeholder.
func (f *Filter) Arg(v any) string {
	f.args = append(f.args, v)
	return "$" + strconv.Itoa(len(f.args))
}

func (f *Filter) Where(cond string) *Filter {
	f.conds = append(f.conds, cond)
	return f
}

func (f *Filter) SQL() string {
	if len(f.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(f.conds, " AND ")
}

func (f *Filter) Args() []any { return f.args }

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Contains turns s into an ILIKE substring pattern with wildcards escaped.
func Contains(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// OrderBy renders an ORDER BY clause for sort using the column index map,
// falling back to def for unknown indexes. tiebreak is appended to keep
// the order stable.
func OrderBy(sort criteria.Sort, columns map[int]string, def, tiebreak string) string {
	col, ok := columns[sort.Column]
	if !ok {
		return " ORDER BY " + def + ", " + tiebreak
	}

	dir := " DESC"
	if sort.Asc {
		dir = " ASC"
	}
	if col == tiebreak {
		return " ORDER BY " + col + dir
	}
	return " ORDER BY " + col + dir + ", " + tiebreak
}

// LimitOffset appends pagination placeholders; a zero limit means no limit.
func (f *Filter) LimitOffset(page criteria.Page) string {
	var sb strings.Builder
	if page.Limit > 0 {
		sb.WriteString(" LIMIT " + f.Arg(page.Limit))
	}
	if page.Offset > 0 {
		sb.WriteString(" OFFSET " + f.Arg(page.Offset))
	}
	return sb.String()
}
