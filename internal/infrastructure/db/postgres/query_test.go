package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"document-manager-api/internal/domain/criteria"
)

func TestFilter(t *testing.T) {
	f := NewFilter()
	assert.Equal(t, "", f.SQL())

	f.Where("u." + NotDeleted)
	f.Where("u.username = " + f.Arg("alice"))
	f.Where("(u.username ILIKE " + f.Arg(Contains("te_st")) + " OR u.email ILIKE $2)")

	assert.Equal(t,
		` WHERE u.delete_date IS NULL AND u.username = $1 AND (u.username ILIKE $2 OR u.email ILIKE $2)`,
		f.SQL(),
	)
	assert.Equal(t, []any{"alice", `%te\_st%`}, f.Args())
}

func TestFilter_LimitOffset(t *testing.T) {
	f := NewFilter("x")
	assert.Equal(t, " LIMIT $2 OFFSET $3", f.LimitOffset(criteria.NewPage(10, 5)))
	assert.Equal(t, []any{"x", 5, 10}, f.Args())

	assert.Equal(t, "", NewFilter().LimitOffset(criteria.Page{}))
}

func TestContains(t *testing.T) {
	assert.Equal(t, `%50\%\\%`, Contains(`50%\`))
	assert.Equal(t, "%test%", Contains("test"))
}

func TestOrderBy(t *testing.T) {
	cols := map[int]string{0: "u.id", 1: "u.username", 2: "u.email"}

	tests := []struct {
		name string
		sort criteria.Sort
		want string
	}{
		{"asc", criteria.NewSort(1, true), " ORDER BY u.username ASC, u.id"},
		{"desc", criteria.NewSort(2, false), " ORDER BY u.email DESC, u.id"},
		{"tiebreak column", criteria.NewSort(0, false), " ORDER BY u.id DESC"},
		{"unknown falls back", criteria.NewSort(42, true), " ORDER BY u.username ASC, u.id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OrderBy(tt.sort, cols, "u.username ASC", "u.id"))
		})
	}
}
