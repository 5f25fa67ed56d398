package criteria

// Sort orders a find operation by the column at index Column of the
// projection the repository returns.
type Sort struct {
	Column int
	Asc    bool
}

func NewSort(column int, asc bool) Sort { return Sort{Column: column, Asc: asc} }

type Page struct {
	Offset int
	Limit  int
}

func NewPage(offset, limit int) Page {
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}
	return Page{Offset: offset, Limit: limit}
}

type PageResult[T any] struct {
	Items []T
	Total int64
}
