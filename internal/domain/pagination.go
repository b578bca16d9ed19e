package domain

type Pagination struct {
	Page     int
	PageSize int
}

func (p Pagination) Limit() int {
	return p.PageSize
}

// Offset is not clamped: a page past the last one yields an empty window and
// the caller decides what to make of it.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}
