package repository

// Pagination is the page/limit pair accepted by list operations.
type Pagination struct {
	Page  int
	Limit int
}

// Normalize applies defaults: page 1, limit 20, capped at 100.
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	return p
}

// Offset converts the page number into a row offset.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Meta reports pagination facts computed from a true total count,
// regardless of backend. Pages is always ceil(Total/Limit).
type Meta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// NewMeta builds Meta for a normalized pagination and a total row count.
func NewMeta(p Pagination, total int64) Meta {
	pages := 0
	if p.Limit > 0 {
		pages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
	return Meta{Page: p.Page, Limit: p.Limit, Total: total, Pages: pages}
}
