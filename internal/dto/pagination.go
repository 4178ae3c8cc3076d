package dto

// Pagination is the envelope returned alongside every paginated list
type Pagination struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	Total       int64 `json:"total"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// NewPagination builds a pagination envelope from the requested page/limit and
// the total row count. hasNextPage is true iff page*limit < total.
func NewPagination(page, limit int, total int64) Pagination {
	return Pagination{
		Page:        page,
		Limit:       limit,
		Total:       total,
		HasNextPage: int64(page)*int64(limit) < total,
		HasPrevPage: page > 1,
	}
}

// ListQuery is the shared query-string shape for paginated listings
type ListQuery struct {
	Page  int `form:"page,default=1" binding:"omitempty,min=1"`
	Limit int `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
}

// Normalize clamps missing values to their defaults
func (q *ListQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 20
	}
	if q.Limit > 100 {
		q.Limit = 100
	}
}

// Offset returns the row offset for the current page
func (q *ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}
