package models

import "math"

// Page is a window over a list result.
type Page struct {
	Page  int
	Limit int
}

// Skip returns the number of records before this page. It saturates at
// math.MaxInt64 instead of overflowing.
func (p Page) Skip() int64 {
	if p.Page < 1 || p.Limit < 1 {
		return 0
	}
	pages, limit := int64(p.Page-1), int64(p.Limit)
	if pages > math.MaxInt64/limit {
		return math.MaxInt64
	}
	return pages * limit
}

// PageResult carries one page of items plus the total match count.
type PageResult[T any] struct {
	Items       []T   `json:"items"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
}

// NewPageResult computes paging metadata for items.
func NewPageResult[T any](items []T, total int64, p Page) PageResult[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if p.Limit > 0 {
		totalPages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
	return PageResult[T]{
		Items:       items,
		Total:       total,
		TotalPages:  totalPages,
		CurrentPage: p.Page,
	}
}
