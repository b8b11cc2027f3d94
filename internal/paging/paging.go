// Package paging slices ordered result sets into fixed-size pages.
package paging

import "fmt"

// Metadata describes where a page sits within the full result set.
type Metadata struct {
	TotalPages int  `json:"totalPages"`
	TotalItems int  `json:"totalItems"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// Page is one page of an ordered result set.
type Page[T any] struct {
	Items      []T      `json:"items"`
	Pagination Metadata `json:"pagination"`
}

// InvalidPageError reports a requested page outside the valid range.
type InvalidPageError struct {
	Page       int
	TotalPages int
}

func (e *InvalidPageError) Error() string {
	return fmt.Sprintf("invalid page number %d (valid: 1-%d)", e.Page, e.TotalPages)
}

// Paginate slices items into the requested page. Ordering must be
// established by the caller; pagination only slices, it never sorts.
//
// An empty input always yields an empty page with zeroed metadata, whatever
// page was asked for. For non-empty input the page must lie in
// [1, totalPages] or an InvalidPageError is returned.
func Paginate[T any](items []T, itemsPerPage, page int) (Page[T], error) {
	totalItems := len(items)
	if totalItems == 0 {
		return Page[T]{Items: []T{}}, nil
	}

	totalPages := (totalItems + itemsPerPage - 1) / itemsPerPage
	if page < 1 || page > totalPages {
		return Page[T]{}, &InvalidPageError{Page: page, TotalPages: totalPages}
	}

	start := (page - 1) * itemsPerPage
	end := min(start+itemsPerPage, totalItems)

	return Page[T]{
		Items: items[start:end],
		Pagination: Metadata{
			TotalPages: totalPages,
			TotalItems: totalItems,
			HasNext:    page < totalPages,
			HasPrev:    page > 1,
		},
	}, nil
}
