// Package pagination splits listings into fixed-size pages. All
// listings share one page size; the page number is 1-based and an
// out-of-range request clamps to the nearest valid page instead of
// erroring.
package pagination

import "strconv"

// DefaultPageSize is used when PAGE_SIZE is not configured.
const DefaultPageSize = 10

// Page describes one slice of a listing.
type Page struct {
	Number     int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// Resolve clamps the requested page number against the item count.
// An empty listing still has one (empty) page.
func Resolve(requested int, totalItems int64, perPage int) Page {
	if perPage < 1 {
		perPage = DefaultPageSize
	}
	totalPages := int((totalItems + int64(perPage) - 1) / int64(perPage))
	if totalPages < 1 {
		totalPages = 1
	}
	if requested < 1 {
		requested = 1
	}
	if requested > totalPages {
		requested = totalPages
	}
	return Page{
		Number:     requested,
		PerPage:    perPage,
		TotalItems: totalItems,
		TotalPages: totalPages,
		HasNext:    requested < totalPages,
		HasPrev:    requested > 1,
	}
}

// ParsePageParam reads a 1-based page number from a query parameter.
// Anything non-numeric falls back to page 1.
func ParsePageParam(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Offset is the number of items to skip for this page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.PerPage
}

// Limit is the maximum number of items on this page.
func (p Page) Limit() int {
	return p.PerPage
}
