// Package pagination slices ordered feeds into fixed-size pages and resolves
// page numbers from request input with deliberately permissive semantics:
// anything that is not a number falls back to page 1, and any number outside
// the valid range falls back to the last page. Invalid input never errors.
package pagination

import "strconv"

// PageSize is the fixed number of items per feed page.
const PageSize = 10

// Page is one fixed-size slice of an ordered feed plus its metadata.
type Page[T any] struct {
	Items       []T   `json:"items"`
	Number      int   `json:"number"`
	TotalPages  int   `json:"total_pages"`
	TotalItems  int64 `json:"total_items"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// TotalPages returns the number of pages needed for total items at the given
// page size. An empty feed still has one (empty) page.
func TotalPages(total int64, size int) int {
	if size <= 0 {
		size = PageSize
	}
	if total <= 0 {
		return 1
	}
	pages := int((total + int64(size) - 1) / int64(size))
	return pages
}

// Resolve turns a raw page query parameter into a valid 1-based page number.
// Missing or non-numeric input resolves to page 1; a numeric value below 1 or
// beyond the last page resolves to the last page.
func Resolve(raw string, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if raw == "" {
		return 1
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	if n < 1 || n > totalPages {
		return totalPages
	}
	return n
}

// Window returns the LIMIT/OFFSET pair for a resolved page number.
func Window(number, size int) (limit, offset int) {
	if size <= 0 {
		size = PageSize
	}
	if number < 1 {
		number = 1
	}
	return size, (number - 1) * size
}

// New assembles the page metadata around an already-sliced item window.
func New[T any](items []T, number, totalPages int, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:       items,
		Number:      number,
		TotalPages:  totalPages,
		TotalItems:  total,
		HasNext:     number < totalPages,
		HasPrevious: number > 1,
	}
}
