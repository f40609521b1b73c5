package engine

import (
	"errors"
	"fmt"
)

// DefaultMatchupsPerPage is the page size used when none is configured
const DefaultMatchupsPerPage = 15

// ErrInvalidPage is returned for a page number below 1
var ErrInvalidPage = errors.New("invalid page")

// Paginator slices a ranked list into fixed-size pages
type Paginator struct {
	perPage int
}

// NewPaginator creates a paginator. Non-positive sizes fall back to
// DefaultMatchupsPerPage.
func NewPaginator(perPage int) *Paginator {
	if perPage < 1 {
		perPage = DefaultMatchupsPerPage
	}
	return &Paginator{perPage: perPage}
}

// PerPage returns the page size
func (p *Paginator) PerPage() int {
	return p.perPage
}

// TotalPages returns ceil(total / perPage)
func (p *Paginator) TotalPages(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + p.perPage - 1) / p.perPage
}

// Bounds returns the half-open range [first, last) of a 1-based page,
// clamped to total. Pages past the end yield an empty range.
func (p *Paginator) Bounds(total, page int) (first, last int, err error) {
	if page < 1 {
		return 0, 0, fmt.Errorf("%w: %d must be >= 1", ErrInvalidPage, page)
	}

	// compare in page units so huge page numbers cannot overflow
	if page-1 >= p.TotalPages(total) {
		return total, total, nil
	}

	first = (page - 1) * p.perPage
	last = min(first+p.perPage, total)
	return first, last, nil
}
