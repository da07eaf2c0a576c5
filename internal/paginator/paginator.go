// Package paginator splits ordered listings into fixed-size pages.
//
// Page numbers are 1-based. A request for a page that cannot be parsed yields
// the first page, a request outside 1..NumPages yields the last page, and an
// empty listing still has one (empty) page.
package paginator

import (
	"strconv"
	"strings"
)

type Paginator struct {
	count   int
	perPage int
}

func New(count, perPage int) Paginator {
	if perPage < 1 {
		perPage = 1
	}
	if count < 0 {
		count = 0
	}
	return Paginator{count: count, perPage: perPage}
}

func (p Paginator) Count() int   { return p.count }
func (p Paginator) PerPage() int { return p.perPage }

func (p Paginator) NumPages() int {
	if p.count == 0 {
		return 1
	}
	return (p.count + p.perPage - 1) / p.perPage
}

// Number resolves a raw "page" query value to a valid page number.
func (p Paginator) Number(raw string) int {
	n, ok := parseNumber(raw)
	if !ok {
		return 1
	}
	if n < 1 || n > p.NumPages() {
		return p.NumPages()
	}
	return n
}

// Bounds returns the LIMIT/OFFSET pair for a valid page number.
func (p Paginator) Bounds(number int) (limit, offset int) {
	return p.perPage, (number - 1) * p.perPage
}

func parseNumber(raw string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return n, true
}

// Paginate counts the listing, resolves the requested page and fetches it.
func Paginate[T any](raw string, perPage int, count func() (int, error), fetch func(limit, offset int) ([]T, error)) (Page[T], error) {
	total, err := count()
	if err != nil {
		return Page[T]{}, err
	}
	p := New(total, perPage)
	number := p.Number(raw)

	var items []T
	if total > 0 {
		limit, offset := p.Bounds(number)
		if items, err = fetch(limit, offset); err != nil {
			return Page[T]{}, err
		}
	}
	return NewPage(items, number, p), nil
}
