// Package paginate slices ordered listings into fixed-size pages.
package paginate

import "strconv"

// Page describes one page of an ordered listing. Page numbers are
// 1-based. A listing with zero items still has one (empty) page, so
// templates can always render page metadata.
type Page struct {
	Number     int
	Size       int
	TotalItems int
	TotalPages int
}

// New builds a Page from a raw "page" query parameter. Absent or
// malformed values default to page 1. Out-of-range values clamp to the
// first or last page instead of erroring.
func New(pageQuery string, totalItems, size int) Page {
	if size < 1 {
		size = 1
	}
	totalPages := (totalItems + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}
	number, err := strconv.Atoi(pageQuery)
	if err != nil {
		number = 1
	}
	if number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}
	return Page{
		Number:     number,
		Size:       size,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}

// Offset is the number of items to skip to reach this page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

func (p Page) HasNext() bool {
	return p.Number < p.TotalPages
}

func (p Page) HasPrev() bool {
	return p.Number > 1
}

func (p Page) NextNumber() int {
	if p.HasNext() {
		return p.Number + 1
	}
	return p.Number
}

func (p Page) PrevNumber() int {
	if p.HasPrev() {
		return p.Number - 1
	}
	return p.Number
}
