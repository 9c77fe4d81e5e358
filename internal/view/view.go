// Package view derives the displayed table from the record collection.
//
// Derive is a pure function of (collection, Params): filter by name, stable
// sort, then cut one page. It never clamps the requested page; callers that
// navigate (package intent) do that.
package view

import "github.com/roach88/usertable/internal/record"

// PageSize is the number of records per page.
const PageSize = 5

// Params are the transient view parameters. They are never persisted.
type Params struct {
	SearchTerm string
	Sort       SortMode
	Page       int // 1-based
	PageSize   int // 0 means PageSize
}

// DefaultParams returns the parameters a new session starts with.
func DefaultParams() Params {
	return Params{Sort: DefaultSort, Page: 1, PageSize: PageSize}
}

func (p Params) pageSize() int {
	if p.PageSize <= 0 {
		return PageSize
	}
	return p.PageSize
}

// Page is the derived view.
type Page struct {
	Items      []record.Record `json:"items"`
	TotalItems int             `json:"total_items"`
	TotalPages int             `json:"total_pages"`
}

// DisplayTotalPages returns TotalPages, or 1 when there are no items.
func (p Page) DisplayTotalPages() int {
	if p.TotalPages == 0 {
		return 1
	}
	return p.TotalPages
}

// Derive runs filter, sort and paginate over users.
func Derive(users []record.Record, p Params) Page {
	filtered := Filter(users, p.SearchTerm)
	sorted := Sort(filtered, p.Sort)
	return Paginate(sorted, p.Page, p.pageSize())
}

// TotalPages returns ceil(n / size).
func TotalPages(n, size int) int {
	if size <= 0 || n <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Paginate slices [(page-1)*size, page*size) out of users, clipped to bounds.
// Items is empty, never nil, when page is out of range.
func Paginate(users []record.Record, page, size int) Page {
	if size <= 0 {
		size = PageSize
	}
	out := Page{
		Items:      []record.Record{},
		TotalItems: len(users),
		TotalPages: TotalPages(len(users), size),
	}
	if page < 1 {
		return out
	}

	start := (page - 1) * size
	if start >= len(users) {
		return out
	}
	end := min(start+size, len(users))
	out.Items = record.Clone(users[start:end])
	return out
}
