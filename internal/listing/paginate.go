package listing

import (
	"strings"

	"golang.org/x/text/cases"
)

// Admin tables slice an already fetched set; the public store-side limit lives in repo.
const AdminPageSize = 10

type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// PageCount is ceil(total/size); an empty set has zero pages.
func PageCount(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Paginate returns items[(page-1)*size : page*size]. A page outside
// 1..PageCount yields an empty slice, never an error.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size <= 0 {
		size = AdminPageSize
	}
	out := Page[T]{
		Items:      []T{},
		Page:       page,
		PageSize:   size,
		Total:      len(items),
		TotalPages: PageCount(len(items), size),
	}
	if page < 1 || page > out.TotalPages {
		return out
	}
	start := (page - 1) * size
	end := min(start+size, len(items))
	out.Items = items[start:end]
	return out
}

// AdminTable is the search box plus pager of an admin list view. Changing the
// search resets to page 1, and a page past the end of the filtered set is
// clamped back to page 1.
type AdminTable[T any] struct {
	PageSize int
	// Fields returns the searchable text of an item.
	Fields func(T) []string

	query string
	page  int
}

func NewAdminTable[T any](fields func(T) []string) *AdminTable[T] {
	return &AdminTable[T]{PageSize: AdminPageSize, Fields: fields, page: 1}
}

func (t *AdminTable[T]) SetSearch(q string) {
	if q != t.query {
		t.page = 1
	}
	t.query = q
}

func (t *AdminTable[T]) SetPage(p int) {
	if p < 1 {
		p = 1
	}
	t.page = p
}

func (t *AdminTable[T]) CurrentPage() int {
	if t.page < 1 {
		return 1
	}
	return t.page
}

// Render filters items by the search term and returns the current page.
func (t *AdminTable[T]) Render(items []T) Page[T] {
	filtered := Filter(items, t.query, t.Fields)
	if t.page > PageCount(len(filtered), t.PageSize) {
		t.page = 1
	}
	return Paginate(filtered, t.CurrentPage(), t.PageSize)
}

// Filter keeps items where any field contains q, ignoring case (Unicode case
// folding, so "đà nẵng" matches "ĐÀ NẴNG").
func Filter[T any](items []T, q string, fields func(T) []string) []T {
	if q == "" || fields == nil {
		return items
	}
	fold := cases.Fold()
	needle := fold.String(q)

	out := make([]T, 0, len(items))
	for _, it := range items {
		for _, f := range fields(it) {
			if strings.Contains(fold.String(f), needle) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}
