package domain

// Order is one sort key of a page request.
type Order struct {
	Field string
	Desc  bool
}

// PageRequest selects a window of a result set. Page is zero-based.
// An unpaged request returns every row.
type PageRequest struct {
	Page    int
	Size    int
	Sort    []Order
	Unpaged bool
}

// Unpaged returns a request for the whole result set.
func Unpaged() PageRequest {
	return PageRequest{Unpaged: true}
}

// Offset returns the number of rows skipped before the page.
func (r PageRequest) Offset() int {
	if r.Unpaged {
		return 0
	}
	return r.Page * r.Size
}

// Page is one window of a result set together with the size of the whole set.
type Page[T any] struct {
	Items   []T
	Total   int
	Request PageRequest
}

// TotalPages returns the number of pages of Request.Size needed for Total.
func (p Page[T]) TotalPages() int {
	if p.Request.Unpaged || p.Request.Size <= 0 {
		return 1
	}
	return (p.Total + p.Request.Size - 1) / p.Request.Size
}

// MapPage converts the items of p with fn, keeping total and request.
func MapPage[T, U any](p Page[T], fn func([]T) []U) Page[U] {
	return Page[U]{Items: fn(p.Items), Total: p.Total, Request: p.Request}
}
