// Package pagination shows one item of an ordered sequence per page.
package pagination

// Page is the single item shown on a 1-based page of a sequence.
type Page[T any] struct {
	Item        T
	Number      int // Page actually shown, after clamping
	Pages       int
	HasPrevious bool
	HasNext     bool
}

// Paginate returns the item for page, clamping page into [1, len(items)].
// ok is false only when items is empty.
func Paginate[T any](items []T, page int) (Page[T], bool) {
	n := len(items)
	if n == 0 {
		return Page[T]{}, false
	}
	if page < 1 {
		page = 1
	}
	if page > n {
		page = n
	}
	return Page[T]{
		Item:        items[page-1],
		Number:      page,
		Pages:       n,
		HasPrevious: page > 1,
		HasNext:     page < n,
	}, true
}
