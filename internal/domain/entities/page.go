package entities

// PageSize is the fixed number of items per listing page.
const PageSize = 10

type Page[T any] struct {
	Items       []T
	CurrentPage int
	PerPage     int
	Total       int64
}

// NormalizePage maps anything below 1 to the first page.
func NormalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// Offset is the number of rows to skip for a 1-indexed page.
func Offset(page int) int {
	return (NormalizePage(page) - 1) * PageSize
}

func (p Page[T]) LastPage() int {
	if p.Total == 0 || p.PerPage == 0 {
		return 1
	}
	return int((p.Total + int64(p.PerPage) - 1) / int64(p.PerPage))
}

// MapPage converts the items of a page, keeping its position.
func MapPage[T, R any](p Page[T], f func(T) R) Page[R] {
	items := make([]R, len(p.Items))
	for i, it := range p.Items {
		items[i] = f(it)
	}
	return Page[R]{Items: items, CurrentPage: p.CurrentPage, PerPage: p.PerPage, Total: p.Total}
}
