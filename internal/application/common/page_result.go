package common

// PageResult mirrors the paginator shape clients of the API already parse.
type PageResult[T any] struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	LastPage    int   `json:"last_page"`
	Data        []T   `json:"data"`
}
