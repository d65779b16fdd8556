package model

// Page is an offset based slice of a larger result set
type Page[T any] struct {
	Content []T   `json:"content"`
	Offset  int   `json:"offset"`
	Limit   *int  `json:"limit,omitempty"`
	Total   int64 `json:"total"`
}

// NewPage creates a new Page instance
func NewPage[T any](content []T, offset int, limit *int, total int64) *Page[T] {
	if content == nil {
		content = []T{}
	}
	return &Page[T]{
		Content: content,
		Offset:  offset,
		Limit:   limit,
		Total:   total,
	}
}
