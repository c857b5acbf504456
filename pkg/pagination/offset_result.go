package pagination

// OffsetResult represents traditional offset-based pagination
type OffsetResult[T any] struct {
	Items   []T   `json:"items"`
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	Size    int   `json:"size"`
	HasMore bool  `json:"has_more"`
	// LastPage is the highest page number known to exist
	LastPage int `json:"last_page"`
}

// NewOffsetResult creates a new offset-based result
func NewOffsetResult[T any](items []T, total int64, page int, size int, hasMore bool) *OffsetResult[T] {
	if items == nil {
		items = make([]T, 0)
	}

	lastPage := LastPage(int(total), size)
	if lastPage < page && hasMore {
		lastPage = page + 1
	}

	return &OffsetResult[T]{
		Items:    items,
		Total:    total,
		Page:     page,
		Size:     size,
		HasMore:  hasMore,
		LastPage: lastPage,
	}
}

// CapLastPage keeps LastPage within the pages a capped window can reach.
func (r *OffsetResult[T]) CapLastPage(maxResults int) *OffsetResult[T] {
	if maxResults <= 0 {
		return r
	}
	r.LastPage = min(r.LastPage, LastPage(maxResults, r.Size))
	return r
}
