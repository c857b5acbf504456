package search

import "github.com/DjordjeVuckovic/torrent-hunter/internal/domain"

// Result is one page of matches. For feeds only Items is meaningful.
type Result struct {
	Items   []domain.Torrent `json:"items"`
	Page    int              `json:"page"`
	PerPage int              `json:"per_page"`
	HasMore bool             `json:"has_more"`

	// Total is the number of matches the backend reported
	Total int64 `json:"total"`
	// TotalIsLowerBound is set when Total was counted with a bounded lookahead
	TotalIsLowerBound bool `json:"total_is_lower_bound"`
	// MaxResults is the deepest match the backend can page to, zero when pages are unbounded
	MaxResults int `json:"max_results,omitempty"`

	Backend string `json:"backend"`
}
