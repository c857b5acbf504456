package pagination

// OffsetRequest represents an offset-based pagination request
type OffsetRequest struct {
	Page       int `json:"page" query:"p" validate:"min=1"`
	Size       int `json:"size" query:"per_page" validate:"min=1,max=1000"`
	MaxResults int `json:"max_results" query:"max_results" validate:"min=1"`
}

// Normalize fills zero values with defaults. Explicit out-of-range values are left
// untouched so validation can reject them.
func (r *OffsetRequest) Normalize() {
	if r.Page == 0 {
		r.Page = 1
	}
	if r.Size == 0 {
		r.Size = PageDefaultSize
	}
	if r.MaxResults == 0 {
		r.MaxResults = MaxResultsDefault
	}
}
