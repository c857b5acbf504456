package pagination

import "math"

// Window is a half-open [From, To) slice of an ordered result set.
type Window struct {
	From int
	To   int
}

// Size returns the number of rows the window addresses.
func (w Window) Size() int {
	if w.To <= w.From {
		return 0
	}
	return w.To - w.From
}

// Flat is the first perPage results, used when page numbers are ignored.
func Flat(perPage int) Window {
	return Window{From: 0, To: perPage}
}

// Offset is the classic 1-based page window with no upper bound on pages.
// Pages too deep to address saturate to an empty window at math.MaxInt.
func Offset(page, perPage int) Window {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		return Window{}
	}
	if page-1 > (math.MaxInt-perPage)/perPage {
		return Window{From: math.MaxInt, To: math.MaxInt}
	}
	from := (page - 1) * perPage
	return Window{From: from, To: from + perPage}
}

// Capped clamps the requested page so the window never reaches past maxResults.
// Pages beyond the last addressable one resolve to that last page.
//
// Example: maxResults=1000, perPage=75, page=50 → effective page 14, [975, 1000)
func Capped(page, perPage, maxResults int) Window {
	if page < 1 {
		page = 1
	}
	lastPage := LastPage(maxResults, perPage)
	if page > lastPage {
		page = lastPage
	}

	from := (page - 1) * perPage
	to := min(maxResults, page*perPage)
	return Window{From: from, To: to}
}

// LastPage is ceil(total/perPage), never less than 1.
func LastPage(total, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 1
	}
	return (total-1)/perPage + 1
}
