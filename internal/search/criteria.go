package search

import (
	"fmt"
	"strings"

	"github.com/DjordjeVuckovic/torrent-hunter/internal/filter"
)

// Criteria is a Request with its predicates resolved. It is the only input a planner consumes.
type Criteria struct {
	Request

	Visibility filter.Expr
	Category   filter.Expr
	Quality    filter.Expr
}

// Filter is the conjunction of all resolved predicates, nil when nothing restricts the result.
func (c *Criteria) Filter() filter.Expr {
	return filter.All(c.Visibility, c.Category, c.Quality)
}

// Key renders the criteria canonically. Two criteria with equal keys select the same page.
// Identity fields are left out: they only matter through the resolved predicates.
func (c *Criteria) Key() string {
	var b strings.Builder
	fmt.Fprintf(&b, "q=%q;s=%s;o=%s;", c.Term, c.Sort, c.Order)
	if c.RSS {
		fmt.Fprintf(&b, "rss;n=%d;", c.PerPage)
	} else {
		fmt.Fprintf(&b, "p=%d;n=%d;max=%d;", c.Page, c.PerPage, c.MaxResults)
	}
	fmt.Fprintf(&b, "f=%s", filter.String(c.Filter()))
	return b.String()
}
