package main

import (
	"github.com/DjordjeVuckovic/torrent-hunter/internal/search"
	"github.com/spf13/cobra"
)

// requestFlags are shared by every command that builds a search.
type requestFlags struct {
	term       string
	sort       string
	order      string
	category   string
	quality    string
	page       int
	perPage    int
	maxResults int
	rss        bool
	admin      bool
	user       int64
	profile    int64
	categories string
}

func (f *requestFlags) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.term, "query", "q", "", "search term")
	fs.StringVarP(&f.sort, "sort", "s", search.DefaultSort, "sort key: id, size, seeders, leechers, downloads")
	fs.StringVarP(&f.order, "order", "o", search.DefaultOrder, "sort order: asc, desc")
	fs.StringVarP(&f.category, "category", "c", "", "category as main_sub")
	fs.StringVarP(&f.quality, "quality", "f", search.DefaultQuality, "quality filter 0-3")
	fs.IntVarP(&f.page, "page", "p", 1, "page number")
	fs.IntVar(&f.perPage, "per-page", 0, "page size")
	fs.IntVar(&f.maxResults, "max-results", 0, "result cap for the index backend")
	fs.BoolVar(&f.rss, "rss", false, "feed mode")
	fs.BoolVar(&f.admin, "admin", false, "search as an administrator")
	fs.Int64Var(&f.user, "user", 0, "logged-in user id")
	fs.Int64Var(&f.profile, "profile", 0, "search a user's profile")
	fs.StringVar(&f.categories, "categories", "", "category taxonomy file, built-in when empty")
}

func (f *requestFlags) raw() search.RawParams {
	raw := search.NewRawParams()
	raw.Term = f.term
	raw.Sort = f.sort
	raw.Order = f.order
	raw.Category = f.category
	raw.Quality = f.quality
	raw.Page = f.page
	raw.PerPage = f.perPage
	raw.MaxResults = f.maxResults
	raw.RSS = f.rss
	raw.Admin = f.admin
	if f.user > 0 {
		raw.LoggedInUserID = &f.user
	}
	if f.profile > 0 {
		raw.ViewingUserID = &f.profile
	}
	return raw
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "searchctl",
		Short:         "Run and inspect torrent searches",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(newSearchCmd(), newExplainCmd(), newBenchCmd(), newInitIndexCmd())
	return root
}
