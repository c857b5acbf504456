package pg

import (
	"math"
	"testing"

	"github.com/DjordjeVuckovic/torrent-hunter/internal/filter"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func criteria(t *testing.T, mutate func(r *search.RawParams)) *search.Criteria {
	t.Helper()
	raw := search.NewRawParams()
	if mutate != nil {
		mutate(&raw)
	}
	req, err := search.Parse(raw)
	require.NoError(t, err)

	return &search.Criteria{
		Request:    *req,
		Visibility: filter.Visibility(req.ViewingUserID, req.LoggedInUserID, req.Admin, req.RSS),
		Quality:    filter.QualityFilter(req.Quality),
	}
}

func TestPlanner_NoTermSkipsTextJoin(t *testing.T) {
	plan, err := NewPlanner(PlannerOptions{}).Plan(criteria(t, nil))
	require.NoError(t, err)

	assert.NotContains(t, plan.SQL, "torrent_name_search")
	assert.NotContains(t, plan.SQL, "plainto_tsquery")
	assert.Contains(t, plan.SQL, "LEFT JOIN statistics st")
	assert.Contains(t, plan.SQL, "ORDER BY t.id DESC\n")
	assert.Contains(t, plan.SQL, "(t.flags & 32) = 0")
	assert.Contains(t, plan.SQL, "(t.flags & 2) = 0")
}

func TestPlanner_TokenDropping(t *testing.T) {
	planner := NewPlanner(PlannerOptions{})

	plan, err := planner.Plan(criteria(t, func(r *search.RawParams) { r.Term = "foo bar" }))
	require.NoError(t, err)
	assert.Contains(t, plan.SQL, "JOIN torrent_name_search s ON s.torrent_id = t.id")
	assert.Contains(t, plan.SQL, "s.name_vector @@ plainto_tsquery($1::regconfig, $2)")
	assert.Contains(t, plan.SQL, "s.name_vector @@ plainto_tsquery($1::regconfig, $3)")
	assert.Equal(t, []any{"simple", "foo", "bar"}, plan.Args[:3])

	plan, err = planner.Plan(criteria(t, func(r *search.RawParams) { r.Term = "a b" }))
	require.NoError(t, err)
	assert.NotContains(t, plan.SQL, "torrent_name_search")
	assert.NotContains(t, plan.SQL, "plainto_tsquery")
}

func TestPlanner_QuotedToken(t *testing.T) {
	plan, err := NewPlanner(PlannerOptions{}).Plan(criteria(t, func(r *search.RawParams) { r.Term = `"one piece" x` }))
	require.NoError(t, err)
	assert.Equal(t, `"one piece"`, plan.Args[1])
	assert.Equal(t, 1, countOf(plan.SQL, "plainto_tsquery"))
}

func TestPlanner_TextConfigIsBound(t *testing.T) {
	planner := NewPlanner(PlannerOptions{TextConfig: "english') OR TRUE --"})

	plan, err := planner.Plan(criteria(t, func(r *search.RawParams) { r.Term = "foo" }))
	require.NoError(t, err)
	assert.NotContains(t, plan.SQL, "english")
	assert.Equal(t, "english') OR TRUE --", plan.Args[0])
	assert.Len(t, plan.CountArgs, len(plan.Args))
}

func TestPlanner_StatsSortJoinsStatistics(t *testing.T) {
	tests := []struct {
		sort    string
		order   string
		orderBy string
	}{
		{sort: "seeders", order: "desc", orderBy: "ORDER BY st.seed_count DESC, t.id DESC"},
		{sort: "leechers", order: "asc", orderBy: "ORDER BY st.leech_count ASC, t.id ASC"},
		{sort: "downloads", order: "desc", orderBy: "ORDER BY st.download_count DESC, t.id DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.sort, func(t *testing.T) {
			plan, err := NewPlanner(PlannerOptions{LookaheadPages: 5}).Plan(criteria(t, func(r *search.RawParams) {
				r.Sort = tt.sort
				r.Order = tt.order
			}))
			require.NoError(t, err)
			assert.Contains(t, plan.SQL, "\n\tJOIN statistics st ON st.torrent_id = t.id")
			assert.NotContains(t, plan.SQL, "LEFT JOIN")
			assert.Contains(t, plan.SQL, tt.orderBy)
			assert.Contains(t, plan.CountSQL, "JOIN statistics st")
		})
	}
}

func TestPlanner_SizeSortStaysOnTorrents(t *testing.T) {
	plan, err := NewPlanner(PlannerOptions{LookaheadPages: 5}).Plan(criteria(t, func(r *search.RawParams) {
		r.Sort = "size"
		r.Order = "asc"
	}))
	require.NoError(t, err)
	assert.Contains(t, plan.SQL, "ORDER BY t.filesize ASC, t.id ASC")
	assert.NotContains(t, plan.CountSQL, "statistics")
}

func TestPlanner_Pagination(t *testing.T) {
	plan, err := NewPlanner(PlannerOptions{LookaheadPages: 5}).Plan(criteria(t, func(r *search.RawParams) {
		r.Page = 3
		r.PerPage = 20
	}))
	require.NoError(t, err)

	assert.Equal(t, 40, plan.Window.From)
	assert.Equal(t, 21, plan.Fetch)
	assert.Equal(t, []any{21, 40}, plan.Args[len(plan.Args)-2:])
	assert.Equal(t, 101, plan.CountLimit)
	assert.Equal(t, []any{101, 40}, plan.CountArgs[len(plan.CountArgs)-2:])
	assert.Len(t, plan.CountArgs, len(plan.Args))
}

func TestPlanner_DeepPageIsNotCapped(t *testing.T) {
	plan, err := NewPlanner(PlannerOptions{}).Plan(criteria(t, func(r *search.RawParams) {
		r.Page = 500
		r.PerPage = 75
		r.MaxResults = 1000
	}))
	require.NoError(t, err)
	assert.Equal(t, 499*75, plan.Window.From)
	assert.Empty(t, plan.CountSQL)
}

func TestPlanner_UnaddressablePageKeepsOffsetPositive(t *testing.T) {
	plan, err := NewPlanner(PlannerOptions{LookaheadPages: 5}).Plan(criteria(t, func(r *search.RawParams) {
		r.Page = math.MaxInt/75 + 2
		r.PerPage = 75
	}))
	require.NoError(t, err)

	assert.Equal(t, math.MaxInt, plan.Window.From)
	assert.Equal(t, []any{76, math.MaxInt}, plan.Args[len(plan.Args)-2:])
	assert.Equal(t, math.MaxInt, plan.CountArgs[len(plan.CountArgs)-1])

	res := buildResult(plan, math.MaxInt/75+2, nil, 0)
	assert.Empty(t, res.Items)
	assert.False(t, res.HasMore)
	assert.Zero(t, res.Total)
}

func TestPlanner_RSS(t *testing.T) {
	uid := int64(5)
	plan, err := NewPlanner(PlannerOptions{LookaheadPages: 5}).Plan(criteria(t, func(r *search.RawParams) {
		r.RSS = true
		r.Sort = "size"
		r.Order = "asc"
		r.Page = 9
		r.PerPage = 30
		r.LoggedInUserID = &uid
	}))
	require.NoError(t, err)

	assert.True(t, plan.RSS)
	assert.Contains(t, plan.SQL, "ORDER BY t.id DESC\n")
	assert.Equal(t, []any{30, 0}, plan.Args[len(plan.Args)-2:])
	assert.Empty(t, plan.CountSQL)
	// feeds never see the viewer's hidden torrents
	assert.NotContains(t, plan.SQL, "uploader_id")
}

func TestPlanner_VisibilityOr(t *testing.T) {
	uid := int64(7)
	plan, err := NewPlanner(PlannerOptions{}).Plan(criteria(t, func(r *search.RawParams) {
		r.LoggedInUserID = &uid
	}))
	require.NoError(t, err)
	assert.Contains(t, plan.SQL, "((t.flags & 2) = 0 OR t.uploader_id = $1)")
	assert.Equal(t, int64(7), plan.Args[0])
}

func TestPlanner_CategoryAndQuality(t *testing.T) {
	c := criteria(t, func(r *search.RawParams) { r.Quality = "2" })
	c.Category = filter.And{filter.Eq(filter.FieldMainCategory, 1), filter.Eq(filter.FieldSubCategory, 2)}

	plan, err := NewPlanner(PlannerOptions{}).Plan(c)
	require.NoError(t, err)
	assert.Contains(t, plan.SQL, "t.main_category_id = $1")
	assert.Contains(t, plan.SQL, "t.sub_category_id = $2")
	assert.Contains(t, plan.SQL, "(t.flags & 4) <> 0")
}

func TestPlanner_AdminGeneralHasNoWhere(t *testing.T) {
	plan, err := NewPlanner(PlannerOptions{}).Plan(criteria(t, func(r *search.RawParams) { r.Admin = true }))
	require.NoError(t, err)
	assert.NotContains(t, plan.SQL, "WHERE")
}

func TestPlanner_RejectsMalformedTerm(t *testing.T) {
	c := criteria(t, nil)
	c.Quality = filter.Term{Field: filter.FieldTrusted, Value: int64(1)}

	_, err := NewPlanner(PlannerOptions{}).Plan(c)
	assert.Error(t, err)
}

func TestBuildResult(t *testing.T) {
	plan := &Plan{PerPage: 2, Window: offsetWindow(2, 2), CountLimit: 11}

	items := fixtureItems(3)
	res := buildResult(plan, 2, items, 3)
	assert.True(t, res.HasMore)
	assert.Len(t, res.Items, 2)
	assert.Equal(t, int64(5), res.Total)
	assert.False(t, res.TotalIsLowerBound)

	res = buildResult(plan, 2, fixtureItems(3), 11)
	assert.True(t, res.TotalIsLowerBound)
	assert.Equal(t, int64(13), res.Total)

	res = buildResult(plan, 2, nil, 0)
	assert.NotNil(t, res.Items)
	assert.False(t, res.HasMore)
	assert.True(t, res.TotalIsLowerBound)

	res = buildResult(&Plan{PerPage: 2, Window: offsetWindow(1, 2)}, 1, fixtureItems(2), -1)
	assert.False(t, res.HasMore)
	assert.Equal(t, int64(2), res.Total)

	res = buildResult(&Plan{PerPage: 2, RSS: true}, 1, fixtureItems(2), -1)
	assert.False(t, res.HasMore)
	assert.Len(t, res.Items, 2)
	assert.Equal(t, "pg", res.Backend)
}
