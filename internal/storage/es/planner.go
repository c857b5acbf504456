package es

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/DjordjeVuckovic/torrent-hunter/internal/filter"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/search"
	"github.com/DjordjeVuckovic/torrent-hunter/pkg/pagination"
	coresearch "github.com/elastic/go-elasticsearch/v8/typedapi/core/search"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/operator"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
)

// HighlightField is the document field fragments are returned for
const HighlightField = "display_name"

// highlightOptions is decoded into types.Highlight so both fields encodings the API accepts keep working.
const highlightOptions = `{"tags_schema":"styled","fields":{"display_name":{}}}`

type PlannerOptions struct {
	// Analyzer is applied to the search term; empty uses the field analyzer
	Analyzer  string
	Highlight bool
}

type Planner struct {
	analyzer  string
	highlight bool
}

func NewPlanner(opts PlannerOptions) *Planner {
	return &Planner{
		analyzer:  opts.Analyzer,
		highlight: opts.Highlight,
	}
}

// Plan is a compiled search body plus the window it addresses.
type Plan struct {
	Body       *coresearch.Request
	Window     pagination.Window
	PerPage    int
	MaxResults int
	RSS        bool
}

// Page is the page the window actually addresses after clamping.
func (p *Plan) Page() int {
	if p.PerPage <= 0 {
		return 1
	}
	return p.Window.From/p.PerPage + 1
}

// JSON renders the request body.
func (p *Plan) JSON() ([]byte, error) {
	return json.Marshal(p.Body)
}

func (p *Planner) Plan(c *search.Criteria) (*Plan, error) {
	filters, err := compileFilters(c.Filter())
	if err != nil {
		return nil, err
	}

	query := types.Query{
		Bool: &types.BoolQuery{
			Must:   []types.Query{p.textQuery(c.Term)},
			Filter: filters,
		},
	}

	plan := &Plan{
		PerPage:    c.PerPage,
		MaxResults: c.MaxResults,
		RSS:        c.RSS,
	}
	if c.RSS {
		plan.Window = pagination.Flat(c.PerPage)
	} else {
		plan.Window = pagination.Capped(c.Page, c.PerPage, c.MaxResults)
	}

	from, size := plan.Window.From, plan.Window.Size()

	body := coresearch.NewRequest()
	body.Query = &query
	body.From = &from
	body.Size = &size
	body.Sort = sortFor(c.Sort, c.Order)

	if p.highlight {
		var hl types.Highlight
		if err := json.Unmarshal([]byte(highlightOptions), &hl); err != nil {
			return nil, fmt.Errorf("decode highlight options: %w", err)
		}
		body.Highlight = &hl
	}

	plan.Body = body
	return plan, nil
}

func (p *Planner) textQuery(term string) types.Query {
	if strings.TrimSpace(term) == "" {
		return types.Query{MatchAll: &types.MatchAllQuery{}}
	}

	and := operator.And
	sqs := &types.SimpleQueryStringQuery{
		Query:           term,
		Fields:          []string{HighlightField},
		DefaultOperator: &and,
	}
	if p.analyzer != "" {
		analyzer := p.analyzer
		sqs.Analyzer = &analyzer
	}
	return types.Query{SimpleQueryString: sqs}
}

func sortFor(key search.SortKey, order search.SortOrder) []types.SortCombinations {
	dir := sortorder.Asc
	if order.Desc() {
		dir = sortorder.Desc
	}

	sorts := []types.SortCombinations{
		&types.SortOptions{SortOptions: map[string]types.FieldSort{
			key.IndexField(): {Order: &dir},
		}},
	}
	if key != search.SortID {
		sorts = append(sorts, &types.SortOptions{SortOptions: map[string]types.FieldSort{
			search.SortID.IndexField(): {Order: &dir},
		}})
	}
	return sorts
}

// compileFilters turns the top-level conjunction into a filter clause list.
func compileFilters(e filter.Expr) ([]types.Query, error) {
	conjuncts := filter.Conjuncts(e)
	out := make([]types.Query, 0, len(conjuncts))
	for _, c := range conjuncts {
		q, err := compileExpr(c)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}

func compileExpr(e filter.Expr) (types.Query, error) {
	switch v := e.(type) {
	case filter.Term:
		return compileTerm(v)
	case filter.And:
		clauses, err := compileFilters(v)
		if err != nil {
			return types.Query{}, err
		}
		return types.Query{Bool: &types.BoolQuery{Filter: clauses}}, nil
	case filter.Or:
		if len(v) == 0 {
			return types.Query{MatchNone: &types.MatchNoneQuery{}}, nil
		}
		should := make([]types.Query, 0, len(v))
		for _, child := range v {
			q, err := compileExpr(child)
			if err != nil {
				return types.Query{}, err
			}
			should = append(should, q)
		}
		return types.Query{Bool: &types.BoolQuery{Should: should, MinimumShouldMatch: 1}}, nil
	default:
		return types.Query{}, fmt.Errorf("unsupported filter expression %T", e)
	}
}

func compileTerm(t filter.Term) (types.Query, error) {
	switch v := t.Value.(type) {
	case bool:
		if !t.Field.IsFlag() {
			return types.Query{}, fmt.Errorf("field %s does not take a bool", t.Field)
		}
	case int64:
		if t.Field.IsFlag() {
			return types.Query{}, fmt.Errorf("flag %s needs a bool, got %d", t.Field, v)
		}
	default:
		return types.Query{}, fmt.Errorf("unsupported value %T for field %s", t.Value, t.Field)
	}

	return types.Query{
		Term: map[string]types.TermQuery{
			string(t.Field): {Value: t.Value},
		},
	}, nil
}
