package pg

import (
	"fmt"
	"strings"

	"github.com/DjordjeVuckovic/torrent-hunter/internal/filter"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/search"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/token"
	"github.com/DjordjeVuckovic/torrent-hunter/pkg/pagination"
)

const (
	// DefaultTextConfig is the text search configuration the name vectors are built with
	DefaultTextConfig = "simple"
	// DefaultLookaheadPages bounds the page count query
	DefaultLookaheadPages = 5
	// MinTokenLength drops one-character tokens that would scan most of the index
	MinTokenLength = 2
)

const selectColumns = `t.id, t.display_name, t.filesize, t.uploader_id, t.main_category_id, t.sub_category_id, t.flags,
	COALESCE(st.seed_count, 0), COALESCE(st.leech_count, 0), COALESCE(st.download_count, 0)`

type PlannerOptions struct {
	TextConfig     string
	LookaheadPages int
}

type Planner struct {
	textConfig     string
	lookaheadPages int
}

func NewPlanner(opts PlannerOptions) *Planner {
	if opts.TextConfig == "" {
		opts.TextConfig = DefaultTextConfig
	}
	if opts.LookaheadPages < 0 {
		opts.LookaheadPages = 0
	}
	return &Planner{
		textConfig:     opts.TextConfig,
		lookaheadPages: opts.LookaheadPages,
	}
}

// Plan is a compiled page query plus an optional bounded count query.
type Plan struct {
	SQL  string
	Args []any

	// CountSQL counts at most CountLimit rows starting at the page offset; empty when disabled
	CountSQL   string
	CountArgs  []any
	CountLimit int

	Window  pagination.Window
	PerPage int
	// Fetch is the LIMIT of SQL, one more than PerPage outside feeds
	Fetch int
	RSS   bool
}

type binder struct {
	args []any
}

func (b *binder) bind(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

func (p *Planner) Plan(c *search.Criteria) (*Plan, error) {
	b := &binder{}

	terms := token.SearchTerms(c.Term, MinTokenLength)

	from := "torrents t"
	if len(terms) > 0 {
		from += "\n\tJOIN torrent_name_search s ON s.torrent_id = t.id"
	}

	// statistics only restricts the row set when the sort needs it
	countFrom := from
	if c.Sort.NeedsStats() {
		from += "\n\tJOIN statistics st ON st.torrent_id = t.id"
		countFrom = from
	} else {
		from += "\n\tLEFT JOIN statistics st ON st.torrent_id = t.id"
	}

	var conds []string
	if len(terms) > 0 {
		textConfig := b.bind(p.textConfig)
		for _, term := range terms {
			conds = append(conds, fmt.Sprintf("s.name_vector @@ plainto_tsquery(%s::regconfig, %s)", textConfig, b.bind(term)))
		}
	}
	for _, e := range filter.Conjuncts(c.Filter()) {
		cond, err := compileExpr(e, b)
		if err != nil {
			return nil, err
		}
		conds = append(conds, cond)
	}

	where := ""
	if len(conds) > 0 {
		where = "\nWHERE " + strings.Join(conds, "\n\tAND ")
	}

	dir := "ASC"
	if c.Order.Desc() {
		dir = "DESC"
	}
	orderBy := fmt.Sprintf("%s %s", c.Sort.Column(), dir)
	if c.Sort != search.SortID {
		orderBy += fmt.Sprintf(", t.id %s", dir)
	}

	base := b.args

	plan := &Plan{PerPage: c.PerPage, RSS: c.RSS}
	if c.RSS {
		plan.Window = pagination.Flat(c.PerPage)
		plan.Fetch = c.PerPage
	} else {
		plan.Window = pagination.Offset(c.Page, c.PerPage)
		plan.Fetch = c.PerPage + 1
	}

	page := &binder{args: append([]any(nil), base...)}
	plan.SQL = fmt.Sprintf("SELECT %s\nFROM %s%s\nORDER BY %s\nLIMIT %s OFFSET %s",
		selectColumns, from, where, orderBy, page.bind(plan.Fetch), page.bind(plan.Window.From))
	plan.Args = page.args

	if !c.RSS && p.lookaheadPages > 0 {
		count := &binder{args: append([]any(nil), base...)}
		plan.CountLimit = p.lookaheadPages*c.PerPage + 1
		plan.CountSQL = fmt.Sprintf("SELECT count(*) FROM (SELECT 1\nFROM %s%s\nLIMIT %s OFFSET %s) lookahead",
			countFrom, where, count.bind(plan.CountLimit), count.bind(plan.Window.From))
		plan.CountArgs = count.args
	}

	return plan, nil
}

var intColumns = map[filter.Field]string{
	filter.FieldUploader:     "t.uploader_id",
	filter.FieldMainCategory: "t.main_category_id",
	filter.FieldSubCategory:  "t.sub_category_id",
}

func compileExpr(e filter.Expr, b *binder) (string, error) {
	switch v := e.(type) {
	case filter.Term:
		return compileTerm(v, b)
	case filter.And:
		return compileList(v, " AND ", b)
	case filter.Or:
		if len(v) == 0 {
			return "FALSE", nil
		}
		return compileList(v, " OR ", b)
	default:
		return "", fmt.Errorf("unsupported filter expression %T", e)
	}
}

func compileList(exprs []filter.Expr, sep string, b *binder) (string, error) {
	if len(exprs) == 0 {
		return "TRUE", nil
	}
	parts := make([]string, 0, len(exprs))
	for _, e := range exprs {
		part, err := compileExpr(e, b)
		if err != nil {
			return "", err
		}
		parts = append(parts, part)
	}
	return "(" + strings.Join(parts, sep) + ")", nil
}

func compileTerm(t filter.Term, b *binder) (string, error) {
	if bit, ok := t.Field.Flag(); ok {
		want, ok := t.Value.(bool)
		if !ok {
			return "", fmt.Errorf("flag %s needs a bool, got %T", t.Field, t.Value)
		}
		op := "="
		if want {
			op = "<>"
		}
		return fmt.Sprintf("(t.flags & %d) %s 0", int64(bit), op), nil
	}

	col, ok := intColumns[t.Field]
	if !ok {
		return "", fmt.Errorf("unsupported filter field %q", t.Field)
	}
	v, ok := t.Value.(int64)
	if !ok {
		return "", fmt.Errorf("field %s needs an int64, got %T", t.Field, t.Value)
	}
	return fmt.Sprintf("%s = %s", col, b.bind(v)), nil
}
