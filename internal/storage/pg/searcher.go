package pg

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/torrent-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/domain"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/search"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const backendName = string(storage.PG)

type SearcherOptions struct {
	Planner PlannerOptions
	// QueryTimeout bounds both statements of a search; zero leaves the caller deadline alone
	QueryTimeout time.Duration
}

type Searcher struct {
	db           *pgxpool.Pool
	planner      *Planner
	queryTimeout time.Duration
}

func NewSearcher(pool *ConnectionPool, opts SearcherOptions) *Searcher {
	return &Searcher{
		db:           pool.DB(),
		planner:      NewPlanner(opts.Planner),
		queryTimeout: opts.QueryTimeout,
	}
}

func (s *Searcher) Name() string {
	return backendName
}

func (s *Searcher) Plan(c *search.Criteria) (*Plan, error) {
	return s.planner.Plan(c)
}

// Search runs the page query and the bounded count query in one batch.
func (s *Searcher) Search(ctx context.Context, c *search.Criteria) (*search.Result, error) {
	plan, err := s.planner.Plan(c)
	if err != nil {
		return nil, fmt.Errorf("plan search: %w", err)
	}

	slog.Info("Executing pg search",
		"term", c.Term,
		"sort", c.Sort,
		"order", c.Order,
		"page", c.Page,
		"rss", c.RSS)
	slog.Debug("PostgreSQL search query", "sql", plan.SQL, "args", plan.Args, "count_sql", plan.CountSQL)

	items, counted, err := s.run(ctx, plan)
	if err != nil {
		slog.Error("PostgreSQL search failed", "error", err, "term", c.Term)
		return nil, err
	}

	return buildResult(plan, c.Page, items, counted), nil
}

// run executes plan under the query timeout. Only the caller's context decides whether a
// failure is a cancellation; the searcher's own deadline is a backend failure.
func (s *Searcher) run(ctx context.Context, plan *Plan) ([]domain.Torrent, int, error) {
	queryCtx, cancel := s.newQueryCtx(ctx)
	defer cancel()

	items, counted, err := s.execute(queryCtx, plan)
	if err == nil {
		return items, counted, nil
	}
	if ctx.Err() == nil && queryCtx.Err() != nil {
		return nil, 0, apperr.NewBackendTimeout(backendName, s.queryTimeout, err)
	}
	return nil, 0, apperr.NewBackend(ctx, backendName, err)
}

func (s *Searcher) execute(ctx context.Context, plan *Plan) ([]domain.Torrent, int, error) {
	batch := &pgx.Batch{}
	batch.Queue(plan.SQL, plan.Args...)
	if plan.CountSQL != "" {
		batch.Queue(plan.CountSQL, plan.CountArgs...)
	}

	br := s.db.SendBatch(ctx, batch)
	defer br.Close()

	rows, err := br.Query()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to execute search query: %w", err)
	}
	items, err := pgx.CollectRows(rows, scanTorrent)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan torrents: %w", err)
	}

	counted := -1
	if plan.CountSQL != "" {
		if err := br.QueryRow().Scan(&counted); err != nil {
			return nil, 0, fmt.Errorf("failed to count results: %w", err)
		}
	}

	if err := br.Close(); err != nil {
		return nil, 0, fmt.Errorf("failed to close batch: %w", err)
	}
	return items, counted, nil
}

// buildResult trims the lookahead row. counted is -1 when no count query ran.
func buildResult(plan *Plan, page int, items []domain.Torrent, counted int) *search.Result {
	if items == nil {
		items = make([]domain.Torrent, 0)
	}

	res := &search.Result{
		Page:    page,
		PerPage: plan.PerPage,
		Backend: backendName,
	}

	if plan.RSS {
		res.Page = 1
		res.Items = items
		res.Total = int64(len(items))
		return res
	}

	res.HasMore = len(items) > plan.PerPage
	if res.HasMore {
		items = items[:plan.PerPage]
	}
	res.Items = items

	switch {
	case counted < 0:
		res.Total = int64(plan.Window.From + len(items))
		res.TotalIsLowerBound = true
		if res.HasMore {
			res.Total++
		}
	case counted == 0:
		res.Total = 0
		res.TotalIsLowerBound = plan.Window.From > 0
	default:
		res.Total = int64(plan.Window.From + counted)
		res.TotalIsLowerBound = counted >= plan.CountLimit
	}

	return res
}

func scanTorrent(row pgx.CollectableRow) (domain.Torrent, error) {
	var t domain.Torrent
	var flags int64
	if err := row.Scan(
		&t.ID,
		&t.DisplayName,
		&t.Filesize,
		&t.UploaderID,
		&t.MainCategoryID,
		&t.SubCategoryID,
		&flags,
		&t.Stats.Seeders,
		&t.Stats.Leechers,
		&t.Stats.Downloads,
	); err != nil {
		return domain.Torrent{}, err
	}
	t.Flags = domain.Flags(flags)
	return t, nil
}

func (s *Searcher) newQueryCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.queryTimeout > 0 {
		return context.WithTimeout(ctx, s.queryTimeout)
	}
	return ctx, func() {
		// no-op
	}
}

var _ storage.Searcher = (*Searcher)(nil)
