package es

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/torrent-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/domain"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/search"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/totalhitsrelation"
)

const backendName = string(storage.ES)

type Searcher struct {
	client    *elasticsearch.TypedClient
	indexName string
	planner   *Planner
}

func NewSearcher(client *elasticsearch.TypedClient, indexName string, opts PlannerOptions) *Searcher {
	return &Searcher{
		client:    client,
		indexName: indexName,
		planner:   NewPlanner(opts),
	}
}

func (s *Searcher) Name() string {
	return backendName
}

func (s *Searcher) Plan(c *search.Criteria) (*Plan, error) {
	return s.planner.Plan(c)
}

func (s *Searcher) Search(ctx context.Context, c *search.Criteria) (*search.Result, error) {
	plan, err := s.planner.Plan(c)
	if err != nil {
		return nil, fmt.Errorf("plan search: %w", err)
	}

	slog.Info("Executing es search",
		"term", c.Term,
		"sort", c.Sort,
		"order", c.Order,
		"page", c.Page,
		"rss", c.RSS,
		"index", s.indexName)
	if slog.Default().Enabled(ctx, slog.LevelDebug) {
		if body, err := plan.JSON(); err == nil {
			slog.Debug("Elasticsearch search body", "body", string(body))
		}
	}

	res, err := s.client.Search().
		Index(s.indexName).
		Request(plan.Body).
		Do(ctx)
	if err != nil {
		slog.Error("Elasticsearch query failed", "error", err, "term", c.Term)
		return nil, apperr.NewBackend(ctx, backendName, err)
	}

	items, err := mapHits(res.Hits.Hits)
	if err != nil {
		return nil, apperr.NewBackend(ctx, backendName, err)
	}

	var total int64
	var lowerBound bool
	if res.Hits.Total != nil {
		total = res.Hits.Total.Value
		lowerBound = res.Hits.Total.Relation == totalhitsrelation.Gte
	}

	slog.Info("Es search results fetched", "total_matches", total, "returned_count", len(items))

	return buildResult(plan, items, total, lowerBound), nil
}

func buildResult(plan *Plan, items []domain.Torrent, total int64, lowerBound bool) *search.Result {
	res := &search.Result{
		Items:             items,
		Page:              plan.Page(),
		PerPage:           plan.PerPage,
		Total:             total,
		TotalIsLowerBound: lowerBound,
		Backend:           backendName,
	}
	if plan.RSS {
		res.Page = 1
		return res
	}

	res.MaxResults = plan.MaxResults
	res.HasMore = int64(plan.Window.To) < min(total, int64(plan.MaxResults))
	return res
}

func mapHits(hits []types.Hit) ([]domain.Torrent, error) {
	items := make([]domain.Torrent, 0, len(hits))
	for _, hit := range hits {
		var doc TorrentDocument
		if err := json.Unmarshal(hit.Source_, &doc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal document: %w", err)
		}

		t := doc.Torrent()
		if fragments, ok := hit.Highlight[HighlightField]; ok {
			t.Highlight = fragments
		}
		items = append(items, t)
	}
	return items, nil
}

var _ storage.Searcher = (*Searcher)(nil)
