package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/torrent-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/catalog"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/filter"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/search"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/storage"
)

// SearchService runs the search pipeline: validate, resolve predicates, execute.
type SearchService struct {
	searcher storage.Searcher
	catalog  catalog.Catalog
	users    catalog.UserDirectory

	defaultPerPage    int
	defaultMaxResults int
}

type Option func(*SearchService)

// WithDefaults sets the page size and result cap used when the request leaves them unset.
func WithDefaults(perPage, maxResults int) Option {
	return func(s *SearchService) {
		s.defaultPerPage = perPage
		s.defaultMaxResults = maxResults
	}
}

func NewSearchService(searcher storage.Searcher, cat catalog.Catalog, users catalog.UserDirectory, opts ...Option) *SearchService {
	s := &SearchService{
		searcher: searcher,
		catalog:  cat,
		users:    users,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SearchService) Backend() string {
	return s.searcher.Name()
}

func (s *SearchService) Search(ctx context.Context, raw search.RawParams) (*search.Result, error) {
	c, err := s.Explain(ctx, raw)
	if err != nil {
		return nil, err
	}

	slog.Info("Executing search",
		"backend", s.searcher.Name(),
		"term", c.Term,
		"sort", c.Sort,
		"order", c.Order,
		"page", c.Page,
		"rss", c.RSS,
	)

	res, err := s.searcher.Search(ctx, c)
	if err != nil {
		slog.Error("Search failed", "backend", s.searcher.Name(), "error", err)
		return nil, err
	}
	return res, nil
}

// Explain resolves raw into the criteria a backend would execute, without executing it.
func (s *SearchService) Explain(ctx context.Context, raw search.RawParams) (*search.Criteria, error) {
	s.applyDefaults(&raw)

	req, err := search.Parse(raw)
	if err != nil {
		return nil, err
	}

	if req.ViewingUserID != nil {
		if err := s.ensureUser(ctx, *req.ViewingUserID); err != nil {
			return nil, err
		}
	}

	cat, err := filter.Category(s.catalog, req.MainCategory, req.SubCategory)
	if err != nil {
		return nil, err
	}

	return &search.Criteria{
		Request:    *req,
		Visibility: filter.Visibility(req.ViewingUserID, req.LoggedInUserID, req.Admin, req.RSS),
		Category:   cat,
		Quality:    filter.QualityFilter(req.Quality),
	}, nil
}

func (s *SearchService) ensureUser(ctx context.Context, id int64) error {
	ok, err := s.users.Exists(ctx, id)
	if err != nil {
		return apperr.NewBackend(ctx, "users", fmt.Errorf("lookup user %d: %w", id, err))
	}
	if !ok {
		return apperr.NewUnknownUser(id)
	}
	return nil
}

func (s *SearchService) applyDefaults(raw *search.RawParams) {
	if raw.PerPage == 0 {
		raw.PerPage = s.defaultPerPage
	}
	if raw.MaxResults == 0 {
		raw.MaxResults = s.defaultMaxResults
	}
}
