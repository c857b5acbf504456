// Package in_mem is a storage.Searcher over torrents held in memory.
// It follows the datastore semantics: offset windows with one lookahead row and no result cap.
package in_mem

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
	"unicode"

	"github.com/DjordjeVuckovic/torrent-hunter/internal/domain"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/filter"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/search"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/storage"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/token"
	"github.com/DjordjeVuckovic/torrent-hunter/pkg/pagination"
	"github.com/bytedance/sonic"
)

const backendName = "memory"

// MinTokenLength matches the datastore planner.
const MinTokenLength = 2

// InMemSearcher serves a fixed set of torrents. It is read-only after construction.
type InMemSearcher struct {
	storage map[int64]domain.Torrent
}

var _ storage.Searcher = (*InMemSearcher)(nil)

func NewInMemSearcher(torrents ...domain.Torrent) *InMemSearcher {
	s := &InMemSearcher{storage: make(map[int64]domain.Torrent, len(torrents))}
	for _, t := range torrents {
		s.storage[t.ID] = t
	}
	return s
}

// ReadTorrents decodes a JSON array of torrents.
func ReadTorrents(path string) ([]domain.Torrent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read torrents file: %w", err)
	}

	var torrents []domain.Torrent
	if err := sonic.Unmarshal(data, &torrents); err != nil {
		return nil, fmt.Errorf("decode torrents file %s: %w", path, err)
	}
	return torrents, nil
}

// LoadJSONFile serves the torrents in a ReadTorrents file.
func LoadJSONFile(path string) (*InMemSearcher, error) {
	torrents, err := ReadTorrents(path)
	if err != nil {
		return nil, err
	}

	slog.Info("Loaded torrents into memory", "path", path, "count", len(torrents))
	return NewInMemSearcher(torrents...), nil
}

func (s *InMemSearcher) Name() string {
	return backendName
}

func (s *InMemSearcher) Search(ctx context.Context, c *search.Criteria) (*search.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	matched := s.Select(c)

	res := &search.Result{Page: c.Page, PerPage: c.PerPage, Backend: backendName}
	if c.RSS {
		res.Page = 1
		res.Items = window(matched, pagination.Flat(c.PerPage))
		res.Total = int64(len(res.Items))
		return res, nil
	}

	w := pagination.Offset(c.Page, c.PerPage)
	res.Items = window(matched, w)
	res.HasMore = len(matched) > w.To
	res.Total = int64(len(matched))
	return res, nil
}

// Select returns every torrent matching c in result order.
func (s *InMemSearcher) Select(c *search.Criteria) []domain.Torrent {
	terms := Words(strings.Join(token.SearchTerms(c.Term, MinTokenLength), " "))
	pred := c.Filter()

	var matched []domain.Torrent
	for _, t := range s.storage {
		if filter.Matches(pred, t) && containsAll(Words(t.DisplayName), terms) {
			matched = append(matched, t)
		}
	}

	slices.SortFunc(matched, func(a, b domain.Torrent) int {
		res := cmp.Compare(SortValue(c.Sort, a), SortValue(c.Sort, b))
		if res == 0 {
			res = cmp.Compare(a.ID, b.ID)
		}
		if c.Order.Desc() {
			res = -res
		}
		return res
	})
	return matched
}

// Words lowercases s and splits it on anything that is not a letter or digit.
func Words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// SortValue is the value a torrent is ordered by for key.
func SortValue(key search.SortKey, t domain.Torrent) int64 {
	switch key {
	case search.SortSize:
		return t.Filesize
	case search.SortSeeders:
		return int64(t.Stats.Seeders)
	case search.SortLeechers:
		return int64(t.Stats.Leechers)
	case search.SortDownloads:
		return int64(t.Stats.Downloads)
	default:
		return t.ID
	}
}

func containsAll(words, required []string) bool {
	for _, w := range required {
		if !slices.Contains(words, w) {
			return false
		}
	}
	return true
}

func window(items []domain.Torrent, w pagination.Window) []domain.Torrent {
	from := max(0, min(w.From, len(items)))
	to := max(from, min(w.To, len(items)))
	return append(make([]domain.Torrent, 0, to-from), items[from:to]...)
}
