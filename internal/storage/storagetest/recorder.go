// Package storagetest provides fakes and fixtures shared by backend and service tests.
package storagetest

import (
	"context"
	"sync"

	"github.com/DjordjeVuckovic/torrent-hunter/internal/search"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/storage"
)

// Recorder is a storage.Searcher that records every call.
// It returns Err when set, otherwise the result of Fn, otherwise an empty page.
type Recorder struct {
	Backend string
	Err     error
	Fn      func(c *search.Criteria) (*search.Result, error)

	mu    sync.Mutex
	calls []*search.Criteria
}

var _ storage.Searcher = (*Recorder)(nil)

func (r *Recorder) Name() string {
	if r.Backend == "" {
		return "fake"
	}
	return r.Backend
}

func (r *Recorder) Search(ctx context.Context, c *search.Criteria) (*search.Result, error) {
	r.mu.Lock()
	r.calls = append(r.calls, c)
	r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.Err != nil {
		return nil, r.Err
	}
	if r.Fn != nil {
		return r.Fn(c)
	}
	return &search.Result{
		Items:   nil,
		Page:    c.Page,
		PerPage: c.PerPage,
		Backend: r.Name(),
	}, nil
}

// Calls returns the criteria received so far.
func (r *Recorder) Calls() []*search.Criteria {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*search.Criteria(nil), r.calls...)
}

// Called is the number of Search calls.
func (r *Recorder) Called() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}
