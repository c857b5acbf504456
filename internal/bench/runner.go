// Package bench measures search latency of the configured backends on the same criteria.
package bench

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/torrent-hunter/internal/search"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/storage"
)

type Config struct {
	Iterations int
	Warmup     int
}

type Case struct {
	Name     string
	Criteria *search.Criteria
}

type Result struct {
	Case    string       `json:"case"`
	Backend string       `json:"backend"`
	Latency LatencyStats `json:"latency"`
	Items   int          `json:"items"`
	Errors  int          `json:"errors"`
	// LastError is the most recent failure, empty when every iteration succeeded
	LastError string `json:"last_error,omitempty"`
}

type Runner struct {
	searchers []storage.Searcher
	cfg       Config
}

func NewRunner(cfg Config, searchers ...storage.Searcher) *Runner {
	if cfg.Iterations <= 0 {
		cfg.Iterations = 1
	}
	if cfg.Warmup < 0 {
		cfg.Warmup = 0
	}
	return &Runner{searchers: searchers, cfg: cfg}
}

// Run executes every case on every searcher. It stops early only when ctx is done.
func (r *Runner) Run(ctx context.Context, cases []Case) ([]Result, error) {
	var results []Result
	for _, tc := range cases {
		for _, s := range r.searchers {
			res, err := r.runOne(ctx, s, tc)
			if err != nil {
				return results, err
			}
			results = append(results, res)
		}
	}
	return results, nil
}

func (r *Runner) runOne(ctx context.Context, s storage.Searcher, tc Case) (Result, error) {
	res := Result{Case: tc.Name, Backend: s.Name()}

	for range r.cfg.Warmup {
		if _, err := s.Search(ctx, tc.Criteria); ctx.Err() != nil {
			return res, errors.Join(ctx.Err(), err)
		}
	}

	durations := make([]time.Duration, 0, r.cfg.Iterations)
	for range r.cfg.Iterations {
		start := time.Now()
		page, err := s.Search(ctx, tc.Criteria)
		elapsed := time.Since(start)

		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		if err != nil {
			res.Errors++
			res.LastError = err.Error()
			slog.Warn("Benchmark search failed", "case", tc.Name, "backend", s.Name(), "error", err)
			continue
		}

		durations = append(durations, elapsed)
		res.Items = len(page.Items)
	}

	res.Latency = Summarize(durations)
	return res, nil
}
