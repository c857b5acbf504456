// Package breaker stops sending searches to a backend that keeps failing.
package breaker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/torrent-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/search"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/storage"
	"github.com/sony/gobreaker"
)

type Settings struct {
	// MaxRequests allowed through while half-open.
	MaxRequests uint32
	// Interval clears the closed-state counts. Zero never clears them.
	Interval time.Duration
	// Timeout is how long the breaker stays open.
	Timeout time.Duration
	// MinRequests before the failure rate is considered.
	MinRequests uint32
	FailureRate float64
}

func DefaultSettings() Settings {
	return Settings{
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		MinRequests: 10,
		FailureRate: 0.5,
	}
}

type Searcher struct {
	next storage.Searcher
	cb   *gobreaker.CircuitBreaker
}

var _ storage.Searcher = (*Searcher)(nil)

func New(next storage.Searcher, cfg Settings) *Searcher {
	settings := gobreaker.Settings{
		Name:        next.Name(),
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureRate
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("Search breaker state changed", "backend", name, "from", from.String(), "to", to.String())
		},
		IsSuccessful: isSuccessful,
	}

	return &Searcher{next: next, cb: gobreaker.NewCircuitBreaker(settings)}
}

// isSuccessful keeps caller mistakes and abandoned requests out of the failure count.
func isSuccessful(err error) bool {
	if err == nil || apperr.IsValidation(err) || errors.Is(err, apperr.ErrUnknownUser) {
		return true
	}
	return errors.Is(err, apperr.ErrCancelled) || errors.Is(err, context.Canceled)
}

func (s *Searcher) Name() string {
	return s.next.Name()
}

func (s *Searcher) State() gobreaker.State {
	return s.cb.State()
}

func (s *Searcher) Search(ctx context.Context, c *search.Criteria) (*search.Result, error) {
	out, err := s.cb.Execute(func() (any, error) {
		return s.next.Search(ctx, c)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, apperr.NewBackend(ctx, s.next.Name(), fmt.Errorf("circuit breaker: %w", err))
	}
	if err != nil {
		return nil, err
	}
	return out.(*search.Result), nil
}
