// Package instrument records request counts and latency for a storage.Searcher.
package instrument

import (
	"context"
	"errors"
	"time"

	"github.com/DjordjeVuckovic/torrent-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/search"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/storage"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeOK          = "ok"
	OutcomeInvalid     = "invalid"
	OutcomeNotFound    = "not_found"
	OutcomeCancelled   = "cancelled"
	OutcomeUnavailable = "unavailable"
	OutcomeError       = "error"
)

type Metrics struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// NewMetrics registers the search collectors on reg, reusing already registered ones.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "search_requests_total",
		Help: "Search requests by backend and outcome.",
	}, []string{"backend", "outcome"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "search_duration_seconds",
		Help:    "Search latency by backend.",
		Buckets: prometheus.DefBuckets,
	}, []string{"backend"})

	var err error
	if requests, err = register(reg, requests); err != nil {
		return nil, err
	}
	if duration, err = register(reg, duration); err != nil {
		return nil, err
	}

	return &Metrics{Requests: requests, Duration: duration}, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

type Searcher struct {
	next    storage.Searcher
	metrics *Metrics
}

var _ storage.Searcher = (*Searcher)(nil)

func New(next storage.Searcher, m *Metrics) *Searcher {
	return &Searcher{next: next, metrics: m}
}

func (s *Searcher) Name() string {
	return s.next.Name()
}

func (s *Searcher) Search(ctx context.Context, c *search.Criteria) (*search.Result, error) {
	start := time.Now()
	res, err := s.next.Search(ctx, c)

	backend := s.next.Name()
	s.metrics.Duration.WithLabelValues(backend).Observe(time.Since(start).Seconds())
	s.metrics.Requests.WithLabelValues(backend, Outcome(err)).Inc()

	return res, err
}

// Outcome classifies err into a metric label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case apperr.IsValidation(err):
		return OutcomeInvalid
	case errors.Is(err, apperr.ErrUnknownUser):
		return OutcomeNotFound
	case errors.Is(err, apperr.ErrCancelled), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return OutcomeCancelled
	case errors.Is(err, apperr.ErrBackendUnavailable):
		return OutcomeUnavailable
	default:
		return OutcomeError
	}
}
