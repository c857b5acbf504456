// Package cache memoizes search pages in Redis.
//
// Entries are keyed by backend and the canonical criteria key, so two requests share an
// entry only when they resolve to the same predicates and window. Cache failures are
// logged and bypassed; they never fail a search. Concurrent misses for one key share a
// single backend call.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/torrent-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/search"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/storage"
	"github.com/bytedance/sonic"
	"github.com/cespare/xxhash/v2"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const DefaultTTL = 30 * time.Second

type Searcher struct {
	next  storage.Searcher
	rdb   redis.Cmdable
	ttl   time.Duration
	group singleflight.Group
}

var _ storage.Searcher = (*Searcher)(nil)

func New(next storage.Searcher, rdb redis.Cmdable, ttl time.Duration) *Searcher {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Searcher{next: next, rdb: rdb, ttl: ttl}
}

// Key is the Redis key for c on backend.
func Key(backend string, c *search.Criteria) string {
	return fmt.Sprintf("search:%s:%x", backend, xxhash.Sum64String(c.Key()))
}

func (s *Searcher) Name() string {
	return s.next.Name()
}

func (s *Searcher) Search(ctx context.Context, c *search.Criteria) (*search.Result, error) {
	key := Key(s.next.Name(), c)

	if res, ok := s.get(ctx, key); ok {
		slog.Debug("Search cache hit", "key", key)
		return res, nil
	}

	ch := s.group.DoChan(key, func() (any, error) {
		res, err := s.next.Search(ctx, c)
		if err != nil {
			return nil, err
		}
		s.set(ctx, key, res)
		return res, nil
	})

	select {
	case <-ctx.Done():
		return nil, apperr.NewBackend(ctx, s.next.Name(), ctx.Err())
	case r := <-ch:
		if r.Err == nil {
			return r.Val.(*search.Result), nil
		}
		// the shared call ran on another caller's context
		if r.Shared && cancelled(r.Err) && ctx.Err() == nil {
			return s.next.Search(ctx, c)
		}
		return nil, r.Err
	}
}

func cancelled(err error) bool {
	return errors.Is(err, apperr.ErrCancelled) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func (s *Searcher) get(ctx context.Context, key string) (*search.Result, bool) {
	data, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		slog.Warn("Search cache read failed", "key", key, "error", err)
		return nil, false
	}

	var res search.Result
	if err := sonic.Unmarshal(data, &res); err != nil {
		slog.Warn("Search cache entry is corrupt", "key", key, "error", err)
		return nil, false
	}
	return &res, true
}

func (s *Searcher) set(ctx context.Context, key string, res *search.Result) {
	data, err := sonic.Marshal(res)
	if err != nil {
		slog.Warn("Failed to encode search result for cache", "key", key, "error", err)
		return
	}
	if err := s.rdb.Set(ctx, key, data, s.ttl).Err(); err != nil {
		slog.Warn("Search cache write failed", "key", key, "error", err)
	}
}

type HealthChecker struct {
	rdb redis.Cmdable
}

func NewHealthChecker(rdb redis.Cmdable) *HealthChecker {
	return &HealthChecker{rdb: rdb}
}

func (hc *HealthChecker) Name() string {
	return "redis"
}

func (hc *HealthChecker) Healthy(ctx context.Context) bool {
	if err := hc.rdb.Ping(ctx).Err(); err != nil {
		slog.Warn("Redis health check failed", "error", err)
		return false
	}
	return true
}
