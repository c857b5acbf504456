// Package main Torrent Hunter API
// @title Torrent Hunter API
// @version 1.0
// @description Torrent search over PostgreSQL full-text search or Elasticsearch
// @license.name Apache 2.0
// @license.url https://opensource.org/licenses/Apache-2.0
// @BasePath /
package main

import (
	"log/slog"
	"os"

	_ "github.com/DjordjeVuckovic/torrent-hunter/docs"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/catalog"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/router"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/server"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/service"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/storage"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/storage/breaker"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/storage/cache"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/storage/factory"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/storage/instrument"
	pkgserver "github.com/DjordjeVuckovic/torrent-hunter/pkg/server"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

func main() {
	appSettings := NewAppConfig()
	cfg, err := appSettings.Load()
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		os.Exit(1)
		return
	}
	slog.SetLogLoggerLevel(cfg.LogLevel)

	sCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	hc := pkgserver.NewCompositeHealthChecker()

	s := server.New(sCfg, hc)

	backend, err := factory.NewBackend(s.Context(), cfg.StorageConfig)
	if err != nil {
		slog.Error("Failed to create storage backend", "error", err)
		os.Exit(1)
		return
	}
	defer backend.Close()
	hc.Add(backend.Health...)

	var searcher storage.Searcher = backend.Searcher
	if cfg.Breaker != nil {
		searcher = breaker.New(searcher, *cfg.Breaker)
		slog.Info("Circuit breaker enabled")
	}

	metrics, err := instrument.NewMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		slog.Error("Failed to register metrics", "error", err)
		os.Exit(1)
		return
	}
	searcher = instrument.New(searcher, metrics)

	if cfg.Cache.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Cache.RedisAddr})
		defer rdb.Close()
		searcher = cache.New(searcher, rdb, cfg.Cache.TTL)
		hc.Add(cache.NewHealthChecker(rdb))
		slog.Info("Search cache enabled", "addr", cfg.Cache.RedisAddr, "ttl", cfg.Cache.TTL)
	} else {
		slog.Info("Search cache disabled")
	}

	var categories catalog.Catalog
	if cfg.Search.WatchCategories && cfg.Search.CategoriesFile != "" {
		categories, err = catalog.Watch(s.Context(), cfg.Search.CategoriesFile)
	} else {
		categories, err = catalog.LoadFile(cfg.Search.CategoriesFile)
	}
	if err != nil {
		slog.Error("Failed to load categories", "error", err)
		os.Exit(1)
		return
	}

	s.SetupMiddlewares().
		SetupErrorHandler().
		SetupHealthChecks("/health").
		SetupOpenApi("/swagger/*").
		SetupMetrics("/metrics", prometheus.DefaultGatherer)

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(200, "Torrent Hunter API is running")
	})

	svc := service.NewSearchService(searcher, categories, backend.Users,
		service.WithDefaults(cfg.Search.PerPage, cfg.Search.MaxResults))

	searchrouter := router.NewSearchRouter(s.Echo, svc)
	searchrouter.Bind()

	go func() {
		<-s.ShutdownSignal()
		slog.Info("Shutdown started, cleaning up resources...")
	}()

	err = s.Start()
	if err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}
