package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/DjordjeVuckovic/torrent-hunter/internal/storage/breaker"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/storage/cache"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/storage/factory"
	"github.com/DjordjeVuckovic/torrent-hunter/pkg/config/env"
	"github.com/DjordjeVuckovic/torrent-hunter/pkg/pagination"
)

type AppConfig struct {
	ENV string
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type SearchConfig struct {
	PerPage        int
	MaxResults     int
	CategoriesFile string
	// WatchCategories reloads CategoriesFile when it changes
	WatchCategories bool
}

type CacheConfig struct {
	RedisAddr string
	TTL       time.Duration
}

type TorrentSearchConfig struct {
	StorageConfig factory.StorageConfig
	Search        SearchConfig
	Cache         CacheConfig
	Breaker       *breaker.Settings
	LogLevel      slog.Level
}

func (as *AppConfig) Load() (*TorrentSearchConfig, error) {
	err := env.LoadDotEnv(as.ENV, "cmd/torrent_search/.env", ".env")
	if err != nil {
		slog.Info("Failed to .env load environment variables, continuing with existing environment variables", "error", err)
	}

	storageCfg, err := factory.LoadEnv()
	if err != nil {
		slog.Error("Failed to load storage configuration from environment", "error", err)
		return nil, err
	}

	cfg := &TorrentSearchConfig{
		StorageConfig: *storageCfg,
		Search: SearchConfig{
			CategoriesFile:  os.Getenv("CATEGORIES_FILE"),
			WatchCategories: env.Bool("CATEGORIES_WATCH"),
		},
		Cache: CacheConfig{
			RedisAddr: os.Getenv("CACHE_REDIS_ADDR"),
		},
	}

	if cfg.Search.PerPage, err = env.Int("SEARCH_PER_PAGE", pagination.PageDefaultSize); err != nil {
		return nil, err
	}
	if cfg.Search.MaxResults, err = env.Int("SEARCH_MAX_RESULTS", pagination.MaxResultsDefault); err != nil {
		return nil, err
	}

	if cfg.Cache.TTL, err = env.Duration("CACHE_TTL", cache.DefaultTTL); err != nil {
		return nil, err
	}

	if env.Bool("BREAKER_ENABLED") {
		settings := breaker.DefaultSettings()
		cfg.Breaker = &settings
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
		}
	}

	return cfg, nil
}
