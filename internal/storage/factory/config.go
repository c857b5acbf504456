package factory

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/torrent-hunter/internal/storage"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/storage/es"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/storage/pg"
	"github.com/DjordjeVuckovic/torrent-hunter/pkg/config/env"
)

type StorageConfig struct {
	storage.Type
	Pg *pg.PoolConfig
	Es *es.ClientConfig

	PgSearch pg.SearcherOptions
	EsSearch es.PlannerOptions

	// UserIDs backs the user directory when no PostgreSQL connection is configured
	UserIDs []int64
	// MemoryFile is the JSON torrent list the memory backend serves
	MemoryFile string
}

func LoadEnv() (*StorageConfig, error) {
	storageType := (storage.Type)(os.Getenv("STORAGE_TYPE"))
	if storageType == "" {
		slog.Error("STORAGE_TYPE environment variable is not set")
		return nil, fmt.Errorf("STORAGE_TYPE environment variable is not set")
	}
	if storageType != storage.ES && storageType != storage.PG && storageType != storage.Memory {
		slog.Error("Invalid STORAGE_TYPE environment variable value", "value", storageType)
		return nil, fmt.Errorf(
			"invalid STORAGE_TYPE environment variable value: %s, expected one of %v",
			storageType,
			[]storage.Type{storage.ES, storage.PG, storage.Memory})
	}

	cfg := &StorageConfig{Type: storageType}

	if connStr := os.Getenv("PG_CONNECTION_STRING"); connStr != "" {
		maxConns, err := env.Int("PG_MAX_CONNS", 0)
		if err != nil {
			return nil, err
		}
		idle, err := env.Duration("PG_MAX_CONN_IDLE", 0)
		if err != nil {
			return nil, err
		}
		cfg.Pg = &pg.PoolConfig{ConnStr: connStr, MaxConns: int32(maxConns), MaxConnIdleTime: idle}
	}
	if storageType == storage.PG && cfg.Pg == nil {
		slog.Error("PostgreSQL connection string is not set")
		return nil, fmt.Errorf("PostgreSQL connection string is not set")
	}

	timeout, err := env.Duration("PG_QUERY_TIMEOUT", 0)
	if err != nil {
		return nil, err
	}
	lookahead, err := env.Int("PG_LOOKAHEAD_PAGES", pg.DefaultLookaheadPages)
	if err != nil {
		return nil, err
	}
	cfg.PgSearch = pg.SearcherOptions{
		Planner: pg.PlannerOptions{
			TextConfig:     os.Getenv("PG_TEXT_CONFIG"),
			LookaheadPages: lookahead,
		},
		QueryTimeout: timeout,
	}

	if storageType == storage.ES || os.Getenv("ES_ADDRESSES") != "" {
		cfg.Es = &es.ClientConfig{
			Addresses: env.List("ES_ADDRESSES"),
			IndexName: os.Getenv("ES_INDEX_NAME"),
			Username:  os.Getenv("ES_USERNAME"),
			Password:  os.Getenv("ES_PASSWORD"),
		}
		retries, err := env.Int("ES_MAX_RETRIES", 0)
		if err != nil {
			return nil, err
		}
		cfg.Es.MaxRetries = retries
		if len(cfg.Es.Addresses) == 0 || cfg.Es.IndexName == "" {
			slog.Error("Elasticsearch configuration is incomplete", "addresses", cfg.Es.Addresses, "indexName", cfg.Es.IndexName)
			return nil, fmt.Errorf("elasticsearch configuration is incomplete: addresses or index name is missing")
		}
	}

	analyzer, ok := os.LookupEnv("ES_SEARCH_ANALYZER")
	if !ok {
		analyzer = es.DefaultAnalyzer
	}
	cfg.EsSearch = es.PlannerOptions{
		Analyzer:  analyzer,
		Highlight: env.Bool("ES_HIGHLIGHT"),
	}

	if storageType == storage.Memory {
		cfg.MemoryFile = os.Getenv("MEMORY_DATA_FILE")
		if cfg.MemoryFile == "" {
			slog.Error("MEMORY_DATA_FILE is not set")
			return nil, fmt.Errorf("MEMORY_DATA_FILE is not set")
		}
	}

	userIDs, err := env.Int64List("USER_IDS")
	if err != nil {
		return nil, err
	}
	cfg.UserIDs = userIDs

	return cfg, nil
}
