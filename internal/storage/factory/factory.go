package factory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/torrent-hunter/internal/catalog"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/storage"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/storage/es"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/storage/in_mem"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/storage/pg"
	pkgserver "github.com/DjordjeVuckovic/torrent-hunter/pkg/server"
)

// Backend is everything a search process needs from the configured storage.
// Clients are created once here and shared.
type Backend struct {
	Searcher storage.Searcher
	Users    catalog.UserDirectory
	Health   []pkgserver.NamedHealthChecker

	closers []func()
}

func (b *Backend) Close() {
	for _, c := range b.closers {
		c()
	}
}

// NewBackend connects to the configured storage.
// PostgreSQL also serves the user directory in index mode when a connection string is set.
func NewBackend(ctx context.Context, cfg StorageConfig) (*Backend, error) {
	b := &Backend{}

	var pool *pg.ConnectionPool
	if cfg.Pg != nil {
		p, err := pg.NewConnectionPool(ctx, *cfg.Pg)
		if err != nil {
			return nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
		}
		pool = p
		b.closers = append(b.closers, pool.Close)
		b.Health = append(b.Health, pg.NewHealthChecker(pool))
	}

	switch cfg.Type {
	case storage.PG:
		b.Searcher = pg.NewSearcher(pool, cfg.PgSearch)

	case storage.ES:
		client, err := es.NewClient(*cfg.Es)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.Searcher = es.NewSearcher(client, cfg.Es.IndexName, cfg.EsSearch)
		b.Health = append(b.Health, es.NewHealthChecker(client))

	case storage.Memory:
		searcher, err := in_mem.LoadJSONFile(cfg.MemoryFile)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.Searcher = searcher

	default:
		b.Close()
		return nil, fmt.Errorf(string(storage.ErrUnsupportedStorer), cfg.Type)
	}

	if pool != nil {
		b.Users = pg.NewUserDirectory(pool)
	} else {
		slog.Warn("No PostgreSQL connection configured, using static user directory", "users", len(cfg.UserIDs))
		b.Users = catalog.NewStaticUsers(cfg.UserIDs...)
	}

	slog.Info("Storage backend ready", "backend", b.Searcher.Name())
	return b, nil
}

// Available lists the backend types cfg has connection settings for.
func (cfg StorageConfig) Available() []storage.Type {
	var out []storage.Type
	if cfg.Pg != nil {
		out = append(out, storage.PG)
	}
	if cfg.Es != nil {
		out = append(out, storage.ES)
	}
	if cfg.MemoryFile != "" {
		out = append(out, storage.Memory)
	}
	return out
}

// WithType returns a copy of cfg that builds the given backend.
func (cfg StorageConfig) WithType(t storage.Type) StorageConfig {
	cfg.Type = t
	return cfg
}
