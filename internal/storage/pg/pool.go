package pg

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const applicationName = "torrent-hunter"

type PoolConfig struct {
	ConnStr  string
	MaxConns int32
	// MaxConnIdleTime closes connections idle longer than this; zero keeps the pgxpool default
	MaxConnIdleTime time.Duration
}

// ConnectionPool is the single pgxpool shared by the searcher, the user directory and health checks.
type ConnectionPool struct {
	db *pgxpool.Pool
}

func NewConnectionPool(ctx context.Context, cfg PoolConfig) (*ConnectionPool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.ConnStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MaxConnIdleTime > 0 {
		poolCfg.MaxConnIdleTime = cfg.MaxConnIdleTime
	}
	if _, ok := poolCfg.ConnConfig.RuntimeParams["application_name"]; !ok {
		poolCfg.ConnConfig.RuntimeParams["application_name"] = applicationName
	}

	db, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	slog.Info("PostgreSQL pool ready",
		"host", poolCfg.ConnConfig.Host,
		"database", poolCfg.ConnConfig.Database,
		"max_conns", poolCfg.MaxConns,
	)
	return &ConnectionPool{db: db}, nil
}

func (p *ConnectionPool) DB() *pgxpool.Pool {
	return p.db
}

func (p *ConnectionPool) Close() {
	p.db.Close()
}

// Ping checks out a connection so an exhausted pool reports unhealthy.
func (p *ConnectionPool) Ping(ctx context.Context) error {
	c, err := p.db.Acquire(ctx)
	if err != nil {
		return err
	}
	defer c.Release()
	return c.Ping(ctx)
}
