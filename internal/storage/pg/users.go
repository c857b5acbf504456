package pg

import (
	"context"
	"fmt"

	"github.com/DjordjeVuckovic/torrent-hunter/internal/catalog"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserDirectory looks users up in the users table.
type UserDirectory struct {
	db *pgxpool.Pool
}

func NewUserDirectory(pool *ConnectionPool) *UserDirectory {
	return &UserDirectory{db: pool.DB()}
}

func (d *UserDirectory) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := d.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to look up user %d: %w", id, err)
	}
	return exists, nil
}

var _ catalog.UserDirectory = (*UserDirectory)(nil)
