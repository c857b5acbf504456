package catalog

import (
	"context"
	"sync"
)

// StaticUsers is an in-memory UserDirectory for the index backend and tests.
type StaticUsers struct {
	mu  sync.RWMutex
	ids map[int64]struct{}
}

var _ UserDirectory = (*StaticUsers)(nil)

func NewStaticUsers(ids ...int64) *StaticUsers {
	u := &StaticUsers{ids: make(map[int64]struct{}, len(ids))}
	for _, id := range ids {
		u.ids[id] = struct{}{}
	}
	return u
}

func (u *StaticUsers) Add(id int64) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.ids[id] = struct{}{}
}

func (u *StaticUsers) Exists(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	u.mu.RLock()
	defer u.mu.RUnlock()
	_, ok := u.ids[id]
	return ok, nil
}
