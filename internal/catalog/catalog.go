// Package catalog provides the category taxonomy and user lookups consulted while building filters.
package catalog

import (
	"context"
	"fmt"
)

type SubCategory struct {
	ID   int    `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
}

type MainCategory struct {
	ID   int           `yaml:"id" json:"id"`
	Name string        `yaml:"name" json:"name"`
	Subs []SubCategory `yaml:"subs" json:"subs"`
}

// Catalog resolves category ids.
type Catalog interface {
	Main(id int) (MainCategory, bool)
	Sub(main, sub int) (SubCategory, bool)
}

// UserDirectory answers whether a user id exists.
type UserDirectory interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type subKey struct {
	main int
	sub  int
}

// Taxonomy is an in-memory Catalog.
type Taxonomy struct {
	mains map[int]MainCategory
	subs  map[subKey]SubCategory
	order []int
}

var _ Catalog = (*Taxonomy)(nil)

func NewTaxonomy(mains []MainCategory) (*Taxonomy, error) {
	t := &Taxonomy{
		mains: make(map[int]MainCategory, len(mains)),
		subs:  make(map[subKey]SubCategory),
	}

	for _, m := range mains {
		if m.ID <= 0 {
			return nil, fmt.Errorf("main category %q: id must be positive", m.Name)
		}
		if _, dup := t.mains[m.ID]; dup {
			return nil, fmt.Errorf("main category %d: duplicate id", m.ID)
		}
		for _, s := range m.Subs {
			if s.ID <= 0 {
				return nil, fmt.Errorf("sub category %d_%d: id must be positive", m.ID, s.ID)
			}
			key := subKey{main: m.ID, sub: s.ID}
			if _, dup := t.subs[key]; dup {
				return nil, fmt.Errorf("sub category %d_%d: duplicate id", m.ID, s.ID)
			}
			t.subs[key] = s
		}
		t.mains[m.ID] = m
		t.order = append(t.order, m.ID)
	}

	return t, nil
}

func (t *Taxonomy) Main(id int) (MainCategory, bool) {
	m, ok := t.mains[id]
	return m, ok
}

func (t *Taxonomy) Sub(main, sub int) (SubCategory, bool) {
	s, ok := t.subs[subKey{main: main, sub: sub}]
	return s, ok
}

// All returns the main categories in declaration order.
func (t *Taxonomy) All() []MainCategory {
	out := make([]MainCategory, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.mains[id])
	}
	return out
}
