// Package sequence hands out monotonically increasing integer ids that survive restarts.
package sequence

import (
	"fmt"
	"strconv"

	"todo/internal/keyed"
)

type Generator struct {
	store   *keyed.Storage
	key     string
	current int
}

// New loads the counter stored under key, starting at 0 when none exists.
func New(store *keyed.Storage, key string) *Generator {
	return &Generator{
		store:   store,
		key:     key,
		current: store.Int(key),
	}
}

func (g *Generator) Key() string { return g.key }

// Current is the next id to be handed out.
func (g *Generator) Current() int { return g.current }

// Advance consumes the current id and persists the new counter. There is no way back.
func (g *Generator) Advance() error {
	g.current++
	if err := g.store.Set(g.key, g.current); err != nil {
		return fmt.Errorf("persist sequence %q: %w", g.key, err)
	}
	return nil
}

// AtLeast raises the counter to n without persisting it; lower values are ignored.
func (g *Generator) AtLeast(n int) {
	if n > g.current {
		g.current = n
	}
}

func (g *Generator) Save() error {
	if err := g.store.Set(g.key, g.current); err != nil {
		return fmt.Errorf("persist sequence %q: %w", g.key, err)
	}
	return nil
}

// Format renders id, or the current counter when no id is given.
func (g *Generator) Format(id ...int) string {
	if len(id) > 0 {
		return strconv.Itoa(id[0])
	}
	return strconv.Itoa(g.current)
}
