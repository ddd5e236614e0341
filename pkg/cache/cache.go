// Package cache holds the local snapshot of the last successfully fetched
// collection. The snapshot is only ever replaced wholesale.
package cache

import (
	"strings"
	"sync"

	"github.com/goliatone/go-recipebook/pkg/model"
)

// Cache is an ordered, replace-only snapshot of a collection. It is safe for
// concurrent use; the last Replace wins.
type Cache struct {
	mu    sync.RWMutex
	items []model.Item
}

// New returns a cache seeded with a copy of items.
func New(items ...model.Item) *Cache {
	c := &Cache{}
	c.Replace(items)
	return c
}

// Replace swaps the snapshot for a copy of items.
func (c *Cache) Replace(items []model.Item) {
	next := append([]model.Item{}, items...)
	c.mu.Lock()
	c.items = next
	c.mu.Unlock()
}

// Items returns a copy of the snapshot in server order.
func (c *Cache) Items() []model.Item {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]model.Item{}, c.items...)
}

// Len reports the number of cached items.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Search returns the items whose name contains term, ignoring case, in cache
// order. An empty term matches every item.
func (c *Cache) Search(term string) []model.Item {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Filter(c.items, term)
}

// Resolve returns the ID of the first item whose name equals name exactly.
func (c *Cache) Resolve(name string) (model.ID, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, item := range c.items {
		if item.Name == name {
			return item.ID, true
		}
	}
	return "", false
}

// Filter is the case-insensitive substring match used by Search. It never
// modifies items.
func Filter(items []model.Item, term string) []model.Item {
	q := strings.ToLower(strings.TrimSpace(term))
	out := make([]model.Item, 0, len(items))
	for _, item := range items {
		if q == "" || strings.Contains(strings.ToLower(item.Name), q) {
			out = append(out, item)
		}
	}
	return out
}
