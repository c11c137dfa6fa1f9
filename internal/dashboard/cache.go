package dashboard

import (
	"container/list"
	"sync"
)

// Cache is the local copy of the roster: records keyed by id for
// constant-time lookup, kept in server order for listing.
type Cache struct {
	mu    sync.RWMutex
	index map[string]*list.Element
	order *list.List
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{
		index: make(map[string]*list.Element),
		order: list.New(),
	}
}

// Replace discards the contents and loads cats in the given order.
func (c *Cache) Replace(cats []Cat) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.index = make(map[string]*list.Element, len(cats))
	c.order.Init()
	for _, cat := range cats {
		if e, ok := c.index[cat.ID]; ok {
			e.Value = cat
			continue
		}
		c.index[cat.ID] = c.order.PushBack(cat)
	}
}

// Put replaces the record with the same id in place, or appends it.
func (c *Cache) Put(cat Cat) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.index[cat.ID]; ok {
		e.Value = cat
		return
	}
	c.index[cat.ID] = c.order.PushBack(cat)
}

// Get returns the record with the given id.
func (c *Cache) Get(id string) (Cat, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.index[id]
	if !ok {
		return Cat{}, false
	}
	return e.Value.(Cat), true
}

// Delete removes the record with the given id and reports whether it existed.
func (c *Cache) Delete(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.index[id]
	if !ok {
		return false
	}
	c.order.Remove(e)
	delete(c.index, id)
	return true
}

// List returns a snapshot in order.
func (c *Cache) List() []Cat {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cats := make([]Cat, 0, c.order.Len())
	for e := c.order.Front(); e != nil; e = e.Next() {
		cats = append(cats, e.Value.(Cat))
	}
	return cats
}

// Len returns the number of cached records.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.order.Len()
}
