package catalog

import (
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/gridfold/catalogd/pkg/catalogd"
)

// Cache maps zoom keys to built catalog views.
//
// Views are never mutated in place; Put replaces an entry wholesale.
// GetOrBuild guarantees that concurrent misses for the same key run the
// build function at most once while the flight is in progress.
//
// Thread-Safety: safe for concurrent use.
type Cache struct {
	mu    sync.RWMutex
	views map[catalogd.ZoomKey]catalogd.CatalogView
	group singleflight.Group
}

// NewCache creates an empty Cache.
func NewCache() *Cache {
	return &Cache{views: make(map[catalogd.ZoomKey]catalogd.CatalogView)}
}

// Get returns the view cached for key, if any.
func (c *Cache) Get(key catalogd.ZoomKey) (catalogd.CatalogView, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	view, ok := c.views[key]
	return view, ok
}

// Contains reports whether a view is cached for key.
func (c *Cache) Contains(key catalogd.ZoomKey) bool {
	_, ok := c.Get(key)
	return ok
}

// Put stores view under key, replacing any previous entry.
func (c *Cache) Put(key catalogd.ZoomKey, view catalogd.CatalogView) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.views[key] = view
}

// Len returns the number of cached views.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.views)
}

// Clear drops every cached view.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.views = make(map[catalogd.ZoomKey]catalogd.CatalogView)
}

// GetOrBuild returns the cached view for key, building and storing it on
// a miss. Concurrent callers for the same missing key share one build
// invocation and all receive its result. A failed build stores nothing,
// so the next caller triggers a fresh attempt.
func (c *Cache) GetOrBuild(key catalogd.ZoomKey, build func() (catalogd.CatalogView, error)) (catalogd.CatalogView, error) {
	if view, ok := c.Get(key); ok {
		return view, nil
	}

	result, err, _ := c.group.Do(key.String(), func() (any, error) {
		// A previous flight may have populated the entry between the
		// miss above and this flight starting.
		if view, ok := c.Get(key); ok {
			return view, nil
		}
		view, err := build()
		if err != nil {
			return nil, err
		}
		c.Put(key, view)
		return view, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(catalogd.CatalogView), nil
}
