package fs

import (
	"sync"
	"time"

	"github.com/aretw0/folio/pkg/core"
)

// cacheEntry holds a parsed document together with the file stamp it was parsed from.
type cacheEntry struct {
	doc          core.Document
	size         int64
	lastModified time.Time
}

// cache is an in-memory read-through cache keyed by document ID.
// Entries are only served while the file's mtime and size are unchanged.
type cache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
}

func newCache() *cache {
	return &cache{
		entries: make(map[string]*cacheEntry),
	}
}

// Get retrieves an entry if it exists and is fresh.
// Returns false if missing or stale.
func (c *cache) Get(id string, mtime time.Time, size int64) (core.Document, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[id]
	if !ok {
		return core.Document{}, false
	}
	if !entry.lastModified.Equal(mtime) || entry.size != size {
		return core.Document{}, false
	}
	return entry.doc, true
}

// Set stores a freshly parsed document.
func (c *cache) Set(id string, doc core.Document, mtime time.Time, size int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[id] = &cacheEntry{
		doc:          doc,
		size:         size,
		lastModified: mtime,
	}
}

// Delete removes a single entry from the cache.
func (c *cache) Delete(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, id)
}

// Prune removes entries that are not in the 'keep' set.
func (c *cache) Prune(keep map[string]bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for id := range c.entries {
		if !keep[id] {
			delete(c.entries, id)
		}
	}
}

// Len returns the number of entries in the cache.
func (c *cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
