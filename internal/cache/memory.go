package cache

import (
	"sync"
	"time"

	"github.com/deusflow/newspulse/internal/news"
)

// Entry is one cached aggregation result. Entries are replaced wholesale on
// refresh, never mutated in place.
type Entry struct {
	Items     []news.Item
	FetchedAt time.Time
	expiresAt time.Time
}

// Memory is the in-process tier: a TTL map with lazy expiry on read and a
// periodic sweep so cold keys cannot pile up forever.
type Memory struct {
	mu    sync.RWMutex
	items map[string]Entry
}

// NewMemory creates the tier and starts its background sweep.
func NewMemory() *Memory {
	c := &Memory{items: make(map[string]Entry)}
	go c.cleanupLoop(5 * time.Minute)
	return c
}

// Get returns a live entry. Expired entries read as misses; the sweep
// removes them later.
func (c *Memory) Get(key string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.items[key]
	if !ok || time.Now().After(e.expiresAt) {
		return Entry{}, false
	}
	return e, true
}

// Set stores items under key for ttl.
func (c *Memory) Set(key string, items []news.Item, ttl time.Duration) {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = Entry{
		Items:     items,
		FetchedAt: now,
		expiresAt: now.Add(ttl),
	}
}

func (c *Memory) cleanupLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for range ticker.C {
		c.cleanup()
	}
}

func (c *Memory) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, e := range c.items {
		if now.After(e.expiresAt) {
			delete(c.items, key)
		}
	}
}
