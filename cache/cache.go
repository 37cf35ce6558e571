package cache

import (
	"context"
	"sync"
	"time"
)

// UsernameCache caches user display names by user id.
type UsernameCache interface {
	// GetMany returns the cached names and the ids it has no entry for.
	GetMany(ctx context.Context, ids []string) (map[string]string, []string)
	SetMany(ctx context.Context, names map[string]string)
	Delete(ctx context.Context, id string)
}

type entry struct {
	name     string
	storedAt time.Time
}

type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryCache returns an in-process cache; ttl <= 0 keeps entries forever.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *MemoryCache) GetMany(_ context.Context, ids []string) (map[string]string, []string) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	found := make(map[string]string, len(ids))
	var missing []string
	now := c.now()
	for _, id := range ids {
		e, ok := c.entries[id]
		if !ok || c.expired(e, now) {
			missing = append(missing, id)
			continue
		}
		found[id] = e.name
	}
	return found, missing
}

func (c *MemoryCache) SetMany(_ context.Context, names map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for id, name := range names {
		c.entries[id] = entry{name: name, storedAt: now}
	}
}

func (c *MemoryCache) Delete(_ context.Context, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
}

// Stats returns statistics about the current cache
func (c *MemoryCache) Stats() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	live := 0
	now := c.now()
	for _, e := range c.entries {
		if !c.expired(e, now) {
			live++
		}
	}
	return map[string]interface{}{
		"backend":       "memory",
		"total_entries": len(c.entries),
		"live_entries":  live,
		"ttl_seconds":   c.ttl.Seconds(),
	}
}

// Purge drops expired entries.
func (c *MemoryCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for id, e := range c.entries {
		if c.expired(e, now) {
			delete(c.entries, id)
		}
	}
}

func (c *MemoryCache) expired(e entry, now time.Time) bool {
	return c.ttl > 0 && now.Sub(e.storedAt) >= c.ttl
}
