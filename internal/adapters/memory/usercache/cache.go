package usercache

import (
	"context"
	"sync"

	"github.com/Overland-East-Bay/trip-gateway/internal/domain"
	"github.com/Overland-East-Bay/trip-gateway/internal/ports/out/usercache"
)

// Cache is an in-memory implementation of usercache.Cache.
// It is safe for concurrent use.
type Cache struct {
	mu    sync.RWMutex
	items map[string]domain.User
}

func NewCache() *Cache {
	return &Cache{items: make(map[string]domain.User)}
}

func (c *Cache) Set(ctx context.Context, u domain.User) error {
	_ = ctx
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[usercache.Key(u.ID)] = u
	return nil
}

func (c *Cache) Delete(ctx context.Context, id domain.UserID) error {
	_ = ctx
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, usercache.Key(id))
	return nil
}

// Lookup returns the entry mirrored for id, for test assertions.
func (c *Cache) Lookup(id domain.UserID) (domain.User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	u, ok := c.items[usercache.Key(id)]
	return u, ok
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
