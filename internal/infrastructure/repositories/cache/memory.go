package cache

import (
	"aetherium-service/internal/domain/interfaces"
	"aetherium-service/internal/infrastructure/metrics"
	"context"
	"sync"
	"time"
)

type cacheItem struct {
	value     string
	expiresAt time.Time // zero: sin expiración
}

func (item *cacheItem) isExpired(now time.Time) bool {
	return !item.expiresAt.IsZero() && now.After(item.expiresAt)
}

// MemoryCache implementa interfaces.Cache en memoria local
type MemoryCache struct {
	items map[string]*cacheItem
	mu    sync.RWMutex
	now   func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		items: make(map[string]*cacheItem),
		now:   time.Now,
	}
}

var (
	_ interfaces.Cache         = (*MemoryCache)(nil)
	_ interfaces.HealthChecker = (*MemoryCache)(nil)
)

func (c *MemoryCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.RLock()
	item, exists := c.items[key]
	c.mu.RUnlock()

	if !exists {
		return "", ErrKeyNotFound
	}

	if item.isExpired(c.now()) {
		_ = c.Delete(ctx, key)
		return "", ErrKeyExpired
	}

	return item.value, nil
}

// Set guarda value; ttl <= 0 significa sin expiración. Aprovecha para purgar expirados.
func (c *MemoryCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.purgeLocked(now)

	item := &cacheItem{value: value}
	if ttl > 0 {
		item.expiresAt = now.Add(ttl)
	}
	c.items[key] = item

	metrics.UpdateCacheKeys(string(CacheTypeMemory), len(c.items))
	return nil
}

func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
	return nil
}

// Ping always succeeds; it lets /ready treat both backends alike
func (c *MemoryCache) Ping(ctx context.Context) error {
	return nil
}

func (c *MemoryCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *MemoryCache) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.purgeLocked(c.now())
}

func (c *MemoryCache) purgeLocked(now time.Time) {
	for key, item := range c.items {
		if item.isExpired(now) {
			delete(c.items, key)
		}
	}
}
