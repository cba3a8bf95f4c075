package cache

import (
	"context"
	"sync"
	"time"
)

// Cache is a best-effort TTL store. It is advisory only: every caller
// must behave correctly with a cold cache.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, val string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type InMemoryCache struct {
	mu   sync.RWMutex
	data map[string]item
	now  func() time.Time
}

type item struct {
	val string
	exp time.Time
}

func NewInMemory() *InMemoryCache {
	return NewInMemoryWithClock(time.Now)
}

// NewInMemoryWithClock injects the clock so expiry is testable.
func NewInMemoryWithClock(now func() time.Time) *InMemoryCache {
	return &InMemoryCache{data: make(map[string]item), now: now}
}

func (c *InMemoryCache) Get(_ context.Context, key string) (string, bool) {
	c.mu.RLock()
	it, ok := c.data[key]
	c.mu.RUnlock()
	if !ok {
		return "", false
	}
	if !it.exp.IsZero() && c.now().After(it.exp) {
		c.mu.Lock()
		delete(c.data, key)
		c.mu.Unlock()
		return "", false
	}
	return it.val, true
}

func (c *InMemoryCache) Set(_ context.Context, key string, val string, ttl time.Duration) error {
	var exp time.Time
	if ttl > 0 {
		exp = c.now().Add(ttl)
	}
	c.mu.Lock()
	c.data[key] = item{val: val, exp: exp}
	c.mu.Unlock()
	return nil
}

func (c *InMemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.data, key)
	c.mu.Unlock()
	return nil
}
