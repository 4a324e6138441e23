package cache

import (
	"context"
	"sync"
	"time"

	"vesselwatch/internal/ports"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryCache keeps entries in process memory. Expired entries are dropped on
// read. A zero ttl never expires.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

var _ ports.Cache = (*MemoryCache)(nil)

func NewMemoryCache() *MemoryCache {
	return NewMemoryCacheWithClock(time.Now)
}

// NewMemoryCacheWithClock uses now instead of the wall clock for expiry.
func NewMemoryCacheWithClock(now func() time.Time) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		now:     now,
	}
}

func (c *MemoryCache) Get(ctx context.Context, key string) (string, bool, error) {
	trimmedKey, err := checkKey(ctx, key)
	if err != nil {
		return "", false, err
	}

	c.mu.RLock()
	entry, ok := c.entries[trimmedKey]
	c.mu.RUnlock()
	if !ok {
		return "", false, nil
	}

	if c.expired(entry) {
		c.mu.Lock()
		if current, ok := c.entries[trimmedKey]; ok && c.expired(current) {
			delete(c.entries, trimmedKey)
		}
		c.mu.Unlock()
		return "", false, nil
	}
	return entry.value, true, nil
}

func (c *MemoryCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	trimmedKey, err := checkKey(ctx, key)
	if err != nil {
		return err
	}

	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = c.now().Add(ttl)
	}

	c.mu.Lock()
	c.entries[trimmedKey] = entry
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	trimmedKey, err := checkKey(ctx, key)
	if err != nil {
		return err
	}

	c.mu.Lock()
	delete(c.entries, trimmedKey)
	c.mu.Unlock()
	return nil
}

// Len counts stored entries, expired ones included until they are read.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *MemoryCache) expired(entry memoryEntry) bool {
	return !entry.expiresAt.IsZero() && !c.now().Before(entry.expiresAt)
}
