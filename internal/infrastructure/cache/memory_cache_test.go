package cache

import (
	"context"
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestMemoryCacheSetGetDelete(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	if err := cache.Set(ctx, "ping_count_by_type_2035-09-01_2035-09-30", `[{"count":1}]`, 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	value, found, err := cache.Get(ctx, " ping_count_by_type_2035-09-01_2035-09-30 ")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !found || value != `[{"count":1}]` {
		t.Fatalf("Get() = %q, found=%v", value, found)
	}

	if err := cache.Delete(ctx, "ping_count_by_type_2035-09-01_2035-09-30"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, found, _ := cache.Get(ctx, "ping_count_by_type_2035-09-01_2035-09-30"); found {
		t.Fatalf("Get() after delete expected found=false")
	}
}

func TestMemoryCacheExpiresEntries(t *testing.T) {
	clock := &fakeClock{now: time.Date(2035, 9, 1, 12, 0, 0, 0, time.UTC)}
	cache := NewMemoryCacheWithClock(clock.Now)
	ctx := context.Background()

	if err := cache.Set(ctx, "k", "v", time.Hour); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	clock.Advance(59 * time.Minute)
	if _, found, _ := cache.Get(ctx, "k"); !found {
		t.Fatalf("Get() before expiry expected found=true")
	}

	clock.Advance(time.Minute)
	if _, found, _ := cache.Get(ctx, "k"); found {
		t.Fatalf("Get() at expiry expected found=false")
	}
	if cache.Len() != 0 {
		t.Fatalf("Len() = %d, want expired entry dropped", cache.Len())
	}
}

func TestMemoryCacheRejectsBlankKey(t *testing.T) {
	cache := NewMemoryCache()
	if err := cache.Set(context.Background(), "  ", "v", 0); err == nil {
		t.Fatalf("Set() expected error for blank key")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := cache.Get(ctx, "k"); err == nil {
		t.Fatalf("Get() expected error for canceled context")
	}
}
