package cache

import (
	"context"
	"testing"
	"time"

	"vesselwatch/internal/infrastructure/persistence/gormdb/dbtest"
	"vesselwatch/internal/infrastructure/persistence/gormdb/model"
)

func setupDBCache(t *testing.T) (*DBCache, *fakeClock) {
	t.Helper()

	clock := &fakeClock{now: time.Date(2035, 9, 1, 12, 0, 0, 0, time.UTC)}
	cache := NewDBCache(dbtest.Open(t))
	cache.now = clock.Now
	return cache, clock
}

func TestDBCacheSetGetDelete(t *testing.T) {
	cache, _ := setupDBCache(t)
	ctx := context.Background()

	if err := cache.Set(ctx, "ping_count_by_type_2035-09-01_2035-09-30", "first", 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := cache.Set(ctx, "ping_count_by_type_2035-09-01_2035-09-30", "second", 0); err != nil {
		t.Fatalf("Set(update) error = %v", err)
	}

	value, found, err := cache.Get(ctx, "ping_count_by_type_2035-09-01_2035-09-30")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !found || value != "second" {
		t.Fatalf("Get() = %q, found=%v", value, found)
	}

	if err := cache.Delete(ctx, "ping_count_by_type_2035-09-01_2035-09-30"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, found, err := cache.Get(ctx, "ping_count_by_type_2035-09-01_2035-09-30"); err != nil || found {
		t.Fatalf("Get() after delete = found %v, err %v", found, err)
	}
}

func TestDBCacheHonorsExpiry(t *testing.T) {
	cache, clock := setupDBCache(t)
	ctx := context.Background()

	if err := cache.Set(ctx, "short", "v", time.Hour); err != nil {
		t.Fatalf("Set(short) error = %v", err)
	}
	if err := cache.Set(ctx, "forever", "v", 0); err != nil {
		t.Fatalf("Set(forever) error = %v", err)
	}

	if _, found, _ := cache.Get(ctx, "short"); !found {
		t.Fatalf("Get(short) before expiry expected found=true")
	}

	clock.Advance(time.Hour)
	if _, found, err := cache.Get(ctx, "short"); err != nil || found {
		t.Fatalf("Get(short) after expiry = found %v, err %v", found, err)
	}
	if _, found, _ := cache.Get(ctx, "forever"); !found {
		t.Fatalf("Get(forever) expected found=true")
	}

	purged, err := cache.PurgeExpired(ctx)
	if err != nil {
		t.Fatalf("PurgeExpired() error = %v", err)
	}
	if purged != 1 {
		t.Fatalf("PurgeExpired() = %d, want 1", purged)
	}
}

func TestDBCachePurgeComparesSubSecondExpiries(t *testing.T) {
	cache, clock := setupDBCache(t)
	ctx := context.Background()

	clock.now = time.Date(2035, 9, 1, 10, 0, 0, 500_000_000, time.UTC)
	if err := cache.Set(ctx, "live", "v", time.Hour); err != nil {
		t.Fatalf("Set(live) error = %v", err)
	}
	clock.now = time.Date(2035, 9, 1, 9, 59, 59, 0, time.UTC)
	if err := cache.Set(ctx, "stale", "v", time.Hour); err != nil {
		t.Fatalf("Set(stale) error = %v", err)
	}

	clock.now = time.Date(2035, 9, 1, 11, 0, 0, 0, time.UTC)
	purged, err := cache.PurgeExpired(ctx)
	if err != nil {
		t.Fatalf("PurgeExpired() error = %v", err)
	}
	if purged != 1 {
		t.Fatalf("PurgeExpired() = %d, want 1", purged)
	}
	if _, found, err := cache.Get(ctx, "live"); err != nil || !found {
		t.Fatalf("Get(live) after purge = found %v, err %v", found, err)
	}
}

func TestDBCachePurgeEveryRemovesExpiredEntries(t *testing.T) {
	cache, clock := setupDBCache(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := cache.Set(ctx, "short", "v", time.Minute); err != nil {
		t.Fatalf("Set(short) error = %v", err)
	}
	clock.Advance(time.Hour)

	done := make(chan struct{})
	go func() {
		defer close(done)
		cache.PurgeEvery(ctx, 10*time.Millisecond)
	}()

	deadline := time.Now().Add(5 * time.Second)
	for {
		var remaining int64
		if err := cache.db.Model(&model.CacheEntry{}).Count(&remaining).Error; err != nil {
			t.Fatalf("count cache entries: %v", err)
		}
		if remaining == 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("expired entry still stored after %s", 5*time.Second)
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("PurgeEvery did not return after cancel")
	}
}
