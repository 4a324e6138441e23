package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vesselwatch/internal/bootstrap/logging"
	"vesselwatch/internal/errs"
	"vesselwatch/internal/infrastructure/persistence/gormdb/model"
	"vesselwatch/internal/ports"
)

// expiryLayout is fixed width so text order of stored timestamps is time order.
const expiryLayout = "2006-01-02T15:04:05.000000000Z"

// noExpiry is stored for entries set with a zero ttl.
const noExpiry = "9999-12-31T23:59:59.000000000Z"

// DBCache stores entries in the query_cache table so every replica sharing
// the database shares the cache.
type DBCache struct {
	db  *gorm.DB
	now func() time.Time
}

var _ ports.Cache = (*DBCache)(nil)

func NewDBCache(db *gorm.DB) *DBCache {
	return &DBCache{db: db, now: time.Now}
}

func (c *DBCache) Get(ctx context.Context, key string) (string, bool, error) {
	trimmedKey, err := checkKey(ctx, key)
	if err != nil {
		return "", false, err
	}

	var row model.CacheEntry
	if err := c.db.WithContext(ctx).Where("key = ?", trimmedKey).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, errs.Wrap(err, "query cache by key")
	}

	expiresAt, err := time.Parse(expiryLayout, row.ExpiresAt)
	if err != nil {
		return "", false, errs.Wrapf(err, "parse cache expiry for %q", trimmedKey)
	}
	if !c.now().Before(expiresAt) {
		return "", false, nil
	}

	return row.Value, true, nil
}

func (c *DBCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	trimmedKey, err := checkKey(ctx, key)
	if err != nil {
		return err
	}

	now := c.now().UTC()
	expiresAt := noExpiry
	if ttl > 0 {
		expiresAt = now.Add(ttl).Format(expiryLayout)
	}

	row := model.CacheEntry{
		Key:       trimmedKey,
		Value:     value,
		ExpiresAt: expiresAt,
		UpdatedAt: now.Format(expiryLayout),
	}

	if err := c.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]any{
			"value":      row.Value,
			"expires_at": row.ExpiresAt,
			"updated_at": row.UpdatedAt,
		}),
	}).Create(&row).Error; err != nil {
		return errs.Wrap(err, "upsert cache key")
	}

	return nil
}

func (c *DBCache) Delete(ctx context.Context, key string) error {
	trimmedKey, err := checkKey(ctx, key)
	if err != nil {
		return err
	}

	if err := c.db.WithContext(ctx).Where("key = ?", trimmedKey).Delete(&model.CacheEntry{}).Error; err != nil {
		return errs.Wrap(err, "delete cache key")
	}
	return nil
}

// PurgeExpired deletes entries whose expiry has passed and returns how many.
func (c *DBCache) PurgeExpired(ctx context.Context) (int64, error) {
	if ctx == nil {
		return 0, errors.New("context is required")
	}

	now := c.now().UTC().Format(expiryLayout)
	result := c.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&model.CacheEntry{})
	if result.Error != nil {
		return 0, errs.Wrap(result.Error, "purge expired cache entries")
	}
	return result.RowsAffected, nil
}

// PurgeEvery runs PurgeExpired on every tick of interval until ctx is done.
func (c *DBCache) PurgeEvery(ctx context.Context, interval time.Duration) {
	logCtx := logging.WithAttrs(ctx, slog.String("component", "infrastructure.cache"))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purged, err := c.PurgeExpired(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				logging.Warn(logCtx, "purge expired cache entries failed", slog.Any("err", errs.Loggable(err)))
				continue
			}
			if purged > 0 {
				logging.Debug(logCtx, "purged expired cache entries", slog.Int64("purged", purged))
			}
		}
	}
}
