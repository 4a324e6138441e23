package ports

import (
	"context"
	"time"
)

// Cache is a string key-value store with per-entry expiry.
// Adapters: in-memory, database table, NATS JetStream key-value.
type Cache interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
