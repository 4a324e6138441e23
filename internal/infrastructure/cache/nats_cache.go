package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"vesselwatch/internal/errs"
	"vesselwatch/internal/ports"
)

// NATSCache stores entries in a JetStream key-value bucket. Expiry is a bucket
// setting, so the ttl passed to Set is ignored and every entry lives for the
// bucket TTL given at construction.
type NATSCache struct {
	kv jetstream.KeyValue
}

var _ ports.Cache = (*NATSCache)(nil)

// NewNATSCache creates the bucket when missing, or updates its TTL.
func NewNATSCache(ctx context.Context, nc *nats.Conn, bucket string, ttl time.Duration) (*NATSCache, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	if nc == nil {
		return nil, errors.New("nats connection is required")
	}
	bucket = strings.TrimSpace(bucket)
	if bucket == "" {
		return nil, errors.New("bucket is required")
	}

	js, err := jetstream.New(nc)
	if err != nil {
		return nil, errs.Wrap(err, "create jetstream context")
	}

	kv, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      bucket,
		Description: "vesselwatch query cache",
		TTL:         ttl,
		History:     1,
		Storage:     jetstream.FileStorage,
	})
	if err != nil {
		return nil, errs.Wrapf(err, "create key-value bucket %q", bucket)
	}

	return &NATSCache{kv: kv}, nil
}

func (c *NATSCache) Get(ctx context.Context, key string) (string, bool, error) {
	trimmedKey, err := checkKey(ctx, key)
	if err != nil {
		return "", false, err
	}

	entry, err := c.kv.Get(ctx, trimmedKey)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return "", false, nil
		}
		return "", false, errs.Wrapf(err, "get cache key %q", trimmedKey)
	}
	return string(entry.Value()), true, nil
}

func (c *NATSCache) Set(ctx context.Context, key string, value string, _ time.Duration) error {
	trimmedKey, err := checkKey(ctx, key)
	if err != nil {
		return err
	}

	if _, err := c.kv.PutString(ctx, trimmedKey, value); err != nil {
		return errs.Wrapf(err, "put cache key %q", trimmedKey)
	}
	return nil
}

func (c *NATSCache) Delete(ctx context.Context, key string) error {
	trimmedKey, err := checkKey(ctx, key)
	if err != nil {
		return err
	}

	if err := c.kv.Delete(ctx, trimmedKey); err != nil && !errors.Is(err, jetstream.ErrKeyNotFound) {
		return errs.Wrapf(err, "delete cache key %q", trimmedKey)
	}
	return nil
}
