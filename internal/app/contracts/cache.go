package contracts

import (
	"context"
	"time"
)

// CacheBackend is the key space shared by every service instance.
type CacheBackend interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) (int64, error)
	Keys(ctx context.Context, pattern string) ([]string, error)
	TrySetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	CompareAndDelete(ctx context.Context, key, value string) (bool, error)
}

type InvalidationHandler func(ctx context.Context, key string) error

// InvalidationBus fans a deleted cache key out to every other instance.
type InvalidationBus interface {
	Publish(ctx context.Context, key string) error
	Subscribe(ctx context.Context, handler InvalidationHandler) error
	InstanceID() string
	Close() error
}

// CacheInvalidator deletes keys locally and announces them on the bus.
// Mark and Superseded let a store read detect an invalidation that landed
// while it was in flight.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, keys ...string)
	Mark() uint64
	Superseded(key string, mark uint64) bool
}
