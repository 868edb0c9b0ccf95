package invalidation

import (
	"context"
	"doctor-appointment-service/internal/app/contracts"
	"doctor-appointment-service/internal/pkg/constvars"
	"time"

	"go.uber.org/zap"
)

const (
	OriginLocal  = "local"
	OriginRemote = "remote"
)

// Listener drops keys announced by other instances from the local cache.
type Listener struct {
	Bus         contracts.InvalidationBus
	Cache       contracts.CacheBackend
	Generations *Generations
	Metrics     contracts.CacheMetrics
	Log         *zap.Logger
	Timeout     time.Duration
}

// Start subscribes once. The subscription lives until the bus is closed.
func (l *Listener) Start(ctx context.Context) error {
	if err := l.Bus.Subscribe(ctx, l.handle); err != nil {
		l.Log.Error("invalidation.Listener.Start error subscribing",
			zap.String(constvars.LoggingInstanceIDKey, l.Bus.InstanceID()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (l *Listener) handle(ctx context.Context, key string) error {
	l.Generations.Bump(key)

	opCtx, cancel := context.WithTimeout(ctx, l.Timeout)
	defer cancel()

	deleted, err := l.Cache.Delete(opCtx, key)
	if err != nil {
		l.Metrics.Error("invalidate")
		return err
	}

	l.Metrics.Invalidated(OriginRemote)
	l.Log.Debug("invalidation.Listener dropped key",
		zap.String(constvars.LoggingCacheKey, key),
		zap.Int64(constvars.LoggingCountKey, deleted),
	)
	return nil
}

// Invalidator applies the delete-then-publish discipline for one instance.
type Invalidator struct {
	Bus         contracts.InvalidationBus
	Cache       contracts.CacheBackend
	Generations *Generations
	Metrics     contracts.CacheMetrics
	Log         *zap.Logger
	Timeout     time.Duration
}

// Invalidate deletes keys from the local cache, then announces each one.
// Failures are logged; the cache ttl bounds staleness when the bus is down.
func (i *Invalidator) Invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	i.Generations.Bump(keys...)

	deleteCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), i.Timeout)
	_, err := i.Cache.Delete(deleteCtx, keys...)
	cancel()
	if err != nil {
		i.Metrics.Error("delete")
		i.Log.Warn("invalidation.Invalidator error deleting local keys",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Strings(constvars.LoggingCacheKeysKey, keys),
			zap.Error(err),
		)
	}

	for _, key := range keys {
		publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), i.Timeout)
		err := i.Bus.Publish(publishCtx, key)
		cancel()
		if err != nil {
			i.Metrics.Error("publish")
			i.Log.Warn("invalidation.Invalidator error publishing key",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingCacheKey, key),
				zap.Error(err),
			)
			continue
		}
		i.Metrics.Invalidated(OriginLocal)
	}
}

func (i *Invalidator) Mark() uint64 {
	return i.Generations.Mark()
}

func (i *Invalidator) Superseded(key string, mark uint64) bool {
	return i.Generations.Superseded(key, mark)
}
