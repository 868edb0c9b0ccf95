package invalidation

import (
	"context"
	"doctor-appointment-service/internal/app/contracts"
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/exceptions"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type redisBus struct {
	client     redis.UniversalClient
	channel    string
	instanceID string
	Log        *zap.Logger

	mu      sync.Mutex
	pubsubs []*redis.PubSub
}

// NewRedisBus publishes on a Redis channel. Subscriptions use their own
// connection from the client pool, as pub/sub requires.
func NewRedisBus(client redis.UniversalClient, channel string, logger *zap.Logger) contracts.InvalidationBus {
	return &redisBus{
		client:     client,
		channel:    channel,
		instanceID: uuid.NewString(),
		Log:        logger,
	}
}

func (b *redisBus) InstanceID() string {
	return b.instanceID
}

func (b *redisBus) Publish(ctx context.Context, key string) error {
	payload, err := encodeMessage(key, b.instanceID)
	if err != nil {
		return err
	}
	if err := b.client.Publish(ctx, b.channel, payload).Err(); err != nil {
		return exceptions.ErrRedisPublish(err, b.channel)
	}
	return nil
}

func (b *redisBus) Subscribe(ctx context.Context, handler contracts.InvalidationHandler) error {
	pubsub := b.client.Subscribe(ctx, b.channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return exceptions.ErrRedisSubscribe(err, b.channel)
	}

	b.mu.Lock()
	b.pubsubs = append(b.pubsubs, pubsub)
	b.mu.Unlock()

	b.Log.Info("redisBus.Subscribe listening",
		zap.String(constvars.LoggingChannelKey, b.channel),
		zap.String(constvars.LoggingInstanceIDKey, b.instanceID),
	)

	go func() {
		for message := range pubsub.Channel() {
			dispatch(context.Background(), b.Log, b.instanceID, []byte(message.Payload), handler)
		}
		b.Log.Info("redisBus.Subscribe stopped",
			zap.String(constvars.LoggingChannelKey, b.channel),
		)
	}()
	return nil
}

func (b *redisBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var firstErr error
	for _, pubsub := range b.pubsubs {
		if err := pubsub.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	b.pubsubs = nil
	return firstErr
}
