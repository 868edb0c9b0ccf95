package invalidation

import (
	"context"
	"doctor-appointment-service/internal/app/contracts"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultSubscriberBuffer = 256

// LocalHub is an in-process transport. Every bus created from the same hub
// behaves like a separate service instance on a shared channel.
type LocalHub struct {
	mu          sync.RWMutex
	subscribers []*localSubscriber
	Log         *zap.Logger
}

type localSubscriber struct {
	instanceID string
	messages   chan []byte
	done       chan struct{}
	closeOnce  sync.Once
}

func NewLocalHub(logger *zap.Logger) *LocalHub {
	return &LocalHub{Log: logger}
}

// NewBus returns a bus with its own instance id attached to the hub.
func (h *LocalHub) NewBus() contracts.InvalidationBus {
	return &localBus{hub: h, instanceID: uuid.NewString()}
}

func (h *LocalHub) broadcast(payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, subscriber := range h.subscribers {
		select {
		case subscriber.messages <- payload:
		case <-subscriber.done:
		default:
			h.Log.Warn("LocalHub.broadcast subscriber buffer full, message dropped")
		}
	}
}

func (h *LocalHub) add(subscriber *localSubscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subscribers = append(h.subscribers, subscriber)
}

func (h *LocalHub) remove(instanceID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	kept := h.subscribers[:0]
	for _, subscriber := range h.subscribers {
		if subscriber.instanceID == instanceID {
			subscriber.closeOnce.Do(func() { close(subscriber.done) })
			continue
		}
		kept = append(kept, subscriber)
	}
	h.subscribers = kept
}

type localBus struct {
	hub        *LocalHub
	instanceID string
}

func (b *localBus) InstanceID() string {
	return b.instanceID
}

func (b *localBus) Publish(ctx context.Context, key string) error {
	payload, err := encodeMessage(key, b.instanceID)
	if err != nil {
		return err
	}
	b.hub.broadcast(payload)
	return nil
}

func (b *localBus) Subscribe(ctx context.Context, handler contracts.InvalidationHandler) error {
	subscriber := &localSubscriber{
		instanceID: b.instanceID,
		messages:   make(chan []byte, defaultSubscriberBuffer),
		done:       make(chan struct{}),
	}
	b.hub.add(subscriber)

	go func() {
		for {
			select {
			case payload := <-subscriber.messages:
				dispatch(context.Background(), b.hub.Log, b.instanceID, payload, handler)
			case <-subscriber.done:
				return
			}
		}
	}()
	return nil
}

func (b *localBus) Close() error {
	b.hub.remove(b.instanceID)
	return nil
}
