package invalidation

import (
	"context"
	"doctor-appointment-service/internal/app/contracts"
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/exceptions"
	"sync"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type rabbitMQBus struct {
	connection *amqp091.Connection
	exchange   string
	instanceID string
	Log        *zap.Logger

	mu             sync.Mutex
	publishChannel *amqp091.Channel
	consumers      []*amqp091.Channel
}

// NewRabbitMQBus fans invalidations out through a fanout exchange. Every
// subscriber binds an exclusive, auto-deleted queue, so an instance that is
// offline simply misses the messages published meanwhile.
func NewRabbitMQBus(connection *amqp091.Connection, exchange string, logger *zap.Logger) (contracts.InvalidationBus, error) {
	channel, err := connection.Channel()
	if err != nil {
		return nil, exceptions.ErrRabbitMQDeclare(err, exchange)
	}
	if err := declareExchange(channel, exchange); err != nil {
		channel.Close()
		return nil, err
	}

	return &rabbitMQBus{
		connection:     connection,
		exchange:       exchange,
		instanceID:     uuid.NewString(),
		Log:            logger,
		publishChannel: channel,
	}, nil
}

func declareExchange(channel *amqp091.Channel, exchange string) error {
	err := channel.ExchangeDeclare(exchange, amqp091.ExchangeFanout, true, false, false, false, nil)
	if err != nil {
		return exceptions.ErrRabbitMQDeclare(err, exchange)
	}
	return nil
}

func (b *rabbitMQBus) InstanceID() string {
	return b.instanceID
}

func (b *rabbitMQBus) Publish(ctx context.Context, key string) error {
	payload, err := encodeMessage(key, b.instanceID)
	if err != nil {
		return err
	}

	message := amqp091.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         payload,
		DeliveryMode: amqp091.Transient,
		AppId:        b.instanceID,
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.publishChannel.PublishWithContext(ctx, b.exchange, "", false, false, message); err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, b.exchange)
	}
	return nil
}

func (b *rabbitMQBus) Subscribe(ctx context.Context, handler contracts.InvalidationHandler) error {
	channel, err := b.connection.Channel()
	if err != nil {
		return exceptions.ErrRabbitMQConsume(err, b.exchange)
	}
	if err := declareExchange(channel, b.exchange); err != nil {
		channel.Close()
		return err
	}

	queue, err := channel.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		channel.Close()
		return exceptions.ErrRabbitMQDeclare(err, b.exchange)
	}
	if err := channel.QueueBind(queue.Name, "", b.exchange, false, nil); err != nil {
		channel.Close()
		return exceptions.ErrRabbitMQDeclare(err, queue.Name)
	}

	deliveries, err := channel.Consume(queue.Name, b.instanceID, true, true, false, false, nil)
	if err != nil {
		channel.Close()
		return exceptions.ErrRabbitMQConsume(err, queue.Name)
	}

	b.mu.Lock()
	b.consumers = append(b.consumers, channel)
	b.mu.Unlock()

	b.Log.Info("rabbitMQBus.Subscribe listening",
		zap.String(constvars.LoggingChannelKey, b.exchange),
		zap.String(constvars.LoggingInstanceIDKey, b.instanceID),
	)

	go func() {
		for delivery := range deliveries {
			dispatch(context.Background(), b.Log, b.instanceID, delivery.Body, handler)
		}
		b.Log.Info("rabbitMQBus.Subscribe stopped",
			zap.String(constvars.LoggingChannelKey, b.exchange),
		)
	}()
	return nil
}

func (b *rabbitMQBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var firstErr error
	for _, channel := range b.consumers {
		if err := channel.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	b.consumers = nil
	if err := b.publishChannel.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
