package invalidation

import (
	"context"
	"doctor-appointment-service/internal/app/contracts"
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/exceptions"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// Message is the payload carried on every transport.
type Message struct {
	Key    string `json:"key"`
	Origin string `json:"origin"`
}

func encodeMessage(key, origin string) ([]byte, error) {
	payload, err := json.Marshal(Message{Key: key, Origin: origin})
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}
	return payload, nil
}

func decodeMessage(payload []byte) (Message, error) {
	var message Message
	if err := json.Unmarshal(payload, &message); err != nil {
		return Message{}, exceptions.ErrCannotUnmarshalJSON(err)
	}
	if message.Key == "" {
		return Message{}, errors.New(constvars.ErrDevInvalidInvalidationPacket)
	}
	return message, nil
}

// dispatch hands one received payload to handler. Messages published by this
// instance are skipped. A failing or panicking handler is logged and never
// stops the subscription.
func dispatch(ctx context.Context, log *zap.Logger, instanceID string, payload []byte, handler contracts.InvalidationHandler) {
	defer func() {
		if recovered := recover(); recovered != nil {
			log.Error("invalidation.dispatch handler panicked",
				zap.String(constvars.LoggingInstanceIDKey, instanceID),
				zap.Error(fmt.Errorf("%v", recovered)),
			)
		}
	}()

	message, err := decodeMessage(payload)
	if err != nil {
		log.Warn("invalidation.dispatch dropped malformed message",
			zap.String(constvars.LoggingInstanceIDKey, instanceID),
			zap.ByteString(constvars.LoggingDataKey, payload),
			zap.Error(err),
		)
		return
	}
	if message.Origin == instanceID {
		return
	}

	if err := handler(ctx, message.Key); err != nil {
		log.Error("invalidation.dispatch handler failed",
			zap.String(constvars.LoggingInstanceIDKey, instanceID),
			zap.String(constvars.LoggingCacheKey, message.Key),
			zap.Error(err),
		)
	}
}
