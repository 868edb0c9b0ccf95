package contracts

import (
	"context"
	"doctor-appointment-service/internal/pkg/dto/requests"
)

type MailerService interface {
	SendEmail(ctx context.Context, payload *requests.EmailPayload) error
}
