package mailer

import (
	"context"
	"doctor-appointment-service/internal/app/contracts"
	"doctor-appointment-service/internal/app/drivers/mailer"
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/dto/requests"
	"doctor-appointment-service/internal/pkg/exceptions"
	"encoding/base64"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// publisher is the part of *amqp091.Channel the queue mailer needs.
type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

type queueMailer struct {
	Channel publisher
	Queue   string
	Log     *zap.Logger
}

// NewQueueMailerService hands email payloads to the mailer queue consumed by
// the notification worker.
func NewQueueMailerService(rabbitMQConnection *amqp091.Connection, queue string, logger *zap.Logger) (contracts.MailerService, error) {
	channel, err := rabbitMQConnection.Channel()
	if err != nil {
		return nil, exceptions.ErrRabbitMQDeclare(err, queue)
	}

	_, err = channel.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		return nil, exceptions.ErrRabbitMQDeclare(err, queue)
	}

	return &queueMailer{
		Channel: channel,
		Queue:   queue,
		Log:     logger,
	}, nil
}

func (s *queueMailer) SendEmail(ctx context.Context, payload *requests.EmailPayload) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("queueMailer.SendEmail called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Strings(constvars.LoggingEmailKey, payload.To),
	)

	body, err := json.Marshal(payload)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	headers := amqp091.Table{
		"message_type":     "JSON",
		"requeue_strategy": "DROP",
	}

	message := amqp091.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp091.Persistent,
		Headers:      headers,
	}

	err = s.Channel.PublishWithContext(ctx, "", s.Queue, false, false, message)
	if err != nil {
		s.Log.Error("queueMailer.SendEmail error publishing message",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrRabbitMQPublishMessage(err, s.Queue)
	}
	return nil
}

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type smtpMailer struct {
	Client   *mailer.SMTPClient
	Log      *zap.Logger
	sendMail sendMailFunc
}

// NewSMTPMailerService delivers payloads directly over SMTP.
func NewSMTPMailerService(client *mailer.SMTPClient, logger *zap.Logger) contracts.MailerService {
	return &smtpMailer{
		Client:   client,
		Log:      logger,
		sendMail: smtp.SendMail,
	}
}

func (s *smtpMailer) SendEmail(ctx context.Context, payload *requests.EmailPayload) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("smtpMailer.SendEmail called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Strings(constvars.LoggingEmailKey, payload.To),
	)

	body := payload.HTMLCode
	if payload.Encoded {
		decoded, err := base64.StdEncoding.DecodeString(payload.HTMLCode)
		if err != nil {
			return exceptions.ErrServerProcess(err)
		}
		body = string(decoded)
	}

	from := payload.From
	if from == "" {
		from = s.Client.Sender
	}

	recipients := make([]string, 0, len(payload.To)+len(payload.Cc)+len(payload.Bcc))
	recipients = append(recipients, payload.To...)
	recipients = append(recipients, payload.Cc...)
	recipients = append(recipients, payload.Bcc...)

	msg := []byte(fmt.Sprintf(constvars.EmailSendHTMLSubjectFormat, from, strings.Join(payload.To, ", "), payload.Subject, body))
	addr := fmt.Sprintf("%s:%d", s.Client.Host, s.Client.Port)

	// net/smtp has no context support, so a deadline that already passed is
	// the only cancellation we can honor.
	if err := ctx.Err(); err != nil {
		return exceptions.ErrSMTPSendEmail(err, s.Client.Host)
	}

	err := s.sendMail(addr, s.Client.Auth, from, recipients, msg)
	if err != nil {
		s.Log.Error("smtpMailer.SendEmail error sending email",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrSMTPSendEmail(err, s.Client.Host)
	}
	return nil
}
