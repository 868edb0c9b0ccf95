package middlewares

import (
	"doctor-appointment-service/internal/app/config"
	"doctor-appointment-service/internal/app/contracts"
	"doctor-appointment-service/internal/app/services/shared/ratelimiter"

	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

type Middlewares struct {
	Log               *zap.Logger
	AccessLog         *logrus.Logger
	InternalConfig    *config.InternalConfig
	PrincipalResolver contracts.PrincipalResolver
	BookingLimiter    *ratelimiter.ResourceLimiter
	Metrics           contracts.HTTPMetrics
}

func NewMiddlewares(
	logger *zap.Logger,
	accessLog *logrus.Logger,
	internalConfig *config.InternalConfig,
	principalResolver contracts.PrincipalResolver,
	bookingLimiter *ratelimiter.ResourceLimiter,
	httpMetrics contracts.HTTPMetrics,
) *Middlewares {
	return &Middlewares{
		Log:               logger,
		AccessLog:         accessLog,
		InternalConfig:    internalConfig,
		PrincipalResolver: principalResolver,
		BookingLimiter:    bookingLimiter,
		Metrics:           httpMetrics,
	}
}
