package main

import (
	"context"
	"doctor-appointment-service/internal/app/config"
	"doctor-appointment-service/internal/app/contracts"
	"doctor-appointment-service/internal/app/delivery/http/controllers"
	"doctor-appointment-service/internal/app/delivery/http/middlewares"
	"doctor-appointment-service/internal/app/delivery/http/routers"
	"doctor-appointment-service/internal/app/drivers/database"
	"doctor-appointment-service/internal/app/drivers/logger"
	mailerDriver "doctor-appointment-service/internal/app/drivers/mailer"
	"doctor-appointment-service/internal/app/drivers/messaging"
	"doctor-appointment-service/internal/app/drivers/storage"
	"doctor-appointment-service/internal/app/services/core/appointments"
	"doctor-appointment-service/internal/app/services/core/doctors"
	"doctor-appointment-service/internal/app/services/core/users"
	"doctor-appointment-service/internal/app/services/shared/auth"
	"doctor-appointment-service/internal/app/services/shared/cache"
	"doctor-appointment-service/internal/app/services/shared/invalidation"
	"doctor-appointment-service/internal/app/services/shared/locker"
	"doctor-appointment-service/internal/app/services/shared/mailer"
	"doctor-appointment-service/internal/app/services/shared/metrics"
	"doctor-appointment-service/internal/app/services/shared/ratelimiter"
	pictureStorage "doctor-appointment-service/internal/app/services/shared/storage"
	"doctor-appointment-service/internal/app/services/shared/warmer"
	"doctor-appointment-service/internal/pkg/constvars"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	tokenTTL           = 24 * time.Hour
	bookingLimiterSize = 10000
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewZapLogger(driverConfig, internalConfig)
	defer log.Sync()
	accessLog := logger.NewLogrusLogger(internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatal("Error loading location", zap.Error(err))
	}
	time.Local = location

	mongoDB := database.NewMongoDB(driverConfig)

	redisClient, err := database.NewRedisClient(driverConfig)
	if err != nil {
		log.Warn("Redis unavailable, running on the in-process cache", zap.Error(err))
		redisClient = nil
	}

	var rabbitMQConnection *amqp091.Connection
	if internalConfig.Cache.InvalidationTransport == constvars.CacheInvalidationTransportRabbit ||
		internalConfig.Mailer.Transport == constvars.MailerTransportRabbitMQ {
		rabbitMQConnection, err = messaging.NewRabbitMQ(driverConfig)
		if err != nil {
			log.Warn("RabbitMQ unavailable", zap.Error(err))
			rabbitMQConnection = nil
		}
	}

	minioClient := storage.NewMinio(driverConfig, internalConfig.Minio.BucketName)
	chiRouter := chi.NewRouter()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cleanup := bootstrapingTheApp(ctx, config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		RabbitMQ:       rabbitMQConnection,
		Minio:          minioClient,
		Logger:         log,
		AccessLog:      accessLog,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", internalConfig.App.Port),
		Handler: chiRouter,
	}

	go func() {
		log.Info("Server started",
			zap.String("address", internalConfig.App.Address),
			zap.String("port", internalConfig.App.Port),
		)
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	<-ctx.Done()

	log.Info("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	cleanup()

	if rabbitMQConnection != nil {
		rabbitMQConnection.Close()
	}
	if redisClient != nil {
		redisClient.Close()
	}
	if err := mongoDB.Client().Disconnect(shutdownCtx); err != nil {
		log.Error("Failed to disconnect MongoDB", zap.Error(err))
	}

	log.Info("Server exiting")
}

// bootstrapingTheApp wires every service onto the router and returns a function
// that stops the background workers.
func bootstrapingTheApp(ctx context.Context, bootstrap config.Bootstrap) func() {
	log := bootstrap.Logger
	internalConfig := bootstrap.InternalConfig

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(registry)

	// Cache
	cacheBackend := newCacheBackend(bootstrap)
	bus := newInvalidationBus(bootstrap)

	generations := invalidation.NewGenerations()

	listener := &invalidation.Listener{
		Bus:         bus,
		Cache:       cacheBackend,
		Generations: generations,
		Metrics:     appMetrics,
		Log:         log,
		Timeout:     internalConfig.Cache.OperationTimeout(),
	}
	if err := listener.Start(ctx); err != nil {
		log.Warn("Cache invalidation listener not running, entries expire by ttl only", zap.Error(err))
	}
	invalidator := &invalidation.Invalidator{
		Bus:         bus,
		Cache:       cacheBackend,
		Generations: generations,
		Metrics:     appMetrics,
		Log:         log,
		Timeout:     internalConfig.Cache.OperationTimeout(),
	}

	lockService := locker.NewLockService(cacheBackend, log)

	// Repositories
	doctorRepository := doctors.NewDoctorMongoRepository(bootstrap.MongoDB)
	appointmentRepository := appointments.NewAppointmentMongoRepository(bootstrap.MongoDB)
	userRepository := users.NewUserMongoRepository(bootstrap.MongoDB)

	// Shared services
	pictures := pictureStorage.NewMinioPictureStorage(bootstrap.Minio, internalConfig.Minio.BucketName, internalConfig.Minio.PublicBaseURL, log)
	mailerService := newMailerService(bootstrap)
	principalResolver := auth.NewJWTPrincipalResolver(internalConfig.JWT.Secret, tokenTTL, log)
	bookingLimiter, err := ratelimiter.NewResourceLimiter(internalConfig.App.BookingRequestsPerSecond, internalConfig.App.BookingRequestsPerSecond, bookingLimiterSize, log)
	if err != nil {
		log.Fatal("Failed to create booking rate limiter", zap.Error(err))
	}

	// Usecases
	doctorUsecase := doctors.NewDoctorUsecase(doctorRepository, cacheBackend, invalidator, pictures, appMetrics, internalConfig, log)
	bookingUsecase := appointments.NewBookingUsecase(appointmentRepository, doctorRepository, userRepository, mailerService, lockService, appMetrics, internalConfig, log)

	// Cache warmer
	cacheWarmer := warmer.NewWorker(log, lockService, doctorUsecase, internalConfig.Cache.WarmerCronSpec, internalConfig.Cache.WarmerLeaderLockTTL())
	cacheWarmer.Start(ctx)

	// Delivery
	middlewares := middlewares.NewMiddlewares(log, bootstrap.AccessLog, internalConfig, principalResolver, bookingLimiter, appMetrics)
	doctorController := controllers.NewDoctorController(log, doctorUsecase, bookingUsecase, internalConfig)
	appointmentController := controllers.NewAppointmentController(log, bookingUsecase, internalConfig)

	routers.SetupRoutes(bootstrap.Router, internalConfig, middlewares, appMetrics.Handler(), doctorController, appointmentController)

	return func() {
		cacheWarmer.Stop()
		if err := bus.Close(); err != nil {
			log.Warn("Failed to close cache invalidation bus", zap.Error(err))
		}
	}
}

func newCacheBackend(bootstrap config.Bootstrap) contracts.CacheBackend {
	if bootstrap.Redis != nil {
		return cache.NewRedisCache(bootstrap.Redis)
	}
	memoryCache, err := cache.NewMemoryCache(bootstrap.InternalConfig.Cache.MemorySize)
	if err != nil {
		bootstrap.Logger.Fatal("Failed to create memory cache", zap.Error(err))
	}
	return memoryCache
}

// newInvalidationBus picks the configured transport, falling back to the
// in-process hub when its driver is not connected.
func newInvalidationBus(bootstrap config.Bootstrap) contracts.InvalidationBus {
	log := bootstrap.Logger
	cacheConfig := bootstrap.InternalConfig.Cache

	switch cacheConfig.InvalidationTransport {
	case constvars.CacheInvalidationTransportRedis:
		if bootstrap.Redis != nil {
			return invalidation.NewRedisBus(redis.UniversalClient(bootstrap.Redis), cacheConfig.InvalidationChannel, log)
		}
	case constvars.CacheInvalidationTransportRabbit:
		if bootstrap.RabbitMQ != nil {
			bus, err := invalidation.NewRabbitMQBus(bootstrap.RabbitMQ, cacheConfig.InvalidationChannel, log)
			if err == nil {
				return bus
			}
			log.Warn("Failed to create RabbitMQ invalidation bus", zap.Error(err))
		}
	}

	log.Info("Using in-process cache invalidation bus",
		zap.String("transport", cacheConfig.InvalidationTransport),
	)
	return invalidation.NewLocalHub(log).NewBus()
}

func newMailerService(bootstrap config.Bootstrap) contracts.MailerService {
	log := bootstrap.Logger
	mailerConfig := bootstrap.InternalConfig.Mailer

	if mailerConfig.Transport == constvars.MailerTransportRabbitMQ && bootstrap.RabbitMQ != nil {
		mailerService, err := mailer.NewQueueMailerService(bootstrap.RabbitMQ, mailerConfig.RabbitMQMailerQueue, log)
		if err == nil {
			return mailerService
		}
		log.Warn("Failed to create queue mailer, sending through SMTP", zap.Error(err))
	}
	return mailer.NewSMTPMailerService(mailerDriver.NewSMTPClient(bootstrap.DriverConfig), log)
}
