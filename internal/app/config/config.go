package config

import (
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "doctor_appointment"),
			Username: utils.GetEnvString("MONGODB_USERNAME", ""),
			Password: utils.GetEnvString("MONGODB_PASSWORD", ""),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
			DB:       utils.GetEnvInt("REDIS_DB", 0),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		SMTP: SMTP{
			Host:        utils.GetEnvString("SMTP_HOST", "localhost"),
			Username:    utils.GetEnvString("SMTP_USERNAME", ""),
			Password:    utils.GetEnvString("SMTP_PASSWORD", ""),
			EmailSender: utils.GetEnvString("SMTP_EMAIL_SENDER", ""),
			Port:        utils.GetEnvInt("SMTP_PORT", 2525),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", ""),
			Password: utils.GetEnvString("MINIO_PASSWORD", ""),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", "development"),
			Port:                       utils.GetEnvString("APP_PORT", "8080"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1"),
			Address:                    utils.GetEnvString("APP_ADDRESS", "localhost"),
			Timezone:                   utils.GetEnvString("APP_TIMEZONE", "UTC"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			AllowedOrigins:             utils.GetEnvStringSlice("APP_ALLOWED_ORIGINS", []string{"*"}),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUEST", 100),
			MaxTimeRequestsPerSeconds:  utils.GetEnvInt("APP_MAX_TIME_REQUESTS_PER_SECONDS", 60),
			BookingRequestsPerSecond:   utils.GetEnvInt("APP_BOOKING_REQUESTS_PER_SECOND", 20),
			ShutdownTimeout:            utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			RequestTimeoutInSeconds:    utils.GetEnvInt("APP_REQUEST_TIMEOUT_IN_SECONDS", 10),
			RequestBodyLimitInMegabyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 6),
			PictureMaxUploadSizeInMB:   utils.GetEnvInt("APP_PICTURE_MAX_UPLOAD_SIZE_IN_MB", 2),
		},
		JWT: AppJWT{
			Secret: utils.GetEnvString("JWT_SECRET", "anyjwt"),
		},
		Cache: AppCache{
			TTLInSeconds:                 utils.GetEnvInt("CACHE_TTL_IN_SECONDS", constvars.CacheDefaultTTLInSeconds),
			OperationTimeoutInMillis:     utils.GetEnvInt("CACHE_OPERATION_TIMEOUT_IN_MILLISECONDS", 500),
			InvalidationChannel:          utils.GetEnvString("CACHE_INVALIDATION_CHANNEL", constvars.CacheDefaultInvalidationChannel),
			InvalidationTransport:        utils.GetEnvString("CACHE_INVALIDATION_TRANSPORT", constvars.CacheInvalidationTransportRedis),
			MemorySize:                   utils.GetEnvInt("CACHE_MEMORY_SIZE", 10000),
			WarmerCronSpec:               utils.GetEnvString("CACHE_WARMER_CRON_SPEC", "@every 30m"),
			WarmerLeaderLockTTLInSeconds: utils.GetEnvInt("CACHE_WARMER_LEADER_LOCK_TTL_IN_SECONDS", 120),
		},
		Booking: AppBooking{
			SlotLockTTLInSeconds:         utils.GetEnvInt("BOOKING_SLOT_LOCK_TTL_IN_SECONDS", 10),
			SlotLockWaitInMillis:         utils.GetEnvInt("BOOKING_SLOT_LOCK_WAIT_IN_MILLISECONDS", 3000),
			StoreOperationTimeoutSeconds: utils.GetEnvInt("STORE_OPERATION_TIMEOUT_IN_SECONDS", 5),
			NotificationTimeoutSeconds:   utils.GetEnvInt("NOTIFICATION_TIMEOUT_IN_SECONDS", 5),
		},
		Mailer: AppMailer{
			EmailSender:         utils.GetEnvString("APP_MAILER_EMAIL_SENDER", "noreply@localhost"),
			Transport:           utils.GetEnvString("APP_MAILER_TRANSPORT", constvars.MailerTransportRabbitMQ),
			RabbitMQMailerQueue: utils.GetEnvString("APP_RABBITMQ_MAILER_QUEUE", "email_queue"),
		},
		Minio: AppMinio{
			BucketName:        utils.GetEnvString("MINIO_BUCKET_NAME", "doctor-pictures"),
			PublicBaseURL:     utils.GetEnvString("MINIO_PUBLIC_BASE_URL", "http://localhost:9000"),
			DoctorPicturePath: utils.GetEnvString("MINIO_DOCTOR_PICTURE_PREFIX", "doctor"),
		},
	}
}
