package config

import "time"

type InternalConfig struct {
	App     App
	JWT     AppJWT
	Cache   AppCache
	Booking AppBooking
	Mailer  AppMailer
	Minio   AppMinio
}

type App struct {
	Env                        string
	Port                       string
	Version                    string
	Address                    string
	Timezone                   string
	EndpointPrefix             string
	AllowedOrigins             []string
	MaxRequests                int
	MaxTimeRequestsPerSeconds  int
	BookingRequestsPerSecond   int
	ShutdownTimeout            int
	RequestTimeoutInSeconds    int
	RequestBodyLimitInMegabyte int
	PictureMaxUploadSizeInMB   int
}

type AppJWT struct {
	Secret string
}

type AppCache struct {
	TTLInSeconds                 int
	OperationTimeoutInMillis     int
	InvalidationChannel          string
	InvalidationTransport        string
	MemorySize                   int
	WarmerCronSpec               string
	WarmerLeaderLockTTLInSeconds int
}

func (c AppCache) TTL() time.Duration {
	return time.Duration(c.TTLInSeconds) * time.Second
}

func (c AppCache) OperationTimeout() time.Duration {
	return time.Duration(c.OperationTimeoutInMillis) * time.Millisecond
}

func (c AppCache) WarmerLeaderLockTTL() time.Duration {
	return time.Duration(c.WarmerLeaderLockTTLInSeconds) * time.Second
}

type AppBooking struct {
	SlotLockTTLInSeconds         int
	SlotLockWaitInMillis         int
	StoreOperationTimeoutSeconds int
	NotificationTimeoutSeconds   int
}

func (b AppBooking) SlotLockTTL() time.Duration {
	return time.Duration(b.SlotLockTTLInSeconds) * time.Second
}

func (b AppBooking) SlotLockWait() time.Duration {
	return time.Duration(b.SlotLockWaitInMillis) * time.Millisecond
}

func (b AppBooking) StoreOperationTimeout() time.Duration {
	return time.Duration(b.StoreOperationTimeoutSeconds) * time.Second
}

func (b AppBooking) NotificationTimeout() time.Duration {
	return time.Duration(b.NotificationTimeoutSeconds) * time.Second
}

type AppMailer struct {
	EmailSender         string
	Transport           string
	RabbitMQMailerQueue string
}

type AppMinio struct {
	BucketName        string
	PublicBaseURL     string
	DoctorPicturePath string
}
