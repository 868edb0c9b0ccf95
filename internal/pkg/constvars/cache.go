package constvars

// Cache key namespaces for doctor records. All keys are built through
// services/shared/cache, never by hand.
const (
	CacheKeyDoctorPrefix        = "doctor"
	CacheKeyDoctorPartialPrefix = "all_doctors"
	CacheKeyDoctorPartialSuffix = "partial"
	CacheKeyDoctorLegacyPrefix  = "doctors:id"
	CacheKeyDoctorList          = "all_doctors"
	CacheKeyDoctors             = "doctors"
)

const (
	CacheDefaultTTLInSeconds         = 3600
	CacheDefaultInvalidationChannel  = "doctor-cache-invalidation"
	CacheInvalidationTransportRedis  = "redis"
	CacheInvalidationTransportRabbit = "rabbitmq"
	CacheInvalidationTransportLocal  = "local"
)

const (
	LockKeyBookingSlotPrefix = "booking:lock"
	LockKeyCacheWarmerLeader = "cache:warmer:leader"
)
