package constvars

const (
	LoggingRequestIDKey          = "request_id"
	LoggingDataKey               = "data"
	LoggingErrorKey              = "error"
	LoggingDoctorIDKey           = "doctor_id"
	LoggingUserIDKey             = "user_id"
	LoggingRequesterIDKey        = "requester_id"
	LoggingRequesterRoleKey      = "requester_role"
	LoggingAppointmentIDKey      = "appointment_id"
	LoggingCacheKey              = "cache_key"
	LoggingCacheKeysKey          = "cache_keys"
	LoggingCacheHitKey           = "cache_hit"
	LoggingRedisKey              = "redis_key"
	LoggingChannelKey            = "channel"
	LoggingInstanceIDKey         = "instance_id"
	LoggingLockValueKey          = "lock_value"
	LoggingLockExpirationTimeKey = "lock_expiration_time"
	LoggingSlotKey               = "slot"
	LoggingExistingBookingsKey   = "existing_bookings"
	LoggingMaxPatientsKey        = "max_patients"
	LoggingAssignedStartKey      = "assigned_start"
	LoggingEmailKey              = "email"
	LoggingCountKey              = "count"
	LoggingMethodKey             = "method"
	LoggingEndpointKey           = "endpoint"
	LoggingRemoteAddrKey         = "remote_addr"
	LoggingUserAgentKey          = "user_agent"
	LoggingStatusCodeKey         = "status_code"
	LoggingDurationKey           = "duration"
)
