package constvars

// Validation messages for users, map it with respective tag field
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"email":    "must be a valid email",
	"gte":      "must be greater than or equal to %s",
	"gt":       "must be greater than %s",
	"min":      "must be at least %s",
	"max":      "maximum at %s",
	"oneof":    "must be one of [%s]",
	"clock":    "must be a valid time in HH:MM format",
	"weekday":  "must be a day between Monday and Sunday",
}

// Tags whose message embeds the tag parameter
var TagsWithParams = map[string]bool{
	"gte":   true,
	"gt":    true,
	"min":   true,
	"max":   true,
	"oneof": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "not authorized for this action"
	ErrClientNotLoggedIn                   = "not authorized, token failed"
	ErrClientTokenMissing                  = "not authorized, no token"
	ErrClientDoctorNotFound                = "doctor not found"
	ErrClientDoctorProfileNotFound         = "doctor profile not found"
	ErrClientNotAuthorizedUpdateDoctor     = "not authorized to update this doctor"
	ErrClientNotAuthorizedDeleteDoctor     = "not authorized to delete this doctor"
	ErrClientDoctorsCannotBook             = "doctors cannot book appointments"
	ErrClientInvalidScheduleDay            = "invalid schedule day"
	ErrClientInvalidScheduleSlot           = "invalid schedule slot"
	ErrClientSlotFullyBooked               = "this time slot is fully booked. please select another time."
	ErrClientServiceTemporarilyUnavailable = "service temporarily unavailable, please try again"
	ErrClientInvalidImageFormat            = "invalid image format"
	ErrClientTooManyRequests               = "too many requests, you are temporarily blocked."
)

// Error messages for developers
const (
	ErrDevInvalidInput              = "invalid input"
	ErrDevCannotParseJSON           = "cannot parse JSON"
	ErrDevCannotParseMultipartForm  = "cannot parse multipart form"
	ErrDevCannotParseSchedule       = "cannot parse schedule payload"
	ErrDevURLParamIDValidation      = "url param %s is not valid"
	ErrDevValidationFailed          = "validation failed"
	ErrDevDuplicatePlaceSlot        = "duplicate place slot (%s, %s, %s) on %s"
	ErrDevDuplicateScheduleDay      = "day %s appears more than once in the schedule"
	ErrDevInvalidTimeInterval       = "time interval %s-%s must start before it ends"
	ErrDevCannotMarshalJSON         = "cannot marshal JSON"
	ErrDevCannotUnmarshalJSON       = "cannot unmarshal JSON"
	ErrDevServerDeadlineExceeded    = "deadline exceeded"
	ErrDevServerProcess             = "server failed to process the request"
	ErrDevDoctorNotFound            = "doctor %s not found"
	ErrDevDoctorOwnerNotFound       = "no doctor profile owned by %s"
	ErrDevDoctorNotOwned            = "requester %s does not own doctor %s"
	ErrDevRoleCannotBook            = "role %s cannot book appointments"
	ErrDevInvalidScheduleDay        = "doctor %s has no schedule on %s"
	ErrDevInvalidScheduleSlot       = "doctor %s has no slot %s %s-%s on %s"
	ErrDevSlotFullyBooked           = "slot %s is full: %d of %d booked"
	ErrDevSlotLockNotAcquired       = "could not acquire slot lock %s"
	ErrDevStoreUnavailable          = "authoritative store unavailable"
	ErrDevInvalidClock              = "invalid clock value %q"
	ErrDevInvalidMaxPatients        = "maxPatients must be positive, got %d"
	ErrDevRoleNotAllowed            = "role %s is not allowed, expected %s"
	ErrDevPrincipalMissing          = "principal missing from request context"
	ErrDevTooManyRequests           = "request limit exceeded"
	ErrDevImageValidationFailed     = "image validation failed"
	ErrDevInvalidInvalidationPacket = "invalid cache invalidation message"

	// Authentication messages
	ErrDevAuthSigningMethod         = "unexpected signing method"
	ErrDevAuthTokenInvalid          = "invalid token"
	ErrDevAuthTokenMissing          = "token missing"
	ErrDevAuthTokenInvalidOrExpired = "token is invalid or expired"
	ErrDevAuthClaimsMissing         = "token is missing id or role claims"

	// Database messages
	ErrDevDBFailedToInsertDocument   = "failed to insert document into database"
	ErrDevDBFailedToUpdateDocument   = "failed to update document into database"
	ErrDevDBFailedToFindDocument     = "failed when do find document on database"
	ErrDevDBFailedToCountDocuments   = "failed to count documents on database"
	ErrDevDBFailedToDeleteDocument   = "failed to delete document from database"
	ErrDevDBFailedToIterateDocuments = "failed to iterate documents from database"
	ErrDevDBStringNotObjectID        = "given ID %s is not valid object ID"

	// Redis messages
	ErrDevRedisGetData        = "failed to get data from redis"
	ErrDevRedisSetData        = "failed to set data into redis"
	ErrDevRedisDeleteData     = "failed to delete data from redis"
	ErrDevRedisScanKeys       = "failed to scan keys from redis"
	ErrDevRedisUnlock         = "failed to release lock in redis"
	ErrDevRedisPublish        = "failed to publish message on redis channel %s"
	ErrDevRedisSubscribe      = "failed to subscribe to redis channel %s"
	ErrDevMemoryCacheCapacity = "memory cache size must be positive"

	// RabbitMQ messages
	ErrDevRabbitMQPublishMessage = "failed to publish message to rabbitMQ %s"
	ErrDevRabbitMQConsume        = "failed to consume from rabbitMQ %s"
	ErrDevRabbitMQDeclare        = "failed to declare rabbitMQ topology %s"

	// Minio messages
	ErrDevMinioFailedToCreateObject = "failed to create object on minio bucket %s"

	// SMTP messages
	ErrDevSMTPSendEmail = "failed to send email through smtp host %s"
)
