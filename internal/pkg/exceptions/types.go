package exceptions

import (
	"context"
	"doctor-appointment-service/internal/pkg/constvars"
	"errors"
	"fmt"
)

var (
	ErrURLParamIDValidation = func(err error, paramName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevURLParamIDValidation, paramName))
	}
	ErrImageValidation = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientInvalidImageFormat, constvars.ErrDevImageValidationFailed)
	}
	ErrInputValidation = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, FormatFirstValidationError(err), constvars.ErrDevValidationFailed)
	}
	ErrInvalidSchedule = func(err error, devMessage string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, devMessage, constvars.ErrDevValidationFailed)
	}
	ErrCannotParseJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseJSON)
	}
	ErrCannotParseMultipartForm = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseMultipartForm)
	}
	ErrCannotParseSchedule = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseSchedule)
	}
	ErrCannotMarshalJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotMarshalJSON)
	}
	ErrCannotUnmarshalJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotUnmarshalJSON)
	}
	ErrServerDeadlineExceeded = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusGatewayTimeout, constvars.ErrClientServerLongRespond, constvars.ErrDevServerDeadlineExceeded)
	}
	ErrServerProcess = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevServerProcess)
	}
	ErrTooManyRequests = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusTooManyRequests, constvars.ErrClientTooManyRequests, constvars.ErrDevTooManyRequests)
	}

	// Authentication
	ErrTokenMissing = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientTokenMissing, constvars.ErrDevAuthTokenMissing)
	}
	ErrTokenInvalidOrExpired = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientNotLoggedIn, constvars.ErrDevAuthTokenInvalidOrExpired)
	}
	ErrTokenClaimsMissing = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientNotLoggedIn, constvars.ErrDevAuthClaimsMissing)
	}
	ErrPrincipalMissing = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientNotLoggedIn, constvars.ErrDevPrincipalMissing)
	}
	ErrRoleNotAllowed = func(err error, role, expected string) *CustomError {
		return withKind(BuildNewCustomError(err, constvars.StatusForbidden, constvars.ErrClientNotAuthorized, fmt.Sprintf(constvars.ErrDevRoleNotAllowed, role, expected)), KindRoleForbidden)
	}

	// Doctors
	ErrDoctorNotFound = func(err error, doctorID string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrClientDoctorNotFound, fmt.Sprintf(constvars.ErrDevDoctorNotFound, doctorID))
	}
	ErrDoctorOwnerNotFound = func(err error, ownerID string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrClientDoctorProfileNotFound, fmt.Sprintf(constvars.ErrDevDoctorOwnerNotFound, ownerID))
	}
	ErrDoctorUpdateForbidden = func(err error, requesterID, doctorID string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusForbidden, constvars.ErrClientNotAuthorizedUpdateDoctor, fmt.Sprintf(constvars.ErrDevDoctorNotOwned, requesterID, doctorID))
	}
	ErrDoctorDeleteForbidden = func(err error, requesterID, doctorID string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusForbidden, constvars.ErrClientNotAuthorizedDeleteDoctor, fmt.Sprintf(constvars.ErrDevDoctorNotOwned, requesterID, doctorID))
	}

	// Booking
	ErrRoleCannotBook = func(err error, role string) *CustomError {
		return withKind(BuildNewCustomError(err, constvars.StatusForbidden, constvars.ErrClientDoctorsCannotBook, fmt.Sprintf(constvars.ErrDevRoleCannotBook, role)), KindRoleForbidden)
	}
	ErrInvalidScheduleDay = func(err error, doctorID, day string) *CustomError {
		return withKind(BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientInvalidScheduleDay, fmt.Sprintf(constvars.ErrDevInvalidScheduleDay, doctorID, day)), KindInvalidSlot)
	}
	ErrInvalidScheduleSlot = func(err error, doctorID, day, place, start, end string) *CustomError {
		return withKind(BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientInvalidScheduleSlot, fmt.Sprintf(constvars.ErrDevInvalidScheduleSlot, doctorID, place, start, end, day)), KindInvalidSlot)
	}
	ErrSlotFullyBooked = func(err error, slotKey string, booked, maxPatients int) *CustomError {
		return withKind(BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientSlotFullyBooked, fmt.Sprintf(constvars.ErrDevSlotFullyBooked, slotKey, booked, maxPatients)), KindSlotFull)
	}
	ErrSlotLockNotAcquired = func(err error, lockKey string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusServiceUnavailable, constvars.ErrClientServiceTemporarilyUnavailable, fmt.Sprintf(constvars.ErrDevSlotLockNotAcquired, lockKey))
	}
	ErrInvalidClock = func(err error, value string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevInvalidClock, value))
	}
	ErrInvalidMaxPatients = func(err error, maxPatients int) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevInvalidMaxPatients, maxPatients))
	}

	// Database
	ErrMongoDBFindDocument = func(err error) *CustomError {
		return storeError(err, constvars.ErrDevDBFailedToFindDocument)
	}
	ErrMongoDBCountDocuments = func(err error) *CustomError {
		return storeError(err, constvars.ErrDevDBFailedToCountDocuments)
	}
	ErrMongoDBDeleteDocument = func(err error) *CustomError {
		return storeError(err, constvars.ErrDevDBFailedToDeleteDocument)
	}
	ErrMongoDBIterateDocuments = func(err error) *CustomError {
		return storeError(err, constvars.ErrDevDBFailedToIterateDocuments)
	}
	ErrMongoDBUpdateDocument = func(err error) *CustomError {
		return storeError(err, constvars.ErrDevDBFailedToUpdateDocument)
	}
	ErrMongoDBInsertDocument = func(err error) *CustomError {
		return storeError(err, constvars.ErrDevDBFailedToInsertDocument)
	}
	ErrMongoDBNotObjectID = func(err error, id string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevDBStringNotObjectID, id))
	}

	// Redis
	ErrRedisGet = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisGetData)
	}
	ErrRedisSet = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisSetData)
	}
	ErrRedisDelete = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisDeleteData)
	}
	ErrRedisScan = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisScanKeys)
	}
	ErrRedisUnlock = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisUnlock)
	}
	ErrRedisPublish = func(err error, channel string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRedisPublish, channel))
	}
	ErrRedisSubscribe = func(err error, channel string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRedisSubscribe, channel))
	}

	// RabbitMQ
	ErrRabbitMQPublishMessage = func(err error, target string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRabbitMQPublishMessage, target))
	}
	ErrRabbitMQConsume = func(err error, target string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRabbitMQConsume, target))
	}
	ErrRabbitMQDeclare = func(err error, target string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRabbitMQDeclare, target))
	}

	// Minio
	ErrMinioCreateObject = func(err error, bucketName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevMinioFailedToCreateObject, bucketName))
	}

	// SMTP
	ErrSMTPSendEmail = func(err error, hostname string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevSMTPSendEmail, hostname))
	}
)

// storeError marks an authoritative store failure as retryable.
func storeError(err error, devMessage string) *CustomError {
	if errors.Is(err, context.DeadlineExceeded) {
		devMessage = fmt.Sprintf("%s: %s", devMessage, constvars.ErrDevServerDeadlineExceeded)
	}
	return withKind(BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientServiceTemporarilyUnavailable, devMessage), KindUnavailable)
}

// AsUnavailable converts a store failure into a retryable error. Domain errors pass through.
func AsUnavailable(err error) error {
	if err == nil {
		return nil
	}
	var customErr *CustomError
	if errors.As(err, &customErr) && customErr.Kind != KindInternal {
		return err
	}
	return storeError(err, constvars.ErrDevStoreUnavailable)
}
