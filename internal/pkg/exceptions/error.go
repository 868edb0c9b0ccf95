package exceptions

import (
	"doctor-appointment-service/internal/pkg/constvars"
	"errors"
	"fmt"
	"runtime"
)

// Error kinds. Callers match on them with errors.Is.
var (
	KindNotFound        = errors.New("not found")
	KindForbidden       = errors.New("forbidden")
	KindRoleForbidden   = errors.New("role forbidden")
	KindInvalidSlot     = errors.New("invalid slot")
	KindSlotFull        = errors.New("slot full")
	KindUnavailable     = errors.New("unavailable")
	KindValidation      = errors.New("validation")
	KindUnauthenticated = errors.New("unauthenticated")
	KindInternal        = errors.New("internal")
)

type CustomError struct {
	StatusCode    int        `json:"status_code"`
	Success       bool       `json:"success"`
	ClientMessage string     `json:"message"`
	DevMessage    string     `json:"dev_message,omitempty"`
	Locations     []Location `json:"locations,omitempty"`
	Kind          error      `json:"-"`
	cause         error
}

type Location struct {
	File         string `json:"file"`
	Line         int    `json:"line"`
	FunctionName string `json:"function_name"`
}

func (e *CustomError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s", e.DevMessage, e.cause.Error())
	}
	return e.DevMessage
}

func (e *CustomError) Unwrap() error {
	return e.cause
}

func (e *CustomError) Is(target error) bool {
	return e.Kind != nil && e.Kind == target
}

// BuildNewCustomError wraps err with the status and messages of a client facing error.
// If err is already a CustomError its locations are kept and the caller location is appended.
func BuildNewCustomError(err error, statusCode int, clientMessage, devMessage string) *CustomError {
	customErr := &CustomError{
		StatusCode:    statusCode,
		ClientMessage: clientMessage,
		DevMessage:    devMessage,
		Kind:          kindFromStatus(statusCode),
		cause:         err,
	}

	var existing *CustomError
	if errors.As(err, &existing) {
		customErr.Locations = append(customErr.Locations, existing.Locations...)
	}
	customErr.Locations = append(customErr.Locations, getLocation(3))
	return customErr
}

func withKind(customErr *CustomError, kind error) *CustomError {
	customErr.Kind = kind
	return customErr
}

func kindFromStatus(statusCode int) error {
	switch statusCode {
	case constvars.StatusNotFound:
		return KindNotFound
	case constvars.StatusForbidden:
		return KindForbidden
	case constvars.StatusBadRequest:
		return KindValidation
	case constvars.StatusUnauthorized:
		return KindUnauthenticated
	case constvars.StatusServiceUnavailable, constvars.StatusGatewayTimeout:
		return KindUnavailable
	default:
		return KindInternal
	}
}

func getLocation(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return Location{
			File:         constvars.ResponseUnknown,
			Line:         0,
			FunctionName: constvars.ResponseUnknown,
		}
	}
	function := runtime.FuncForPC(pc).Name()
	return Location{
		File:         file,
		Line:         line,
		FunctionName: function,
	}
}
