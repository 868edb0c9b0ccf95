package contracts

import "time"

type CacheMetrics interface {
	Hit(namespace string)
	Miss(namespace string)
	Error(operation string)
	Invalidated(origin string)
}

type BookingMetrics interface {
	Booked()
	Rejected(reason string)
}

type HTTPMetrics interface {
	RecordHTTPRequest(method string, statusCode int, duration time.Duration)
}
