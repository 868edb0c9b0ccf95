package metrics

import (
	"doctor-appointment-service/internal/app/contracts"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "doctor_appointment"

type Metrics struct {
	cacheLookupsTotal   *prometheus.CounterVec
	cacheErrorsTotal    *prometheus.CounterVec
	invalidationsTotal  *prometheus.CounterVec
	bookingsTotal       *prometheus.CounterVec
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	gatherer            prometheus.Gatherer
}

var (
	_ contracts.CacheMetrics   = (*Metrics)(nil)
	_ contracts.BookingMetrics = (*Metrics)(nil)
)

// NewMetrics registers every collector on registry. Pass prometheus.NewRegistry()
// in tests to keep registrations isolated.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		cacheLookupsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_lookups_total",
				Help:      "Total number of doctor cache lookups by result",
			},
			[]string{"namespace", "result"},
		),
		cacheErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_errors_total",
				Help:      "Total number of cache backend failures recovered as miss or no-op",
			},
			[]string{"operation"},
		),
		invalidationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_invalidations_total",
				Help:      "Total number of cache keys invalidated",
			},
			[]string{"origin"},
		),
		bookingsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "bookings_total",
				Help:      "Total number of booking attempts by outcome",
			},
			[]string{"outcome"},
		),
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "status_code"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		gatherer: registry,
	}

	registry.MustRegister(
		m.cacheLookupsTotal,
		m.cacheErrorsTotal,
		m.invalidationsTotal,
		m.bookingsTotal,
		m.httpRequestsTotal,
		m.httpRequestDuration,
	)
	return m
}

func (m *Metrics) Hit(namespace string) {
	m.cacheLookupsTotal.WithLabelValues(namespace, "hit").Inc()
}

func (m *Metrics) Miss(namespace string) {
	m.cacheLookupsTotal.WithLabelValues(namespace, "miss").Inc()
}

func (m *Metrics) Error(operation string) {
	m.cacheErrorsTotal.WithLabelValues(operation).Inc()
}

func (m *Metrics) Invalidated(origin string) {
	m.invalidationsTotal.WithLabelValues(origin).Inc()
}

func (m *Metrics) Booked() {
	m.bookingsTotal.WithLabelValues("booked").Inc()
}

func (m *Metrics) Rejected(reason string) {
	m.bookingsTotal.WithLabelValues(reason).Inc()
}

func (m *Metrics) RecordHTTPRequest(method string, statusCode int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, strconv.Itoa(statusCode)).Inc()
	m.httpRequestDuration.WithLabelValues(method).Observe(duration.Seconds())
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Noop satisfies the metric contracts without recording anything.
type Noop struct{}

func (Noop) Hit(string)         {}
func (Noop) Miss(string)        {}
func (Noop) Error(string)       {}
func (Noop) Invalidated(string) {}
func (Noop) Booked()            {}
func (Noop) Rejected(string)    {}

func (Noop) RecordHTTPRequest(string, int, time.Duration) {}
