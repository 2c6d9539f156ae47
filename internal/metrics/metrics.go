// Package metrics exposes engine and HTTP statistics to Prometheus.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/thenoetrevino/ordo/internal/position"
)

// Operation outcome labels.
const (
	StatusOK          = "ok"
	StatusNotFound    = "not_found"
	StatusInvalid     = "invalid"
	StatusContention  = "contention"
	StatusUnavailable = "unavailable"
	StatusError       = "error"
)

// Metrics tracks position engine and HTTP statistics
type Metrics struct {
	OperationTotal   *prometheus.CounterVec
	OperationLatency *prometheus.HistogramVec
	HTTPRequests     *prometheus.CounterVec
	StartTime        time.Time
}

// New registers the ordo metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{StartTime: time.Now()}
	m.OperationTotal = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "ordo_position_operations_total",
			Help: "Total number of position engine operations",
		},
		[]string{"operation", "status"},
	)
	m.OperationLatency = promauto.With(reg).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ordo_position_operation_duration_seconds",
			Help:    "Latency of position engine operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
	m.HTTPRequests = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "ordo_http_requests_total",
			Help: "Total number of HTTP requests by route and status code",
		},
		[]string{"method", "route", "code"},
	)
	promauto.With(reg).NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "ordo_uptime_seconds",
			Help: "Seconds since the process started",
		},
		func() float64 { return time.Since(m.StartTime).Seconds() },
	)
	return m
}

// ObserveOperation implements position.Observer.
func (m *Metrics) ObserveOperation(op string, elapsed time.Duration, err error) {
	m.OperationTotal.WithLabelValues(op, Status(err)).Inc()
	m.OperationLatency.WithLabelValues(op).Observe(elapsed.Seconds())
}

// Status maps an engine error onto its outcome label.
func Status(err error) string {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, position.ErrMemberNotFound):
		return StatusNotFound
	case errors.Is(err, position.ErrInvalidPosition), errors.Is(err, position.ErrInvalidPartition):
		return StatusInvalid
	case errors.Is(err, position.ErrContention):
		return StatusContention
	case errors.Is(err, position.ErrStorageUnavailable):
		return StatusUnavailable
	default:
		return StatusError
	}
}
