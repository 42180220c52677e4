package metrics

import (
	"errors"
	"time"

	"planetary-server/internal/store"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	StatusOK        = "ok"
	StatusNotFound  = "not_found"
	StatusDuplicate = "duplicate"
	StatusError     = "error"
)

var _ store.Observer = (*StoreMetrics)(nil)

// StoreMetrics counts and times collection operations
type StoreMetrics struct {
	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
}

func NewStoreMetrics(registry prometheus.Registerer) (*StoreMetrics, error) {
	m := &StoreMetrics{
		operationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "store_operations_total",
				Help:      "Total number of store operations",
			},
			[]string{"collection", "operation", "status"},
		),
		operationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "store_operation_duration_seconds",
				Help:      "Time taken for store operations",
				Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
			},
			[]string{"collection", "operation"},
		),
	}

	for _, c := range []prometheus.Collector{m.operationsTotal, m.operationDuration} {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *StoreMetrics) ObserveOperation(collection, operation string, duration time.Duration, err error) {
	m.operationsTotal.WithLabelValues(collection, operation, operationStatus(err)).Inc()
	m.operationDuration.WithLabelValues(collection, operation).Observe(duration.Seconds())
}

func operationStatus(err error) string {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, store.ErrNotFound):
		return StatusNotFound
	case errors.Is(err, store.ErrDuplicateKey):
		return StatusDuplicate
	default:
		return StatusError
	}
}
