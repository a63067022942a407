// Package metrics records library operation outcomes with prometheus
// collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "library"

// Recorder owns the operation collectors. A nil *Recorder is valid and
// records nothing.
type Recorder struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	detached   *prometheus.CounterVec
}

// New registers the library collectors with reg.
func New(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)

	return &Recorder{
		operations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Library operations by entity kind, operation and result.",
		}, []string{"kind", "op", "result"}),

		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Duration of library operations.",
			Buckets:   []float64{0.00001, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		}, []string{"kind", "op"}),

		detached: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cascade_detached_total",
			Help:      "References nulled by cascading deletes, by dependent kind and field.",
		}, []string{"kind", "field"}),
	}
}

// Observe records one finished operation.
func (r *Recorder) Observe(kind, op, result string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.operations.WithLabelValues(kind, op, result).Inc()
	r.duration.WithLabelValues(kind, op).Observe(elapsed.Seconds())
}

// Detached records n references of kind.field cleared by a cascade.
func (r *Recorder) Detached(kind, field string, n int) {
	if r == nil || n == 0 {
		return
	}
	r.detached.WithLabelValues(kind, field).Add(float64(n))
}
