// Package observability exposes registry metrics to Prometheus.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mergington/activities/internal/domain/registry"
)

// Metrics implements registry.Observer on Prometheus collectors.
type Metrics struct {
	operations   *prometheus.CounterVec
	participants *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mergington",
			Subsystem: "registry",
			Name:      "operations_total",
			Help:      "Registry operations by operation and outcome.",
		}, []string{"operation", "outcome"}),
		participants: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "mergington",
			Subsystem: "registry",
			Name:      "participants",
			Help:      "Current roster size per activity.",
		}, []string{"activity"}),
	}
	reg.MustRegister(m.operations, m.participants)
	return m
}

// ObserveOperation counts one registry operation.
func (m *Metrics) ObserveOperation(op registry.Operation, err error) {
	m.operations.WithLabelValues(string(op), registry.Outcome(err)).Inc()
}

// ObserveRoster records the roster size of an activity.
func (m *Metrics) ObserveRoster(activity string, participants int) {
	m.participants.WithLabelValues(activity).Set(float64(participants))
}
