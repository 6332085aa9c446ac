package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds process-level Prometheus metrics.
type Metrics struct {
	DependencyUp *prometheus.GaugeVec
}

// New creates and registers the process metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		DependencyUp: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "calibra_dependency_up",
			Help: "Whether a backing dependency passed its last readiness check (1) or not (0)",
		}, []string{"dependency"}),
	}
}

// ObserveDependency records the outcome of a readiness check.
func (m *Metrics) ObserveDependency(name string, healthy bool) {
	v := 0.0
	if healthy {
		v = 1
	}
	m.DependencyUp.WithLabelValues(name).Set(v)
}
