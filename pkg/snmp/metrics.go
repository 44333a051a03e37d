package snmp

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts handled operations and handler failures by mode.
type Metrics struct {
	ops    *prometheus.CounterVec
	errors *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "snmp_server",
			Name:      "operations_total",
			Help:      "Number of handled managed-object operations.",
		}, []string{"mode"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "snmp_server",
			Name:      "operation_errors_total",
			Help:      "Number of managed-object operations that failed.",
		}, []string{"mode"}),
	}
	if reg != nil {
		reg.MustRegister(m.ops, m.errors)
	}
	return m
}

func (m *Metrics) observe(mode Mode, st ErrStatus) {
	if m == nil {
		return
	}
	m.ops.WithLabelValues(mode.String()).Inc()
	if st != ErrNoError {
		m.errors.WithLabelValues(mode.String()).Inc()
	}
}
