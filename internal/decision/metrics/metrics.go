package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the decision module.
type Metrics struct {
	// Decision outcomes by status and risk level
	DecisionOutcome *prometheus.CounterVec
}

// New creates a Metrics instance with all decision metrics registered.
func New() *Metrics {
	return &Metrics{
		DecisionOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "kyc_gateway_decision_outcomes_total",
			Help: "Total decision outcomes by status and risk level",
		}, []string{"status", "risk"}),
	}
}

// IncrementOutcome records a decision outcome.
func (m *Metrics) IncrementOutcome(status, risk string) {
	if m != nil {
		m.DecisionOutcome.WithLabelValues(status, risk).Inc()
	}
}
