package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the rate limiter.
type Metrics struct {
	// Limit checks by outcome
	Checks *prometheus.CounterVec

	// Store failures where the limiter failed open
	StoreFailures prometheus.Counter
}

// New creates a Metrics instance with all limiter metrics registered.
func New() *Metrics {
	return &Metrics{
		Checks: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "kyc_gateway_ratelimit_checks_total",
			Help: "Rate limit checks by outcome",
		}, []string{"outcome"}), // outcome: "allowed", "limited"

		StoreFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kyc_gateway_ratelimit_store_failures_total",
			Help: "Counter store errors that caused the limiter to fail open",
		}),
	}
}

// IncCheck records one limit check outcome.
func (m *Metrics) IncCheck(outcome string) {
	if m != nil {
		m.Checks.WithLabelValues(outcome).Inc()
	}
}

// IncStoreFailure records a store error.
func (m *Metrics) IncStoreFailure() {
	if m != nil {
		m.StoreFailures.Inc()
	}
}
