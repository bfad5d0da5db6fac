package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the audit module.
type Metrics struct {
	Appends        *prometheus.CounterVec
	AppendFailures *prometheus.CounterVec
	MirrorFailures prometheus.Counter
}

// New creates a Metrics instance with all audit metrics registered.
func New() *Metrics {
	return &Metrics{
		Appends: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "kyc_gateway_audit_appends_total",
			Help: "Successful audit log appends by log kind",
		}, []string{"log"}),
		AppendFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "kyc_gateway_audit_append_failures_total",
			Help: "Swallowed audit log append failures by log kind",
		}, []string{"log"}),
		MirrorFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kyc_gateway_audit_mirror_failures_total",
			Help: "Failed publishes to the Kafka audit mirror",
		}),
	}
}

// IncAppends records a successful append to an audit log.
func (m *Metrics) IncAppends(kind string) {
	if m != nil {
		m.Appends.WithLabelValues(kind).Inc()
	}
}

// IncAppendFailures records a swallowed append failure.
func (m *Metrics) IncAppendFailures(kind string) {
	if m != nil {
		m.AppendFailures.WithLabelValues(kind).Inc()
	}
}

// IncMirrorFailures records a failed mirror publish.
func (m *Metrics) IncMirrorFailures() {
	if m != nil {
		m.MirrorFailures.Inc()
	}
}
