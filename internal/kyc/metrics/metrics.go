package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the KYC pipeline.
type Metrics struct {
	// Collaborator latencies by stage
	StageLatency *prometheus.HistogramVec

	// Overall pipeline latency
	AnalyzeLatency prometheus.Histogram

	// Requests that failed before a decision could be rendered
	AnalyzeFailures *prometheus.CounterVec
}

// New creates a Metrics instance with all pipeline metrics registered.
func New() *Metrics {
	return &Metrics{
		StageLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kyc_gateway_pipeline_stage_duration_seconds",
			Help:    "Duration of pipeline stages by name",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"stage"}), // stage: "recognition", "face_match"

		AnalyzeLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "kyc_gateway_pipeline_analyze_duration_seconds",
			Help:    "Duration of full pipeline runs including collaborators",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),

		AnalyzeFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "kyc_gateway_pipeline_failures_total",
			Help: "Pipeline runs that ended without a decision, by cause",
		}, []string{"cause"}), // cause: "empty_input", "recognition"
	}
}

// ObserveStageLatency records the duration of one pipeline stage.
func (m *Metrics) ObserveStageLatency(stage string, d time.Duration) {
	if m != nil {
		m.StageLatency.WithLabelValues(stage).Observe(d.Seconds())
	}
}

// ObserveAnalyzeLatency records the total pipeline duration.
func (m *Metrics) ObserveAnalyzeLatency(d time.Duration) {
	if m != nil {
		m.AnalyzeLatency.Observe(d.Seconds())
	}
}

// IncFailures records a run that failed before deciding.
func (m *Metrics) IncFailures(cause string) {
	if m != nil {
		m.AnalyzeFailures.WithLabelValues(cause).Inc()
	}
}
