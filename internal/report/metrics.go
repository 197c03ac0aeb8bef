package report

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the per-run Prometheus collectors.
// Every counter must be explainable by looking at the Results of the run.
type Metrics struct {
	registry *prometheus.Registry

	pushes        *prometheus.CounterVec
	pushDuration  prometheus.Histogram
	batchDuration prometheus.Gauge
	batchFiles    prometheus.Gauge
}

// NewMetrics creates collectors on a fresh registry. Nothing is registered
// globally so several runs in one process do not collide.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		pushes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "corpuspush_pushes_total",
			Help: "Push client invocations by outcome",
		}, []string{"outcome"}),
		pushDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "corpuspush_push_duration_seconds",
			Help:    "Wall-clock duration of a single push client invocation",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
		batchDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "corpuspush_batch_duration_seconds",
			Help: "Sum of push durations in the last batch, pauses excluded",
		}),
		batchFiles: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "corpuspush_batch_files",
			Help: "Number of files pushed in the last batch",
		}),
	}

	m.registry.MustRegister(m.pushes, m.pushDuration, m.batchDuration, m.batchFiles)

	// Pre-create outcome series so zero values are exported.
	for _, outcome := range []string{OutcomeExitZero, OutcomeExitNonZero, OutcomeStartFailed} {
		m.pushes.WithLabelValues(outcome)
	}

	return m
}

// Registry exposes the registry for export
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordResult updates counters from a single immutable Result.
func (m *Metrics) RecordResult(r *Result) {
	m.pushes.WithLabelValues(r.Outcome()).Inc()
	m.pushDuration.Observe(r.Seconds)
}

// RecordSummary sets the batch gauges once the run is over
func (m *Metrics) RecordSummary(s *Summary) {
	m.batchDuration.Set(s.TotalSeconds)
	m.batchFiles.Set(float64(len(s.Results)))
}
