// Package metrics implements the engine's metrics sink with Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements signal.Metrics on Prometheus counters.
type Recorder struct {
	evaluations *prometheus.CounterVec
	signals     *prometheus.CounterVec
	rejects     *prometheus.CounterVec
}

// New registers the engine counters on the given registerer. Pass
// prometheus.DefaultRegisterer outside of tests.
func New(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		evaluations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "structure_evaluations_total",
				Help: "Total number of entry and exit evaluations",
			},
			[]string{"kind"},
		),
		signals: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "structure_signals_total",
				Help: "Total number of actionable entry and exit signals",
			},
			[]string{"kind", "direction"},
		),
		rejects: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "structure_rejects_total",
				Help: "Total number of entry rejections by pipeline stage",
			},
			[]string{"stage"},
		),
	}
}

// Evaluation records one entry or exit evaluation.
func (r *Recorder) Evaluation(kind string) {
	r.evaluations.WithLabelValues(kind).Inc()
}

// Signal records an actionable decision.
func (r *Recorder) Signal(kind, direction string) {
	r.signals.WithLabelValues(kind, direction).Inc()
}

// Reject records an entry stopped at a gating stage.
func (r *Recorder) Reject(stage string) {
	r.rejects.WithLabelValues(stage).Inc()
}
