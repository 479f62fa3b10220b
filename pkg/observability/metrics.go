// Package observability bridges pipeline lifecycle events to Prometheus.
package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/BrendBraeckmans/koheesio/pkg/pipeline"
)

// Metrics records step executions as Prometheus series.
type Metrics struct {
	runs     *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates and registers the pipeline metric collectors.
// Pass prometheus.DefaultRegisterer for the process-global registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "koheesio_step_runs_total",
				Help: "Total number of step executions by outcome",
			},
			[]string{"step", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "koheesio_step_duration_seconds",
				Help: "Duration of step executions",
			},
			[]string{"step"},
		),
	}
	reg.MustRegister(m.runs, m.duration)
	return m
}

// Hooks returns lifecycle hooks that feed these collectors. Attach them
// to a task via pipeline.WithTaskHooks or a run via pipeline.WithHooks.
func (m *Metrics) Hooks() pipeline.LifecycleHooks {
	return pipeline.LifecycleHooks{
		OnStepEnd: func(_ context.Context, e *pipeline.StepEvent) {
			m.runs.WithLabelValues(e.Step, "success").Inc()
			m.duration.WithLabelValues(e.Step).Observe(e.Duration.Seconds())
		},
		OnStepError: func(_ context.Context, e *pipeline.StepEvent) {
			m.runs.WithLabelValues(e.Step, "error").Inc()
		},
	}
}
