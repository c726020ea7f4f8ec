package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/cory-johannsen/parksim/internal/sim"
)

// ActionMetrics records game action outcomes and simulation progress.
// It satisfies action.Metrics.
type ActionMetrics struct {
	Executions *prometheus.CounterVec
	Duration   *prometheus.HistogramVec
	Tick       prometheus.Gauge
	Batch      prometheus.Histogram
}

// RegisterMetrics creates the action metrics and registers them with reg.
//
// Precondition: reg must be non-nil.
// Postcondition: Panics if any collector is already registered.
func RegisterMetrics(reg prometheus.Registerer) *ActionMetrics {
	m := &ActionMetrics{
		Executions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "parksim_action_executions_total",
				Help: "Total number of top-level game action executions by type and status",
			},
			[]string{"action", "status"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "parksim_action_duration_seconds",
				Help:    "Game action query plus execute duration in seconds",
				Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05},
			},
			[]string{"action"},
		),
		Tick: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "parksim_simulation_tick",
			Help: "Current simulation tick",
		}),
		Batch: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "parksim_tick_actions",
			Help:    "Number of queued actions applied per tick",
			Buckets: []float64{0, 1, 2, 4, 8, 16, 32},
		}),
	}
	reg.MustRegister(m.Executions, m.Duration, m.Tick, m.Batch)
	return m
}

// ObserveAction records one top-level action outcome.
func (m *ActionMetrics) ObserveAction(action, status string, elapsed time.Duration) {
	m.Executions.WithLabelValues(action, status).Inc()
	m.Duration.WithLabelValues(action).Observe(elapsed.Seconds())
}

// ObserveTick is a sim.TickFunc recording loop progress.
func (m *ActionMetrics) ObserveTick(tick uint32, ran []*sim.Submission) {
	m.Tick.Set(float64(tick))
	m.Batch.Observe(float64(len(ran)))
}
