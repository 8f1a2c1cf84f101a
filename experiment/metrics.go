package experiment

import (
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exports experiment outcomes to Prometheus. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	trials         *prometheus.CounterVec
	cellsProcessed *prometheus.CounterVec
	bumps          *prometheus.HistogramVec
	plans          *prometheus.HistogramVec
	trajectory     *prometheus.HistogramVec
	runtime        *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		trials: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fognav_trials_total",
			Help: "Total agent runs, by sensor and whether the goal was reached.",
		}, []string{"sensor", "solvable"}),
		cellsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fognav_cells_processed_total",
			Help: "Total nodes expanded across all planning calls.",
		}, []string{"sensor"}),
		bumps: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fognav_bumps",
			Help:    "Collisions with unknown obstacles per run.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}, []string{"sensor"}),
		plans: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fognav_plans",
			Help:    "Planning calls per run.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}, []string{"sensor"}),
		trajectory: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fognav_trajectory_length",
			Help:    "Steps taken by runs that reached the goal.",
			Buckets: prometheus.ExponentialBuckets(4, 2, 10),
		}, []string{"sensor"}),
		runtime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fognav_run_duration_seconds",
			Help:    "Wall-clock time of one agent run.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"sensor"}),
	}

	for _, c := range []prometheus.Collector{m.trials, m.cellsProcessed, m.bumps, m.plans, m.trajectory, m.runtime} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register experiment metrics: %w", err)
		}
	}
	return m, nil
}

// Observe records one finished run.
func (m *Metrics) Observe(r Record) {
	if m == nil {
		return
	}
	m.trials.WithLabelValues(r.Sensor, strconv.FormatBool(r.Solvable)).Inc()
	m.cellsProcessed.WithLabelValues(r.Sensor).Add(float64(r.CellsProcessed))
	m.bumps.WithLabelValues(r.Sensor).Observe(float64(r.Bumps))
	m.plans.WithLabelValues(r.Sensor).Observe(float64(r.Plans))
	m.runtime.WithLabelValues(r.Sensor).Observe(r.Runtime.Seconds())
	if r.Solvable {
		m.trajectory.WithLabelValues(r.Sensor).Observe(r.TrajectoryLength)
	}
}
