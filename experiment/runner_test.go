package experiment

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/fognav"
	"github.com/pdrpinto/fognav/agent"
)

func testPlan() Plan {
	return Plan{
		Width:      8,
		Height:     8,
		Iterations: 3,
		MaxDensity: 20,
		Backtrack:  1,
		Sensors:    []string{agent.SensorBlindfolded, agent.SensorFourNeighbor},
	}
}

// stable strips the fields that differ between otherwise identical runs.
func stable(records []Record) []Record {
	out := make([]Record, len(records))
	for i, r := range records {
		r.ID = uuid.Nil
		r.Runtime = 0
		out[i] = r
	}
	return out
}

func TestRunner_Run(t *testing.T) {
	plan := testPlan()
	runner := NewRunner(fognav.New(fognav.Manhattan), WithWorkers(4), WithSeed(17))

	records, err := runner.Run(context.Background(), plan)
	require.NoError(t, err)
	require.Len(t, records, plan.Trials()*len(plan.Sensors))

	ids := make(map[uuid.UUID]bool)
	for i, r := range records {
		want := plan.Sensors[i%len(plan.Sensors)]
		assert.Equal(t, want, r.Sensor)
		assert.Equal(t, (i/len(plan.Sensors))/plan.Iterations, r.Density)
		assert.True(t, r.Solvable, "record %d", i)
		assert.GreaterOrEqual(t, r.TrajectoryLength, 14.0)
		assert.Equal(t, r.Bumps+1, r.Plans)
		assert.Positive(t, r.CellsDetermined)
		assert.False(t, ids[r.ID], "duplicate id")
		ids[r.ID] = true
	}
}

func TestRunner_DeterministicAcrossWorkerCounts(t *testing.T) {
	plan := testPlan()
	search := fognav.New(fognav.Manhattan)

	serial, err := NewRunner(search, WithWorkers(1), WithSeed(3)).Run(context.Background(), plan)
	require.NoError(t, err)
	parallel, err := NewRunner(search, WithWorkers(8), WithSeed(3)).Run(context.Background(), plan)
	require.NoError(t, err)

	assert.Equal(t, stable(serial), stable(parallel))
}

func TestRunner_InvalidPlan(t *testing.T) {
	runner := NewRunner(fognav.New(nil))
	tests := map[string]func(*Plan){
		"grid":       func(p *Plan) { p.Width = 0 },
		"iterations": func(p *Plan) { p.Iterations = 0 },
		"density":    func(p *Plan) { p.MaxDensity = 101 },
		"backtrack":  func(p *Plan) { p.Backtrack = 0 },
		"no sensors": func(p *Plan) { p.Sensors = nil },
		"bad sensor": func(p *Plan) { p.Sensors = []string{"sonar"} },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			plan := testPlan()
			mutate(&plan)
			_, err := runner.Run(context.Background(), plan)
			assert.ErrorIs(t, err, ErrInvalidPlan)
		})
	}
}

func TestRunner_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner(fognav.New(nil), WithWorkers(2)).Run(ctx, testPlan())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunner_SkipsUnsolvableTrials(t *testing.T) {
	plan := testPlan()
	plan.MaxDensity = 100
	plan.Iterations = 1

	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))
	records, err := NewRunner(fognav.New(nil), WithMaxAttempts(2), WithLogger(logger)).Run(context.Background(), plan)
	require.NoError(t, err)

	require.NotEmpty(t, records)
	assert.Less(t, len(records), plan.Trials()*len(plan.Sensors))
	assert.Equal(t, 0, records[0].Density)
	for _, r := range records {
		// a fully blocked interior never connects the corners
		assert.Less(t, r.Density, 100)
		assert.True(t, r.Solvable)
	}
	assert.Contains(t, logs.String(), `"msg":"Skipping unsolvable trial"`)
	assert.Contains(t, logs.String(), `"density":100`)
}

func TestNewRunner_NilLogger(t *testing.T) {
	plan := testPlan()
	plan.MaxDensity = 0
	plan.Iterations = 1

	records, err := NewRunner(fognav.New(nil), WithLogger(nil)).Run(context.Background(), plan)
	require.NoError(t, err)
	assert.Len(t, records, len(plan.Sensors))
}

func TestRunner_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := NewMetrics(reg)
	require.NoError(t, err)

	plan := testPlan()
	plan.MaxDensity = 2
	records, err := NewRunner(fognav.New(nil), WithMetrics(metrics)).Run(context.Background(), plan)
	require.NoError(t, err)

	perSensor := float64(len(records) / len(plan.Sensors))
	assert.Equal(t, perSensor, testutil.ToFloat64(metrics.trials.WithLabelValues(agent.SensorBlindfolded, "true")))
	assert.Equal(t, perSensor, testutil.ToFloat64(metrics.trials.WithLabelValues(agent.SensorFourNeighbor, "true")))

	var cells int
	for _, r := range records {
		if r.Sensor == agent.SensorFourNeighbor {
			cells += r.CellsProcessed
		}
	}
	assert.Equal(t, float64(cells), testutil.ToFloat64(metrics.cellsProcessed.WithLabelValues(agent.SensorFourNeighbor)))

	_, err = NewMetrics(reg)
	assert.Error(t, err, "registering twice must fail")
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.Observe(Record{Sensor: "x"}) })
}
