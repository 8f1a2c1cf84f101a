package experiment

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/pdrpinto/fognav"
	"github.com/pdrpinto/fognav/agent"
)

// trialTask is one world handed to the worker pool. Every configured sensor
// is run on it.
type trialTask struct {
	index     int
	density   int
	iteration int
	seed      int64
}

// runTrial generates the task's world and runs one agent per sensor on its
// own fog view of it.
func (r *Runner) runTrial(task trialTask, plan Plan) ([]Record, error) {
	rng := rand.New(rand.NewSource(task.seed))
	grid, err := SolvableGrid(r.search, plan.Width, plan.Height, float64(task.density)/100, rng, r.options.MaxAttempts)
	if err != nil {
		return nil, err
	}
	start, goal := Endpoints(plan.Width, plan.Height)

	records := make([]Record, 0, len(plan.Sensors))
	for _, name := range plan.Sensors {
		sensor, err := agent.SensorByName(name)
		if err != nil {
			return nil, err
		}
		stats := &agent.Stats{}
		navigator, err := agent.New(start, goal, fognav.NewFog(grid), r.search,
			agent.WithSensor(sensor),
			agent.WithRecorder(stats),
			agent.WithLogger(r.options.Logger.With("sensor", name, "density", task.density)),
		)
		if err != nil {
			return nil, fmt.Errorf("trial %d/%d: %w", task.density, task.iteration, err)
		}

		began := time.Now()
		trajectory, err := navigator.Run(plan.Backtrack)
		if err != nil {
			return nil, fmt.Errorf("trial %d/%d: %w", task.density, task.iteration, err)
		}
		records = append(records, Record{
			ID:               uuid.New(),
			Sensor:           name,
			Density:          task.density,
			Iteration:        task.iteration,
			Solvable:         trajectory.Reached(),
			Runtime:          time.Since(began),
			TrajectoryLength: trajectory.Length,
			CellsProcessed:   trajectory.CellsProcessed,
			Bumps:            stats.Bumps,
			Plans:            stats.Plans,
			CellsDetermined:  navigator.Memory().Determined(),
		})
	}
	return records, nil
}
