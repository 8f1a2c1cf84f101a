package agent

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/pdrpinto/fognav"
)

var (
	// ErrInvalidBacktrack is returned when the backtrack distance is below 1.
	ErrInvalidBacktrack = errors.New("backtrack distance must be at least 1")
	// ErrInvalidEndpoints is returned when start or goal are outside the world or start is an obstacle.
	ErrInvalidEndpoints = errors.New("invalid start or goal")
)

// State is the position of an agent in its plan/traverse cycle.
type State int

// Agent states.
const (
	Planning State = iota
	Traversing
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Planning:
		return "planning"
	case Traversing:
		return "traversing"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Episode is one plan followed by the attempt to walk it.
type Episode struct {
	From   fognav.Coordinate
	Plan   fognav.Result
	Walked []fognav.Coordinate
	// Bump is the cell that stopped the walk; only set when Bumped is true.
	Bump   fognav.Coordinate
	Bumped bool
	State  State
}

// Agent navigates a fogged world toward a fixed goal. It is not safe for
// concurrent use.
type Agent struct {
	position fognav.Coordinate
	goal     fognav.Coordinate
	restart  fognav.Coordinate

	memory *Memory
	world  *fognav.Fog
	search *fognav.PathSearch

	sensor   Sensor
	recorder Recorder
	logger   *slog.Logger

	state      State
	trajectory Trajectory
}

// New places an agent at start. The start cell is probed and recorded as
// known free.
func New(start, goal fognav.Coordinate, world *fognav.Fog, search *fognav.PathSearch, options ...Option) (*Agent, error) {
	agentOptions := Options{
		Sensor:   Blindfolded{},
		Recorder: NopRecorder{},
		Logger:   slog.New(slog.DiscardHandler),
	}
	for _, option := range options {
		option(&agentOptions)
	}
	if agentOptions.Sensor == nil {
		agentOptions.Sensor = Blindfolded{}
	}
	if agentOptions.Recorder == nil {
		agentOptions.Recorder = NopRecorder{}
	}
	if agentOptions.Logger == nil {
		agentOptions.Logger = slog.New(slog.DiscardHandler)
	}

	if !world.Grid().Contains(goal) {
		return nil, fmt.Errorf("%w: goal %s outside the world", ErrInvalidEndpoints, goal)
	}
	blocked, ok := world.Probe(start)
	if !ok {
		return nil, fmt.Errorf("%w: start %s outside the world", ErrInvalidEndpoints, start)
	}
	if blocked {
		return nil, fmt.Errorf("%w: start %s is an obstacle", ErrInvalidEndpoints, start)
	}

	a := &Agent{
		position:   start,
		goal:       goal,
		restart:    start,
		memory:     NewMemory(),
		world:      world,
		search:     search,
		sensor:     agentOptions.Sensor,
		recorder:   agentOptions.Recorder,
		logger:     agentOptions.Logger,
		trajectory: Trajectory{Path: []fognav.Coordinate{}},
	}
	if _, err := a.memory.MarkFree(start); err != nil {
		return nil, err
	}
	world.Visit(start)
	if start == goal {
		a.state = Done
	}
	return a, nil
}

// Location is where the agent plans from: the goal once it is reached,
// otherwise the restart point, even if a bump left the agent elsewhere.
func (a *Agent) Location() fognav.Coordinate {
	if a.position == a.goal {
		return a.goal
	}
	return a.restart
}

// Position is the cell the agent last stepped onto.
func (a *Agent) Position() fognav.Coordinate { return a.position }

// RestartPoint is the last checkpoint recorded while traversing.
func (a *Agent) RestartPoint() fognav.Coordinate { return a.restart }

// Goal returns the target cell.
func (a *Agent) Goal() fognav.Coordinate { return a.goal }

// State returns the current loop state.
func (a *Agent) State() State { return a.state }

// Memory exposes the agent's belief. Callers must not mutate it during a run.
func (a *Agent) Memory() *Memory { return a.memory }

// Trajectory returns a copy of the statistics accumulated so far.
func (a *Agent) Trajectory() Trajectory { return a.trajectory.clone() }

// Run plans and traverses until the goal is reached or no path exists under
// the agent's belief. The restart point moves forward every backtrackDistance
// successful steps within one traversal.
func (a *Agent) Run(backtrackDistance int) (Trajectory, error) {
	if backtrackDistance < 1 {
		return a.Trajectory(), fmt.Errorf("%w: got %d", ErrInvalidBacktrack, backtrackDistance)
	}
	for a.state != Done && a.state != Failed {
		if _, err := a.Step(backtrackDistance); err != nil {
			return a.Trajectory(), err
		}
	}
	return a.Trajectory(), nil
}

// Step performs one plan and the traversal of its path. It is a no-op once
// the agent is done or has failed.
func (a *Agent) Step(backtrackDistance int) (Episode, error) {
	if backtrackDistance < 1 {
		return Episode{}, fmt.Errorf("%w: got %d", ErrInvalidBacktrack, backtrackDistance)
	}
	if a.state == Done || a.state == Failed {
		return Episode{From: a.Location(), State: a.state}, nil
	}

	a.state = Planning
	from := a.Location()
	plan, err := a.search.Search(from, a.goal, a.world.Grid(), a.memory.blocks)
	if err != nil {
		return Episode{}, fmt.Errorf("plan from %s: %w", from, err)
	}
	a.recorder.OnPlan(plan)
	episode := Episode{From: from, Plan: plan}

	if !plan.Found() {
		a.state = Failed
		a.trajectory.Length = math.NaN()
		a.logger.Info("Goal unreachable under current belief",
			"from", from.String(),
			"goal", a.goal.String(),
			"known_blocked", len(a.memory.blocked),
			"expanded", plan.Expanded)
		episode.State = a.state
		return episode, nil
	}
	a.logger.Debug("Planned path",
		"from", from.String(),
		"cost", plan.Cost,
		"expanded", plan.Expanded)

	a.state = Traversing
	walked, bump, bumped, err := a.traverse(plan.Path, backtrackDistance)
	if err != nil {
		return Episode{}, err
	}
	a.trajectory.CellsProcessed += plan.Expanded
	a.trajectory.Length += float64(len(walked))
	a.trajectory.Path = append(a.trajectory.Path, walked...)

	if a.position == a.goal {
		a.state = Done
		a.logger.Info("Goal reached",
			"goal", a.goal.String(),
			"steps", a.trajectory.Length,
			"expanded", a.trajectory.CellsProcessed)
	} else {
		a.state = Planning
	}

	episode.Walked = walked
	episode.Bump = bump
	episode.Bumped = bumped
	episode.State = a.state
	return episode, nil
}

// traverse follows path until it ends or the next cell turns out blocked.
// It returns the prefix of path actually walked.
func (a *Agent) traverse(path []fognav.Coordinate, backtrackDistance int) ([]fognav.Coordinate, fognav.Coordinate, bool, error) {
	walked := make([]fognav.Coordinate, 0, len(path))
	for _, next := range path {
		if err := a.memory.Apply(a.sensor.Observe(a.position, a.world)); err != nil {
			return walked, fognav.Coordinate{}, false, err
		}

		blocked, ok := a.world.Probe(next)
		if !ok {
			return walked, fognav.Coordinate{}, false, fmt.Errorf("path cell %s outside the world", next)
		}
		if blocked {
			if _, err := a.memory.MarkBlocked(next); err != nil {
				return walked, fognav.Coordinate{}, false, err
			}
			a.recorder.OnBump(next)
			a.logger.Debug("Bumped into obstacle",
				"cell", next.String(),
				"position", a.position.String(),
				"restart", a.restart.String())
			return walked, next, true, nil
		}

		if _, err := a.memory.MarkFree(next); err != nil {
			return walked, fognav.Coordinate{}, false, err
		}
		a.position = next
		a.world.Visit(next)
		walked = append(walked, next)
		a.recorder.OnStep(next)
		if len(walked)%backtrackDistance == 0 {
			a.restart = next
		}
	}
	return walked, fognav.Coordinate{}, false, nil
}
