package fognav

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidQuery is returned when start equals goal or either lies outside the grid.
var ErrInvalidQuery = errors.New("invalid search query")

// BlockedFunc reports whether the caller believes a cell is an obstacle.
// It is evaluated freshly for every neighbor of every expansion.
type BlockedFunc func(cell Cell) bool

// GroundTruth is a BlockedFunc that trusts the cell's own obstacle flag.
func GroundTruth(cell Cell) bool { return cell.Blocked() }

// Result contains the outcome of a search
type Result struct {
	// Path runs from start (exclusive) to goal (inclusive); nil when no path exists.
	Path []Coordinate
	// Cost is the path length, NaN when no path exists.
	Cost float64
	// Expanded counts every node popped from the frontier, including on failure.
	Expanded int
}

// Found reports whether the search reached the goal.
func (r Result) Found() bool { return r.Path != nil }

// PathSearch is an A* planner over 4-connected grids with unit step costs.
// It holds no per-search state and is safe for concurrent use.
type PathSearch struct {
	heuristic Heuristic
}

// New creates a PathSearch using heuristic, or Manhattan when heuristic is nil.
// The heuristic must be admissible for the returned paths to be shortest.
func New(heuristic Heuristic) *PathSearch {
	if heuristic == nil {
		heuristic = Manhattan
	}
	return &PathSearch{heuristic: heuristic}
}

// Search runs A* from start to goal over grid, skipping every cell for which
// isBlocked returns true. A nil isBlocked treats every cell as free.
// Not finding a path is reported through Result, not as an error.
func (s *PathSearch) Search(start, goal Coordinate, grid *Grid, isBlocked BlockedFunc) (Result, error) {
	stepper, err := s.Stepper(start, goal, grid, isBlocked)
	if err != nil {
		return Result{}, err
	}
	for !stepper.done {
		stepper.advance()
	}
	return stepper.Result(), nil
}

func validateQuery(start, goal Coordinate, grid *Grid) error {
	if grid == nil {
		return fmt.Errorf("%w: nil grid", ErrInvalidQuery)
	}
	if start == goal {
		return fmt.Errorf("%w: start and goal coincide at %s", ErrInvalidQuery, start)
	}
	if !grid.Contains(start) {
		return fmt.Errorf("%w: start %s outside %dx%d grid", ErrInvalidQuery, start, grid.width, grid.height)
	}
	if !grid.Contains(goal) {
		return fmt.Errorf("%w: goal %s outside %dx%d grid", ErrInvalidQuery, goal, grid.width, grid.height)
	}
	return nil
}

func noPath(expanded int) Result {
	return Result{Cost: math.NaN(), Expanded: expanded}
}
