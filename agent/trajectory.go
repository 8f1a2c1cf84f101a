package agent

import (
	"math"
	"slices"

	"github.com/pdrpinto/fognav"
)

// Trajectory aggregates a whole run across every planning call.
type Trajectory struct {
	// Length is the number of steps actually taken, NaN if the goal proved unreachable.
	Length float64
	// CellsProcessed is the total number of nodes expanded by every plan that found a path.
	CellsProcessed int
	// Path is every cell stepped onto, in order.
	Path []fognav.Coordinate
}

// Reached reports whether the run ended at the goal.
func (t Trajectory) Reached() bool { return !math.IsNaN(t.Length) }

func (t Trajectory) clone() Trajectory {
	t.Path = slices.Clone(t.Path)
	return t
}
