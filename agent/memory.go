package agent

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/pdrpinto/fognav"
)

// ErrConflictingBelief is returned when a cell would be known both blocked and free.
var ErrConflictingBelief = errors.New("conflicting belief")

// Memory is what an agent has learned about the world. Entries are only
// ever added, and no coordinate is both blocked and free.
type Memory struct {
	blocked map[fognav.Coordinate]struct{}
	free    map[fognav.Coordinate]struct{}
}

// NewMemory returns an empty memory: everything unknown, assumed free.
func NewMemory() *Memory {
	return &Memory{
		blocked: make(map[fognav.Coordinate]struct{}),
		free:    make(map[fognav.Coordinate]struct{}),
	}
}

// MarkBlocked records c as an obstacle and reports whether it was new.
func (m *Memory) MarkBlocked(c fognav.Coordinate) (bool, error) {
	if _, ok := m.free[c]; ok {
		return false, fmt.Errorf("%w: %s already known free", ErrConflictingBelief, c)
	}
	if _, ok := m.blocked[c]; ok {
		return false, nil
	}
	m.blocked[c] = struct{}{}
	return true, nil
}

// MarkFree records c as traversable and reports whether it was new.
func (m *Memory) MarkFree(c fognav.Coordinate) (bool, error) {
	if _, ok := m.blocked[c]; ok {
		return false, fmt.Errorf("%w: %s already known blocked", ErrConflictingBelief, c)
	}
	if _, ok := m.free[c]; ok {
		return false, nil
	}
	m.free[c] = struct{}{}
	return true, nil
}

// Apply merges an observation into memory.
func (m *Memory) Apply(obs Observation) error {
	for _, c := range obs.Blocked {
		if _, err := m.MarkBlocked(c); err != nil {
			return err
		}
	}
	for _, c := range obs.Free {
		if _, err := m.MarkFree(c); err != nil {
			return err
		}
	}
	return nil
}

// IsBlocked reports whether c is known to be an obstacle.
func (m *Memory) IsBlocked(c fognav.Coordinate) bool {
	_, ok := m.blocked[c]
	return ok
}

// IsFree reports whether c is known to be traversable.
func (m *Memory) IsFree(c fognav.Coordinate) bool {
	_, ok := m.free[c]
	return ok
}

// Blocked returns the known obstacles in row-major order.
func (m *Memory) Blocked() []fognav.Coordinate {
	return slices.SortedFunc(maps.Keys(m.blocked), fognav.Coordinate.Compare)
}

// Free returns the known free cells in row-major order.
func (m *Memory) Free() []fognav.Coordinate {
	return slices.SortedFunc(maps.Keys(m.free), fognav.Coordinate.Compare)
}

// Determined is the number of cells whose status is known.
func (m *Memory) Determined() int { return len(m.blocked) + len(m.free) }

// blocks adapts the memory to the planner's predicate.
func (m *Memory) blocks(cell fognav.Cell) bool {
	return m.IsBlocked(cell.Location())
}
