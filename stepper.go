package fognav

import (
	"container/heap"
	"maps"
	"slices"

	"github.com/pdrpinto/fognav/internal"
)

// StepSnapshot exposes the per-iteration state of the search
type StepSnapshot struct {
	Current   Coordinate
	Open      []Coordinate
	Closed    []Coordinate
	Done      bool
	Found     bool
	Path      []Coordinate
	Cost      float64
	StepIndex int
}

// Stepper advances one search a single expansion at a time. Search is a
// Stepper driven to completion, so both produce identical results.
type Stepper struct {
	start, goal Coordinate
	grid        *Grid
	isBlocked   BlockedFunc
	heuristic   Heuristic

	table   nodeTable
	openSet PriorityQueue
	closed  map[Coordinate]bool

	expanded int
	current  Coordinate
	goalID   int
	done     bool
	found    bool
}

// Stepper validates the query and prepares a search without expanding anything.
func (s *PathSearch) Stepper(start, goal Coordinate, grid *Grid, isBlocked BlockedFunc) (*Stepper, error) {
	if err := validateQuery(start, goal, grid); err != nil {
		return nil, err
	}
	if isBlocked == nil {
		isBlocked = func(Cell) bool { return false }
	}

	st := &Stepper{
		start:     start,
		goal:      goal,
		grid:      grid,
		isBlocked: isBlocked,
		heuristic: s.heuristic,
		table:     newNodeTable(),
		closed:    make(map[Coordinate]bool),
		current:   start,
		goalID:    -1,
	}
	st.openSet.table = &st.table
	heap.Init(&st.openSet)
	startID := st.table.add(start, -1, 0, s.heuristic(start, goal))
	heap.Push(&st.openSet, startID)
	return st, nil
}

// Step advances the search by one node expansion and returns a snapshot.
// Once the search is done, further calls return the final snapshot.
func (st *Stepper) Step() StepSnapshot {
	st.advance()
	return st.snapshot()
}

// Done reports whether the search has finished.
func (st *Stepper) Done() bool { return st.done }

// Result returns the outcome so far; it is final once Done reports true.
func (st *Stepper) Result() Result {
	if !st.found {
		return noPath(st.expanded)
	}
	path := internal.ReconstructPath(st.goalID,
		func(id int) int { return st.table.nodes[id].parent },
		func(id int) Coordinate { return st.table.nodes[id].cell },
	)
	return Result{
		Path:     path,
		Cost:     st.table.nodes[st.goalID].g,
		Expanded: st.expanded,
	}
}

// advance pops and expands the best frontier node.
func (st *Stepper) advance() {
	if st.done {
		return
	}
	if st.openSet.Len() == 0 {
		st.done = true
		return
	}

	id := heap.Pop(&st.openSet).(int)
	st.expanded++
	current := st.table.nodes[id]
	st.current = current.cell
	st.closed[current.cell] = true

	if current.cell == st.goal {
		st.done = true
		st.found = true
		st.goalID = id
		return
	}

	for _, next := range current.cell.Neighbors() {
		cell, ok := st.grid.Cell(next)
		if !ok || st.isBlocked(cell) {
			continue
		}
		g := current.g + 1
		nextID, seen := st.table.index[next]
		if !seen {
			nextID = st.table.add(next, id, g, st.heuristic(next, st.goal))
			heap.Push(&st.openSet, nextID)
			continue
		}

		node := &st.table.nodes[nextID]
		if g >= node.g {
			continue
		}
		node.g = g
		node.f = g + node.h
		node.parent = id
		if node.indexInQueue >= 0 {
			heap.Fix(&st.openSet, node.indexInQueue)
		} else {
			// only reachable with an inconsistent heuristic
			delete(st.closed, next)
			heap.Push(&st.openSet, nextID)
		}
	}
}

func (st *Stepper) snapshot() StepSnapshot {
	open := make([]Coordinate, 0, st.openSet.Len())
	for _, id := range st.openSet.items {
		open = append(open, st.table.nodes[id].cell)
	}
	slices.SortFunc(open, Coordinate.Compare)
	closed := slices.SortedFunc(maps.Keys(st.closed), Coordinate.Compare)

	snap := StepSnapshot{
		Current:   st.current,
		Open:      open,
		Closed:    closed,
		Done:      st.done,
		Found:     st.found,
		StepIndex: st.expanded,
	}
	if st.done {
		result := st.Result()
		snap.Path = result.Path
		snap.Cost = result.Cost
	}
	return snap
}
