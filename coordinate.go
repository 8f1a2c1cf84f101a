package fognav

import (
	"cmp"
	"fmt"
)

// Coordinate identifies a grid cell.
type Coordinate struct {
	X, Y int
}

// String provides a string representation of Coordinate
func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Neighbors returns the 4-connected neighbors of c in a fixed order:
// right, left, down, up. They may lie outside any particular grid.
func (c Coordinate) Neighbors() [4]Coordinate {
	return [4]Coordinate{
		{c.X + 1, c.Y},
		{c.X - 1, c.Y},
		{c.X, c.Y + 1},
		{c.X, c.Y - 1},
	}
}

// Compare orders coordinates row-major (by Y, then X).
func (c Coordinate) Compare(other Coordinate) int {
	if n := cmp.Compare(c.Y, other.Y); n != 0 {
		return n
	}
	return cmp.Compare(c.X, other.X)
}

// Heuristic returns the estimated cost from node a to node b
type Heuristic func(from Coordinate, to Coordinate) float64

// Manhattan is the default Heuristic. It is admissible and consistent on a
// 4-connected grid with unit step costs.
func Manhattan(from, to Coordinate) float64 {
	dx := from.X - to.X
	if dx < 0 {
		dx = -dx
	}
	dy := from.Y - to.Y
	if dy < 0 {
		dy = -dy
	}
	return float64(dx + dy)
}
