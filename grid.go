package fognav

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrInvalidDimensions is returned when a grid would have no cells.
	ErrInvalidDimensions = errors.New("invalid grid dimensions")
	// ErrMalformedGrid is returned for obstacles outside the grid or unparsable maps.
	ErrMalformedGrid = errors.New("malformed grid")
)

const (
	freeSymbol    = '.'
	blockedSymbol = '#'
)

// Cell is one grid square. Its ground truth never changes after the grid is built.
type Cell struct {
	location      Coordinate
	blocked       bool
	sensedBlocked int
}

// Location returns the coordinate of the cell.
func (c Cell) Location() Coordinate { return c.location }

// Blocked reports the ground-truth obstacle flag.
func (c Cell) Blocked() bool { return c.blocked }

// SensedBlocked is the number of blocked cells among the 8 cells surrounding
// this one. Inference strategies read it; planning never does.
func (c Cell) SensedBlocked() int { return c.sensedBlocked }

// Grid is an immutable rectangle of cells addressed by Coordinate.
type Grid struct {
	width  int
	height int
	cells  []Cell
}

// NewGrid creates a width x height grid with the given cells blocked.
func NewGrid(width, height int, blocked ...Coordinate) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	g := &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.cells[y*width+x].location = Coordinate{x, y}
		}
	}
	for _, c := range blocked {
		if !g.Contains(c) {
			return nil, fmt.Errorf("%w: obstacle %s outside %dx%d grid", ErrMalformedGrid, c, width, height)
		}
		g.cells[g.offset(c)].blocked = true
	}
	g.annotate()
	return g, nil
}

// ParseGrid reads a grid drawn with '.' for free cells and '#' for obstacles,
// one row per line. Trailing blank lines are ignored.
func ParseGrid(r io.Reader) (*Grid, error) {
	var rows []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		rows = append(rows, strings.TrimRight(scanner.Text(), " \t\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read grid: %w", err)
	}
	for len(rows) > 0 && rows[len(rows)-1] == "" {
		rows = rows[:len(rows)-1]
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty map", ErrInvalidDimensions)
	}

	width := len(rows[0])
	var blocked []Coordinate
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrMalformedGrid, y, len(row), width)
		}
		for x, symbol := range []byte(row) {
			switch symbol {
			case freeSymbol:
			case blockedSymbol:
				blocked = append(blocked, Coordinate{x, y})
			default:
				return nil, fmt.Errorf("%w: unexpected %q at %s", ErrMalformedGrid, symbol, Coordinate{x, y})
			}
		}
	}
	return NewGrid(width, len(rows), blocked...)
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Contains reports whether c lies within the grid bounds.
func (g *Grid) Contains(c Coordinate) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

// Cell returns the cell at c, or false if c is out of bounds.
func (g *Grid) Cell(c Coordinate) (Cell, bool) {
	if !g.Contains(c) {
		return Cell{}, false
	}
	return g.cells[g.offset(c)], true
}

// Obstacles returns every blocked coordinate in row-major order.
func (g *Grid) Obstacles() []Coordinate {
	var out []Coordinate
	for _, cell := range g.cells {
		if cell.blocked {
			out = append(out, cell.location)
		}
	}
	return out
}

// String draws the grid in the format accepted by ParseGrid.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.width + 1) * g.height)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.cells[y*g.width+x].blocked {
				sb.WriteByte(blockedSymbol)
			} else {
				sb.WriteByte(freeSymbol)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (g *Grid) offset(c Coordinate) int { return c.Y*g.width + c.X }

// annotate fills in the 8-neighborhood obstacle counts.
func (g *Grid) annotate() {
	for i := range g.cells {
		loc := g.cells[i].location
		count := 0
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				next := Coordinate{loc.X + dx, loc.Y + dy}
				if g.Contains(next) && g.cells[g.offset(next)].blocked {
					count++
				}
			}
		}
		g.cells[i].sensedBlocked = count
	}
}
