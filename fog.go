package fognav

// Fog is one agent's window onto a ground-truth Grid. Its Grid shares the
// geometry of the true grid but reports every cell as free, so a planner
// handed the fog grid cannot read obstacles it has not been told about.
// Ground truth is only reached through Probe.
//
// A Fog records what has been revealed and visited and is not safe for
// concurrent use; give every run its own.
type Fog struct {
	truth    *Grid
	geometry *Grid
	revealed map[Coordinate]bool
	visited  map[Coordinate]bool
}

// NewFog derives a fog view over g.
func NewFog(g *Grid) *Fog {
	geometry, _ := NewGrid(g.width, g.height)
	return &Fog{
		truth:    g,
		geometry: geometry,
		revealed: make(map[Coordinate]bool),
		visited:  make(map[Coordinate]bool),
	}
}

// Grid returns the obstacle-free grid used for planning.
func (f *Fog) Grid() *Grid { return f.geometry }

// Probe reveals the ground truth of c. ok is false when c is out of bounds.
func (f *Fog) Probe(c Coordinate) (blocked bool, ok bool) {
	cell, ok := f.truth.Cell(c)
	if !ok {
		return false, false
	}
	f.revealed[c] = true
	return cell.blocked, true
}

// Visit records that the agent stood on c.
func (f *Fog) Visit(c Coordinate) {
	if f.truth.Contains(c) {
		f.visited[c] = true
		f.revealed[c] = true
	}
}

// Revealed reports whether the ground truth of c has been probed.
func (f *Fog) Revealed(c Coordinate) bool { return f.revealed[c] }

// Visited reports whether the agent has stood on c.
func (f *Fog) Visited(c Coordinate) bool { return f.visited[c] }

// RevealedCount returns how many distinct cells have been probed.
func (f *Fog) RevealedCount() int { return len(f.revealed) }
