package main

import (
	"strings"

	"github.com/pdrpinto/fognav"
	"github.com/pdrpinto/fognav/agent"
)

// Map symbols.
const (
	symbolWalked       = '-'
	symbolKnownBlocked = 'x'
	symbolKnownFree    = '.'
	symbolHidden       = '#'
	symbolUnknownFree  = 'o'
)

// renderMap draws one character per cell, rows top to bottom.
func renderMap(g *fognav.Grid, symbol func(fognav.Cell) byte) string {
	var b strings.Builder
	b.Grow((g.Width() + 1) * g.Height())
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			cell, _ := g.Cell(fognav.Coordinate{X: x, Y: y})
			b.WriteByte(symbol(cell))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// searchMap overlays a full-knowledge path on the world.
func searchMap(g *fognav.Grid, start fognav.Coordinate, path []fognav.Coordinate) string {
	onPath := map[fognav.Coordinate]bool{start: true}
	for _, c := range path {
		onPath[c] = true
	}
	return renderMap(g, func(cell fognav.Cell) byte {
		switch {
		case onPath[cell.Location()]:
			return symbolWalked
		case cell.Blocked():
			return symbolHidden
		default:
			return symbolKnownFree
		}
	})
}

// beliefMap shows what an agent walked and learned against the true world.
func beliefMap(truth *fognav.Grid, memory *agent.Memory, start fognav.Coordinate, walked []fognav.Coordinate) string {
	onPath := map[fognav.Coordinate]bool{start: true}
	for _, c := range walked {
		onPath[c] = true
	}
	return renderMap(truth, func(cell fognav.Cell) byte {
		c := cell.Location()
		switch {
		case onPath[c]:
			return symbolWalked
		case memory.IsBlocked(c):
			return symbolKnownBlocked
		case memory.IsFree(c):
			return symbolKnownFree
		case cell.Blocked():
			return symbolHidden
		default:
			return symbolUnknownFree
		}
	})
}
