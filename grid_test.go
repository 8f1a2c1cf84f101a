package fognav

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGrid(t *testing.T) {
	drawing := "..#\n#..\n...\n"
	g, err := ParseGrid(strings.NewReader(drawing + "\n\n"))
	require.NoError(t, err)

	assert.Equal(t, 3, g.Width())
	assert.Equal(t, 3, g.Height())
	assert.Equal(t, []Coordinate{{2, 0}, {0, 1}}, g.Obstacles())
	assert.Equal(t, drawing, g.String())
}

func TestParseGrid_Errors(t *testing.T) {
	tests := []struct {
		name    string
		drawing string
		want    error
	}{
		{"empty", "", ErrInvalidDimensions},
		{"ragged rows", "...\n..\n", ErrMalformedGrid},
		{"unknown symbol", "..x\n...\n", ErrMalformedGrid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseGrid(strings.NewReader(tt.drawing))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewGrid_Errors(t *testing.T) {
	_, err := NewGrid(0, 3)
	assert.ErrorIs(t, err, ErrInvalidDimensions)

	_, err = NewGrid(2, 2, Coordinate{2, 0})
	assert.ErrorIs(t, err, ErrMalformedGrid)
}

func TestGrid_Cell(t *testing.T) {
	g, err := NewGrid(3, 2, Coordinate{1, 1})
	require.NoError(t, err)

	cell, ok := g.Cell(Coordinate{1, 1})
	require.True(t, ok)
	assert.True(t, cell.Blocked())
	assert.Equal(t, Coordinate{1, 1}, cell.Location())

	_, ok = g.Cell(Coordinate{3, 0})
	assert.False(t, ok)
	_, ok = g.Cell(Coordinate{0, -1})
	assert.False(t, ok)
}

func TestGrid_SensedBlocked(t *testing.T) {
	g := mustParse(t, `
#.#
...
#.#
`)
	center, _ := g.Cell(Coordinate{1, 1})
	assert.Equal(t, 4, center.SensedBlocked())

	edge, _ := g.Cell(Coordinate{1, 0})
	assert.Equal(t, 2, edge.SensedBlocked())

	corner, _ := g.Cell(Coordinate{0, 0})
	assert.Equal(t, 0, corner.SensedBlocked())
}

func TestCoordinate(t *testing.T) {
	c := Coordinate{2, 5}
	assert.Equal(t, "(2,5)", c.String())
	assert.Equal(t, [4]Coordinate{{3, 5}, {1, 5}, {2, 6}, {2, 4}}, c.Neighbors())
	assert.Equal(t, 7.0, Manhattan(Coordinate{0, 0}, Coordinate{3, -4}))
	assert.Negative(t, Coordinate{9, 0}.Compare(Coordinate{0, 1}))
	assert.Zero(t, c.Compare(Coordinate{2, 5}))
}
