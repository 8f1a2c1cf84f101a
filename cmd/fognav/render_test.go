package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/fognav"
	"github.com/pdrpinto/fognav/agent"
)

func parse(t *testing.T, rows ...string) *fognav.Grid {
	t.Helper()
	g, err := fognav.ParseGrid(strings.NewReader(strings.Join(rows, "\n")))
	require.NoError(t, err)
	return g
}

func TestSearchMap(t *testing.T) {
	g := parse(t,
		"...",
		".#.",
		"...",
	)
	result, err := fognav.New(nil).Search(fognav.Coordinate{}, fognav.Coordinate{X: 2, Y: 2}, g, fognav.GroundTruth)
	require.NoError(t, err)

	assert.Equal(t, "---\n.#-\n..-\n", searchMap(g, fognav.Coordinate{}, result.Path))
}

func TestBeliefMap(t *testing.T) {
	g := parse(t,
		".#.",
		"...",
		"#..",
	)
	start, goal := fognav.Coordinate{}, fognav.Coordinate{X: 2, Y: 2}
	navigator, err := agent.New(start, goal, fognav.NewFog(g), fognav.New(nil))
	require.NoError(t, err)
	trajectory, err := navigator.Run(1)
	require.NoError(t, err)
	require.True(t, trajectory.Reached())

	// bumps into (1,0), then routes down and right
	assert.Equal(t, "-xo\n---\n#o-\n", beliefMap(g, navigator.Memory(), start, trajectory.Path))
}
