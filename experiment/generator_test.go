package experiment

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/fognav"
)

func TestRandomGrid(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	start, goal := Endpoints(20, 10)

	full, err := RandomGrid(20, 10, 1, rng)
	require.NoError(t, err)
	assert.Len(t, full.Obstacles(), 20*10-2)
	for _, c := range []fognav.Coordinate{start, goal} {
		cell, ok := full.Cell(c)
		require.True(t, ok)
		assert.False(t, cell.Blocked())
	}

	empty, err := RandomGrid(20, 10, 0, rng)
	require.NoError(t, err)
	assert.Empty(t, empty.Obstacles())
}

func TestRandomGrid_Errors(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	_, err := RandomGrid(1, 1, 0.1, rng)
	assert.ErrorIs(t, err, fognav.ErrInvalidDimensions)
	_, err = RandomGrid(5, 5, 1.5, rng)
	assert.Error(t, err)
}

func TestSolvableGrid(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	search := fognav.New(fognav.Manhattan)

	g, err := SolvableGrid(search, 15, 15, 0.3, rng, 0)
	require.NoError(t, err)
	start, goal := Endpoints(15, 15)
	result, err := search.Search(start, goal, g, fognav.GroundTruth)
	require.NoError(t, err)
	assert.True(t, result.Found())
}

func TestSolvableGrid_GivesUp(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	_, err := SolvableGrid(fognav.New(nil), 6, 6, 1, rng, 3)
	assert.ErrorIs(t, err, ErrUnsolvable)
}
