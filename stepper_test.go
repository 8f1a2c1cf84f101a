package fognav

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepper_MatchesSearch(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	g := randomGrid(t, rng, 15, 15, 0.2)
	search := New(Manhattan)
	start, goal := Coordinate{0, 0}, Coordinate{14, 14}

	want, err := search.Search(start, goal, g, GroundTruth)
	require.NoError(t, err)

	stepper, err := search.Stepper(start, goal, g, GroundTruth)
	require.NoError(t, err)

	var last StepSnapshot
	steps := 0
	for !stepper.Done() {
		last = stepper.Step()
		steps++
		require.LessOrEqual(t, steps, 15*15+1, "stepper did not terminate")
	}

	got := stepper.Result()
	assert.Equal(t, want.Path, got.Path)
	assert.Equal(t, want.Expanded, got.Expanded)
	assert.True(t, last.Done)
	assert.Equal(t, want.Found(), last.Found)
	assert.Equal(t, want.Path, last.Path)
}

func TestStepper_Snapshots(t *testing.T) {
	g, err := NewGrid(3, 3)
	require.NoError(t, err)

	stepper, err := New(Manhattan).Stepper(Coordinate{0, 0}, Coordinate{2, 2}, g, nil)
	require.NoError(t, err)

	first := stepper.Step()
	assert.Equal(t, Coordinate{0, 0}, first.Current)
	assert.Equal(t, 1, first.StepIndex)
	assert.Equal(t, []Coordinate{{0, 0}}, first.Closed)
	assert.Equal(t, []Coordinate{{1, 0}, {0, 1}}, first.Open)
	assert.False(t, first.Done)
	assert.Nil(t, first.Path)

	second := stepper.Step()
	assert.Equal(t, Coordinate{1, 0}, second.Current)
	assert.Equal(t, []Coordinate{{0, 0}, {1, 0}}, second.Closed)

	for !stepper.Done() {
		stepper.Step()
	}
	final := stepper.Step()
	assert.True(t, final.Done)
	assert.True(t, final.Found)
	assert.Equal(t, 4.0, final.Cost)
	assert.Equal(t, 5, final.StepIndex)
}

func TestStepper_RejectsInvalidQuery(t *testing.T) {
	g, err := NewGrid(2, 2)
	require.NoError(t, err)
	_, err = New(Manhattan).Stepper(Coordinate{0, 0}, Coordinate{0, 0}, g, nil)
	assert.ErrorIs(t, err, ErrInvalidQuery)
}
