package experiment

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/pdrpinto/fognav"
)

// DefaultMaxAttempts bounds how many worlds SolvableGrid draws before giving up.
const DefaultMaxAttempts = 1000

// ErrUnsolvable is returned when no solvable world could be generated.
var ErrUnsolvable = errors.New("no solvable grid generated")

// Endpoints returns the start and goal used for a width x height world:
// opposite corners.
func Endpoints(width, height int) (start, goal fognav.Coordinate) {
	return fognav.Coordinate{}, fognav.Coordinate{X: width - 1, Y: height - 1}
}

// RandomGrid blocks each cell independently with probability density,
// keeping both endpoints free.
func RandomGrid(width, height int, density float64, rng *rand.Rand) (*fognav.Grid, error) {
	if width*height < 2 {
		return nil, fmt.Errorf("%w: %dx%d has no room for distinct endpoints", fognav.ErrInvalidDimensions, width, height)
	}
	if density < 0 || density > 1 {
		return nil, fmt.Errorf("density %v outside [0, 1]", density)
	}
	start, goal := Endpoints(width, height)
	var blocked []fognav.Coordinate
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := fognav.Coordinate{X: x, Y: y}
			if c == start || c == goal {
				continue
			}
			if rng.Float64() < density {
				blocked = append(blocked, c)
			}
		}
	}
	return fognav.NewGrid(width, height, blocked...)
}

// SolvableGrid draws random worlds until one has a path between the
// endpoints under full knowledge.
func SolvableGrid(search *fognav.PathSearch, width, height int, density float64, rng *rand.Rand, maxAttempts int) (*fognav.Grid, error) {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	start, goal := Endpoints(width, height)
	for attempt := 0; attempt < maxAttempts; attempt++ {
		g, err := RandomGrid(width, height, density, rng)
		if err != nil {
			return nil, err
		}
		result, err := search.Search(start, goal, g, fognav.GroundTruth)
		if err != nil {
			return nil, err
		}
		if result.Found() {
			return g, nil
		}
	}
	return nil, fmt.Errorf("%w: %dx%d at density %.2f after %d attempts", ErrUnsolvable, width, height, density, maxAttempts)
}
