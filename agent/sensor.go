package agent

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pdrpinto/fognav"
)

// Observation is what a sensor learned from one position.
type Observation struct {
	Blocked []fognav.Coordinate
	Free    []fognav.Coordinate
}

// Sensor is the agent's sideways sensing capability. Observe is called with
// the agent's position before every step it attempts.
type Sensor interface {
	Observe(position fognav.Coordinate, world *fognav.Fog) Observation
}

// Blindfolded senses nothing; the agent only learns by stepping or bumping.
type Blindfolded struct{}

// Observe implements Sensor.
func (Blindfolded) Observe(fognav.Coordinate, *fognav.Fog) Observation { return Observation{} }

// FourNeighbor probes the four cells adjacent to the agent.
type FourNeighbor struct{}

// Observe implements Sensor.
func (FourNeighbor) Observe(position fognav.Coordinate, world *fognav.Fog) Observation {
	var obs Observation
	for _, next := range position.Neighbors() {
		blocked, ok := world.Probe(next)
		switch {
		case !ok:
		case blocked:
			obs.Blocked = append(obs.Blocked, next)
		default:
			obs.Free = append(obs.Free, next)
		}
	}
	return obs
}

// ErrUnknownSensor is returned by SensorByName for names it does not know.
var ErrUnknownSensor = errors.New("unknown sensor")

// Sensor names accepted by SensorByName.
const (
	SensorBlindfolded  = "blindfolded"
	SensorFourNeighbor = "four-neighbor"
)

// SensorNames lists every name SensorByName understands.
func SensorNames() []string {
	return []string{SensorBlindfolded, SensorFourNeighbor}
}

// SensorByName resolves a configured sensor name.
func SensorByName(name string) (Sensor, error) {
	switch name {
	case SensorBlindfolded:
		return Blindfolded{}, nil
	case SensorFourNeighbor:
		return FourNeighbor{}, nil
	default:
		return nil, fmt.Errorf("%w %q (want one of %s)", ErrUnknownSensor, name, strings.Join(SensorNames(), ", "))
	}
}
