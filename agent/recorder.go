package agent

import "github.com/pdrpinto/fognav"

// Recorder observes the navigation loop without influencing it. The
// trajectory carries only what the loop itself needs; counters such as
// bumps and plans live in recorders.
type Recorder interface {
	OnPlan(result fognav.Result)
	OnBump(cell fognav.Coordinate)
	OnStep(cell fognav.Coordinate)
}

// NopRecorder ignores every event.
type NopRecorder struct{}

func (NopRecorder) OnPlan(fognav.Result)     {}
func (NopRecorder) OnBump(fognav.Coordinate) {}
func (NopRecorder) OnStep(fognav.Coordinate) {}

// Stats counts planning calls, bumps and steps.
type Stats struct {
	Plans int
	Bumps int
	Steps int
}

func (s *Stats) OnPlan(fognav.Result)     { s.Plans++ }
func (s *Stats) OnBump(fognav.Coordinate) { s.Bumps++ }
func (s *Stats) OnStep(fognav.Coordinate) { s.Steps++ }

// Recorders fans every event out to each recorder in order.
type Recorders []Recorder

func (rs Recorders) OnPlan(result fognav.Result) {
	for _, r := range rs {
		r.OnPlan(result)
	}
}

func (rs Recorders) OnBump(cell fognav.Coordinate) {
	for _, r := range rs {
		r.OnBump(cell)
	}
}

func (rs Recorders) OnStep(cell fognav.Coordinate) {
	for _, r := range rs {
		r.OnStep(cell)
	}
}
