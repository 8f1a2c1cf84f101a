// Package agent runs a single navigation agent through a partially known grid.
//
// The agent plans with fognav.PathSearch against its Memory, walks the
// returned path probing ground truth one cell at a time, and re-plans from
// its restart point whenever it bumps into an obstacle it did not know about.
//
//	world := fognav.NewFog(grid)
//	a, _ := agent.New(start, goal, world, fognav.New(fognav.Manhattan),
//	    agent.WithSensor(agent.FourNeighbor{}))
//	trajectory, err := a.Run(1)
package agent
