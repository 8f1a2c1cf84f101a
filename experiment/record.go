package experiment

import (
	"time"

	"github.com/google/uuid"
)

// Record is the outcome of one agent on one world.
type Record struct {
	ID     uuid.UUID
	Sensor string
	// Density is the obstacle probability in percent.
	Density   int
	Iteration int
	Solvable  bool
	Runtime   time.Duration
	// TrajectoryLength is NaN when the agent failed.
	TrajectoryLength float64
	CellsProcessed   int
	Bumps            int
	Plans            int
	CellsDetermined  int
}
