package metrics

import (
	"math"

	"github.com/san-kum/seiqr/internal/dynamo"
)

// Metric names reported in Trajectory.Metrics.
const (
	ConservationName = "conservation_drift"
	BoundsName       = "in_bounds"
)

// Conservation tracks the largest deviation of the compartment total from
// the expected population fraction.
type Conservation struct {
	name     string
	total    float64
	maxDrift float64
}

func NewConservation(total float64) *Conservation {
	return &Conservation{name: ConservationName, total: total}
}

func (c *Conservation) Name() string {
	return c.name
}

func (c *Conservation) Observe(x dynamo.State, t float64) {
	drift := math.Abs(x.Sum() - c.total)
	if drift > c.maxDrift || math.IsNaN(drift) {
		c.maxDrift = drift
	}
}

func (c *Conservation) Value() float64 {
	return c.maxDrift
}

func (c *Conservation) Reset() {
	c.maxDrift = 0
}
