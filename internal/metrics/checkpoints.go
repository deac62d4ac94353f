package metrics

import "github.com/san-kum/seiqr/internal/dynamo"

// Checkpoints is an observer that keeps a copy of the state at the first
// grid point reaching each multiple of Every days.
type Checkpoints struct {
	Every  float64
	Times  []float64
	States []dynamo.State

	next float64
}

func NewCheckpoints(every float64) *Checkpoints {
	return &Checkpoints{Every: every}
}

// OnStep records x when t has reached the next multiple. The comparison
// allows for grid points like 0.1*3 landing just short of the boundary.
func (c *Checkpoints) OnStep(x dynamo.State, t float64) {
	if c.Every <= 0 {
		return
	}
	if t < c.next-1e-9*c.Every {
		return
	}
	c.Times = append(c.Times, t)
	c.States = append(c.States, x.Clone())
	for c.next <= t+1e-9*c.Every {
		c.next += c.Every
	}
}
