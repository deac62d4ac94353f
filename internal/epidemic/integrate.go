package epidemic

import (
	"github.com/san-kum/seiqr/internal/dynamo"
	"github.com/san-kum/seiqr/internal/integrators"
)

// InitialState seeds a single exposed individual in a population of n:
// (1-1/n, 1/n, 0, 0, 0).
func InitialState(n float64) dynamo.State {
	seed := 1 / n
	return dynamo.State{1 - seed, seed, 0, 0, 0}
}

// Integrate advances init over grid with explicit Euler and returns a fresh
// trajectory of grid.Len() states, the first equal to init.
//
// Only malformed inputs are rejected: a grid with fewer than two points or an
// init that is not five compartments long. Numerical blow-up caused by a
// large step is returned as computed.
func Integrate(init dynamo.State, p Params, grid dynamo.TimeGrid) (*dynamo.Trajectory, error) {
	return dynamo.New(NewSEIQR(p), integrators.NewEuler()).Run(init, grid)
}
