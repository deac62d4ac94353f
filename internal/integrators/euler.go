package integrators

import "github.com/san-kum/seiqr/internal/dynamo"

// Euler is the explicit forward Euler scheme. Every component of the next
// state is computed from the same previous snapshot.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(dyn dynamo.System, x dynamo.State, t float64, dt float64) dynamo.State {
	dx := dyn.Derive(x, t)
	result := make(dynamo.State, len(x))
	for i := range x {
		// the conversion keeps dt*dx[i] from being fused into an FMA
		result[i] = x[i] + float64(dt*dx[i])
	}
	return result
}
