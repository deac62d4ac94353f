// Package dynamo provides core simulation primitives for fixed-step ODE
// integration.
//
// The package defines the fundamental interfaces and types:
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [Integrator]: fixed-step numerical stepper
//   - [TimeGrid]: immutable, uniformly spaced time points
//   - [Trajectory]: one state per grid point
//   - [Simulator]: orchestrates a run over a time grid
//
// # Example
//
//	grid, _ := dynamo.NewTimeGrid(150, 0.1)
//	sim := dynamo.New(epidemic.NewSEIQR(params), integrators.NewEuler())
//	traj, _ := sim.Run(x0, grid)
//
// # Numerical behavior
//
// A run always performs len(grid)-1 steps. States are never checked for
// NaN, Inf or range violations during a run; attach a [Metric] to observe
// them without changing the computed values.
package dynamo
