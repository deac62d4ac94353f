package dynamo

import "errors"

// Domain errors for simulation operations.
var (
	// ErrShortGrid indicates a time grid with fewer than two points.
	ErrShortGrid = errors.New("dynamo: time grid needs at least two points")

	// ErrInvalidGrid indicates grid points that are not strictly increasing
	// or not uniformly spaced.
	ErrInvalidGrid = errors.New("dynamo: time grid must be strictly increasing and uniform")

	// ErrDimensionMismatch indicates mismatched state/system dimensions.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and system")

	// ErrEmptyTrajectory indicates a trajectory without any state.
	ErrEmptyTrajectory = errors.New("dynamo: empty trajectory")
)

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *SimulationError) Error() string {
	return e.Wrapped.Error()
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
