package dynamo

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// uniformTolerance bounds the relative spacing error accepted by GridFromPoints.
const uniformTolerance = 1e-6

// TimeGrid is an immutable sequence of uniformly spaced time points.
// The zero value has no points and is rejected by Simulator.Run.
type TimeGrid struct {
	points []float64
}

// NewTimeGrid builds the grid {0, dt, 2dt, ..., tMax} with round(tMax/dt)+1
// points. Point i is i*(tMax/(n-1)) and the last point is tMax exactly.
func NewTimeGrid(tMax, dt float64) (TimeGrid, error) {
	if dt <= 0 || math.IsNaN(dt) {
		return TimeGrid{}, fmt.Errorf("dt must be positive, got %f", dt)
	}
	if tMax <= 0 || math.IsNaN(tMax) || math.IsInf(tMax, 0) {
		return TimeGrid{}, fmt.Errorf("horizon must be positive, got %f", tMax)
	}

	n := int(math.Round(tMax/dt)) + 1
	if n < 2 {
		return TimeGrid{}, fmt.Errorf("horizon %g with dt %g: %w", tMax, dt, ErrShortGrid)
	}

	points := floats.Span(make([]float64, n), 0, tMax)
	points[n-1] = tMax

	return TimeGrid{points: points}, nil
}

// GridFromPoints validates and copies explicit grid points.
func GridFromPoints(points []float64) (TimeGrid, error) {
	if len(points) < 2 {
		return TimeGrid{}, ErrShortGrid
	}

	d0 := points[1] - points[0]
	if !(d0 > 0) {
		return TimeGrid{}, fmt.Errorf("points 0 and 1: %w", ErrInvalidGrid)
	}
	for i := 1; i < len(points); i++ {
		d := points[i] - points[i-1]
		if !(d > 0) || math.Abs(d-d0) > uniformTolerance*d0 {
			return TimeGrid{}, fmt.Errorf("points %d and %d: %w", i-1, i, ErrInvalidGrid)
		}
	}

	c := make([]float64, len(points))
	copy(c, points)
	return TimeGrid{points: c}, nil
}

func (g TimeGrid) Len() int {
	return len(g.points)
}

// Dt is the spacing between the first two points, or 0 for a short grid.
func (g TimeGrid) Dt() float64 {
	if len(g.points) < 2 {
		return 0
	}
	return g.points[1] - g.points[0]
}

func (g TimeGrid) At(i int) float64 {
	return g.points[i]
}

func (g TimeGrid) Horizon() float64 {
	if len(g.points) == 0 {
		return 0
	}
	return g.points[len(g.points)-1]
}

// Points returns a copy of the grid points.
func (g TimeGrid) Points() []float64 {
	c := make([]float64, len(g.points))
	copy(c, g.points)
	return c
}
