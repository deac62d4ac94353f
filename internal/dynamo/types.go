package dynamo

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Sum returns the total of all components.
func (s State) Sum() float64 {
	return floats.Sum(s)
}

func (s State) Equal(other State) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

type Integrator interface {
	Step(dyn System, x State, t float64, dt float64) State
}

// Metric observes every grid point of a run, including the initial state.
type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(x State, t float64)
}

// Trajectory holds one state per time grid point.
type Trajectory struct {
	Times      []float64
	States     []State
	StepsTaken int
	Metrics    map[string]float64
}

func (tr *Trajectory) Len() int {
	return len(tr.States)
}

// Series extracts component idx over time.
func (tr *Trajectory) Series(idx int) []float64 {
	out := make([]float64, len(tr.States))
	for i, s := range tr.States {
		if idx < len(s) {
			out[i] = s[idx]
		}
	}
	return out
}

func (tr *Trajectory) Final() (State, error) {
	if len(tr.States) == 0 {
		return nil, ErrEmptyTrajectory
	}
	return tr.States[len(tr.States)-1], nil
}
