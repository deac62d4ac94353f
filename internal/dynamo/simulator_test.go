package dynamo

import (
	"errors"
	"math"
	"testing"
)

type testDynamics struct{}

func (t *testDynamics) Derive(x State, time float64) State {
	return State{-x[0]}
}

func (t *testDynamics) StateDim() int { return 1 }

type testIntegrator struct{ calls int }

func (t *testIntegrator) Step(dyn System, x State, time float64, dt float64) State {
	t.calls++
	dx := dyn.Derive(x, time)
	return State{x[0] + dt*dx[0]}
}

type brokenIntegrator struct{}

func (brokenIntegrator) Step(dyn System, x State, time float64, dt float64) State {
	return State{}
}

func TestSimulatorRun(t *testing.T) {
	integ := &testIntegrator{}
	sim := New(&testDynamics{}, integ)

	grid, err := NewTimeGrid(1.0, 0.1)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}

	x0 := State{1.0}
	result, err := sim.Run(x0, grid)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.States) != 11 {
		t.Errorf("expected 11 states, got %d", len(result.States))
	}
	if len(result.Times) != 11 {
		t.Errorf("expected 11 times, got %d", len(result.Times))
	}
	if integ.calls != 10 || result.StepsTaken != 10 {
		t.Errorf("expected 10 steps, got calls=%d taken=%d", integ.calls, result.StepsTaken)
	}

	finalState := result.States[len(result.States)-1][0]
	expected := math.Pow(0.9, 10)
	if math.Abs(finalState-expected) > 1e-12 {
		t.Errorf("expected final state %.12f, got %.12f", expected, finalState)
	}
}

func TestSimulatorStepCount(t *testing.T) {
	integ := &testIntegrator{}
	sim := New(&testDynamics{}, integ)

	grid, err := NewTimeGrid(10, 1)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}

	result, err := sim.Run(State{1}, grid)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if integ.calls != 10 {
		t.Errorf("expected 10 updates, got %d", integ.calls)
	}
	if result.Len() != 11 {
		t.Errorf("expected 11 states, got %d", result.Len())
	}
}

func TestSimulatorInitialStateIsCopied(t *testing.T) {
	sim := New(&testDynamics{}, &testIntegrator{})
	grid, _ := NewTimeGrid(1, 0.5)

	x0 := State{2.0}
	result, err := sim.Run(x0, grid)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if !result.States[0].Equal(x0) {
		t.Errorf("state[0] = %v, want %v", result.States[0], x0)
	}
	x0[0] = 99
	if result.States[0][0] != 2.0 {
		t.Error("trajectory shares memory with the initial state")
	}
}

func TestSimulatorInvalidInputs(t *testing.T) {
	sim := New(&testDynamics{}, &testIntegrator{})
	grid, _ := NewTimeGrid(1, 0.1)

	tests := []struct {
		name string
		x0   State
		grid TimeGrid
		want error
	}{
		{"zero grid", State{1}, TimeGrid{}, ErrShortGrid},
		{"wrong dimension", State{1, 2}, grid, ErrDimensionMismatch},
		{"empty state", State{}, grid, ErrDimensionMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sim.Run(tt.x0, tt.grid)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestSimulatorBrokenIntegrator(t *testing.T) {
	sim := New(&testDynamics{}, brokenIntegrator{})
	grid, _ := NewTimeGrid(1, 0.1)

	_, err := sim.Run(State{1}, grid)
	var simErr *SimulationError
	if !errors.As(err, &simErr) {
		t.Fatalf("expected SimulationError, got %v", err)
	}
	if simErr.Step != 1 {
		t.Errorf("expected failure at step 1, got %d", simErr.Step)
	}
}

type testMetric struct {
	count int
	sum   float64
}

func (t *testMetric) Name() string { return "test" }
func (t *testMetric) Observe(x State, time float64) {
	t.count++
	t.sum += x[0]
}
func (t *testMetric) Value() float64 {
	if t.count == 0 {
		return 0
	}
	return t.sum / float64(t.count)
}
func (t *testMetric) Reset() {
	t.count = 0
	t.sum = 0
}

func TestSimulatorMetrics(t *testing.T) {
	sim := New(&testDynamics{}, &testIntegrator{})

	metric := &testMetric{}
	sim.AddMetric(metric)

	grid, _ := NewTimeGrid(1, 0.1)
	result, err := sim.Run(State{1.0}, grid)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if _, ok := result.Metrics["test"]; !ok {
		t.Error("metric not found in result")
	}
	if metric.count != 11 {
		t.Errorf("expected 11 observations, got %d", metric.count)
	}

	// metrics never change the computed states
	plain, _ := New(&testDynamics{}, &testIntegrator{}).Run(State{1.0}, grid)
	for i := range plain.States {
		if !plain.States[i].Equal(result.States[i]) {
			t.Fatalf("state %d differs with metric attached", i)
		}
	}
}
