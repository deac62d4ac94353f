package dynamo

import (
	"errors"
	"math"
	"testing"
)

func TestState_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		state State
		valid bool
	}{
		{"empty", State{}, true},
		{"normal", State{1.0, 2.0, 3.0}, true},
		{"zeros", State{0.0, 0.0}, true},
		{"with NaN", State{1.0, math.NaN()}, false},
		{"with +Inf", State{1.0, math.Inf(1)}, false},
		{"with -Inf", State{1.0, math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestState_Sum(t *testing.T) {
	if got := (State{0.25, 0.25, 0.5}).Sum(); got != 1.0 {
		t.Errorf("Sum() = %v, want 1", got)
	}
	if got := (State{}).Sum(); got != 0 {
		t.Errorf("Sum() of empty = %v, want 0", got)
	}
}

func TestState_Clone(t *testing.T) {
	a := State{1, 2, 3}
	b := a.Clone()
	b[0] = 99
	if a[0] != 1 {
		t.Error("Clone did not create independent copy")
	}
}

func TestTrajectory_Series(t *testing.T) {
	tr := &Trajectory{States: []State{{1, 2}, {3, 4}, {5, 6}}}

	got := tr.Series(1)
	want := []float64{2, 4, 6}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Series(1)[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	final, err := tr.Final()
	if err != nil || final[0] != 5 {
		t.Errorf("Final() = %v, %v", final, err)
	}

	if _, err := (&Trajectory{}).Final(); !errors.Is(err, ErrEmptyTrajectory) {
		t.Errorf("expected ErrEmptyTrajectory, got %v", err)
	}
}

func TestNewTimeGrid(t *testing.T) {
	tests := []struct {
		name   string
		tMax   float64
		dt     float64
		points int
	}{
		{"default horizon", 150, 0.1, 1501},
		{"unit step", 10, 1, 11},
		{"single step", 1, 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewTimeGrid(tt.tMax, tt.dt)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if g.Len() != tt.points {
				t.Errorf("Len() = %d, want %d", g.Len(), tt.points)
			}
			if g.At(0) != 0 {
				t.Errorf("first point = %v, want 0", g.At(0))
			}
			if g.Horizon() != tt.tMax {
				t.Errorf("last point = %v, want %v", g.Horizon(), tt.tMax)
			}
			if g.Dt() != tt.dt {
				t.Errorf("Dt() = %v, want %v", g.Dt(), tt.dt)
			}
		})
	}
}

func TestNewTimeGridPointsAreIndexTimesStep(t *testing.T) {
	g, err := NewTimeGrid(150, 0.1)
	if err != nil {
		t.Fatal(err)
	}

	step := 150.0 / 1500
	for i := 0; i < g.Len()-1; i++ {
		if want := float64(i) * step; g.At(i) != want {
			t.Fatalf("point %d = %v, want %v", i, g.At(i), want)
		}
	}
	if g.At(3) != 0.30000000000000004 {
		t.Errorf("point 3 = %v", g.At(3))
	}
	if g.At(244) != 24.400000000000002 {
		t.Errorf("point 244 = %v", g.At(244))
	}
	if g.Horizon() != 150 {
		t.Errorf("last point pinned to horizon, got %v", g.Horizon())
	}
}

func TestNewTimeGrid_Invalid(t *testing.T) {
	tests := []struct {
		name string
		tMax float64
		dt   float64
	}{
		{"zero dt", 10, 0},
		{"negative dt", 10, -0.1},
		{"zero horizon", 0, 0.1},
		{"negative horizon", -1, 0.1},
		{"dt beyond horizon", 1, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewTimeGrid(tt.tMax, tt.dt); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestGridFromPoints(t *testing.T) {
	g, err := GridFromPoints([]float64{0, 0.5, 1.0, 1.5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Len() != 4 || g.Dt() != 0.5 {
		t.Errorf("got len=%d dt=%v", g.Len(), g.Dt())
	}

	tests := []struct {
		name   string
		points []float64
		want   error
	}{
		{"empty", nil, ErrShortGrid},
		{"single", []float64{0}, ErrShortGrid},
		{"decreasing", []float64{1, 0}, ErrInvalidGrid},
		{"repeated", []float64{0, 1, 1}, ErrInvalidGrid},
		{"non uniform", []float64{0, 1, 3}, ErrInvalidGrid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := GridFromPoints(tt.points); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestGridPointsAreCopied(t *testing.T) {
	src := []float64{0, 1, 2}
	g, _ := GridFromPoints(src)
	src[1] = 42

	pts := g.Points()
	if pts[1] != 1 {
		t.Error("grid shares memory with its source slice")
	}
	pts[2] = 42
	if g.At(2) != 2 {
		t.Error("Points() exposes internal storage")
	}
}
