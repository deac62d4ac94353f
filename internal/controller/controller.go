package controller

import (
	"fmt"
	"math"

	"github.com/rs/xid"
	"github.com/san-kum/seiqr/internal/dynamo"
	"github.com/san-kum/seiqr/internal/epidemic"
)

//go:generate mockgen -destination mock_display_test.go -package controller github.com/san-kum/seiqr/internal/controller Display

// Run is one complete simulation over the controller's grid.
type Run struct {
	ID         string
	Inputs     Inputs
	Params     epidemic.Params
	Trajectory *dynamo.Trajectory
	Peak       epidemic.Peak
}

// Display consumes runs. Every run replaces the previous one.
type Display interface {
	Render(run *Run)
}

// Controller turns input changes into full re-simulations. It is not safe
// for concurrent use; each call completes its run before returning.
type Controller struct {
	grid    dynamo.TimeGrid
	init    dynamo.State
	inputs  Inputs
	display Display
	latest  *Run
}

// New creates a controller with default inputs. display may be nil.
func New(grid dynamo.TimeGrid, init dynamo.State, display Display) *Controller {
	return &Controller{
		grid:    grid,
		init:    init.Clone(),
		inputs:  DefaultInputs(),
		display: display,
	}
}

func (c *Controller) Inputs() Inputs { return c.inputs.Clone() }

func (c *Controller) Params() epidemic.Params { return c.inputs.Params() }

func (c *Controller) Grid() dynamo.TimeGrid { return c.grid }

// Latest returns the most recent run, or nil before the first one.
func (c *Controller) Latest() *Run { return c.latest }

// Set changes one input and re-simulates.
func (c *Controller) Set(name string, value float64) (*Run, error) {
	s, ok := SliderByName(name)
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownInput)
	}
	if !s.Contains(value) {
		return nil, fmt.Errorf("%s=%g not in [%g, %g]: %w", name, value, s.Min, s.Max, ErrOutOfRange)
	}

	next := c.inputs.Clone()
	next[name] = value
	return c.runWith(next)
}

// Nudge moves an input by steps slider increments, clamped to its range.
func (c *Controller) Nudge(name string, steps int) (*Run, error) {
	s, ok := SliderByName(name)
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownInput)
	}

	v := s.Clamp(c.inputs[name] + float64(steps)*s.Step)
	v = roundTo(v, s.Step)
	return c.Set(name, v)
}

// Apply replaces several inputs at once and performs a single run.
func (c *Controller) Apply(in Inputs) (*Run, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	next := c.inputs.Clone()
	for k, v := range in {
		next[k] = v
	}
	return c.runWith(next)
}

// Refresh re-simulates the whole grid with the current inputs and pushes the
// result to the display.
func (c *Controller) Refresh() (*Run, error) {
	return c.runWith(c.inputs)
}

// runWith simulates in and, only if the run succeeds, makes in the current
// inputs and its run the latest one.
func (c *Controller) runWith(in Inputs) (*Run, error) {
	params := in.Params()

	traj, err := epidemic.Integrate(c.init, params, c.grid)
	if err != nil {
		return nil, err
	}
	peak, err := epidemic.Summarize(traj)
	if err != nil {
		return nil, err
	}

	run := &Run{
		ID:         xid.New().String(),
		Inputs:     in.Clone(),
		Params:     params,
		Trajectory: traj,
		Peak:       peak,
	}
	c.inputs = in
	c.latest = run

	if c.display != nil {
		c.display.Render(run)
	}
	return run, nil
}

// roundTo snaps v to a multiple of step, dividing by the reciprocal for
// decimal steps so 19 steps of 0.1 give 1.9 rather than 1.9000000000000001.
func roundTo(v, step float64) float64 {
	if step <= 0 {
		return v
	}
	k := math.Round(v / step)
	if inv := math.Round(1 / step); inv >= 1 && math.Abs(inv*step-1) < 1e-12 {
		return k / inv
	}
	return k * step
}
