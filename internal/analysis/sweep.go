package analysis

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/seiqr/internal/controller"
	"github.com/san-kum/seiqr/internal/dynamo"
	"github.com/san-kum/seiqr/internal/epidemic"
)

// SweepPoint is the infective peak obtained for one input value.
type SweepPoint struct {
	Value float64
	Peak  epidemic.Peak
}

// Sweep re-simulates the full grid for evenly spaced values of one slider
// between lo and hi, keeping every other input from base. Runs are
// independent and execute in parallel; points are returned in value order.
func Sweep(
	base controller.Inputs,
	slider string,
	lo, hi float64,
	steps int,
	init dynamo.State,
	grid dynamo.TimeGrid,
) ([]SweepPoint, error) {
	s, ok := controller.SliderByName(slider)
	if !ok {
		return nil, fmt.Errorf("%q: %w", slider, controller.ErrUnknownInput)
	}
	if !s.Contains(lo) || !s.Contains(hi) {
		return nil, fmt.Errorf("%s range [%g, %g] outside [%g, %g]: %w", slider, lo, hi, s.Min, s.Max, controller.ErrOutOfRange)
	}
	if steps < 2 {
		steps = 2 // Prevent division by zero
	}

	stride := (hi - lo) / float64(steps-1)
	results := make([]SweepPoint, steps)
	errs := make([]error, steps)

	dynamo.ParallelFor(steps, 1, func(start, end int) {
		inputs := base.Clone()
		for i := start; i < end; i++ {
			v := lo + float64(i)*stride
			if i == steps-1 {
				v = hi
			}
			inputs[slider] = v
			results[i].Value = v

			traj, err := epidemic.Integrate(init, inputs.Params(), grid)
			if err != nil {
				errs[i] = err
				continue
			}
			results[i].Peak, errs[i] = epidemic.Summarize(traj)
		}
	})

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// SweepToASCII plots peak I against the swept values in sweep order.
func SweepToASCII(data []SweepPoint, caption string, width, height int) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	peaks := make([]float64, len(data))
	for i, p := range data {
		peaks[i] = p.Peak.MaxI
	}

	return asciigraph.Plot(peaks,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(2),
		asciigraph.Caption(caption),
	)
}
