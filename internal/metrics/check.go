package metrics

import (
	"fmt"

	"github.com/san-kum/seiqr/internal/dynamo"
)

// CheckTrajectory replays tr through the conservation and bounds metrics and
// fails if any state leaves [0,1] or the total drifts from 1 by more than
// tolerance. It only reads the trajectory.
func CheckTrajectory(tr *dynamo.Trajectory, tolerance float64) error {
	cons := NewConservation(1)
	bounds := NewBounds()

	for i, x := range tr.States {
		t := 0.0
		if i < len(tr.Times) {
			t = tr.Times[i]
		}
		cons.Observe(x, t)
		bounds.Observe(x, t)
	}

	if n := bounds.Violations(); n > 0 {
		return fmt.Errorf("%d of %d states have a compartment outside [0,1]", n, len(tr.States))
	}
	if drift := cons.Value(); !(drift <= tolerance) {
		return fmt.Errorf("population drift %g exceeds %g", drift, tolerance)
	}
	return nil
}
