package epidemic

import (
	"fmt"
	"math"

	"github.com/san-kum/seiqr/internal/dynamo"
	"gonum.org/v1/gonum/floats"
)

// Peak is the maximum infective fraction of a trajectory.
type Peak struct {
	MaxI  float64 `json:"max_i"`
	Index int     `json:"index"`
	Time  float64 `json:"time"`
}

// Day is the peak time truncated to a whole day.
func (p Peak) Day() int {
	return int(math.Floor(p.Time))
}

func (p Peak) StatusLine() string {
	return fmt.Sprintf("max I = %.0f%% on day %d", 100*p.MaxI, p.Day())
}

// Summarize finds the first index attaining the maximum of I. A later value
// only replaces the running maximum when strictly greater; NaN never does.
func Summarize(tr *dynamo.Trajectory) (Peak, error) {
	if tr == nil || len(tr.States) == 0 {
		return Peak{}, dynamo.ErrEmptyTrajectory
	}

	infective := tr.Series(I)
	best := floats.MaxIdx(infective)

	peak := Peak{MaxI: infective[best], Index: best}
	if best < len(tr.Times) {
		peak.Time = tr.Times[best]
	}
	return peak, nil
}
