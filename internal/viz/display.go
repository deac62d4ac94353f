package viz

import (
	"fmt"
	"io"

	"github.com/san-kum/seiqr/internal/controller"
)

// TextDisplay prints each run to a writer: the status line and, when Plot
// is set, a compartment chart.
type TextDisplay struct {
	W       io.Writer
	Plot    bool
	Options PlotOptions
}

var _ controller.Display = (*TextDisplay)(nil)

func NewTextDisplay(w io.Writer, plot bool) *TextDisplay {
	return &TextDisplay{W: w, Plot: plot}
}

func (d *TextDisplay) Render(run *controller.Run) {
	if run == nil {
		return
	}
	if d.Plot {
		fmt.Fprintln(d.W, PlotCompartments(run.Trajectory, d.Options))
	}
	fmt.Fprintln(d.W, run.Peak.StatusLine())
}
