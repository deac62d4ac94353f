package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/seiqr/internal/dynamo"
	"github.com/san-kum/seiqr/internal/epidemic"
)

// PlotOptions sizes a terminal chart. Zero values fall back to 80x15.
type PlotOptions struct {
	Width   int
	Height  int
	Caption string
	Theme   Theme
}

func (o PlotOptions) withDefaults() PlotOptions {
	if o.Width <= 0 {
		o.Width = 80
	}
	if o.Height <= 0 {
		o.Height = 15
	}
	if o.Theme.Name == "" {
		o.Theme = CurrentTheme
	}
	return o
}

// PlotCompartments draws all five compartment fractions against time on a
// shared axis fixed to [0, 1].
func PlotCompartments(tr *dynamo.Trajectory, opts PlotOptions) string {
	if tr == nil || tr.Len() < 2 {
		return ""
	}
	opts = opts.withDefaults()

	series := make([][]float64, epidemic.NumCompartments)
	for i := range series {
		series[i] = tr.Series(i)
	}

	caption := opts.Caption
	if caption == "" {
		caption = fmt.Sprintf("fraction of population, days 0-%.0f", tr.Times[len(tr.Times)-1])
	}

	return asciigraph.PlotMany(series,
		asciigraph.Height(opts.Height),
		asciigraph.Width(opts.Width),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(1),
		asciigraph.Precision(2),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(opts.Theme.Series[:]...),
		asciigraph.SeriesLegends(epidemic.CompartmentLabels[:]...),
	)
}

// PlotSeries draws a single series, as used for sweeps and diagnostics.
func PlotSeries(data []float64, caption string, width, height int) string {
	if len(data) == 0 {
		return ""
	}
	opts := PlotOptions{Width: width, Height: height}.withDefaults()
	return asciigraph.Plot(data,
		asciigraph.Height(opts.Height),
		asciigraph.Width(opts.Width),
		asciigraph.Caption(caption),
	)
}
