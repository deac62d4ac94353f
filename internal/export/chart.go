package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/seiqr/internal/dynamo"
	"github.com/san-kum/seiqr/internal/epidemic"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Format selects the chart renderer.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

var ErrUnknownFormat = errors.New("export: unknown chart format")

// ParseFormat accepts "png" or "svg" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case PNG, SVG:
		return f, nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownFormat)
}

// ContentType is the MIME type of a rendered chart.
func (f Format) ContentType() string {
	if f == SVG {
		return "image/svg+xml"
	}
	return "image/png"
}

func (f Format) provider() chart.RendererProvider {
	if f == SVG {
		return chart.SVG
	}
	return chart.PNG
}

// Line colors in compartment order.
var SeriesColors = [epidemic.NumCompartments]string{"008000", "00ffff", "ff0000", "4b0082", "0000ff"}

type ChartOptions struct {
	Format Format
	Width  int
	Height int
	Title  string
	// TickDays is the x-axis tick spacing.
	TickDays float64
}

func (o ChartOptions) withDefaults() ChartOptions {
	if o.Format == "" {
		o.Format = PNG
	}
	if o.Width <= 0 {
		o.Width = 800
	}
	if o.Height <= 0 {
		o.Height = 400
	}
	if o.TickDays <= 0 {
		o.TickDays = 25
	}
	return o
}

func generateTicks(lo, hi, interval float64, label func(float64) string) []chart.Tick {
	var ticks []chart.Tick
	for i := 0; ; i++ {
		v := lo + float64(i)*interval
		if v > hi+interval*1e-9 {
			break
		}
		ticks = append(ticks, chart.Tick{Value: v, Label: label(v)})
	}
	return ticks
}

func dayLabel(v float64) string     { return fmt.Sprintf("%.0f", v) }
func percentLabel(v float64) string { return fmt.Sprintf("%.0f%%", 100*v) }

// NewChart builds the compartment chart: one line per compartment, x from 0
// to the horizon in days, y fixed to [0, 1] shown as percent.
func NewChart(tr *dynamo.Trajectory, opts ChartOptions) (*chart.Chart, error) {
	if tr == nil || tr.Len() < 2 {
		return nil, ErrNoData
	}
	opts = opts.withDefaults()
	horizon := tr.Times[len(tr.Times)-1]

	series := make([]chart.Series, 0, epidemic.NumCompartments)
	for c, label := range epidemic.CompartmentLabels {
		series = append(series, chart.ContinuousSeries{
			Name:    label,
			XValues: tr.Times,
			YValues: tr.Series(c),
			Style: chart.Style{
				StrokeColor: drawing.ColorFromHex(SeriesColors[c]),
				StrokeWidth: 2.0,
			},
		})
	}

	graph := &chart.Chart{
		Title:  opts.Title,
		Width:  opts.Width,
		Height: opts.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			Name:  "Days",
			Range: &chart.ContinuousRange{Min: 0, Max: horizon},
			ValueFormatter: func(v interface{}) string {
				return dayLabel(v.(float64))
			},
			Ticks: generateTicks(0, horizon, opts.TickDays, dayLabel),
		},
		YAxis: chart.YAxis{
			Name:  "% of population",
			Range: &chart.ContinuousRange{Min: 0, Max: 1},
			ValueFormatter: func(v interface{}) string {
				return percentLabel(v.(float64))
			},
			Ticks: generateTicks(0, 1, 0.1, percentLabel),
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.LegendLeft(graph)}

	return graph, nil
}

// WriteChart renders the compartment chart to w.
func WriteChart(w io.Writer, tr *dynamo.Trajectory, opts ChartOptions) error {
	opts = opts.withDefaults()
	graph, err := NewChart(tr, opts)
	if err != nil {
		return err
	}
	return graph.Render(opts.Format.provider(), w)
}
