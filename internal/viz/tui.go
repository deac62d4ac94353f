package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/seiqr/internal/controller"
	"github.com/san-kum/seiqr/internal/epidemic"
)

const (
	defaultChartWidth = 70
	chartHeight       = 14
	barWidth          = 12
)

// Model is the interactive slider panel. Every slider change triggers a
// full re-simulation through the controller.
type Model struct {
	ctrl     *controller.Controller
	header   string
	selected int
	theme    Theme
	width    int
	compact  bool
	showHelp bool
	err      error
}

// NewModel wraps ctrl, running it once if it has no result yet.
func NewModel(ctrl *controller.Controller, header string) Model {
	m := Model{
		ctrl:   ctrl,
		header: header,
		theme:  CurrentTheme,
	}
	if ctrl.Latest() == nil {
		_, m.err = ctrl.Refresh()
	}
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// Selected returns the name of the highlighted slider.
func (m Model) Selected() string { return controller.Sliders[m.selected].Name }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			m.selected = (m.selected + len(controller.Sliders) - 1) % len(controller.Sliders)
		case "down", "j", "tab":
			m.selected = (m.selected + 1) % len(controller.Sliders)
		case "left", "h":
			_, m.err = m.ctrl.Nudge(m.Selected(), -1)
		case "right", "l":
			_, m.err = m.ctrl.Nudge(m.Selected(), 1)
		case "r":
			_, m.err = m.ctrl.Apply(controller.DefaultInputs())
		case "t":
			m.theme = NextTheme(m.theme)
		case "s":
			m.compact = !m.compact
		case "?":
			m.showHelp = !m.showHelp
		}
	}
	return m, nil
}

func (m Model) chartWidth() int {
	if m.width > 20 && m.width-16 < defaultChartWidth {
		return m.width - 16
	}
	return defaultChartWidth
}

func (m Model) View() string {
	var s strings.Builder

	if m.header != "" {
		s.WriteString(themed(headerStyle, m.theme.Primary).Render(m.header) + "\n\n")
	}

	run := m.ctrl.Latest()
	if run != nil {
		s.WriteString(themed(valueStyle, m.theme.Warning).Render(run.Peak.StatusLine()) + "\n\n")
		if m.compact {
			s.WriteString(m.sparklines(run) + "\n")
		} else {
			s.WriteString(PlotCompartments(run.Trajectory, PlotOptions{
				Width:  m.chartWidth(),
				Height: chartHeight,
				Theme:  m.theme,
			}) + "\n\n")
		}
	}

	inputs := m.ctrl.Inputs()
	var panel strings.Builder
	for i, sl := range controller.Sliders {
		val := fmt.Sprintf("%.*f", decimals(sl.Step), inputs[sl.Name])
		line := labelStyle.Render(sl.Label) + " " + SliderBar(inputs[sl.Name], sl.Min, sl.Max, barWidth) + " " + val
		if i == m.selected {
			panel.WriteString(themed(valueStyle, m.theme.Accent).Render("> "+line) + "\n")
		} else {
			panel.WriteString("  " + themed(lipgloss.NewStyle(), m.theme.Text).Render(line) + "\n")
		}
	}
	s.WriteString(panelStyle.Render(strings.TrimSuffix(panel.String(), "\n")) + "\n")

	if m.err != nil {
		s.WriteString(themed(errStyle, m.theme.Warning).Render("error: "+m.err.Error()) + "\n")
	}

	if m.showHelp {
		s.WriteString(themed(helpStyle, m.theme.Muted).Render(
			"↑/k ↓/j  select slider\n←/h →/l  adjust by one step\nr        reset sliders\nt        cycle theme\ns        toggle sparklines\nq        quit"))
	} else {
		s.WriteString(themed(helpStyle, m.theme.Muted).Render("↑↓:Select ←→:Adjust R:Reset T:Theme S:Sparklines ?:Help Q:Quit"))
	}
	return s.String()
}

// sparklines draws one row per compartment, each scaled to its own range,
// followed by the final fraction.
func (m Model) sparklines(run *controller.Run) string {
	var b strings.Builder
	last := run.Trajectory.Len() - 1
	for c, name := range epidemic.CompartmentNames {
		series := run.Trajectory.Series(c)
		fmt.Fprintf(&b, "%s %s %5.1f%%\n", name, Sparkline(series, m.chartWidth()), 100*series[last])
	}
	return themed(lipgloss.NewStyle(), m.theme.Text).Render(strings.TrimSuffix(b.String(), "\n")) + "\n"
}

// decimals is the number of fractional digits needed to show multiples of step.
func decimals(step float64) int {
	d := 0
	for step < 1 && d < 6 {
		step *= 10
		d++
	}
	return d
}

// RunTUI starts the interactive panel on the alternate screen.
func RunTUI(ctrl *controller.Controller, header string) error {
	_, err := tea.NewProgram(NewModel(ctrl, header), tea.WithAltScreen()).Run()
	return err
}
