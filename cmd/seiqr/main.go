package main

import (
	"fmt"
	"math"
	"net"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/pkg/browser"
	"github.com/rs/xid"
	"github.com/san-kum/seiqr/internal/analysis"
	"github.com/san-kum/seiqr/internal/config"
	"github.com/san-kum/seiqr/internal/controller"
	"github.com/san-kum/seiqr/internal/dynamo"
	"github.com/san-kum/seiqr/internal/epidemic"
	"github.com/san-kum/seiqr/internal/experiment"
	"github.com/san-kum/seiqr/internal/export"
	"github.com/san-kum/seiqr/internal/metrics"
	"github.com/san-kum/seiqr/internal/server"
	"github.com/san-kum/seiqr/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile  string
	preset      string
	integrator  string
	diagnostics bool
	showPlot    bool
	plotHeight  int
	everyDays   float64
	themeName   string
	plotOut     string
	csvOut      string
	jsonOut     string
	chartWidth  int
	chartHeight int
	chartTitle  string
	sweepMin    float64
	sweepMax    float64
	sweepSteps  int
	addr        string
	openBrowser bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd registers the seiqr commands. The root command runs the
// interactive slider panel when no subcommand is given.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "seiqr",
		Short: "SEIQR epidemic model with quarantine",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadEnv(); err != nil {
				return err
			}
			return viz.SetTheme(themeName)
		},
		RunE: runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml), defaults to $"+config.EnvConfig)
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", viz.ThemeClassic.Name, "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	for _, s := range controller.Sliders {
		rootCmd.PersistentFlags().Float64(s.Name, s.Default, fmt.Sprintf("%s [%g, %g]", s.Label, s.Min, s.Max))
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run simulation and print the infective peak",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	runCmd.Flags().BoolVar(&diagnostics, "diagnostics", false, "report conservation and bounds metrics")
	runCmd.Flags().BoolVar(&showPlot, "plot", true, "print compartment chart")
	runCmd.Flags().IntVar(&plotHeight, "height", 15, "chart height in rows")
	runCmd.Flags().Float64Var(&everyDays, "every", 0, "print compartment fractions every N days")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive slider panel",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "render compartment chart to PNG or SVG",
		Args:  cobra.NoArgs,
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&plotOut, "out", "seiqr.png", "output file (.png or .svg)")
	plotCmd.Flags().IntVar(&chartWidth, "width", 800, "image width")
	plotCmd.Flags().IntVar(&chartHeight, "height", 400, "image height")
	plotCmd.Flags().StringVar(&chartTitle, "title", "", "chart title")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv",
		Short: "export trajectory to CSV",
		Args:  cobra.NoArgs,
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVar(&csvOut, "out", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json",
		Short: "export run to JSON",
		Args:  cobra.NoArgs,
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVar(&jsonOut, "out", "", "output file (default stdout)")

	replayCmd := &cobra.Command{
		Use:   "replay [result.json]",
		Short: "re-run an exported result and check it reproduces",
		Args:  cobra.ExactArgs(1),
		RunE:  replay,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [slider]",
		Short: "vary one slider and tabulate the infective peak",
		Args:  cobra.ExactArgs(1),
		RunE:  sweepSlider,
	}
	sweepCmd.Flags().Float64Var(&sweepMin, "min", math.NaN(), "range start (default slider minimum)")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", math.NaN(), "range end (default slider maximum)")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 11, "number of runs")

	compareCmd := &cobra.Command{
		Use:   "compare [integrator1] [integrator2] ...",
		Short: "compare integrators on the same inputs",
		Args:  cobra.MinimumNArgs(1),
		RunE:  compareIntegrators,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the HTTP dashboard",
		Args:  cobra.NoArgs,
		RunE:  serve,
	}
	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config or $"+config.EnvAddr+")")
	serveCmd.Flags().BoolVar(&openBrowser, "open", false, "open the dashboard in a browser")

	rootCmd.AddCommand(runCmd, tuiCmd, plotCmd, exportCSVCmd, exportJSONCmd, replayCmd, sweepCmd, compareCmd, presetsCmd, serveCmd)
	return rootCmd
}

// loadConfig resolves preset, then config file, then environment, and applies
// slider and integrator flags on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case preset != "":
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	default:
		loaded, err := config.FromEnv()
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	for _, s := range controller.Sliders {
		if !flags.Changed(s.Name) {
			continue
		}
		v, err := flags.GetFloat64(s.Name)
		if err != nil {
			return nil, err
		}
		cfg.SetInput(s.Name, v)
	}
	if flags.Changed("integrator") || cfg.Integrator == "" {
		cfg.Integrator = integrator
	}

	if err := cfg.GetInputs().Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runExperiment(cfg *config.Config, withDiagnostics bool, observers ...dynamo.Observer) (*controller.Run, error) {
	exp := experiment.New(cfg)
	if err := exp.Setup(experiment.NewRegistry(), withDiagnostics); err != nil {
		return nil, err
	}
	for _, o := range observers {
		exp.GetSimulator().AddObserver(o)
	}
	traj, peak, err := exp.Run()
	if err != nil {
		return nil, err
	}
	return &controller.Run{
		ID:         xid.New().String(),
		Inputs:     cfg.GetInputs(),
		Params:     exp.Params(),
		Trajectory: traj,
		Peak:       peak,
	}, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var observers []dynamo.Observer
	checkpoints := metrics.NewCheckpoints(everyDays)
	if everyDays > 0 {
		observers = append(observers, checkpoints)
	}

	start := time.Now()
	run, err := runExperiment(cfg, diagnostics, observers...)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	display := viz.NewTextDisplay(os.Stdout, showPlot)
	display.Options.Height = plotHeight
	display.Render(run)

	if len(checkpoints.Times) > 0 {
		fmt.Println()
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintf(w, "DAY\t%s\t\n", strings.Join(epidemic.CompartmentNames[:], "\t"))
		for k, x := range checkpoints.States {
			fmt.Fprintf(w, "%g\t", checkpoints.Times[k])
			for _, v := range x {
				fmt.Fprintf(w, "%.2f%%\t", 100*v)
			}
			fmt.Fprintln(w)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	fmt.Printf("\nrun id: %s\n", run.ID)
	fmt.Printf("integrator: %s\n", cfg.Integrator)
	fmt.Printf("steps: %d in %v\n", run.Trajectory.StepsTaken, elapsed)
	fmt.Printf("params: %s\n", run.Params)

	if len(run.Trajectory.Metrics) > 0 {
		fmt.Println("\nmetrics:")
		names := make([]string, 0, len(run.Trajectory.Metrics))
		for name := range run.Trajectory.Metrics {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  %s: %.3g\n", name, run.Trajectory.Metrics[name])
		}
	}
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	grid, err := cfg.Grid()
	if err != nil {
		return err
	}
	header, err := cfg.Header()
	if err != nil {
		return err
	}

	ctrl := controller.New(grid, cfg.InitialState(), nil)
	if _, err := ctrl.Apply(cfg.GetInputs()); err != nil {
		return err
	}
	return viz.RunTUI(ctrl, strings.TrimSpace(header))
}

func plotRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	format, err := export.ParseFormat(strings.TrimPrefix(filepath.Ext(plotOut), "."))
	if err != nil {
		return err
	}
	run, err := runExperiment(cfg, false)
	if err != nil {
		return err
	}

	f, err := os.Create(plotOut)
	if err != nil {
		return err
	}
	defer f.Close()

	opts := export.ChartOptions{Format: format, Width: chartWidth, Height: chartHeight, Title: chartTitle}
	if err := export.WriteChart(f, run.Trajectory, opts); err != nil {
		return err
	}
	fmt.Printf("%s\nwrote %s\n", run.Peak.StatusLine(), plotOut)
	return f.Close()
}

// output returns stdout for an empty path or the created file; the returned
// func closes it.
func output(path string) (*os.File, func() error, error) {
	if path == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	run, err := runExperiment(cfg, false)
	if err != nil {
		return err
	}

	w, closeFn, err := output(csvOut)
	if err != nil {
		return err
	}
	if err := export.WriteCSV(w, run.Trajectory); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}

func exportJSON(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	run, err := runExperiment(cfg, true)
	if err != nil {
		return err
	}
	doc, err := export.NewResult(run.ID, run.Inputs, run.Params, run.Trajectory, run.Peak)
	if err != nil {
		return err
	}

	w, closeFn, err := output(jsonOut)
	if err != nil {
		return err
	}
	if err := export.WriteJSON(w, doc); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}

// replay rebuilds the grid, initial state and rates stored in an export-json
// document, integrates again and compares the peak.
func replay(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	doc, err := export.ReadJSON(f)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	params, err := epidemic.ParamsFromMap(doc.Params)
	if err != nil {
		return err
	}
	grid, err := dynamo.GridFromPoints(doc.Time)
	if err != nil {
		return err
	}
	init := make(dynamo.State, epidemic.NumCompartments)
	for c, name := range epidemic.CompartmentNames {
		series := doc.Series[name]
		if len(series) == 0 {
			return fmt.Errorf("series %s: %w", name, export.ErrNoData)
		}
		init[c] = series[0]
	}

	traj, err := epidemic.Integrate(init, params, grid)
	if err != nil {
		return err
	}
	peak, err := epidemic.Summarize(traj)
	if err != nil {
		return err
	}

	fmt.Printf("params: %s\n%s\n", params, peak.StatusLine())
	if peak != doc.Peak {
		return fmt.Errorf("peak mismatch: stored %+v, replayed %+v", doc.Peak, peak)
	}
	fmt.Println("reproduced")
	return nil
}

func sweepSlider(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	grid, err := cfg.Grid()
	if err != nil {
		return err
	}

	name := args[0]
	s, ok := controller.SliderByName(name)
	if !ok {
		return fmt.Errorf("unknown slider: %s", name)
	}
	lo, hi := sweepMin, sweepMax
	if math.IsNaN(lo) {
		lo = s.Min
	}
	if math.IsNaN(hi) {
		hi = s.Max
	}

	points, err := analysis.Sweep(cfg.GetInputs(), name, lo, hi, sweepSteps, cfg.InitialState(), grid)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tMAX I\tDAY\n", strings.ToUpper(name))
	for _, p := range points {
		fmt.Fprintf(w, "%g\t%.1f%%\t%d\n", p.Value, 100*p.Peak.MaxI, p.Peak.Day())
	}
	if err := w.Flush(); err != nil {
		return err
	}

	caption := fmt.Sprintf("max I vs %s (%g to %g)", name, lo, hi)
	fmt.Printf("\n%s\n", analysis.SweepToASCII(points, caption, 60, 12))
	return nil
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n\n", cfg.GetInputs().Params())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tMAX I\tDAY\tFINAL R\tDRIFT\tTIME")

	var reference []float64
	var deviation []float64
	for _, name := range args {
		cfg.Integrator = name
		start := time.Now()
		run, err := runExperiment(cfg, true)
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		final, err := run.Trajectory.Final()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%.6f\t%d\t%.6f\t%.2e\t%v\n",
			name,
			run.Peak.MaxI,
			run.Peak.Day(),
			final[epidemic.R],
			run.Trajectory.Metrics[metrics.ConservationName],
			elapsed,
		)

		infective := run.Trajectory.Series(epidemic.I)
		if reference == nil {
			reference = infective
			continue
		}
		if deviation == nil {
			deviation = make([]float64, len(infective))
			for i := range infective {
				deviation[i] = infective[i] - reference[i]
			}
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if deviation != nil {
		caption := fmt.Sprintf("I(%s) - I(%s)", args[1], args[0])
		fmt.Println()
		fmt.Println(viz.PlotSeries(deviation, caption, 80, 10))
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	fmt.Println("presets:")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		fmt.Printf("  %-16s %s\n", name, cfg.GetInputs().Params())
	}
	return nil
}

func serve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	grid, err := cfg.Grid()
	if err != nil {
		return err
	}
	header, err := cfg.Header()
	if err != nil {
		return err
	}

	listenAddr := cfg.Server.Addr
	if addr != "" {
		listenAddr = addr
	}
	if listenAddr == "" {
		listenAddr = config.DefaultAddr
	}

	l, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}

	srv := server.New(grid, cfg.InitialState(), server.WithHeader(header))
	if openBrowser {
		url := "http://" + l.Addr().String() + "/?" + server.Query(cfg.GetInputs()).Encode()
		if err := browser.OpenURL(url); err != nil {
			fmt.Fprintf(os.Stderr, "could not open browser: %v\n", err)
		}
	}
	return srv.Serve(l)
}
