package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/orbsim/internal/analysis"
	"github.com/san-kum/orbsim/internal/config"
	"github.com/san-kum/orbsim/internal/dynamo"
	"github.com/san-kum/orbsim/internal/export"
	"github.com/san-kum/orbsim/internal/integrators"
	"github.com/san-kum/orbsim/internal/metrics"
	"github.com/san-kum/orbsim/internal/sim"
	"github.com/san-kum/orbsim/internal/viz"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r2"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ffff"))
	errorStyle = viz.StatusError
	warnStyle  = viz.StatusPaused
)

// loadSystem resolves the system from --config or --preset, then applies the
// flags the user actually set.
func loadSystem(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	} else {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("zero-momentum") {
		cfg.ZeroMomentum = zeroMomentum
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

type run struct {
	cfg    *config.Config
	result *sim.Result
	energy *metrics.EnergySeries
	wall   time.Duration
}

// simulate integrates cfg. A run stopped by a non-finite state or by an
// interrupt still returns what was recorded, together with the error.
func simulate(cfg *config.Config, observers ...dynamo.Observer) (*run, error) {
	integ, err := integrators.Get(cfg.Integrator)
	if err != nil {
		return nil, err
	}

	masses := cfg.Masses()
	energy := metrics.NewEnergySeries(masses, cfg.G)

	s := sim.New(cfg.Gravity(), integ)
	s.AddMetric(metrics.NewEnergyDrift(masses, cfg.G))
	s.AddMetric(metrics.NewMomentumDrift(masses))
	s.AddMetric(metrics.NewAngularMomentumDrift(masses))
	s.AddMetric(energy)
	if cfg.Extent > 0 {
		s.AddMetric(metrics.NewContainment(cfg.Extent))
	}
	for _, o := range observers {
		s.AddObserver(o)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	result, err := s.Run(ctx, masses, cfg.InitialState(), cfg.SimConfig())
	if result == nil {
		return nil, err
	}
	return &run{cfg: cfg, result: result, energy: energy, wall: time.Since(start)}, err
}

// progress draws a bar on stderr roughly every percent of the run.
type progress struct {
	total, every int
}

func newProgress(total int) *progress {
	return &progress{total: total, every: max(1, total/100)}
}

func (p *progress) OnStep(step int, x dynamo.State, t float64) {
	if step%p.every != 0 && step != p.total {
		return
	}
	frac := 1.0
	if p.total > 0 {
		frac = float64(step) / float64(p.total)
	}
	fmt.Fprintf(os.Stderr, "\r%s %3.0f%%  %s", viz.ProgressBar(frac, 30), 100*frac, viz.Subtle.Render(viz.FormatTime(t)))
	if step == p.total {
		fmt.Fprintln(os.Stderr)
	}
}

func meta(cfg *config.Config, result *sim.Result) export.Meta {
	return export.Meta{
		Name:       cfg.Name,
		Integrator: cfg.Integrator,
		G:          cfg.G,
		Bodies:     cfg.Names(),
		Masses:     cfg.Masses(),
		Colors:     cfg.Colors(),
		Extent:     cfg.Extent,
		Metrics:    result.Metrics,
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadSystem(cmd)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("%s: %d bodies, %d steps of %s (%s)",
		cfg.Name, len(cfg.Bodies), cfg.Steps, viz.FormatTime(cfg.Dt), cfg.Integrator)))

	var observers []dynamo.Observer
	if !quiet {
		observers = append(observers, newProgress(cfg.Steps))
	}
	r, runErr := simulate(cfg, observers...)
	if r == nil {
		return runErr
	}
	if runErr != nil {
		fmt.Fprintln(os.Stderr)
		fmt.Println(warnStyle.Render(fmt.Sprintf("stopped early: %v", runErr)))
	}

	fmt.Printf("completed %d steps in %v\n", r.result.StepsTaken, r.wall.Round(time.Millisecond))
	fmt.Printf("simulated: %s\n\n", viz.FormatTime(r.result.Trajectory.Time(r.result.Trajectory.Len()-1)))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	for _, name := range []string{"energy_drift", "momentum_drift", "angular_momentum_drift", "containment"} {
		if v, ok := r.result.Metrics[name]; ok {
			fmt.Fprintf(w, "%s\t%.3e\n", name, v)
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "BODY\tX (m)\tY (m)\tVX (m/s)\tVY (m/s)")
	final := r.result.Trajectory.Final()
	for i, name := range cfg.Names() {
		p, v := final.Positions[i], final.Velocities[i]
		fmt.Fprintf(w, "%s\t%.4e\t%.4e\t%.4e\t%.4e\n", name, p.X, p.Y, v.X, v.Y)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if outFile != "" {
		if err := export.ToFile(outFile, meta(cfg, r.result), r.result.Trajectory); err != nil {
			return err
		}
		fmt.Printf("\nwrote %s\n", outFile)
	}

	return runErr
}

// recorded is a trajectory plus what the renderers need to label it. cfg and
// drift are nil for trajectories read from --input.
type recorded struct {
	traj   *dynamo.Trajectory
	names  []string
	colors []string
	drift  []float64
	cfg    *config.Config
}

// trajectoryFor simulates the configured system, or reads --input when set.
func trajectoryFor(cmd *cobra.Command) (*recorded, error) {
	if inputFile != "" {
		f, err := os.Open(inputFile)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		traj, names, err := export.ReadCSV(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", inputFile, err)
		}
		return &recorded{traj: traj, names: names}, nil
	}

	cfg, err := loadSystem(cmd)
	if err != nil {
		return nil, err
	}
	r, err := simulate(cfg)
	if r == nil {
		return nil, err
	}
	if err != nil {
		fmt.Println(warnStyle.Render(fmt.Sprintf("stopped early: %v", err)))
	}
	return &recorded{
		traj:   r.result.Trajectory,
		names:  cfg.Names(),
		colors: cfg.Colors(),
		drift:  r.energy.RelativeDrift(),
		cfg:    cfg,
	}, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	rec, err := trajectoryFor(cmd)
	if err != nil {
		return err
	}
	traj := rec.traj
	if body < 0 || body >= traj.Bodies() {
		return fmt.Errorf("body %d out of range [0, %d): %w", body, traj.Bodies(), dynamo.ErrParameterBounds)
	}

	extent := 0.0
	if rec.cfg != nil {
		extent = rec.cfg.Extent
	}
	fmt.Print(viz.Render(traj, viz.PlayerOptions{Names: rec.names, Colors: rec.colors, Width: width, Height: height, Extent: extent}))
	styles := viz.BodyStyles(viz.BodyColors(rec.colors, len(rec.names)))
	for i, name := range rec.names {
		fmt.Printf("%s %s  ", styles[i].Render("●"), name)
	}
	fmt.Println()
	fmt.Println()

	xs := make([]float64, traj.Len())
	for i, p := range traj.Track(body) {
		xs[i] = p.X
	}
	fmt.Println(asciigraph.Plot(downsample(xs, 400),
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("%s x (m) vs step", rec.names[body])),
	))
	fmt.Println()

	if len(rec.drift) > 1 {
		fmt.Println(asciigraph.Plot(downsample(rec.drift, 400),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("relative energy drift"),
		))
	}
	return nil
}

func runAnimate(cmd *cobra.Command, args []string) error {
	if !slices.Contains(viz.ThemeNames(), theme) {
		return fmt.Errorf("unknown theme: %s (available: %v)", theme, viz.ThemeNames())
	}

	rec, err := trajectoryFor(cmd)
	if err != nil {
		return err
	}

	opts := viz.PlayerOptions{
		Title:  "trajectory",
		Names:  rec.names,
		Colors: rec.colors,
		Width:  width,
		Height: height,
		Speed:  speed,
		Theme:  theme,
		Drift:  rec.drift,
	}
	if rec.cfg != nil {
		opts.Title, opts.Extent = rec.cfg.Name, rec.cfg.Extent
	}
	return viz.Play(rec.traj, opts)
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	rec, err := trajectoryFor(cmd)
	if err != nil {
		return err
	}
	traj, names := rec.traj, rec.names
	if center >= traj.Bodies() {
		return fmt.Errorf("center %d out of range [-1, %d): %w", center, traj.Bodies(), dynamo.ErrParameterBounds)
	}

	ref := "origin"
	if center >= 0 {
		ref = names[center]
	}
	fmt.Println(titleStyle.Render(fmt.Sprintf("orbits about %s over %s", ref, viz.FormatTime(traj.Time(traj.Len()-1)))))
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODY\tPERIOD\tREVOLUTIONS\tMIN R (m)\tMAX R (m)\tECC")
	for _, o := range analysis.Summarize(traj, names, center) {
		period := "-"
		if !math.IsNaN(o.Period) {
			period = viz.FormatTime(o.Period)
		}
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%.4e\t%.4e\t%.4f\n",
			o.Name, period, o.Revolutions, o.MinRadius, o.MaxRadius, o.Eccentricity())
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if lyapunov {
		cfg := rec.cfg
		if cfg == nil {
			return errors.New("--lyapunov needs a system, not a recorded trajectory")
		}
		integ, err := integrators.Get(cfg.Integrator)
		if err != nil {
			return err
		}
		x0 := cfg.InitialState()
		offset := perturbation
		if !(offset > 0) {
			offset = analysis.DefaultPerturbation(x0)
		}
		lambda := analysis.Lyapunov(cfg.Gravity(), integ, x0, cfg.Masses(), cfg.Dt, cfg.Steps, offset)
		if math.IsNaN(lambda) {
			return fmt.Errorf("lyapunov estimate failed for offset %g: %w", offset, dynamo.ErrInvalidState)
		}
		fmt.Printf("\nlargest lyapunov exponent: %.4e 1/s (offset %.3g)", lambda, offset)
		if lambda > 0 {
			fmt.Printf(" (e-folding time %s)", viz.FormatTime(1/lambda))
		}
		fmt.Println()
	}
	return nil
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	names := args
	if len(names) == 0 {
		names = integrators.Names()
	}

	base, err := loadSystem(cmd)
	if err != nil {
		return err
	}

	fmt.Printf("comparing integrators on %s (%d steps of %s)\n\n", base.Name, base.Steps, viz.FormatTime(base.Dt))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tSTEPS\tTIME\tENERGY DRIFT\tMOMENTUM DRIFT\tL DRIFT")

	for _, name := range names {
		cfg := base.Clone()
		cfg.Integrator = name
		r, err := simulate(cfg)
		if r == nil {
			return err
		}
		status := ""
		if err != nil {
			status = "  " + errorStyle.Render("stopped")
		}
		fmt.Fprintf(w, "%s\t%d\t%v\t%.3e\t%.3e\t%.3e%s\n",
			name,
			r.result.StepsTaken,
			r.wall.Round(time.Millisecond),
			r.result.Metrics["energy_drift"],
			r.result.Metrics["momentum_drift"],
			r.result.Metrics["angular_momentum_drift"],
			status,
		)
	}

	return w.Flush()
}

func runConvergence(cmd *cobra.Command, args []string) error {
	cfg, err := loadSystem(cmd)
	if err != nil {
		return err
	}
	if levels < 2 {
		return fmt.Errorf("levels must be at least 2, got %d: %w", levels, dynamo.ErrParameterBounds)
	}

	integ, err := integrators.Get(cfg.Integrator)
	if err != nil {
		return err
	}

	dts := make([]float64, levels)
	for i := range dts {
		dts[i] = cfg.Dt / math.Pow(2, float64(i))
	}
	span := float64(cfg.Steps) * cfg.Dt

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := sim.NewSweep(sim.New(cfg.Gravity(), integ), dts).Run(ctx, cfg.Masses(), cfg.InitialState(), span)
	if err != nil {
		return err
	}

	// The finest run is the reference.
	ref := results[len(results)-1].Trajectory.Final()
	scale := 0.0
	for _, p := range ref.Positions {
		scale = math.Max(scale, r2.Norm(p))
	}

	fmt.Printf("%s convergence on %s over %s\n\n", cfg.Integrator, cfg.Name, viz.FormatTime(span))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DT\tSTEPS\tPOSITION ERROR\tORDER")

	prev := math.NaN()
	for i, res := range results[:len(results)-1] {
		e := positionError(res.Trajectory.Final(), ref) / scale
		order := "-"
		if i > 0 && e > 0 && prev > 0 {
			order = fmt.Sprintf("%.2f", math.Log2(prev/e))
		}
		fmt.Fprintf(w, "%s\t%d\t%.3e\t%s\n", viz.FormatTime(dts[i]), res.StepsTaken, e, order)
		prev = e
	}
	return w.Flush()
}

func positionError(x, ref dynamo.State) float64 {
	worst := 0.0
	for i := range x.Positions {
		worst = math.Max(worst, r2.Norm(r2.Sub(x.Positions[i], ref.Positions[i])))
	}
	return worst
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tBODIES\tG\tDT\tSTEPS\tSPAN")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%g\t%s\t%d\t%s\n",
			name, len(cfg.Bodies), cfg.G, viz.FormatTime(cfg.Dt), cfg.Steps,
			viz.FormatTime(cfg.SimConfig().Duration()))
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := args[0]
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	cfg, err := loadSystem(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%s, %d bodies)\n", filepath.Clean(path), cfg.Name, len(cfg.Bodies))
	return nil
}

// downsample keeps at most n evenly spaced values for plotting.
func downsample(values []float64, n int) []float64 {
	if len(values) <= n {
		return values
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = values[i*(len(values)-1)/(n-1)]
	}
	return out
}
