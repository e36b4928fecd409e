package main

import (
	"fmt"
	"os"

	"github.com/san-kum/orbsim/internal/config"
	"github.com/san-kum/orbsim/internal/integrators"
	"github.com/san-kum/orbsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile   string
	preset       string
	dt           float64
	steps        int
	workers      int
	zeroMomentum bool
	integrator   string
	// Output
	outFile string
	quiet   bool
	// Plot and analysis
	inputFile    string
	body         int
	center       int
	lyapunov     bool
	perturbation float64
	// Animation
	speed  int
	theme  string
	width  int
	height int
	// Convergence
	levels int
)

// main executes the root command and exits with status 1 if it fails.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error:"), err)
		os.Exit(1)
	}
}

// newRootCmd registers the orbsim commands and flags.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "orbsim",
		Short:         "n-body gravity simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "system file path (yaml); overrides --preset")
	pf.StringVar(&preset, "preset", config.DefaultPreset, "preset system")
	pf.Float64Var(&dt, "dt", config.DefaultDt, "time step in seconds")
	pf.IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	pf.IntVar(&workers, "workers", 1, "goroutines per force evaluation")
	pf.BoolVar(&zeroMomentum, "zero-momentum", false, "integrate in the centre-of-momentum frame")
	pf.StringVar(&integrator, "integrator", config.DefaultIntegrator, fmt.Sprintf("integrator %v", integrators.Names()))

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run simulation and report conserved-quantity drift",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	runCmd.Flags().StringVarP(&outFile, "out", "o", "", "write trajectory to file (.csv, .json or .svg)")
	runCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "no progress bar")

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "plot orbits, a coordinate track and energy drift",
		Args:  cobra.NoArgs,
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&inputFile, "input", "", "plot a trajectory csv instead of simulating")
	plotCmd.Flags().IntVar(&body, "body", 1, "body whose x coordinate is plotted")
	plotCmd.Flags().IntVar(&width, "width", 0, "map width in cells")
	plotCmd.Flags().IntVar(&height, "height", 0, "map height in cells")

	animateCmd := &cobra.Command{
		Use:   "animate",
		Short: "replay the trajectory in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runAnimate,
	}
	animateCmd.Flags().StringVar(&inputFile, "input", "", "replay a trajectory csv instead of simulating")
	animateCmd.Flags().IntVar(&speed, "speed", 0, "steps per frame (0 picks one)")
	animateCmd.Flags().StringVar(&theme, "theme", viz.Themes[0].Name, fmt.Sprintf("colour theme %v", viz.ThemeNames()))
	animateCmd.Flags().IntVar(&width, "width", 0, "canvas width in cells")
	animateCmd.Flags().IntVar(&height, "height", 0, "canvas height in cells")

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "orbital periods, revolutions and radial extent",
		Args:  cobra.NoArgs,
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&inputFile, "input", "", "analyze a trajectory csv instead of simulating")
	analyzeCmd.Flags().IntVar(&center, "center", 0, "body orbits are measured from (-1 for the origin)")
	analyzeCmd.Flags().BoolVar(&lyapunov, "lyapunov", false, "also estimate the largest lyapunov exponent")
	analyzeCmd.Flags().Float64Var(&perturbation, "perturbation", 0, "initial offset of the shadow run (0 uses 1e-8 of the system size)")

	compareCmd := &cobra.Command{
		Use:   "compare [integrator1] [integrator2] ...",
		Short: "compare integrators on the same system",
		RunE:  compareIntegrators,
	}

	convergenceCmd := &cobra.Command{
		Use:   "convergence",
		Short: "rerun with halved time steps and estimate the convergence order",
		Args:  cobra.NoArgs,
		RunE:  runConvergence,
	}
	convergenceCmd.Flags().IntVar(&levels, "levels", 4, "number of time steps, each half the previous")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset systems",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write a preset (or the defaults) as a yaml system file",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}

	rootCmd.AddCommand(runCmd, plotCmd, animateCmd, analyzeCmd, compareCmd, convergenceCmd, presetsCmd, initCmd)
	return rootCmd
}
