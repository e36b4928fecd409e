package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/orbsim/internal/dynamo"
)

// Simulator wraps the integration loop with the checks the physics core leaves
// to its caller: input validation, non-finite detection and cancellation.
type Simulator struct {
	force      dynamo.ForceModel
	integrator dynamo.Integrator
	metrics    []dynamo.Metric
	observers  []dynamo.Observer
}

func New(force dynamo.ForceModel, integrator dynamo.Integrator) *Simulator {
	return &Simulator{
		force:      force,
		integrator: integrator,
		metrics:    make([]dynamo.Metric, 0),
		observers:  make([]dynamo.Observer, 0),
	}
}

func (s *Simulator) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }

// Run integrates x0 for cfg.Steps steps. On cancellation or, with
// cfg.ValidateState, on the first non-finite state it stops and returns the
// trajectory recorded so far together with the error.
func (s *Simulator) Run(ctx context.Context, masses []float64, x0 dynamo.State, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	if err := ValidateSystem(masses, x0); err != nil {
		return nil, err
	}

	result := &Result{
		Trajectory: dynamo.NewTrajectory(x0, cfg.Dt, cfg.Steps),
		Metrics:    make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}
	s.observe(0, x0, 0)

	x := x0.Clone()
	acc := s.force.Accelerations(x.Positions, masses)

	for i := 1; i <= cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			s.collect(result)
			return result, &dynamo.SimulationError{Step: i - 1, Time: float64(i-1) * cfg.Dt, Wrapped: ctx.Err()}
		default:
		}

		acc = s.integrator.Step(s.force, &x, acc, masses, cfg.Dt)
		t := float64(i) * cfg.Dt

		if cfg.ValidateState && !x.IsValid() {
			s.collect(result)
			return result, &dynamo.SimulationError{Step: i, Time: t, Wrapped: dynamo.ErrInvalidState}
		}

		result.Trajectory.Append(x)
		result.StepsTaken++
		s.observe(i, x, t)
	}

	s.collect(result)
	return result, nil
}

func (s *Simulator) observe(step int, x dynamo.State, t float64) {
	for _, m := range s.metrics {
		m.Observe(x, t)
	}
	for _, obs := range s.observers {
		obs.OnStep(step, x, t)
	}
}

func (s *Simulator) collect(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %g: %w", cfg.Dt, dynamo.ErrParameterBounds)
	}
	if cfg.Steps < 0 {
		return fmt.Errorf("steps must be non-negative, got %d: %w", cfg.Steps, dynamo.ErrParameterBounds)
	}
	return nil
}

// ValidateSystem checks the preconditions of the force model: aligned arrays,
// at least one body, positive masses and no two bodies at the same position.
func ValidateSystem(masses []float64, x dynamo.State) error {
	n := len(masses)
	if n == 0 {
		return fmt.Errorf("no bodies: %w", dynamo.ErrParameterBounds)
	}
	if len(x.Positions) != n || len(x.Velocities) != n {
		return fmt.Errorf("%d masses, %d positions, %d velocities: %w",
			n, len(x.Positions), len(x.Velocities), dynamo.ErrDimensionMismatch)
	}
	for i, m := range masses {
		if !(m > 0) {
			return fmt.Errorf("body %d has mass %g: %w", i, m, dynamo.ErrParameterBounds)
		}
	}
	if !x.IsValid() {
		return dynamo.ErrInvalidState
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if x.Positions[i] == x.Positions[j] {
				return fmt.Errorf("bodies %d and %d at %v: %w", i, j, x.Positions[i], dynamo.ErrCoincident)
			}
		}
	}
	return nil
}
