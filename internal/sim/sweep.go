package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/orbsim/internal/dynamo"
	"golang.org/x/sync/errgroup"
)

// Sweep runs the same system once per time step, covering the same simulated
// span each time. Runs are independent and execute concurrently; metrics and
// observers of the base simulator are not shared with them.
type Sweep struct {
	base *Simulator
	dts  []float64
}

func NewSweep(s *Simulator, dts []float64) *Sweep {
	return &Sweep{base: s, dts: dts}
}

func (sw *Sweep) Run(ctx context.Context, masses []float64, x0 dynamo.State, span float64) ([]*Result, error) {
	results := make([]*Result, len(sw.dts))

	g, ctx := errgroup.WithContext(ctx)
	for i, dt := range sw.dts {
		g.Go(func() error {
			if dt <= 0 {
				return fmt.Errorf("dt must be positive, got %g: %w", dt, dynamo.ErrParameterBounds)
			}
			cfg := Config{
				Dt:            dt,
				Steps:         int(math.Round(span / dt)),
				ValidateState: true,
			}

			run := New(sw.base.force, sw.base.integrator)
			res, err := run.Run(ctx, masses, x0, cfg)
			if err != nil {
				return fmt.Errorf("dt=%g: %w", dt, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
