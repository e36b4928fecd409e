package analysis

import (
	"math"

	"github.com/san-kum/orbsim/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r2"
)

// renormAt is the separation growth, relative to the initial offset, after
// which the shadow run is pulled back.
const renormAt = 10

// relativePerturbation scales the default offset to the size of the system.
const relativePerturbation = 1e-8

// DefaultPerturbation is relativePerturbation times the largest distance of
// any body from the origin, or relativePerturbation for a system at the origin.
func DefaultPerturbation(x dynamo.State) float64 {
	size := 0.0
	for _, p := range x.Positions {
		size = math.Max(size, r2.Norm(p))
	}
	if !(size > 0) || math.IsInf(size, 0) {
		size = 1
	}
	return relativePerturbation * size
}

// Lyapunov estimates the largest Lyapunov exponent (1/s) using the
// trajectory separation method. A shadow copy of the system has body 0
// displaced by perturbation along x; both runs are stepped together and the
// shadow is rescaled towards the reference whenever their position-space
// separation grows past renormAt times the initial offset. A non-positive
// perturbation selects DefaultPerturbation. The result is NaN when the offset
// is below the floating-point resolution of body 0's position or the runs
// become non-finite.
//
//	λ ≈ Σ ln(dₖ/d₀) / (steps·dt)
func Lyapunov(
	f dynamo.ForceModel,
	integ dynamo.Integrator,
	x0 dynamo.State,
	masses []float64,
	dt float64,
	steps int,
	perturbation float64,
) float64 {
	if x0.Len() == 0 || steps <= 0 {
		return 0
	}
	if !(perturbation > 0) {
		perturbation = DefaultPerturbation(x0)
	}

	x := x0.Clone()
	xp := x0.Clone()
	xp.Positions[0].X += perturbation
	if xp.Positions[0].X == x.Positions[0].X {
		return math.NaN()
	}
	// The offset actually representable at this position.
	perturbation = xp.Positions[0].X - x.Positions[0].X

	acc := f.Accelerations(x.Positions, masses)
	accp := f.Accelerations(xp.Positions, masses)

	sumLog := 0.0
	for i := 0; i < steps; i++ {
		acc = integ.Step(f, &x, acc, masses, dt)
		accp = integ.Step(f, &xp, accp, masses, dt)

		sep := separation(x, xp)
		if math.IsNaN(sep) || math.IsInf(sep, 0) {
			return math.NaN()
		}
		if sep <= 0 {
			// The runs have merged; nothing to measure or rescale.
			continue
		}
		if sep > renormAt*perturbation || i == steps-1 {
			sumLog += math.Log(sep / perturbation)
			rescale(x, xp, perturbation/sep)
			accp = f.Accelerations(xp.Positions, masses)
		}
	}

	return sumLog / (float64(steps) * dt)
}

func separation(x, xp dynamo.State) float64 {
	sum := 0.0
	for i := range x.Positions {
		d := r2.Norm(r2.Sub(xp.Positions[i], x.Positions[i]))
		sum += d * d
	}
	return math.Sqrt(sum)
}

// rescale moves xp towards x, shrinking both the position and velocity
// offsets by scale.
func rescale(x, xp dynamo.State, scale float64) {
	for i := range x.Positions {
		xp.Positions[i] = r2.Add(x.Positions[i], r2.Scale(scale, r2.Sub(xp.Positions[i], x.Positions[i])))
		xp.Velocities[i] = r2.Add(x.Velocities[i], r2.Scale(scale, r2.Sub(xp.Velocities[i], x.Velocities[i])))
	}
}
