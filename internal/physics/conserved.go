package physics

import (
	"math"

	"github.com/san-kum/orbsim/internal/dynamo"
)

// Energy returns kinetic plus gravitational potential energy.
func Energy(x dynamo.State, masses []float64, g float64) float64 {
	n := x.Len()
	ke := 0.0
	pe := 0.0

	for i := 0; i < n; i++ {
		v := x.Velocities[i]
		ke += 0.5 * masses[i] * (v.X*v.X + v.Y*v.Y)

		for j := i + 1; j < n; j++ {
			rx := x.Positions[j].X - x.Positions[i].X
			ry := x.Positions[j].Y - x.Positions[i].Y
			pe -= g * masses[i] * masses[j] / math.Sqrt(rx*rx+ry*ry)
		}
	}

	return ke + pe
}

func Momentum(x dynamo.State, masses []float64) dynamo.Vec {
	var p dynamo.Vec
	for i, v := range x.Velocities {
		p.X += masses[i] * v.X
		p.Y += masses[i] * v.Y
	}
	return p
}

// AngularMomentum returns the z component of Σ m r × v about the origin.
func AngularMomentum(x dynamo.State, masses []float64) float64 {
	L := 0.0
	for i := range x.Positions {
		p, v := x.Positions[i], x.Velocities[i]
		L += masses[i] * (p.X*v.Y - p.Y*v.X)
	}
	return L
}

// ZeroMomentumFrame returns a copy of x whose velocities are measured in the
// centre-of-momentum frame, so that the total linear momentum is zero.
func ZeroMomentumFrame(x dynamo.State, masses []float64) dynamo.State {
	total := 0.0
	for _, m := range masses {
		total += m
	}

	out := x.Clone()
	if total == 0 {
		return out
	}

	p := Momentum(x, masses)
	vx, vy := p.X/total, p.Y/total
	for i := range out.Velocities {
		out.Velocities[i].X -= vx
		out.Velocities[i].Y -= vy
	}
	return out
}

// CircularSpeed is the relative speed of two bodies on a circular orbit of radius r.
func CircularSpeed(g, m1, m2, r float64) float64 {
	return math.Sqrt(g * (m1 + m2) / r)
}
