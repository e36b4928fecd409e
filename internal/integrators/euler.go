package integrators

import "github.com/san-kum/orbsim/internal/dynamo"

// Euler is semi-implicit (symplectic) Euler: kick with the current
// acceleration, then drift with the new velocity. First order; kept for
// comparison against Verlet.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(f dynamo.ForceModel, x *dynamo.State, acc []dynamo.Vec, masses []float64, dt float64) []dynamo.Vec {
	for i := range x.Positions {
		x.Velocities[i].X += acc[i].X * dt
		x.Velocities[i].Y += acc[i].Y * dt
		x.Positions[i].X += x.Velocities[i].X * dt
		x.Positions[i].Y += x.Velocities[i].Y * dt
	}
	return f.Accelerations(x.Positions, masses)
}
