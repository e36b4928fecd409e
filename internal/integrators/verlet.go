package integrators

import (
	"github.com/san-kum/orbsim/internal/dynamo"
	"github.com/san-kum/orbsim/internal/physics"
)

// Verlet is the velocity-Verlet scheme. It is second order and symplectic.
type Verlet struct{}

func NewVerlet() *Verlet {
	return &Verlet{}
}

// Step advances every position with the old acceleration before evaluating the
// force model, so no body ever sees another body's updated position mid-step.
func (v *Verlet) Step(f dynamo.ForceModel, x *dynamo.State, acc []dynamo.Vec, masses []float64, dt float64) []dynamo.Vec {
	halfDt2 := 0.5 * dt * dt

	for i := range x.Positions {
		p, vel, a := x.Positions[i], x.Velocities[i], acc[i]
		x.Positions[i] = dynamo.Vec{
			X: p.X + vel.X*dt + a.X*halfDt2,
			Y: p.Y + vel.Y*dt + a.Y*halfDt2,
		}
	}

	newAcc := f.Accelerations(x.Positions, masses)

	halfDt := 0.5 * dt
	for i := range x.Velocities {
		x.Velocities[i].X += (acc[i].X + newAcc[i].X) * halfDt
		x.Velocities[i].Y += (acc[i].Y + newAcc[i].Y) * halfDt
	}

	return newAcc
}

// Integrate runs steps fixed steps from x0 and records every state, including
// x0 itself at index 0. x0 is never modified.
func Integrate(f dynamo.ForceModel, integ dynamo.Integrator, x0 dynamo.State, masses []float64, dt float64, steps int) *dynamo.Trajectory {
	traj := dynamo.NewTrajectory(x0, dt, steps)

	x := x0.Clone()
	acc := f.Accelerations(x.Positions, masses)

	for i := 0; i < steps; i++ {
		acc = integ.Step(f, &x, acc, masses, dt)
		traj.Append(x)
	}

	return traj
}

// VelocityVerlet integrates with the SI gravitational constant and returns the
// position and velocity histories, each of length steps+1.
func VelocityVerlet(positions, velocities []dynamo.Vec, masses []float64, dt float64, steps int) (posHist, velHist [][]dynamo.Vec) {
	x0 := dynamo.NewState(positions, velocities)
	traj := Integrate(physics.NewGravity(physics.G), NewVerlet(), x0, masses, dt, steps)
	return traj.Positions, traj.Velocities
}
