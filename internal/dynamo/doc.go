// Package dynamo provides the core primitives shared by the orbit simulator.
//
// The package defines the data model and the seams between components:
//
//   - [Vec]: 2D vector (gonum r2)
//   - [State]: positions and velocities of every body at one step
//   - [Trajectory]: append-only history of states, one entry per step
//   - [ForceModel]: computes per-body accelerations from positions and masses
//   - [Integrator]: advances a [State] by one fixed time step
//
// # Example
//
//	force := physics.NewGravity(physics.G)
//	traj := integrators.Integrate(force, integrators.NewVerlet(), x0, masses, dt, steps)
//	final := traj.Final()
//
// # Ownership
//
// A [State] handed to an [Integrator] is mutated in place. Anything stored in a
// [Trajectory] is a deep copy, so snapshots never alias the live state.
package dynamo
