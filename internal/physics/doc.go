// Package physics provides the Newtonian gravity force model.
//
// [Gravity] implements [dynamo.ForceModel] by direct O(N²) pairwise summation.
// The gravitational constant is a field, so tests can run with G = 1 while the
// CLI uses the SI value [G]:
//
//	force := physics.NewGravity(physics.G)
//	acc := force.Accelerations(positions, masses)
//
// # Conserved Quantities
//
// [Energy], [Momentum] and [AngularMomentum] are used to monitor integration
// quality. Velocity-Verlet keeps linear momentum to rounding error and energy
// within a bounded oscillation:
//
//	e0 := physics.Energy(x0, masses, physics.G)
//	drift := math.Abs(physics.Energy(x, masses, physics.G)-e0) / math.Abs(e0)
package physics
