// Package analysis extracts orbital properties from finished trajectories.
//
//   - [Period]: dominant period of a sampled signal via FFT
//   - [Summarize]: per-body period, revolutions and radial extent about a centre body
//   - [Lyapunov]: largest Lyapunov exponent from two nearby runs
//
// A period estimate needs at least two full revolutions in the trajectory
// to be meaningful:
//
//	orbits := analysis.Summarize(traj, names, 0)
//	fmt.Println(orbits[1].Period)
package analysis
