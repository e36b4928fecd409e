package dynamo

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Vec is a 2D vector in SI units.
type Vec = r2.Vec

type State struct {
	Positions  []Vec
	Velocities []Vec
}

// NewState copies positions and velocities into a fresh State.
func NewState(positions, velocities []Vec) State {
	return State{
		Positions:  cloneVecs(positions),
		Velocities: cloneVecs(velocities),
	}
}

func (s State) Len() int { return len(s.Positions) }

func (s State) Clone() State {
	return State{
		Positions:  cloneVecs(s.Positions),
		Velocities: cloneVecs(s.Velocities),
	}
}

// IsValid reports whether every component is finite.
func (s State) IsValid() bool {
	return finite(s.Positions) && finite(s.Velocities)
}

func cloneVecs(v []Vec) []Vec {
	c := make([]Vec, len(v))
	copy(c, v)
	return c
}

func finite(v []Vec) bool {
	for _, p := range v {
		if math.IsNaN(p.X) || math.IsInf(p.X, 0) || math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
			return false
		}
	}
	return true
}

// ForceModel computes the acceleration of every body. Implementations must not
// retain or modify the slices they are given.
type ForceModel interface {
	Accelerations(positions []Vec, masses []float64) []Vec
}

// Integrator advances x by one step of length dt in place. acc holds the
// accelerations of the current state; the accelerations of the new state are
// returned so the caller can carry them into the next step.
type Integrator interface {
	Step(f ForceModel, x *State, acc []Vec, masses []float64, dt float64) []Vec
}

type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(step int, x State, t float64)
}

// Trajectory is the recorded history of a run. Entry 0 is the initial state.
type Trajectory struct {
	Dt         float64
	Positions  [][]Vec
	Velocities [][]Vec
}

// NewTrajectory seeds a trajectory with a copy of x0, reserving room for steps more entries.
func NewTrajectory(x0 State, dt float64, steps int) *Trajectory {
	if steps < 0 {
		steps = 0
	}
	t := &Trajectory{
		Dt:         dt,
		Positions:  make([][]Vec, 0, steps+1),
		Velocities: make([][]Vec, 0, steps+1),
	}
	t.Append(x0)
	return t
}

// Append stores a deep copy of x.
func (t *Trajectory) Append(x State) {
	t.Positions = append(t.Positions, cloneVecs(x.Positions))
	t.Velocities = append(t.Velocities, cloneVecs(x.Velocities))
}

func (t *Trajectory) Len() int { return len(t.Positions) }

// Bodies returns the number of bodies per entry.
func (t *Trajectory) Bodies() int {
	if len(t.Positions) == 0 {
		return 0
	}
	return len(t.Positions[0])
}

// At returns the state recorded at step. The slices are shared with the
// trajectory and must be treated as read-only.
func (t *Trajectory) At(step int) State {
	return State{Positions: t.Positions[step], Velocities: t.Velocities[step]}
}

func (t *Trajectory) Final() State {
	return t.At(t.Len() - 1)
}

func (t *Trajectory) Time(step int) float64 {
	return float64(step) * t.Dt
}

// Track returns the positions of a single body across every step.
func (t *Trajectory) Track(body int) []Vec {
	track := make([]Vec, len(t.Positions))
	for i, p := range t.Positions {
		track[i] = p[body]
	}
	return track
}

// RelativeTrack returns the positions of body measured from center at every step.
func (t *Trajectory) RelativeTrack(body, center int) []Vec {
	track := make([]Vec, len(t.Positions))
	for i, p := range t.Positions {
		track[i] = r2.Sub(p[body], p[center])
	}
	return track
}

// Bounds returns the axis-aligned box enclosing every recorded position.
func (t *Trajectory) Bounds() (lo, hi Vec) {
	first := true
	for _, frame := range t.Positions {
		for _, p := range frame {
			if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
				continue
			}
			if first {
				lo, hi = p, p
				first = false
				continue
			}
			lo.X = math.Min(lo.X, p.X)
			lo.Y = math.Min(lo.Y, p.Y)
			hi.X = math.Max(hi.X, p.X)
			hi.Y = math.Max(hi.Y, p.Y)
		}
	}
	return lo, hi
}
