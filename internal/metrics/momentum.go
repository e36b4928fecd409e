package metrics

import (
	"math"

	"github.com/san-kum/orbsim/internal/dynamo"
	"github.com/san-kum/orbsim/internal/physics"
)

// MomentumDrift is the largest change of total linear momentum relative to its
// initial value, normalised by the largest single-body momentum at the start.
// The initial momentum need not be zero.
type MomentumDrift struct {
	masses   []float64
	initial  dynamo.Vec
	scale    float64
	maxDrift float64
	samples  int
}

func NewMomentumDrift(masses []float64) *MomentumDrift {
	return &MomentumDrift{masses: masses}
}

func (m *MomentumDrift) Name() string { return "momentum_drift" }

func (m *MomentumDrift) Observe(x dynamo.State, t float64) {
	p := physics.Momentum(x, m.masses)

	if m.samples == 0 {
		m.initial = p
		for i, v := range x.Velocities {
			m.scale = math.Max(m.scale, m.masses[i]*math.Hypot(v.X, v.Y))
		}
	}
	m.samples++

	if m.scale > 0 {
		drift := math.Hypot(p.X-m.initial.X, p.Y-m.initial.Y) / m.scale
		m.maxDrift = math.Max(m.maxDrift, drift)
	}
}

func (m *MomentumDrift) Value() float64 { return m.maxDrift }

func (m *MomentumDrift) Reset() {
	m.initial = dynamo.Vec{}
	m.scale = 0
	m.maxDrift = 0
	m.samples = 0
}

// AngularMomentumDrift tracks the largest relative change of L_z.
type AngularMomentumDrift struct {
	masses   []float64
	initial  float64
	maxDrift float64
	samples  int
}

func NewAngularMomentumDrift(masses []float64) *AngularMomentumDrift {
	return &AngularMomentumDrift{masses: masses}
}

func (a *AngularMomentumDrift) Name() string { return "angular_momentum_drift" }

func (a *AngularMomentumDrift) Observe(x dynamo.State, t float64) {
	L := physics.AngularMomentum(x, a.masses)
	if a.samples == 0 {
		a.initial = L
	}
	a.samples++

	if a.initial != 0 {
		a.maxDrift = math.Max(a.maxDrift, math.Abs(L-a.initial)/math.Abs(a.initial))
	}
}

func (a *AngularMomentumDrift) Value() float64 { return a.maxDrift }

func (a *AngularMomentumDrift) Reset() {
	a.initial = 0
	a.maxDrift = 0
	a.samples = 0
}
