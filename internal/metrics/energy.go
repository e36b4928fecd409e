package metrics

import (
	"math"

	"github.com/san-kum/orbsim/internal/dynamo"
	"github.com/san-kum/orbsim/internal/physics"
)

// EnergyDrift tracks the largest relative deviation of total mechanical energy
// from its value at the first observation.
type EnergyDrift struct {
	name          string
	masses        []float64
	g             float64
	initialEnergy float64
	currentEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift(masses []float64, g float64) *EnergyDrift {
	return &EnergyDrift{
		name:   "energy_drift",
		masses: masses,
		g:      g,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(x dynamo.State, t float64) {
	energy := physics.Energy(x, e.masses, e.g)

	if e.samples == 0 {
		e.initialEnergy = energy
	}

	e.currentEnergy = energy
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

// Final is the relative drift at the latest observation.
func (e *EnergyDrift) Final() float64 {
	if e.initialEnergy == 0 {
		return 0
	}
	return math.Abs(e.currentEnergy-e.initialEnergy) / math.Abs(e.initialEnergy)
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.currentEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}

// EnergySeries records total energy at every observation, for plotting.
type EnergySeries struct {
	masses []float64
	g      float64
	values []float64
}

func NewEnergySeries(masses []float64, g float64) *EnergySeries {
	return &EnergySeries{masses: masses, g: g}
}

func (e *EnergySeries) Name() string { return "energy_final" }

func (e *EnergySeries) Observe(x dynamo.State, t float64) {
	e.values = append(e.values, physics.Energy(x, e.masses, e.g))
}

func (e *EnergySeries) Value() float64 {
	if len(e.values) == 0 {
		return 0
	}
	return e.values[len(e.values)-1]
}

func (e *EnergySeries) Reset() { e.values = e.values[:0] }

// RelativeDrift returns (E_i − E_0) / |E_0| for every recorded sample.
func (e *EnergySeries) RelativeDrift() []float64 {
	out := make([]float64, len(e.values))
	if len(e.values) == 0 || e.values[0] == 0 {
		return out
	}
	e0 := e.values[0]
	for i, v := range e.values {
		out[i] = (v - e0) / math.Abs(e0)
	}
	return out
}
