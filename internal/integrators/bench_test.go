package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/orbsim/internal/dynamo"
	"github.com/san-kum/orbsim/internal/physics"
)

func ringSystem(n int) (dynamo.State, []float64) {
	pos := make([]dynamo.Vec, n)
	vel := make([]dynamo.Vec, n)
	masses := make([]float64, n)
	for i := 0; i < n; i++ {
		angle := float64(i) * 2.0 * math.Pi / float64(n)
		pos[i] = dynamo.Vec{X: 1e11 * math.Cos(angle), Y: 1e11 * math.Sin(angle)}
		vel[i] = dynamo.Vec{X: -3e4 * math.Sin(angle), Y: 3e4 * math.Cos(angle)}
		masses[i] = 1e24
	}
	return dynamo.NewState(pos, vel), masses
}

func benchmarkStep(b *testing.B, integ dynamo.Integrator, n, workers int) {
	force := physics.NewGravity(physics.G)
	force.Workers = workers
	x, masses := ringSystem(n)
	acc := force.Accelerations(x.Positions, masses)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		acc = integ.Step(force, &x, acc, masses, 3600)
	}
}

func BenchmarkVerlet_6(b *testing.B)  { benchmarkStep(b, NewVerlet(), 6, 1) }
func BenchmarkVerlet_32(b *testing.B) { benchmarkStep(b, NewVerlet(), 32, 1) }
func BenchmarkEuler_6(b *testing.B)   { benchmarkStep(b, NewEuler(), 6, 1) }

func BenchmarkVerlet_32_Parallel(b *testing.B) { benchmarkStep(b, NewVerlet(), 32, 4) }

func BenchmarkIntegrate_Solar(b *testing.B) {
	force := physics.NewGravity(physics.G)
	x, masses := ringSystem(6)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Integrate(force, NewVerlet(), x, masses, 21600, 1000)
	}
}
