package physics

import (
	"math"

	"github.com/san-kum/orbsim/internal/dynamo"
)

// G is the gravitational constant in m³ kg⁻¹ s⁻².
const G = 6.6743e-11

// minRowsPerWorker is the smallest row count handed to a goroutine.
const minRowsPerWorker = 4

// Gravity is the direct-summation Newtonian force model.
type Gravity struct {
	G       float64
	Workers int
}

// NewGravity returns a serial force model using gravitational constant g.
func NewGravity(g float64) *Gravity {
	return &Gravity{G: g, Workers: 1}
}

// ComputeAcceleration evaluates the SI force model once.
func ComputeAcceleration(positions []dynamo.Vec, masses []float64) []dynamo.Vec {
	return NewGravity(G).Accelerations(positions, masses)
}

// Accelerations returns, for every body i,
//
//	G · Σ_{j≠i} m[j] · (p[j] − p[i]) / |p[j] − p[i]|³
//
// Coincident bodies produce non-finite components; the caller owns that hazard.
func (gr *Gravity) Accelerations(positions []dynamo.Vec, masses []float64) []dynamo.Vec {
	n := len(positions)
	acc := make([]dynamo.Vec, n)

	rows := func(start, end int) {
		for i := start; i < end; i++ {
			xi, yi := positions[i].X, positions[i].Y

			var ax, ay float64
			for j := 0; j < n; j++ {
				if i == j {
					continue
				}

				rx := positions[j].X - xi
				ry := positions[j].Y - yi
				dist := math.Sqrt(rx*rx + ry*ry)

				f := gr.G * masses[j] / (dist * dist * dist)
				ax += f * rx
				ay += f * ry
			}

			acc[i] = dynamo.Vec{X: ax, Y: ay}
		}
	}

	// Rows are independent and each sums j in the same order, so the split
	// does not change a single bit of the result.
	dynamo.ParallelFor(n, gr.Workers, minRowsPerWorker, rows)

	return acc
}
