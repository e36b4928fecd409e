package integrators_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orbsim/internal/dynamo"
	"github.com/san-kum/orbsim/internal/integrators"
	"github.com/san-kum/orbsim/internal/physics"
)

// circularBinary places two bodies on circular orbits about their barycentre.
func circularBinary(m1, m2, r float64) (dynamo.State, []float64) {
	total := m1 + m2
	v := physics.CircularSpeed(physics.G, m1, m2, r)
	x := dynamo.NewState(
		[]dynamo.Vec{{X: -r * m2 / total}, {X: r * m1 / total}},
		[]dynamo.Vec{{Y: -v * m2 / total}, {Y: v * m1 / total}},
	)
	return x, []float64{m1, m2}
}

var _ = Describe("Verlet", func() {
	var (
		unitG  *physics.Gravity
		verlet *integrators.Verlet
	)

	BeforeEach(func() {
		unitG = physics.NewGravity(1)
		verlet = integrators.NewVerlet()
	})

	Describe("a single hand-computed step", func() {
		It("matches the velocity-Verlet update rules", func() {
			x0 := dynamo.NewState(
				[]dynamo.Vec{{X: -1}, {X: 1}},
				[]dynamo.Vec{{}, {}},
			)
			masses := []float64{1, 1}

			acc := unitG.Accelerations(x0.Positions, masses)
			Expect(acc[0].X).To(BeNumerically(">", 0))
			Expect(acc[1].X).To(BeNumerically("<", 0))
			Expect(acc[0].X).To(Equal(-acc[1].X))

			traj := integrators.Integrate(unitG, verlet, x0, masses, 1, 1)
			Expect(traj.Len()).To(Equal(2))

			// p1 = p0 + v0·dt + ½·a0·dt²
			p1 := -1 + 0.5*acc[0].X
			Expect(traj.Positions[1][0].X).To(BeNumerically("~", p1, 1e-15))
			Expect(traj.Positions[1][1].X).To(BeNumerically("~", -p1, 1e-15))
			Expect(traj.Positions[1][0].Y).To(BeZero())

			// v1 = v0 + ½·(a0 + a1)·dt with a1 from the moved positions
			d := -2 * p1
			a1 := d / (d * d * d)
			Expect(traj.Velocities[1][0].X).To(BeNumerically("~", 0.5*(acc[0].X+a1), 1e-15))
			Expect(traj.Velocities[1][1].X).To(BeNumerically("~", -0.5*(acc[0].X+a1), 1e-15))
		})
	})

	DescribeTable("history length",
		func(steps int) {
			x0, masses := circularBinary(1e30, 1e24, 1e11)
			traj := integrators.Integrate(physics.NewGravity(physics.G), verlet, x0, masses, 3600, steps)
			Expect(traj.Positions).To(HaveLen(steps + 1))
			Expect(traj.Velocities).To(HaveLen(steps + 1))
		},
		Entry("zero steps", 0),
		Entry("one step", 1),
		Entry("many steps", 257),
	)

	It("returns the input unchanged for zero steps", func() {
		x0, masses := circularBinary(1e30, 1e24, 1e11)
		pos, vel := integrators.VelocityVerlet(x0.Positions, x0.Velocities, masses, 3600, 0)
		Expect(pos).To(Equal([][]dynamo.Vec{x0.Positions}))
		Expect(vel).To(Equal([][]dynamo.Vec{x0.Velocities}))
	})

	It("records the initial state bit for bit and leaves the input untouched", func() {
		positions := []dynamo.Vec{{X: 0.1, Y: 0.2}, {X: 1.496e11 + 0.3, Y: -0.7}, {X: 2.279e11, Y: 1e-9}}
		velocities := []dynamo.Vec{{X: 1e-3, Y: 5000}, {X: 0.1, Y: 29780.123}, {Y: 24077}}
		masses := []float64{1.9e30, 5.972e24, 6.39e23}
		origPos := append([]dynamo.Vec(nil), positions...)
		origVel := append([]dynamo.Vec(nil), velocities...)

		pos, vel := integrators.VelocityVerlet(positions, velocities, masses, 21600, 10)

		Expect(pos[0]).To(Equal(origPos))
		Expect(vel[0]).To(Equal(origVel))
		Expect(positions).To(Equal(origPos))
		Expect(velocities).To(Equal(origVel))
		Expect(pos[10]).NotTo(Equal(origPos))
	})

	It("snapshots do not alias each other", func() {
		x0, masses := circularBinary(1e30, 1e24, 1e11)
		traj := integrators.Integrate(physics.NewGravity(physics.G), verlet, x0, masses, 21600, 3)
		traj.Positions[1][0].X = 42
		Expect(traj.Positions[2][0].X).NotTo(Equal(42.0))
		Expect(traj.Positions[0][0].X).NotTo(Equal(42.0))
	})

	It("is deterministic", func() {
		x0, masses := circularBinary(1e30, 1e24, 1e11)
		a := integrators.Integrate(physics.NewGravity(physics.G), verlet, x0, masses, 21600, 500)
		b := integrators.Integrate(physics.NewGravity(physics.G), integrators.NewVerlet(), x0, masses, 21600, 500)
		Expect(a.Positions).To(Equal(b.Positions))
		Expect(a.Velocities).To(Equal(b.Velocities))
	})

	Context("closed two-body system", func() {
		const steps = 3000

		var (
			traj   *dynamo.Trajectory
			masses []float64
		)

		BeforeEach(func() {
			var x0 dynamo.State
			x0, masses = circularBinary(1e30, 1e24, 1e11)
			traj = integrators.Integrate(physics.NewGravity(physics.G), verlet, x0, masses, 21600, steps)
		})

		It("conserves linear momentum relative to its initial value", func() {
			p0 := physics.Momentum(traj.At(0), masses)
			scale := masses[1] * math.Abs(traj.Velocities[0][1].Y)
			for i := 1; i < traj.Len(); i++ {
				p := physics.Momentum(traj.At(i), masses)
				Expect(math.Abs(p.X-p0.X)).To(BeNumerically("<", 1e-9*scale), "step %d", i)
				Expect(math.Abs(p.Y-p0.Y)).To(BeNumerically("<", 1e-9*scale), "step %d", i)
			}
		})

		It("keeps energy drift bounded", func() {
			e0 := physics.Energy(traj.At(0), masses, physics.G)
			maxDrift := 0.0
			for i := 1; i < traj.Len(); i++ {
				e := physics.Energy(traj.At(i), masses, physics.G)
				maxDrift = math.Max(maxDrift, math.Abs(e-e0)/math.Abs(e0))
			}
			Expect(maxDrift).To(BeNumerically("<", 1e-3))
		})

		It("keeps the orbit radius close to circular", func() {
			for i := 0; i < traj.Len(); i += 100 {
				p := traj.Positions[i]
				r := math.Hypot(p[1].X-p[0].X, p[1].Y-p[0].Y)
				Expect(r).To(BeNumerically("~", 1e11, 1e8))
			}
		})
	})

	It("propagates non-finite values from a collision without stopping", func() {
		x0 := dynamo.NewState([]dynamo.Vec{{X: 1}, {X: 1}}, []dynamo.Vec{{}, {}})
		traj := integrators.Integrate(unitG, verlet, x0, []float64{1, 1}, 0.1, 5)
		Expect(traj.Len()).To(Equal(6))
		Expect(traj.Final().IsValid()).To(BeFalse())
	})
})

var _ = Describe("Euler", func() {
	It("drifts more than Verlet on the same orbit", func() {
		x0, masses := circularBinary(1e30, 1e24, 1e11)
		force := physics.NewGravity(physics.G)
		e0 := physics.Energy(x0, masses, physics.G)

		drift := func(integ dynamo.Integrator) float64 {
			traj := integrators.Integrate(force, integ, x0, masses, 21600, 2000)
			worst := 0.0
			for i := 1; i < traj.Len(); i++ {
				e := physics.Energy(traj.At(i), masses, physics.G)
				worst = math.Max(worst, math.Abs(e-e0)/math.Abs(e0))
			}
			return worst
		}

		Expect(drift(integrators.NewEuler())).To(BeNumerically(">", drift(integrators.NewVerlet())))
	})
})

var _ = Describe("Registry", func() {
	It("resolves every registered name", func() {
		for _, name := range integrators.Names() {
			integ, err := integrators.Get(name)
			Expect(err).NotTo(HaveOccurred())
			Expect(integ).NotTo(BeNil())
		}
	})

	It("rejects unknown names", func() {
		_, err := integrators.Get("rk4")
		Expect(err).To(MatchError(ContainSubstring("unknown integrator")))
	})
})
