package metrics

import (
	"math"

	"github.com/san-kum/orbsim/internal/dynamo"
)

// Containment is the fraction of observations in which every body stays
// within radius of the origin. A value below 1 means something escaped the
// rendered extent.
type Containment struct {
	name       string
	radius     float64
	violations int
	samples    int
}

func NewContainment(radius float64) *Containment {
	return &Containment{
		name:   "containment",
		radius: radius,
	}
}

func (c *Containment) Name() string {
	return c.name
}

func (c *Containment) Observe(x dynamo.State, t float64) {
	c.samples++
	for _, p := range x.Positions {
		if math.Hypot(p.X, p.Y) > c.radius {
			c.violations++
			break
		}
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}
