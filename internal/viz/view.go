package viz

import (
	"math"

	"github.com/san-kum/orbsim/internal/dynamo"
)

// View maps world coordinates onto canvas sub-pixels. Braille sub-pixels are
// close to square, so one scale serves both axes.
type View struct {
	Center dynamo.Vec
	Half   float64
	w, h   int
	scale  float64
}

// NewView fits a square of half-width half around center into a canvas of
// w x h cells. A non-positive half is replaced by 1.
func NewView(center dynamo.Vec, half float64, w, h int) View {
	if !(half > 0) || math.IsInf(half, 0) {
		half = 1
	}
	cw, ch := w*2, h*4
	side := math.Min(float64(cw), float64(ch))
	return View{Center: center, Half: half, w: cw, h: ch, scale: (side - 2) / (2 * half)}
}

// FitView centres the view on the trajectory's bounding box, or on the
// origin with the given extent when extent > 0.
func FitView(traj *dynamo.Trajectory, extent float64, w, h int) View {
	if extent > 0 {
		return NewView(dynamo.Vec{}, extent, w, h)
	}
	lo, hi := traj.Bounds()
	center := dynamo.Vec{X: (lo.X + hi.X) / 2, Y: (lo.Y + hi.Y) / 2}
	return NewView(center, 1.05*math.Max(hi.X-lo.X, hi.Y-lo.Y)/2, w, h)
}

// Project returns sub-pixel coordinates with y growing downwards. ok is
// false for non-finite points.
func (v View) Project(p dynamo.Vec) (x, y int, ok bool) {
	fx := float64(v.w)/2 + (p.X-v.Center.X)*v.scale
	fy := float64(v.h)/2 - (p.Y-v.Center.Y)*v.scale
	if math.IsNaN(fx) || math.IsNaN(fy) || math.Abs(fx) > 1e9 || math.Abs(fy) > 1e9 {
		return 0, 0, false
	}
	return int(math.Round(fx)), int(math.Round(fy)), true
}

// DrawSegment draws one body's motion between two recorded positions.
func (v View) DrawSegment(c *Canvas, from, to dynamo.Vec, owner int) {
	x0, y0, ok0 := v.Project(from)
	x1, y1, ok1 := v.Project(to)
	switch {
	case ok0 && ok1 && v.near(x0, y0) && v.near(x1, y1):
		c.DrawLine(x0, y0, x1, y1, owner)
	case ok1:
		c.Set(x1, y1, owner)
	}
}

// near bounds the Bresenham walk for bodies that have left the view.
func (v View) near(x, y int) bool {
	return x >= -v.w && x < 2*v.w && y >= -v.h && y < 2*v.h
}

// DrawTrajectory draws every body's track up to and including step.
func DrawTrajectory(c *Canvas, v View, traj *dynamo.Trajectory, step int) {
	if step >= traj.Len() {
		step = traj.Len() - 1
	}
	for body := 0; body < traj.Bodies(); body++ {
		if x, y, ok := v.Project(traj.Positions[0][body]); ok {
			c.Set(x, y, body)
		}
		for k := 1; k <= step; k++ {
			v.DrawSegment(c, traj.Positions[k-1][body], traj.Positions[k][body], body)
		}
	}
}
