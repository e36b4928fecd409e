package export

import (
	"fmt"
	"html"
	"io"
	"math"
	"strings"

	"github.com/san-kum/orbsim/internal/dynamo"
	"github.com/san-kum/orbsim/internal/viz"
)

const (
	defaultSVGSize   = 800
	defaultMaxPoints = 2000
	svgMargin        = 0.05
)

type SVGOptions struct {
	Size      int
	Extent    float64 // half-width of the square view in metres; 0 fits the trajectory
	Names     []string
	Colors    []string
	MaxPoints int // per body; longer tracks are strided
}

// WriteSVG draws one polyline per body on a square canvas with equal axis
// scaling, a marker at each body's final position and a legend.
func WriteSVG(w io.Writer, traj *dynamo.Trajectory, opts SVGOptions) error {
	size := opts.Size
	if size <= 0 {
		size = defaultSVGSize
	}
	maxPoints := opts.MaxPoints
	if maxPoints <= 1 {
		maxPoints = defaultMaxPoints
	}

	cx, cy, half := viewBox(traj, opts.Extent)
	scale := float64(size) * (1 - 2*svgMargin) / (2 * half)
	project := func(p dynamo.Vec) (float64, float64) {
		return float64(size)/2 + (p.X-cx)*scale, float64(size)/2 - (p.Y-cy)*scale
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n", size, size, size, size)
	fmt.Fprintf(&b, `<rect width="%d" height="%d" fill="#0b0b1a"/>`+"\n", size, size)

	stride := 1
	if traj.Len() > maxPoints {
		stride = (traj.Len() + maxPoints - 1) / maxPoints
	}

	colors := viz.BodyColors(opts.Colors, traj.Bodies())
	for body := 0; body < traj.Bodies(); body++ {
		color := colors[body].Hex()
		track := traj.Track(body)

		var pts strings.Builder
		for k := 0; k < len(track); k += stride {
			writePoint(&pts, track[k], project)
		}
		if (len(track)-1)%stride != 0 {
			writePoint(&pts, track[len(track)-1], project)
		}
		fmt.Fprintf(&b, `<polyline fill="none" stroke="%s" stroke-width="1" points="%s"/>`+"\n", color, strings.TrimSpace(pts.String()))

		last := track[len(track)-1]
		if finite(last) {
			x, y := project(last)
			fmt.Fprintf(&b, `<circle cx="%.2f" cy="%.2f" r="3" fill="%s"/>`+"\n", x, y, color)
		}
		fmt.Fprintf(&b, `<text x="10" y="%d" fill="%s" font-family="monospace" font-size="12">%s</text>`+"\n",
			20+14*body, color, html.EscapeString(bodyName(opts.Names, body)))
	}

	b.WriteString("</svg>\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func viewBox(traj *dynamo.Trajectory, extent float64) (cx, cy, half float64) {
	if extent > 0 {
		return 0, 0, extent
	}
	lo, hi := traj.Bounds()
	cx, cy = (lo.X+hi.X)/2, (lo.Y+hi.Y)/2
	half = math.Max(hi.X-lo.X, hi.Y-lo.Y) / 2
	if !(half > 0) || math.IsInf(half, 0) {
		half = 1
	}
	return cx, cy, half
}

func writePoint(b *strings.Builder, p dynamo.Vec, project func(dynamo.Vec) (float64, float64)) {
	if !finite(p) {
		return
	}
	x, y := project(p)
	fmt.Fprintf(b, "%.2f,%.2f ", x, y)
}

func finite(p dynamo.Vec) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}
