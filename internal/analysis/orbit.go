package analysis

import (
	"math"

	"github.com/san-kum/orbsim/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r2"
)

// Orbit summarises one body's motion about a centre body.
type Orbit struct {
	Body        int
	Name        string
	Period      float64 // seconds; NaN when no period was found
	Revolutions float64 // signed, counter-clockwise positive
	MinRadius   float64
	MaxRadius   float64
}

// Eccentricity approximates e from the radial extremes.
func (o Orbit) Eccentricity() float64 {
	if o.MaxRadius+o.MinRadius == 0 {
		return 0
	}
	return (o.MaxRadius - o.MinRadius) / (o.MaxRadius + o.MinRadius)
}

// Summarize measures every body except center relative to center. A
// negative center measures positions from the origin.
func Summarize(traj *dynamo.Trajectory, names []string, center int) []Orbit {
	var orbits []Orbit
	for body := 0; body < traj.Bodies(); body++ {
		if body == center {
			continue
		}
		var track []dynamo.Vec
		if center >= 0 {
			track = traj.RelativeTrack(body, center)
		} else {
			track = traj.Track(body)
		}

		o := Orbit{Body: body, Period: math.NaN(), MinRadius: math.Inf(1)}
		if body < len(names) {
			o.Name = names[body]
		}

		xs := make([]float64, len(track))
		for i, p := range track {
			xs[i] = p.X
			r := r2.Norm(p)
			o.MinRadius = math.Min(o.MinRadius, r)
			o.MaxRadius = math.Max(o.MaxRadius, r)
		}
		o.Revolutions = sweptAngle(track) / (2 * math.Pi)
		if p, err := Period(xs, traj.Dt); err == nil {
			o.Period = p
		}
		orbits = append(orbits, o)
	}
	return orbits
}

// sweptAngle accumulates the unwrapped polar angle along a track.
func sweptAngle(track []dynamo.Vec) float64 {
	total := 0.0
	for i := 1; i < len(track); i++ {
		prev, cur := track[i-1], track[i]
		d := math.Atan2(cur.Y, cur.X) - math.Atan2(prev.Y, prev.X)
		switch {
		case d > math.Pi:
			d -= 2 * math.Pi
		case d < -math.Pi:
			d += 2 * math.Pi
		}
		if !math.IsNaN(d) {
			total += d
		}
	}
	return total
}
