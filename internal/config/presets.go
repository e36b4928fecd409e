package config

import (
	"sort"

	"github.com/san-kum/orbsim/internal/physics"
)

var Presets = map[string]*Config{
	// Reference data. The Sun's 5 km/s is not balanced by the planets; set
	// zero_momentum to integrate in the barycentric frame instead.
	"solar": {
		Name: "solar", G: physics.G, Integrator: "verlet", Dt: 60 * 60 * 6, Steps: 50000,
		Workers: 1,
		Bodies: []BodyConfig{
			{Name: "Sun", Mass: 1.9e30, Position: [2]float64{0, 0}, Velocity: [2]float64{0, 5000}, Color: "#ffff00"},
			{Name: "Earth", Mass: 5.972e24, Position: [2]float64{1.496e11, 0}, Velocity: [2]float64{0, 29780}, Color: "#0000ff"},
			{Name: "Mars", Mass: 6.39e23, Position: [2]float64{2.279e11, 0}, Velocity: [2]float64{0, 24077}, Color: "#ff0000"},
			{Name: "Venus", Mass: 4.867e24, Position: [2]float64{1.082e11, 0}, Velocity: [2]float64{0, 35020}, Color: "#808080"},
			{Name: "Jupiter", Mass: 1.898e27, Position: [2]float64{7.785e11, 0}, Velocity: [2]float64{0, 13070}, Color: "#008000"},
			{Name: "Moon", Mass: 7.34767309e22, Position: [2]float64{1.496e11 + 3.844e8, 0}, Velocity: [2]float64{0, 29780 + 1022}, Color: "#d3d3d3"},
		},
	},
	"binary": circularPair("binary", "Star", "Planet", 1e30, 1e24, 1e11, 60*60*6, 4000, 1.5e11),
	"earth_moon": circularPair("earth_moon", "Earth", "Moon", 5.972e24, 7.342e22, 3.844e8, 600, 16000, 5e8),
	// Chenciner-Montgomery figure-eight in units where G = 1; period ≈ 6.3259.
	"figure8": {
		Name: "figure8", G: 1, Integrator: "verlet", Dt: 0.001, Steps: 6326, Workers: 1, Extent: 1.5,
		Bodies: []BodyConfig{
			{Name: "A", Mass: 1, Position: [2]float64{-0.97000436, 0.24308753}, Velocity: [2]float64{0.466203685, 0.43236573}, Color: "#ff5f87"},
			{Name: "B", Mass: 1, Position: [2]float64{0.97000436, -0.24308753}, Velocity: [2]float64{0.466203685, 0.43236573}, Color: "#5fd7ff"},
			{Name: "C", Mass: 1, Position: [2]float64{0, 0}, Velocity: [2]float64{-0.93240737, -0.86473146}, Color: "#d7ff5f"},
		},
	},
}

// circularPair places two bodies at separation r on circular orbits about
// their common barycentre, which sits at the origin at rest.
func circularPair(name, primary, secondary string, m1, m2, r, dt float64, steps int, extent float64) *Config {
	total := m1 + m2
	v := physics.CircularSpeed(physics.G, m1, m2, r)
	return &Config{
		Name: name, G: physics.G, Integrator: "verlet", Dt: dt, Steps: steps, Workers: 1, Extent: extent,
		Bodies: []BodyConfig{
			{Name: primary, Mass: m1, Position: [2]float64{-r * m2 / total, 0}, Velocity: [2]float64{0, -v * m2 / total}, Color: "#ffd700"},
			{Name: secondary, Mass: m2, Position: [2]float64{r * m1 / total, 0}, Velocity: [2]float64{0, v * m1 / total}, Color: "#1e90ff"},
		},
	}
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
