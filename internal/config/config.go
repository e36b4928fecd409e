package config

import (
	"fmt"
	"os"

	"github.com/san-kum/orbsim/internal/dynamo"
	"github.com/san-kum/orbsim/internal/physics"
	"github.com/san-kum/orbsim/internal/sim"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDt         = 60 * 60 * 6
	DefaultSteps      = 50000
	DefaultIntegrator = "verlet"
	DefaultWorkers    = 1
	DefaultPreset     = "solar"
)

// Config describes a system of bodies and how to integrate it. Positions are
// in metres, velocities in m/s and masses in kg unless G says otherwise.
type Config struct {
	Name         string       `yaml:"name"`
	G            float64      `yaml:"g"`
	Integrator   string       `yaml:"integrator"`
	Dt           float64      `yaml:"dt"`
	Steps        int          `yaml:"steps"`
	Workers      int          `yaml:"workers"`
	ZeroMomentum bool         `yaml:"zero_momentum"`
	Extent       float64      `yaml:"extent,omitempty"`
	Bodies       []BodyConfig `yaml:"bodies"`
}

type BodyConfig struct {
	Name     string     `yaml:"name"`
	Mass     float64    `yaml:"mass"`
	Position [2]float64 `yaml:"position,flow"`
	Velocity [2]float64 `yaml:"velocity,flow"`
	Color    string     `yaml:"color,omitempty"`
}

// DefaultConfig returns a copy of the reference solar system.
func DefaultConfig() *Config {
	return GetPreset(DefaultPreset)
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{
		G:          physics.G,
		Integrator: DefaultIntegrator,
		Dt:         DefaultDt,
		Steps:      DefaultSteps,
		Workers:    DefaultWorkers,
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks integration parameters and the initial-condition
// preconditions of the force model.
func (c *Config) Validate() error {
	if !(c.G > 0) {
		return fmt.Errorf("g must be positive, got %g: %w", c.G, dynamo.ErrParameterBounds)
	}
	if !(c.Dt > 0) {
		return fmt.Errorf("dt must be positive, got %g: %w", c.Dt, dynamo.ErrParameterBounds)
	}
	if c.Steps < 0 {
		return fmt.Errorf("steps must be non-negative, got %d: %w", c.Steps, dynamo.ErrParameterBounds)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d: %w", c.Workers, dynamo.ErrParameterBounds)
	}
	return sim.ValidateSystem(c.Masses(), c.InitialState())
}

func (c *Config) Masses() []float64 {
	masses := make([]float64, len(c.Bodies))
	for i, b := range c.Bodies {
		masses[i] = b.Mass
	}
	return masses
}

func (c *Config) Names() []string {
	names := make([]string, len(c.Bodies))
	for i, b := range c.Bodies {
		names[i] = b.Name
		if names[i] == "" {
			names[i] = fmt.Sprintf("body%d", i)
		}
	}
	return names
}

// Colors returns the configured hex colours; missing entries are empty.
func (c *Config) Colors() []string {
	colors := make([]string, len(c.Bodies))
	for i, b := range c.Bodies {
		colors[i] = b.Color
	}
	return colors
}

// InitialState builds the state at step 0, shifted into the centre-of-momentum
// frame when ZeroMomentum is set.
func (c *Config) InitialState() dynamo.State {
	n := len(c.Bodies)
	pos := make([]dynamo.Vec, n)
	vel := make([]dynamo.Vec, n)
	for i, b := range c.Bodies {
		pos[i] = dynamo.Vec{X: b.Position[0], Y: b.Position[1]}
		vel[i] = dynamo.Vec{X: b.Velocity[0], Y: b.Velocity[1]}
	}
	x := dynamo.State{Positions: pos, Velocities: vel}
	if c.ZeroMomentum {
		x = physics.ZeroMomentumFrame(x, c.Masses())
	}
	return x
}

func (c *Config) SimConfig() sim.Config {
	return sim.Config{Dt: c.Dt, Steps: c.Steps, ValidateState: true}
}

// Gravity returns the force model described by the config.
func (c *Config) Gravity() *physics.Gravity {
	g := physics.NewGravity(c.G)
	if c.Workers > 1 {
		g.Workers = c.Workers
	}
	return g
}

func (c *Config) Clone() *Config {
	cp := *c
	cp.Bodies = append([]BodyConfig(nil), c.Bodies...)
	return &cp
}
