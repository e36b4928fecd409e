package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/orbsim/internal/dynamo"
	"github.com/san-kum/orbsim/internal/physics"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Name != "solar" {
		t.Errorf("expected solar, got %s", cfg.Name)
	}
	if cfg.Dt != 21600 {
		t.Errorf("expected dt 21600, got %g", cfg.Dt)
	}
	if cfg.Steps != 50000 {
		t.Errorf("expected 50000 steps, got %d", cfg.Steps)
	}
	if len(cfg.Bodies) != 6 {
		t.Errorf("expected 6 bodies, got %d", len(cfg.Bodies))
	}
}

func TestPresetsValidate(t *testing.T) {
	for _, name := range ListPresets() {
		t.Run(name, func(t *testing.T) {
			cfg := GetPreset(name)
			if cfg == nil {
				t.Fatal("expected preset, got nil")
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset invalid: %v", err)
			}
		})
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestGetPreset_ReturnsCopy(t *testing.T) {
	a := GetPreset("solar")
	a.Dt = 1
	a.Bodies[0].Mass = 1

	b := GetPreset("solar")
	if b.Dt != 21600 || b.Bodies[0].Mass != 1.9e30 {
		t.Error("modifying a preset copy changed the preset")
	}
}

func TestSolarKeepsReferenceSunVelocity(t *testing.T) {
	cfg := GetPreset("solar")
	x := cfg.InitialState()
	if x.Velocities[0] != (dynamo.Vec{X: 0, Y: 5000}) {
		t.Errorf("expected Sun velocity (0, 5000), got %v", x.Velocities[0])
	}

	cfg.ZeroMomentum = true
	p := physics.Momentum(cfg.InitialState(), cfg.Masses())
	if abs(p.Y) > 1e-9*1.9e30*5000 {
		t.Errorf("expected zero momentum, got %v", p)
	}
}

func TestBinaryPresetIsBarycentric(t *testing.T) {
	cfg := GetPreset("binary")
	x := cfg.InitialState()
	masses := cfg.Masses()

	p := physics.Momentum(x, masses)
	if abs(p.Y) > 1e-6*masses[1]*x.Velocities[1].Y {
		t.Errorf("expected zero momentum, got %v", p)
	}

	sep := x.Positions[1].X - x.Positions[0].X
	if abs(sep-1e11) > 1 {
		t.Errorf("expected separation 1e11, got %g", sep)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solar.yaml")
	orig := GetPreset("solar")

	if err := Save(path, orig); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Name != orig.Name || loaded.Dt != orig.Dt || loaded.Steps != orig.Steps || loaded.G != orig.G {
		t.Errorf("scalar fields changed: %+v", loaded)
	}
	if len(loaded.Bodies) != len(orig.Bodies) {
		t.Fatalf("expected %d bodies, got %d", len(orig.Bodies), len(loaded.Bodies))
	}
	for i := range orig.Bodies {
		if loaded.Bodies[i] != orig.Bodies[i] {
			t.Errorf("body %d: %+v != %+v", i, loaded.Bodies[i], orig.Bodies[i])
		}
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pair.yaml")
	data := `
name: pair
bodies:
  - {name: a, mass: 1.0e30, position: [0, 0], velocity: [0, 0]}
  - {name: b, mass: 1.0e24, position: [1.0e11, 0], velocity: [0, 30000]}
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.G != physics.G || cfg.Dt != DefaultDt || cfg.Steps != DefaultSteps || cfg.Integrator != DefaultIntegrator {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if cfg.InitialState().Velocities[1].Y != 30000 {
		t.Errorf("unexpected initial state %v", cfg.InitialState())
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"zero mass", `bodies: [{mass: 0, position: [0, 0]}]`, dynamo.ErrParameterBounds},
		{"no bodies", `name: empty`, dynamo.ErrParameterBounds},
		{"negative dt", "dt: -1\nbodies: [{mass: 1, position: [0, 0]}]", dynamo.ErrParameterBounds},
		{"coincident", `bodies: [{mass: 1, position: [1, 1]}, {mass: 1, position: [1, 1]}]`, dynamo.ErrCoincident},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tt.data), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestNamesFillsBlanks(t *testing.T) {
	cfg := &Config{Bodies: []BodyConfig{{Name: "Sun"}, {}}}
	names := cfg.Names()
	if names[0] != "Sun" || names[1] != "body1" {
		t.Errorf("unexpected names %v", names)
	}
}

func TestGravityWorkers(t *testing.T) {
	cfg := GetPreset("solar")
	cfg.Workers = 4
	if g := cfg.Gravity(); g.Workers != 4 || g.G != physics.G {
		t.Errorf("unexpected gravity %+v", g)
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
