package sim

import "github.com/san-kum/orbsim/internal/dynamo"

type Config struct {
	Dt            float64
	Steps         int
	ValidateState bool
}

// DefaultConfig is a six-hour step over roughly 34 years, the span of the
// reference solar system run.
func DefaultConfig() Config {
	return Config{
		Dt:            60 * 60 * 6,
		Steps:         50000,
		ValidateState: true,
	}
}

func (c Config) Duration() float64 {
	return float64(c.Steps) * c.Dt
}

type Result struct {
	Trajectory *dynamo.Trajectory
	Metrics    map[string]float64
	StepsTaken int
}
