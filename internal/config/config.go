package config

import (
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pendlab/pendsim/dynamo"
	"github.com/pendlab/pendsim/pivot"
)

const (
	DefaultFrom    = 0.0
	DefaultTo      = 10.0
	DefaultSamples = 1000
	DefaultTheta   = 0.5
	DefaultLength  = 1.0
	DefaultMass    = 1.0
	DefaultGravity = 9.8
)

type Config struct {
	Model      string          `yaml:"model"`
	Integrator string          `yaml:"integrator"`
	Adaptive   bool            `yaml:"adaptive"`
	Tolerance  float64         `yaml:"tolerance"`
	MaxStep    float64         `yaml:"max_step"`
	Grid       GridConfig      `yaml:"grid"`
	InitState  InitStateConfig `yaml:"init_state"`
	Params     ParamsConfig    `yaml:"params"`
	Pivot      PivotConfig     `yaml:"pivot"`
}

// GridConfig describes the output time grid: Samples points evenly spaced
// over [From, To].
type GridConfig struct {
	From    float64 `yaml:"from"`
	To      float64 `yaml:"to"`
	Samples int     `yaml:"samples"`
}

type InitStateConfig struct {
	Theta  float64 `yaml:"theta"`
	Omega  float64 `yaml:"omega"`
	Theta1 float64 `yaml:"theta1"`
	Omega1 float64 `yaml:"omega1"`
}

type ParamsConfig struct {
	Length  float64 `yaml:"length"`
	Length1 float64 `yaml:"length1"`
	Mass    float64 `yaml:"mass"`
	Mass1   float64 `yaml:"mass1"`
	Gravity float64 `yaml:"gravity"`
	Damping float64 `yaml:"damping"`
}

// PivotConfig selects one of the canned pivot motions:
//
//	stationary  fixed pivot (default)
//	harmonic    x(t) = amplitude * sin(2*pi*frequency*t)
//	step        x(t) = amplitude * (1/2 + atan(speed*t)/pi), a smooth lurch
//	freefall    constant vertical acceleration -gravity
//	constant    constant acceleration (ax, ay)
type PivotConfig struct {
	Kind      string  `yaml:"kind"`
	Amplitude float64 `yaml:"amplitude"`
	Frequency float64 `yaml:"frequency"`
	Speed     float64 `yaml:"speed"`
	AX        float64 `yaml:"ax"`
	AY        float64 `yaml:"ay"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:      "pendulum",
		Integrator: "rk4",
		Tolerance:  1e-6,
		MaxStep:    0.01,
		Grid: GridConfig{
			From:    DefaultFrom,
			To:      DefaultTo,
			Samples: DefaultSamples,
		},
		InitState: InitStateConfig{
			Theta:  DefaultTheta,
			Theta1: DefaultTheta,
		},
		Params: ParamsConfig{
			Length:  DefaultLength,
			Length1: DefaultLength,
			Mass:    DefaultMass,
			Mass1:   DefaultMass,
			Gravity: DefaultGravity,
		},
		Pivot: PivotConfig{Kind: "stationary"},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
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

func (c *Config) GetInitState() []float64 {
	switch c.Model {
	case "double_pendulum":
		return []float64{c.InitState.Theta, c.InitState.Omega, c.InitState.Theta1, c.InitState.Omega1}
	default:
		return []float64{c.InitState.Theta, c.InitState.Omega}
	}
}

// BuildTimes materializes the output grid.
func (c *Config) BuildTimes() []float64 {
	return dynamo.Linspace(c.Grid.From, c.Grid.To, c.Grid.Samples)
}

// SolverConfig translates the file settings into a dynamo.Config.
func (c *Config) SolverConfig() dynamo.Config {
	cfg := dynamo.DefaultConfig()
	if c.MaxStep > 0 {
		cfg.MaxStep = c.MaxStep
	}
	if c.Tolerance > 0 {
		cfg.Tolerance = c.Tolerance
	}
	cfg.Adaptive = c.Adaptive
	return cfg
}

// BuildForcing constructs the pivot motion selected by the config.
func (c *Config) BuildForcing() pivot.Forcing {
	p := c.Pivot
	switch p.Kind {
	case "harmonic":
		amp, freq := p.Amplitude, p.Frequency
		return pivot.FromPositions(func(t float64) float64 {
			return amp * math.Sin(2*math.Pi*freq*t)
		}, nil, pivot.DefaultStep)
	case "step":
		amp, speed := p.Amplitude, p.Speed
		return pivot.FromPositions(func(t float64) float64 {
			return amp * (0.5 + math.Atan(speed*t)/math.Pi)
		}, nil, pivot.DefaultStep)
	case "freefall":
		return pivot.Constant(0, -c.Params.Gravity)
	case "constant":
		return pivot.Constant(p.AX, p.AY)
	default:
		return pivot.Stationary()
	}
}
