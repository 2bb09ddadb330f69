package config

import "sort"

var Presets = map[string]map[string]*Config{
	"pendulum": {
		"small": {
			Model: "pendulum", Integrator: "rk4", MaxStep: 0.01,
			Grid:      GridConfig{From: 0, To: 20, Samples: 2000},
			InitState: InitStateConfig{Theta: 0.2},
			Params:    ParamsConfig{Length: 1, Gravity: DefaultGravity},
		},
		"large": {
			Model: "pendulum", Integrator: "rk4", MaxStep: 0.01,
			Grid:      GridConfig{From: 0, To: 20, Samples: 2000},
			InitState: InitStateConfig{Theta: 2.5},
			Params:    ParamsConfig{Length: 1, Gravity: DefaultGravity},
		},
		"damped": {
			Model: "pendulum", Integrator: "rk4", MaxStep: 0.01,
			Grid:      GridConfig{From: 0, To: 30, Samples: 3000},
			InitState: InitStateConfig{Omega: 1},
			Params:    ParamsConfig{Length: 1, Gravity: DefaultGravity, Damping: 0.5},
		},
		"shaken": {
			Model: "pendulum", Integrator: "rk45", Adaptive: true, MaxStep: 0.01,
			Grid:      GridConfig{From: 0, To: 20, Samples: 2000},
			InitState: InitStateConfig{Theta: 0.1},
			Params:    ParamsConfig{Length: 1, Gravity: DefaultGravity, Damping: 0.2},
			Pivot:     PivotConfig{Kind: "harmonic", Amplitude: 0.2, Frequency: 1.0},
		},
		"lurch": {
			Model: "pendulum", Integrator: "rk4", MaxStep: 0.005,
			Grid:      GridConfig{From: -5, To: 10, Samples: 1500},
			InitState: InitStateConfig{Theta: 0.1},
			Params:    ParamsConfig{Length: 1, Gravity: DefaultGravity, Damping: 1},
			Pivot:     PivotConfig{Kind: "step", Amplitude: 1, Speed: 5},
		},
		"freefall": {
			Model: "pendulum", Integrator: "rk4", MaxStep: 0.01,
			Grid:      GridConfig{From: 0, To: 10, Samples: 1000},
			InitState: InitStateConfig{Theta: 1.5707963267948966},
			Params:    ParamsConfig{Length: 1, Gravity: DefaultGravity},
			Pivot:     PivotConfig{Kind: "freefall"},
		},
	},
	"double_pendulum": {
		"gentle": {
			Model: "double_pendulum", Integrator: "rk4", MaxStep: 0.01,
			Grid:      GridConfig{From: 0, To: 30, Samples: 3000},
			InitState: InitStateConfig{Theta: 0.3, Theta1: 0.3},
			Params:    ParamsConfig{Length: 1, Length1: 1, Mass: 1, Mass1: 1, Gravity: DefaultGravity},
		},
		"counter": {
			Model: "double_pendulum", Integrator: "rk4", MaxStep: 0.005,
			Grid:      GridConfig{From: 0, To: 100, Samples: 10000},
			InitState: InitStateConfig{Omega: -1, Omega1: 1},
			Params:    ParamsConfig{Length: 1, Length1: 1, Mass: 1, Mass1: 1, Gravity: DefaultGravity},
		},
		"chaos": {
			Model: "double_pendulum", Integrator: "rk45", Adaptive: true, MaxStep: 0.005,
			Grid:      GridConfig{From: 0, To: 60, Samples: 6000},
			InitState: InitStateConfig{Theta: 3.0, Theta1: 3.0},
			Params:    ParamsConfig{Length: 1, Length1: 1, Mass: 1, Mass1: 1, Gravity: DefaultGravity},
		},
	},
}

func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
