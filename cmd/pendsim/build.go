package main

import (
	"fmt"

	"github.com/pendlab/pendsim/dynamo"
	"github.com/pendlab/pendsim/integrators"
	"github.com/pendlab/pendsim/internal/config"
	"github.com/pendlab/pendsim/metrics"
	"github.com/pendlab/pendsim/models"
)

func buildIntegrator(name string) (dynamo.Integrator, error) {
	switch name {
	case "euler":
		return integrators.NewEuler(), nil
	case "rk4":
		return integrators.NewRK4(), nil
	case "rk45":
		return integrators.NewRK45(), nil
	case "verlet":
		return integrators.NewVerlet(), nil
	case "leapfrog":
		return integrators.NewLeapfrog(), nil
	default:
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
}

func buildModel(cfg *config.Config) (dynamo.System, error) {
	switch cfg.Model {
	case "pendulum":
		return &models.Pendulum{
			Length:  cfg.Params.Length,
			Gravity: cfg.Params.Gravity,
			Damping: cfg.Params.Damping,
			Pivot:   cfg.BuildForcing(),
		}, nil
	case "double_pendulum":
		return &models.DoublePendulum{
			M0: cfg.Params.Mass, M1: cfg.Params.Mass1,
			L0: cfg.Params.Length, L1: cfg.Params.Length1,
			Gravity: cfg.Params.Gravity,
			Pivot:   cfg.BuildForcing(),
		}, nil
	default:
		return nil, fmt.Errorf("unknown model: %s (want pendulum or double_pendulum)", cfg.Model)
	}
}

func defaultMetrics(dyn dynamo.System) []dynamo.Metric {
	ms := []dynamo.Metric{metrics.NewAmplitude(0)}
	if h, ok := dyn.(dynamo.Hamiltonian); ok {
		ms = append(ms, metrics.NewEnergy(h), metrics.NewEnergyDrift(h))
	}
	return ms
}
