// Package pendsim simulates the motion of simple and double pendula,
// optionally with a moving (non-inertial) pivot and optional damping, by
// integrating their equations of motion over a caller-supplied time grid.
//
//	ts := dynamo.Linspace(0, 10, 1000)
//	tr, err := pendsim.Pendulum(dynamo.State{0.1, 0}, ts, pendsim.DefaultPendulumOptions())
//
// Both entry points are pure functions of their inputs: identical calls
// produce identical trajectories.
package pendsim

import (
	"context"

	"github.com/pendlab/pendsim/dynamo"
	"github.com/pendlab/pendsim/integrators"
	"github.com/pendlab/pendsim/models"
	"github.com/pendlab/pendsim/pivot"
)

// Pendulum integrates the simple-pendulum equations from state (theta,
// omega) across times and returns the sampled trajectory (len(times) rows,
// 2 columns).
//
// Physical parameters are taken from opts as-is: a zero length yields a
// NaN/Inf trajectory rather than an error, matching the underlying numeric
// behavior. Only the state dimension, the time grid and the solver
// configuration are validated.
func Pendulum(state dynamo.State, times []float64, opts PendulumOptions) (*dynamo.Trajectory, error) {
	dyn := &models.Pendulum{
		Length:  opts.Length,
		Gravity: opts.Gravity,
		Damping: opts.Damping,
		Pivot:   forcing(opts.PivotX, opts.PivotY, opts.Pivot),
	}
	return solve(dyn, state, times, opts.Solver)
}

// DoublePendulum integrates the double-pendulum equations from state
// (theta0, omega0, theta1, omega1) across times and returns the sampled
// trajectory (len(times) rows, 4 columns). Degenerate masses or lengths
// propagate as NaN/Inf, as in Pendulum.
func DoublePendulum(state dynamo.State, times []float64, opts DoublePendulumOptions) (*dynamo.Trajectory, error) {
	dyn := &models.DoublePendulum{
		M0: opts.Masses[0], M1: opts.Masses[1],
		L0: opts.Lengths[0], L1: opts.Lengths[1],
		Gravity: opts.Gravity,
		Pivot:   forcing(opts.PivotX, opts.PivotY, opts.Pivot),
	}
	return solve(dyn, state, times, opts.Solver)
}

func solve(dyn dynamo.System, state dynamo.State, times []float64, cfg dynamo.Config) (*dynamo.Trajectory, error) {
	var integ dynamo.Integrator
	if cfg.Adaptive {
		integ = integrators.NewRK45()
	} else {
		integ = integrators.NewRK4()
	}
	solver := dynamo.NewSolver(integ, cfg)
	return solver.Solve(context.Background(), dyn, state, times)
}

// forcing resolves the pivot inputs: explicit accelerations win over
// position paths; both nil means a stationary pivot.
func forcing(px, py pivot.Path, f pivot.Forcing) pivot.Forcing {
	if f.AX != nil || f.AY != nil {
		return f
	}
	if px == nil && py == nil {
		return pivot.Stationary()
	}
	return pivot.FromPositions(px, py, pivot.DefaultStep)
}
