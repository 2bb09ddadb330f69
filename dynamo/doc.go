// Package dynamo provides the core primitives for numerical simulation of
// ordinary differential equations (ODEs):
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [Integrator] / [AdaptiveIntegrator]: numerical stepping schemes
//   - [Solver]: integrates a system over a time grid into a [Trajectory]
//
// # Example
//
//	dyn := models.NewPendulum()
//	solver := dynamo.NewSolver(integrators.NewRK4(), dynamo.DefaultConfig())
//	tr, err := solver.Solve(ctx, dyn, dynamo.State{0.1, 0}, dynamo.Linspace(0, 10, 1000))
//
// # Thread safety
//
// Solver instances are NOT thread-safe. Systems and their pivot-motion
// functions must be free of shared mutable state if the same values are used
// from several goroutines; the stock models satisfy this as long as their
// parameters are not mutated mid-run.
package dynamo
