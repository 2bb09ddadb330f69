package dynamo

import "math"

// State is the vector of generalized coordinates and velocities describing
// a system at an instant. Its dimension is fixed by the System it belongs to.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

// IsValid reports whether the state is free of NaN and Inf entries.
func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

// System is an autonomous-or-forced ODE dX/dt = f(X, t). Derive must be a
// pure function of its arguments: the solver probes it at times outside the
// output grid and out of increasing order.
type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

// Hamiltonian is implemented by systems that can report total mechanical
// energy, used for drift diagnostics.
type Hamiltonian interface {
	Energy(x State) float64
}

type Integrator interface {
	Step(dyn System, x State, t float64, dt float64) State
}

// AdaptiveIntegrator additionally estimates local error and suggests the
// next step size.
type AdaptiveIntegrator interface {
	Integrator
	StepAdaptive(dyn System, x State, t, dt, tol float64) (State, float64, error)
}

type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(x State, t float64)
}

// Configurable is implemented by systems whose physical parameters can be
// inspected and tuned at runtime (used by the live view).
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// Config holds solver settings. The zero value is not usable; start from
// DefaultConfig.
type Config struct {
	// MaxStep caps the internal step between two grid times. Fixed-step
	// integration substeps each grid interval so no step exceeds it.
	MaxStep float64
	// Adaptive enables error-controlled stepping for AdaptiveIntegrators.
	Adaptive bool
	// Tolerance is the local error tolerance for adaptive stepping.
	Tolerance float64
	// MinStep aborts adaptive stepping when the suggested step falls below it.
	MinStep float64
	// ValidateState stops integration when the state picks up NaN or Inf.
	// Off by default: degenerate physical parameters are expected to yield
	// NaN trajectories rather than errors.
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		MaxStep:       0.01,
		Adaptive:      false,
		Tolerance:     1e-6,
		MinStep:       1e-8,
		ValidateState: false,
	}
}

// Trajectory is the sampled result of integrating a System over a time grid:
// one row per grid time, one column per state dimension.
type Trajectory struct {
	Times  []float64
	States []State
}

// Len returns the number of sampled times.
func (tr *Trajectory) Len() int { return len(tr.Times) }

// Dim returns the state dimension, or 0 for an empty trajectory.
func (tr *Trajectory) Dim() int {
	if len(tr.States) == 0 {
		return 0
	}
	return len(tr.States[0])
}

// Col extracts a single state component as a time series.
func (tr *Trajectory) Col(j int) []float64 {
	out := make([]float64, len(tr.States))
	for i, x := range tr.States {
		if j < len(x) {
			out[i] = x[j]
		}
	}
	return out
}

// Last returns the final sampled state, for chaining one simulation off the
// end of another. Returns nil for an empty trajectory.
func (tr *Trajectory) Last() State {
	if len(tr.States) == 0 {
		return nil
	}
	return tr.States[len(tr.States)-1].Clone()
}
