package dynamo

import (
	"context"
	"fmt"
	"math"
)

// Solver integrates a System over a caller-supplied time grid. The grid only
// fixes where the trajectory is sampled; the internal step sequence between
// grid times is the solver's own (fixed substeps bounded by MaxStep, or
// error-controlled steps when Adaptive is set and the integrator supports it).
//
// A Solver is not safe for concurrent use; build one per goroutine.
type Solver struct {
	integrator Integrator
	cfg        Config
	metrics    []Metric
	observers  []Observer
}

func NewSolver(integ Integrator, cfg Config) *Solver {
	return &Solver{
		integrator: integ,
		cfg:        cfg,
	}
}

func (s *Solver) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Solver) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// MetricValues snapshots the registered metrics, keyed by name.
func (s *Solver) MetricValues() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

// Solve integrates dyn from x0 across times and returns the sampled
// trajectory, one row per grid time. On a mid-run failure the partial
// trajectory accumulated so far is returned alongside the error.
func (s *Solver) Solve(ctx context.Context, dyn System, x0 State, times []float64) (*Trajectory, error) {
	if err := s.validate(dyn, x0, times); err != nil {
		return nil, err
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	tr := &Trajectory{
		Times:  make([]float64, 0, len(times)),
		States: make([]State, 0, len(times)),
	}

	x := x0.Clone()
	s.sample(tr, x, times[0])
	dtTry := s.cfg.MaxStep

	for i := 1; i < len(times); i++ {
		select {
		case <-ctx.Done():
			return tr, &StepError{Index: i, Time: times[i-1], Wrapped: ctx.Err()}
		default:
		}

		var err error
		if s.cfg.Adaptive {
			x, dtTry, err = s.advanceAdaptive(dyn, x, times[i-1], times[i], dtTry)
		} else {
			x = s.advanceFixed(dyn, x, times[i-1], times[i])
		}
		if err != nil {
			return tr, &StepError{Index: i, Time: times[i], Wrapped: err}
		}

		if s.cfg.ValidateState && !x.IsValid() {
			return tr, &StepError{Index: i, Time: times[i], Wrapped: ErrInvalidState}
		}

		s.sample(tr, x, times[i])
	}

	return tr, nil
}

func (s *Solver) sample(tr *Trajectory, x State, t float64) {
	for _, m := range s.metrics {
		m.Observe(x, t)
	}
	for _, obs := range s.observers {
		obs.OnStep(x, t)
	}
	tr.Times = append(tr.Times, t)
	tr.States = append(tr.States, x.Clone())
}

// advanceFixed substeps [t0, t1] so that no step exceeds MaxStep.
func (s *Solver) advanceFixed(dyn System, x State, t0, t1 float64) State {
	span := t1 - t0
	n := int(math.Ceil(span / s.cfg.MaxStep))
	if n < 1 {
		n = 1
	}
	dt := span / float64(n)

	t := t0
	for i := 0; i < n; i++ {
		x = s.integrator.Step(dyn, x, t, dt)
		t += dt
	}
	return x
}

// advanceAdaptive walks [t0, t1] with error-controlled steps, carrying the
// suggested step size into the next interval.
func (s *Solver) advanceAdaptive(dyn System, x State, t0, t1, dtTry float64) (State, float64, error) {
	adaptive, ok := s.integrator.(AdaptiveIntegrator)
	if !ok {
		return s.advanceFixed(dyn, x, t0, t1), dtTry, nil
	}

	t := t0
	for t < t1 {
		dt := dtTry
		if dt > s.cfg.MaxStep {
			dt = s.cfg.MaxStep
		}
		if t+dt > t1 {
			dt = t1 - t
		}

		next, dtNext, err := adaptive.StepAdaptive(dyn, x, t, dt, s.cfg.Tolerance)
		if err != nil {
			return x, dtTry, err
		}
		if dtNext < s.cfg.MinStep {
			return x, dtTry, ErrStepTooSmall
		}

		x = next
		t += dt
		dtTry = dtNext
	}
	return x, dtTry, nil
}

func (s *Solver) validate(dyn System, x0 State, times []float64) error {
	if s.integrator == nil {
		return fmt.Errorf("%w: nil integrator", ErrConfig)
	}
	if want := dyn.StateDim(); len(x0) != want {
		return fmt.Errorf("%w: got %d components, system needs %d", ErrStateDim, len(x0), want)
	}
	if s.cfg.MaxStep <= 0 {
		return fmt.Errorf("%w: MaxStep must be positive, got %g", ErrConfig, s.cfg.MaxStep)
	}
	if s.cfg.Adaptive && s.cfg.Tolerance <= 0 {
		return fmt.Errorf("%w: Tolerance must be positive for adaptive stepping", ErrConfig)
	}
	if !validGrid(times) {
		return ErrTimeGrid
	}
	return nil
}
