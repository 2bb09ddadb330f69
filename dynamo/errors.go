package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for solver operations. Numeric degeneracies (zero length,
// zero mass, non-differentiable pivot paths) are deliberately NOT errors:
// they propagate into the trajectory as NaN/Inf.
var (
	// ErrTimeGrid indicates an empty or non-strictly-increasing time grid.
	ErrTimeGrid = errors.New("dynamo: time grid must be non-empty and strictly increasing")

	// ErrConfig indicates an unusable solver configuration.
	ErrConfig = errors.New("dynamo: invalid solver config")

	// ErrStateDim indicates an initial state whose dimension does not match
	// the system's.
	ErrStateDim = errors.New("dynamo: initial state dimension mismatch")

	// ErrStepTooSmall indicates adaptive stepping drove the step below MinStep.
	ErrStepTooSmall = errors.New("dynamo: adaptive step below minimum")

	// ErrInvalidState indicates NaN/Inf was detected with ValidateState on.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")
)

// StepError wraps a solver error with the grid index and time it occurred at.
type StepError struct {
	Index   int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("sample %d (t=%.6g): %v", e.Index, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
