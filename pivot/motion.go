// Package pivot describes the externally prescribed motion of a pendulum's
// suspension point. Callers supply ordinary position functions of time; the
// second derivative needed by the equations of motion is estimated
// numerically, so positions only have to be twice differentiable at the
// times the solver probes.
package pivot

// Path is a scalar displacement of the pivot along one axis as a function
// of time. Implementations must be pure: the solver evaluates them at
// arbitrary times, not necessarily in increasing order.
type Path func(t float64) float64

// DefaultStep is the finite-difference step used to estimate pivot
// accelerations from positions. The central second difference is exact for
// quadratic paths (uniform acceleration, free fall); for smooth paths the
// truncation error is O(DefaultStep^2).
const DefaultStep = 1e-4

// Forcing is the pivot's acceleration, resolved into horizontal and
// vertical components. The zero value (nil components) is a stationary
// pivot.
type Forcing struct {
	AX Path
	AY Path
}

// Stationary returns the forcing of a fixed pivot.
func Stationary() Forcing {
	return Forcing{}
}

// At evaluates both acceleration components, treating nil as zero.
func (f Forcing) At(t float64) (ax, ay float64) {
	if f.AX != nil {
		ax = f.AX(t)
	}
	if f.AY != nil {
		ay = f.AY(t)
	}
	return ax, ay
}

// FromPositions derives pivot accelerations from displacement paths by
// central finite differences with step h. h <= 0 selects DefaultStep.
// A nil path stands for a coordinate that never moves.
func FromPositions(x, y Path, h float64) Forcing {
	if h <= 0 {
		h = DefaultStep
	}
	var f Forcing
	if x != nil {
		f.AX = secondDerivative(x, h)
	}
	if y != nil {
		f.AY = secondDerivative(y, h)
	}
	return f
}

// FromAccelerations wraps caller-supplied acceleration functions directly,
// skipping numerical differentiation.
func FromAccelerations(ax, ay Path) Forcing {
	return Forcing{AX: ax, AY: ay}
}

// Constant returns a uniformly accelerating pivot.
func Constant(ax, ay float64) Forcing {
	return Forcing{
		AX: func(float64) float64 { return ax },
		AY: func(float64) float64 { return ay },
	}
}

// secondDerivative estimates f'' with the three-point central stencil
// (f(t+h) - 2f(t) + f(t-h)) / h^2.
func secondDerivative(f Path, h float64) Path {
	return func(t float64) float64 {
		return (f(t+h) - 2*f(t) + f(t-h)) / (h * h)
	}
}
