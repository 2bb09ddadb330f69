package pendsim

import (
	"github.com/pendlab/pendsim/dynamo"
	"github.com/pendlab/pendsim/pivot"
)

// PendulumOptions configures a simple-pendulum run. Fields are used exactly
// as given; start from DefaultPendulumOptions for the documented defaults
// (length 1 m, gravity 9.8 m/s^2, no damping, stationary pivot).
type PendulumOptions struct {
	Length  float64
	Gravity float64
	// Damping is the linear velocity-proportional dissipation coefficient.
	Damping float64

	// PivotX/PivotY prescribe the pivot's displacement over time; their
	// accelerations are estimated by finite differences (pivot.DefaultStep).
	// Leave nil for a stationary pivot.
	PivotX pivot.Path
	PivotY pivot.Path
	// Pivot supplies accelerations directly and, when set, takes precedence
	// over PivotX/PivotY.
	Pivot pivot.Forcing

	// Solver holds the integration settings; see dynamo.DefaultConfig for
	// the default values.
	Solver dynamo.Config
}

func DefaultPendulumOptions() PendulumOptions {
	return PendulumOptions{
		Length:  1.0,
		Gravity: 9.8,
		Damping: 0.0,
		Solver:  dynamo.DefaultConfig(),
	}
}

// DoublePendulumOptions configures a double-pendulum run. Index 0 is the
// segment attached to the pivot, index 1 the segment attached to segment 0.
type DoublePendulumOptions struct {
	Masses  [2]float64
	Lengths [2]float64
	Gravity float64

	PivotX pivot.Path
	PivotY pivot.Path
	Pivot  pivot.Forcing

	Solver dynamo.Config
}

func DefaultDoublePendulumOptions() DoublePendulumOptions {
	return DoublePendulumOptions{
		Masses:  [2]float64{1.0, 1.0},
		Lengths: [2]float64{1.0, 1.0},
		Gravity: 9.8,
		Solver:  dynamo.DefaultConfig(),
	}
}
