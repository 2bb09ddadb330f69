package models

import (
	"fmt"
	"math"

	"github.com/pendlab/pendsim/dynamo"
	"github.com/pendlab/pendsim/pivot"
)

const (
	DefaultMass    = 1.0
	DefaultLength  = 1.0
	DefaultGravity = 9.8
)

// DoublePendulum is two coupled rigid-rod segments with point masses at
// their ends, undamped, sharing an optionally moving pivot. Segment 0
// attaches to the pivot, segment 1 to the end of segment 0.
// State layout: (theta0, omega0, theta1, omega1).
type DoublePendulum struct {
	M0, M1  float64
	L0, L1  float64
	Gravity float64
	Pivot   pivot.Forcing
}

func NewDoublePendulum() *DoublePendulum {
	return &DoublePendulum{
		M0: DefaultMass, M1: DefaultMass,
		L0: DefaultLength, L1: DefaultLength,
		Gravity: DefaultGravity,
	}
}

func (d *DoublePendulum) StateDim() int { return 4 }

// Derive computes the four state derivatives. The two angular accelerations
// are mutually dependent through the mass matrix
//
//	[ (m0+m1) l0        m1 l1 cos(delta) ] [alpha0]   [b0]
//	[ l0 cos(delta)     l1               ] [alpha1] = [b1]
//
// with delta = theta0 - theta1, solved in closed form by Cramer's rule. The
// pivot acceleration enters both right-hand sides exactly as in the simple
// pendulum: ay shifts gravity, ax forces the cos(theta) direction. The
// determinant l0*l1*(m0 + m1 sin^2(delta)) is positive for positive masses
// and lengths; degenerate parameters yield NaN/Inf, not an error.
func (d *DoublePendulum) Derive(x dynamo.State, t float64) dynamo.State {
	theta0, omega0, theta1, omega1 := x[0], x[1], x[2], x[3]
	m0, m1, l0, l1, g := d.M0, d.M1, d.L0, d.L1, d.Gravity

	ax, ay := d.Pivot.At(t)
	gy := g + ay

	delta := theta0 - theta1
	sinD, cosD := math.Sin(delta), math.Cos(delta)

	a00 := (m0 + m1) * l0
	a01 := m1 * l1 * cosD
	a10 := l0 * cosD
	a11 := l1

	b0 := -m1*l1*omega1*omega1*sinD -
		(m0+m1)*(gy*math.Sin(theta0)+ax*math.Cos(theta0))
	b1 := l0*omega0*omega0*sinD -
		gy*math.Sin(theta1) - ax*math.Cos(theta1)

	det := a00*a11 - a01*a10

	alpha0 := (b0*a11 - a01*b1) / det
	alpha1 := (a00*b1 - b0*a10) / det

	return dynamo.State{omega0, alpha0, omega1, alpha1}
}

// Energy returns the total mechanical energy for a stationary pivot, with
// the potential zero at the pivot height.
func (d *DoublePendulum) Energy(x dynamo.State) float64 {
	theta0, omega0, theta1, omega1 := x[0], x[1], x[2], x[3]
	m0, m1, l0, l1, g := d.M0, d.M1, d.L0, d.L1, d.Gravity

	v0sq := l0 * l0 * omega0 * omega0
	v1sq := l0*l0*omega0*omega0 + l1*l1*omega1*omega1 +
		2*l0*l1*omega0*omega1*math.Cos(theta0-theta1)

	ke := 0.5*m0*v0sq + 0.5*m1*v1sq
	y0 := -l0 * math.Cos(theta0)
	y1 := y0 - l1*math.Cos(theta1)
	pe := m0*g*y0 + m1*g*y1

	return ke + pe
}

// TipPositions returns both bob coordinates relative to the pivot.
func (d *DoublePendulum) TipPositions(theta0, theta1 float64) (x0, y0, x1, y1 float64) {
	x0 = d.L0 * math.Sin(theta0)
	y0 = -d.L0 * math.Cos(theta0)
	x1 = x0 + d.L1*math.Sin(theta1)
	y1 = y0 - d.L1*math.Cos(theta1)
	return
}

func (d *DoublePendulum) GetParams() map[string]float64 {
	return map[string]float64{
		"mass0":   d.M0,
		"mass1":   d.M1,
		"length0": d.L0,
		"length1": d.L1,
		"gravity": d.Gravity,
	}
}

func (d *DoublePendulum) SetParam(name string, value float64) error {
	switch name {
	case "mass0":
		d.M0 = value
	case "mass1":
		d.M1 = value
	case "length0":
		d.L0 = value
	case "length1":
		d.L1 = value
	case "gravity":
		d.Gravity = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
