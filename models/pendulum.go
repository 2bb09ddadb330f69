package models

import (
	"fmt"
	"math"

	"github.com/pendlab/pendsim/dynamo"
	"github.com/pendlab/pendsim/pivot"
)

// Pendulum is a point mass on a rigid rod of fixed length, under gravity,
// optional viscous damping, and an optional prescribed pivot motion.
// State layout: (theta, omega), with theta measured from the downward
// vertical. The bob's mass cancels out of the equation of motion and is not
// a parameter.
type Pendulum struct {
	Length  float64
	Gravity float64
	Damping float64
	Pivot   pivot.Forcing
}

func NewPendulum() *Pendulum {
	return &Pendulum{
		Length:  1.0,
		Gravity: 9.8,
		Damping: 0.0,
	}
}

func (p *Pendulum) StateDim() int {
	return 2
}

// Derive implements the damped pendulum equation on a pivot undergoing
// prescribed acceleration (ax, ay):
//
//	dtheta/dt = omega
//	domega/dt = -(g/l) sin(theta) - d*omega - (ax/l) cos(theta) - (ay/l) sin(theta)
//
// No parameter validation happens here: a zero length divides by zero and
// the resulting Inf/NaN propagates into the trajectory.
func (p *Pendulum) Derive(x dynamo.State, t float64) dynamo.State {
	theta := x[0]
	omega := x[1]

	ax, ay := p.Pivot.At(t)
	sin, cos := math.Sin(theta), math.Cos(theta)

	alpha := -(p.Gravity/p.Length)*sin - p.Damping*omega -
		(ax/p.Length)*cos - (ay/p.Length)*sin

	return dynamo.State{omega, alpha}
}

// Energy returns the total mechanical energy per unit mass for a stationary
// pivot: 0.5*(l*omega)^2 + g*l*(1 - cos(theta)).
func (p *Pendulum) Energy(x dynamo.State) float64 {
	v := p.Length * x[1]
	ke := 0.5 * v * v
	pe := p.Gravity * p.Length * (1.0 - math.Cos(x[0]))
	return ke + pe
}

// BobPosition returns the bob's coordinates relative to the pivot.
func (p *Pendulum) BobPosition(theta float64) (x, y float64) {
	return p.Length * math.Sin(theta), -p.Length * math.Cos(theta)
}

func (p *Pendulum) GetParams() map[string]float64 {
	return map[string]float64{
		"length":  p.Length,
		"gravity": p.Gravity,
		"damping": p.Damping,
	}
}

func (p *Pendulum) SetParam(name string, value float64) error {
	switch name {
	case "length":
		p.Length = value
	case "gravity":
		p.Gravity = value
	case "damping":
		p.Damping = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
