package models

import (
	"math"
	"testing"

	"github.com/pendlab/pendsim/dynamo"
	"github.com/pendlab/pendsim/pivot"
)

func TestPendulumStateDim(t *testing.T) {
	p := NewPendulum()
	if p.StateDim() != 2 {
		t.Errorf("StateDim = %d, want 2", p.StateDim())
	}
}

func TestPendulumEquilibrium(t *testing.T) {
	p := NewPendulum()

	dx := p.Derive(dynamo.State{0, 0}, 0)
	if dx[0] != 0 || dx[1] != 0 {
		t.Errorf("hanging equilibrium not stationary: %v", dx)
	}

	// Inverted equilibrium: sin(pi) is ~1e-16, not exactly zero.
	dx = p.Derive(dynamo.State{math.Pi, 0}, 0)
	if math.Abs(dx[1]) > 1e-14 {
		t.Errorf("inverted equilibrium accel = %g, want ~0", dx[1])
	}
}

func TestPendulumHorizontalAcceleration(t *testing.T) {
	// At theta = pi/2 the rod is horizontal and gravity acts fully
	// tangentially: domega/dt = -g/l.
	p := &Pendulum{Length: 2.0, Gravity: 9.8}
	dx := p.Derive(dynamo.State{math.Pi / 2, 0}, 0)

	want := -9.8 / 2.0
	if math.Abs(dx[1]-want) > 1e-12 {
		t.Errorf("accel = %g, want %g", dx[1], want)
	}
}

func TestPendulumSymmetry(t *testing.T) {
	p := NewPendulum()
	plus := p.Derive(dynamo.State{0.3, 0}, 0)
	minus := p.Derive(dynamo.State{-0.3, 0}, 0)

	if math.Abs(plus[1]+minus[1]) > 1e-14 {
		t.Errorf("restoring force not odd in theta: %g vs %g", plus[1], minus[1])
	}
}

func TestPendulumDamping(t *testing.T) {
	p := &Pendulum{Length: 1.0, Gravity: 9.8, Damping: 0.5}
	dx := p.Derive(dynamo.State{0, 2.0}, 0)

	want := -0.5 * 2.0
	if math.Abs(dx[1]-want) > 1e-12 {
		t.Errorf("damping accel = %g, want %g", dx[1], want)
	}
}

func TestPendulumFreeFallingPivot(t *testing.T) {
	// A pivot accelerating downward at -g cancels gravity entirely: the
	// pendulum is weightless and coasts at constant omega.
	p := &Pendulum{
		Length:  1.0,
		Gravity: 9.8,
		Pivot:   pivot.Constant(0, -9.8),
	}

	for _, theta := range []float64{0, 0.7, math.Pi / 2, 2.5} {
		dx := p.Derive(dynamo.State{theta, 0.4}, 0)
		if math.Abs(dx[1]) > 1e-12 {
			t.Errorf("theta=%g: accel = %g, want 0", theta, dx[1])
		}
		if dx[0] != 0.4 {
			t.Errorf("theta=%g: dtheta/dt = %g, want 0.4", theta, dx[0])
		}
	}
}

func TestPendulumZeroLengthPropagatesNaN(t *testing.T) {
	p := &Pendulum{Length: 0, Gravity: 9.8}
	dx := p.Derive(dynamo.State{0.5, 0}, 0)

	if !math.IsInf(dx[1], 0) && !math.IsNaN(dx[1]) {
		t.Errorf("zero length produced finite accel %g, want Inf/NaN", dx[1])
	}
}

func TestPendulumEnergy(t *testing.T) {
	p := NewPendulum()

	if e := p.Energy(dynamo.State{0, 0}); e != 0 {
		t.Errorf("rest energy = %g, want 0", e)
	}

	// Horizontal, at rest: pure potential energy g*l.
	e := p.Energy(dynamo.State{math.Pi / 2, 0})
	if math.Abs(e-9.8) > 1e-12 {
		t.Errorf("horizontal energy = %g, want 9.8", e)
	}

	// At the bottom with omega=2: pure kinetic 0.5*(l*omega)^2.
	e = p.Energy(dynamo.State{0, 2})
	if math.Abs(e-2.0) > 1e-12 {
		t.Errorf("kinetic energy = %g, want 2.0", e)
	}
}

func TestPendulumBobPosition(t *testing.T) {
	p := &Pendulum{Length: 2.0}

	x, y := p.BobPosition(0)
	if math.Abs(x) > 1e-14 || math.Abs(y+2.0) > 1e-14 {
		t.Errorf("hanging bob at (%g, %g), want (0, -2)", x, y)
	}

	x, y = p.BobPosition(math.Pi / 2)
	if math.Abs(x-2.0) > 1e-14 || math.Abs(y) > 1e-14 {
		t.Errorf("horizontal bob at (%g, %g), want (2, 0)", x, y)
	}
}

func TestPendulumSetParam(t *testing.T) {
	p := NewPendulum()

	if err := p.SetParam("length", 2.5); err != nil {
		t.Fatalf("SetParam(length): %v", err)
	}
	if p.Length != 2.5 {
		t.Errorf("Length = %g, want 2.5", p.Length)
	}

	if err := p.SetParam("flux", 1.0); err == nil {
		t.Error("expected error for unknown param")
	}

	params := p.GetParams()
	if params["length"] != 2.5 || params["gravity"] != 9.8 {
		t.Errorf("unexpected params: %v", params)
	}
}
