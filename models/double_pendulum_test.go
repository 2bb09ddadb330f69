package models

import (
	"math"
	"testing"

	"github.com/pendlab/pendsim/dynamo"
	"github.com/pendlab/pendsim/pivot"
)

func TestDoublePendulumStateDim(t *testing.T) {
	d := NewDoublePendulum()
	if d.StateDim() != 4 {
		t.Errorf("StateDim = %d, want 4", d.StateDim())
	}
}

func TestDoublePendulumEquilibria(t *testing.T) {
	d := NewDoublePendulum()

	// All four alignments of the two rods with the vertical are fixed
	// points of the dynamics.
	configs := [][2]float64{
		{0, 0},
		{0, math.Pi},
		{math.Pi, 0},
		{math.Pi, math.Pi},
	}

	for _, c := range configs {
		dx := d.Derive(dynamo.State{c[0], 0, c[1], 0}, 0)
		if math.Abs(dx[1]) > 1e-13 || math.Abs(dx[3]) > 1e-13 {
			t.Errorf("(%g, %g) not an equilibrium: accels (%g, %g)",
				c[0], c[1], dx[1], dx[3])
		}
	}
}

func TestDoublePendulumSmallAngleDecoupling(t *testing.T) {
	// With m1 -> 0 the first segment must reduce to a simple pendulum:
	// its acceleration stops depending on segment 1 entirely.
	d := &DoublePendulum{M0: 1.0, M1: 1e-12, L0: 2.0, L1: 1.0, Gravity: 9.8}
	dx := d.Derive(dynamo.State{0.3, 0, 1.2, 0.5}, 0)

	want := -(9.8 / 2.0) * math.Sin(0.3)
	if math.Abs(dx[1]-want) > 1e-9 {
		t.Errorf("massless second bob: alpha0 = %g, want %g", dx[1], want)
	}
}

func TestDoublePendulumFreeFallingPivot(t *testing.T) {
	// A pivot in free fall cancels gravity for both segments.
	d := &DoublePendulum{
		M0: 1.5, M1: 0.5,
		L0: 1.0, L1: 2.0,
		Gravity: 9.8,
		Pivot:   pivot.Constant(0, -9.8),
	}

	dx := d.Derive(dynamo.State{0.8, 0, -0.4, 0}, 0)
	if math.Abs(dx[1]) > 1e-12 || math.Abs(dx[3]) > 1e-12 {
		t.Errorf("free-fall accels (%g, %g), want (0, 0)", dx[1], dx[3])
	}
}

func TestDoublePendulumSymmetry(t *testing.T) {
	d := NewDoublePendulum()
	plus := d.Derive(dynamo.State{0.4, 0, 0.2, 0}, 0)
	minus := d.Derive(dynamo.State{-0.4, 0, -0.2, 0}, 0)

	if math.Abs(plus[1]+minus[1]) > 1e-13 || math.Abs(plus[3]+minus[3]) > 1e-13 {
		t.Errorf("dynamics not odd under reflection: %v vs %v", plus, minus)
	}
}

func TestDoublePendulumEnergy(t *testing.T) {
	d := NewDoublePendulum()

	// Hanging at rest: both bobs below the pivot.
	e := d.Energy(dynamo.State{0, 0, 0, 0})
	want := -9.8*1.0 - 9.8*2.0
	if math.Abs(e-want) > 1e-12 {
		t.Errorf("rest energy = %g, want %g", e, want)
	}

	// Fully inverted at rest: mirror image above the pivot.
	e = d.Energy(dynamo.State{math.Pi, 0, math.Pi, 0})
	if math.Abs(e+want) > 1e-12 {
		t.Errorf("inverted energy = %g, want %g", e, -want)
	}
}

func TestDoublePendulumDegenerateParamsPropagate(t *testing.T) {
	d := &DoublePendulum{M0: 0, M1: 0, L0: 0, L1: 0, Gravity: 9.8}
	dx := d.Derive(dynamo.State{0.5, 0.1, 0.2, 0.3}, 0)

	if !math.IsNaN(dx[1]) && !math.IsInf(dx[1], 0) {
		t.Errorf("degenerate params gave finite alpha0 = %g", dx[1])
	}
}

func TestDoublePendulumTipPositions(t *testing.T) {
	d := &DoublePendulum{L0: 1.0, L1: 2.0}

	x0, y0, x1, y1 := d.TipPositions(0, 0)
	if math.Abs(y0+1.0) > 1e-14 || math.Abs(y1+3.0) > 1e-14 {
		t.Errorf("hanging tips at y=(%g, %g), want (-1, -3)", y0, y1)
	}
	if math.Abs(x0) > 1e-14 || math.Abs(x1) > 1e-14 {
		t.Errorf("hanging tips at x=(%g, %g), want (0, 0)", x0, x1)
	}
}

func TestDoublePendulumSetParam(t *testing.T) {
	d := NewDoublePendulum()

	if err := d.SetParam("mass1", 3.0); err != nil {
		t.Fatalf("SetParam(mass1): %v", err)
	}
	if d.M1 != 3.0 {
		t.Errorf("M1 = %g, want 3.0", d.M1)
	}

	if err := d.SetParam("spring", 1.0); err == nil {
		t.Error("expected error for unknown param")
	}
}
