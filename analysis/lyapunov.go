package analysis

import (
	"math"

	"github.com/pendlab/pendsim/dynamo"
)

// LyapunovExponent estimates the largest Lyapunov exponent by running two
// trajectories started perturbation apart and renormalizing their
// separation back to the initial distance after every step; the exponent is
// the time average of the logarithmic stretching factors. Positive values
// indicate chaos, values near zero regular motion.
func LyapunovExponent(
	dyn dynamo.System,
	integ dynamo.Integrator,
	x0 dynamo.State,
	dt, duration float64,
	perturbation float64,
) float64 {
	if len(x0) == 0 || dt <= 0 || perturbation <= 0 {
		return 0
	}

	x := x0.Clone()
	xp := x0.Clone()
	xp[0] += perturbation

	d0 := perturbation
	t := 0.0
	sumLog := 0.0

	for t < duration {
		x = integ.Step(dyn, x, t, dt)
		xp = integ.Step(dyn, xp, t, dt)
		t += dt

		sep := xp.Sub(x).Norm()
		if sep <= 0 || math.IsNaN(sep) || math.IsInf(sep, 0) {
			break
		}

		sumLog += math.Log(sep / d0)

		// Rescale the companion trajectory back to distance d0 so the
		// separation stays in the linear regime.
		scale := d0 / sep
		for i := range xp {
			xp[i] = x[i] + (xp[i]-x[i])*scale
		}
	}

	if t == 0 {
		return 0
	}
	return sumLog / t
}
