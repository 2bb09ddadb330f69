package metrics

import (
	"math"

	"github.com/pendlab/pendsim/dynamo"
)

// Amplitude tracks the largest absolute excursion of one state component,
// by default the first angle.
type Amplitude struct {
	name  string
	index int
	max   float64
}

func NewAmplitude(index int) *Amplitude {
	return &Amplitude{
		name:  "amplitude",
		index: index,
	}
}

func (a *Amplitude) Name() string { return a.name }

func (a *Amplitude) Observe(x dynamo.State, t float64) {
	if a.index >= len(x) {
		return
	}
	a.max = math.Max(a.max, math.Abs(x[a.index]))
}

func (a *Amplitude) Value() float64 {
	return a.max
}

func (a *Amplitude) Reset() {
	a.max = 0
}
