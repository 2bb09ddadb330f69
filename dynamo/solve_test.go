package dynamo_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pendlab/pendsim/dynamo"
	"github.com/pendlab/pendsim/integrators"
)

// oscillator is x'' = -x, solved by cos(t) from (1, 0).
type oscillator struct{}

func (o *oscillator) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{x[1], -x[0]}
}

func (o *oscillator) StateDim() int { return 2 }

// blowup turns NaN after a threshold time.
type blowup struct{ after float64 }

func (b *blowup) Derive(x dynamo.State, t float64) dynamo.State {
	if t >= b.after {
		return dynamo.State{math.NaN(), math.NaN()}
	}
	return dynamo.State{x[1], -x[0]}
}

func (b *blowup) StateDim() int { return 2 }

// lastSeen records every sampled state.
type lastSeen struct {
	states []dynamo.State
	times  []float64
}

func (l *lastSeen) OnStep(x dynamo.State, t float64) {
	l.states = append(l.states, x.Clone())
	l.times = append(l.times, t)
}

var _ = Describe("Linspace", func() {
	It("spans the interval with both endpoints", func() {
		ts := dynamo.Linspace(0, 1, 11)
		Expect(ts).To(HaveLen(11))
		Expect(ts[0]).To(Equal(0.0))
		Expect(ts[10]).To(Equal(1.0))
		Expect(ts[5]).To(BeNumerically("~", 0.5, 1e-12))
	})

	It("collapses to a single sample for n < 2", func() {
		Expect(dynamo.Linspace(2, 5, 1)).To(Equal([]float64{2}))
		Expect(dynamo.Linspace(2, 5, 0)).To(Equal([]float64{2}))
	})
})

var _ = Describe("Solver", func() {
	var (
		solver *dynamo.Solver
		cfg    dynamo.Config
	)

	BeforeEach(func() {
		cfg = dynamo.DefaultConfig()
		solver = dynamo.NewSolver(integrators.NewRK4(), cfg)
	})

	Describe("input validation", func() {
		It("rejects an empty grid", func() {
			_, err := solver.Solve(context.Background(), &oscillator{}, dynamo.State{1, 0}, nil)
			Expect(err).To(MatchError(dynamo.ErrTimeGrid))
		})

		It("rejects a non-increasing grid", func() {
			_, err := solver.Solve(context.Background(), &oscillator{}, dynamo.State{1, 0},
				[]float64{0, 1, 1, 2})
			Expect(err).To(MatchError(dynamo.ErrTimeGrid))
		})

		It("rejects a decreasing grid", func() {
			_, err := solver.Solve(context.Background(), &oscillator{}, dynamo.State{1, 0},
				[]float64{0, 2, 1})
			Expect(err).To(MatchError(dynamo.ErrTimeGrid))
		})

		It("rejects an initial state of the wrong dimension", func() {
			_, err := solver.Solve(context.Background(), &oscillator{}, dynamo.State{1},
				dynamo.Linspace(0, 1, 10))
			Expect(err).To(MatchError(dynamo.ErrStateDim))

			_, err = solver.Solve(context.Background(), &oscillator{}, dynamo.State{1, 0, 0},
				dynamo.Linspace(0, 1, 10))
			Expect(err).To(MatchError(dynamo.ErrStateDim))
		})

		It("accepts a single-sample grid and returns the initial state", func() {
			tr, err := solver.Solve(context.Background(), &oscillator{}, dynamo.State{1, 0},
				[]float64{0.5})
			Expect(err).NotTo(HaveOccurred())
			Expect(tr.Len()).To(Equal(1))
			Expect(tr.States[0]).To(Equal(dynamo.State{1, 0}))
		})
	})

	Describe("config validation", func() {
		It("rejects a non-positive MaxStep", func() {
			bad := cfg
			bad.MaxStep = 0
			s := dynamo.NewSolver(integrators.NewRK4(), bad)
			_, err := s.Solve(context.Background(), &oscillator{}, dynamo.State{1, 0},
				dynamo.Linspace(0, 1, 10))
			Expect(err).To(MatchError(dynamo.ErrConfig))
		})

		It("rejects adaptive mode without a tolerance", func() {
			bad := cfg
			bad.Adaptive = true
			bad.Tolerance = 0
			s := dynamo.NewSolver(integrators.NewRK45(), bad)
			_, err := s.Solve(context.Background(), &oscillator{}, dynamo.State{1, 0},
				dynamo.Linspace(0, 1, 10))
			Expect(err).To(MatchError(dynamo.ErrConfig))
		})
	})

	Describe("fixed-step integration", func() {
		It("samples exactly at the grid times", func() {
			times := []float64{0, 0.1, 0.25, 1.0, 1.001}
			tr, err := solver.Solve(context.Background(), &oscillator{}, dynamo.State{1, 0}, times)
			Expect(err).NotTo(HaveOccurred())
			Expect(tr.Times).To(Equal(times))
			Expect(tr.Len()).To(Equal(len(times)))
			Expect(tr.Dim()).To(Equal(2))
		})

		It("reproduces the analytic oscillator solution", func() {
			times := dynamo.Linspace(0, 2, 201)
			tr, err := solver.Solve(context.Background(), &oscillator{}, dynamo.State{1, 0}, times)
			Expect(err).NotTo(HaveOccurred())

			for i, tt := range tr.Times {
				Expect(tr.States[i][0]).To(BeNumerically("~", math.Cos(tt), 1e-6))
			}
		})

		It("is deterministic across runs", func() {
			times := dynamo.Linspace(0, 5, 500)
			a, err := solver.Solve(context.Background(), &oscillator{}, dynamo.State{1, 0}, times)
			Expect(err).NotTo(HaveOccurred())
			b, err := solver.Solve(context.Background(), &oscillator{}, dynamo.State{1, 0}, times)
			Expect(err).NotTo(HaveOccurred())
			Expect(a.States).To(Equal(b.States))
		})

		It("does not mutate the initial state", func() {
			x0 := dynamo.State{1, 0}
			_, err := solver.Solve(context.Background(), &oscillator{}, x0,
				dynamo.Linspace(0, 1, 100))
			Expect(err).NotTo(HaveOccurred())
			Expect(x0).To(Equal(dynamo.State{1, 0}))
		})

		It("handles irregular grid spacing", func() {
			times := []float64{0, 0.003, 0.5, 0.50001, 3}
			tr, err := solver.Solve(context.Background(), &oscillator{}, dynamo.State{1, 0}, times)
			Expect(err).NotTo(HaveOccurred())
			Expect(tr.States[4][0]).To(BeNumerically("~", math.Cos(3), 1e-6))
		})
	})

	Describe("adaptive integration", func() {
		BeforeEach(func() {
			cfg.Adaptive = true
			cfg.Tolerance = 1e-8
			solver = dynamo.NewSolver(integrators.NewRK45(), cfg)
		})

		It("meets the analytic solution within tolerance", func() {
			times := dynamo.Linspace(0, 2, 21)
			tr, err := solver.Solve(context.Background(), &oscillator{}, dynamo.State{1, 0}, times)
			Expect(err).NotTo(HaveOccurred())

			for i, tt := range tr.Times {
				Expect(tr.States[i][0]).To(BeNumerically("~", math.Cos(tt), 1e-5))
			}
		})

		It("falls back to fixed stepping for non-adaptive integrators", func() {
			s := dynamo.NewSolver(integrators.NewRK4(), cfg)
			tr, err := s.Solve(context.Background(), &oscillator{}, dynamo.State{1, 0},
				dynamo.Linspace(0, 1, 11))
			Expect(err).NotTo(HaveOccurred())
			Expect(tr.States[10][0]).To(BeNumerically("~", math.Cos(1), 1e-6))
		})
	})

	Describe("degenerate dynamics", func() {
		It("propagates NaN silently when validation is off", func() {
			tr, err := solver.Solve(context.Background(), &blowup{after: 0.5}, dynamo.State{1, 0},
				dynamo.Linspace(0, 1, 11))
			Expect(err).NotTo(HaveOccurred())
			Expect(tr.Len()).To(Equal(11))
			Expect(math.IsNaN(tr.States[10][0])).To(BeTrue())
		})

		It("fails fast with ValidateState, returning the partial trajectory", func() {
			strict := cfg
			strict.ValidateState = true
			s := dynamo.NewSolver(integrators.NewRK4(), strict)

			tr, err := s.Solve(context.Background(), &blowup{after: 0.5}, dynamo.State{1, 0},
				dynamo.Linspace(0, 1, 11))
			Expect(err).To(MatchError(dynamo.ErrInvalidState))

			var stepErr *dynamo.StepError
			Expect(errors.As(err, &stepErr)).To(BeTrue())
			Expect(stepErr.Index).To(BeNumerically(">", 0))
			Expect(tr.Len()).To(BeNumerically("<", 11))
			Expect(tr.Len()).To(BeNumerically(">", 0))
		})
	})

	Describe("cancellation", func() {
		It("stops on a cancelled context", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			tr, err := solver.Solve(ctx, &oscillator{}, dynamo.State{1, 0},
				dynamo.Linspace(0, 1, 11))
			Expect(err).To(MatchError(context.Canceled))
			Expect(tr.Len()).To(Equal(1))
		})
	})

	Describe("observers", func() {
		It("sees every sampled point in order", func() {
			obs := &lastSeen{}
			solver.AddObserver(obs)

			times := dynamo.Linspace(0, 1, 5)
			_, err := solver.Solve(context.Background(), &oscillator{}, dynamo.State{1, 0}, times)
			Expect(err).NotTo(HaveOccurred())
			Expect(obs.times).To(Equal(times))
			Expect(obs.states[0]).To(Equal(dynamo.State{1, 0}))
		})
	})
})

var _ = Describe("Trajectory", func() {
	It("extracts columns and the final state", func() {
		tr := &dynamo.Trajectory{
			Times:  []float64{0, 1, 2},
			States: []dynamo.State{{1, 10}, {2, 20}, {3, 30}},
		}
		Expect(tr.Col(0)).To(Equal([]float64{1, 2, 3}))
		Expect(tr.Col(1)).To(Equal([]float64{10, 20, 30}))
		Expect(tr.Last()).To(Equal(dynamo.State{3, 30}))
		Expect(tr.Dim()).To(Equal(2))
	})
})
