package epidemic_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/seiqr/internal/dynamo"
	"github.com/san-kum/seiqr/internal/epidemic"
)

var _ = Describe("Integrate", func() {
	var (
		grid   dynamo.TimeGrid
		init   dynamo.State
		params epidemic.Params
	)

	BeforeEach(func() {
		var err error
		grid, err = dynamo.NewTimeGrid(epidemic.DefaultHorizon, epidemic.DefaultDt)
		Expect(err).NotTo(HaveOccurred())
		init = epidemic.InitialState(epidemic.DefaultPopulation)
		params = epidemic.DefaultParams()
	})

	It("returns one state per grid point", func() {
		traj, err := epidemic.Integrate(init, params, grid)
		Expect(err).NotTo(HaveOccurred())
		Expect(grid.Len()).To(Equal(1501))
		Expect(traj.Len()).To(Equal(grid.Len()))
		Expect(traj.Times).To(Equal(grid.Points()))
		Expect(traj.StepsTaken).To(Equal(1500))
	})

	It("preserves the initial condition exactly", func() {
		traj, err := epidemic.Integrate(init, params, grid)
		Expect(err).NotTo(HaveOccurred())
		Expect(traj.States[0]).To(Equal(init))
	})

	It("is deterministic", func() {
		a, err := epidemic.Integrate(init, params, grid)
		Expect(err).NotTo(HaveOccurred())
		b, err := epidemic.Integrate(init, params, grid)
		Expect(err).NotTo(HaveOccurred())

		Expect(a.States).To(HaveLen(len(b.States)))
		for i := range a.States {
			Expect(a.States[i].Equal(b.States[i])).To(BeTrue(), "state %d differs", i)
		}
	})

	It("conserves the total population under the default parameters", func() {
		traj, err := epidemic.Integrate(init, params, grid)
		Expect(err).NotTo(HaveOccurred())
		for i, s := range traj.States {
			Expect(math.Abs(s.Sum()-1)).To(BeNumerically("<", 1e-6), "step %d", i)
		}
	})

	It("never increases S under the default parameters", func() {
		traj, err := epidemic.Integrate(init, params, grid)
		Expect(err).NotTo(HaveOccurred())
		series := traj.Series(epidemic.S)
		for i := 1; i < len(series); i++ {
			Expect(series[i]).To(BeNumerically("<=", series[i-1]), "step %d", i)
		}
	})

	It("performs exactly ten updates on an eleven point grid", func() {
		short, err := dynamo.NewTimeGrid(10, 1)
		Expect(err).NotTo(HaveOccurred())

		traj, err := epidemic.Integrate(init, params, short)
		Expect(err).NotTo(HaveOccurred())
		Expect(traj.Len()).To(Equal(11))
		Expect(traj.StepsTaken).To(Equal(10))
	})

	Context("without transmission", func() {
		BeforeEach(func() {
			params.Beta = 0
		})

		It("keeps every compartment at its initial value", func() {
			clean := dynamo.State{1, 0, 0, 0, 0}
			traj, err := epidemic.Integrate(clean, params, grid)
			Expect(err).NotTo(HaveOccurred())
			for i, s := range traj.States {
				Expect(s).To(Equal(clean), "step %d", i)
			}
		})

		It("keeps S constant even with an exposed seed", func() {
			traj, err := epidemic.Integrate(init, params, grid)
			Expect(err).NotTo(HaveOccurred())
			for _, v := range traj.Series(epidemic.S) {
				Expect(v).To(Equal(init[epidemic.S]))
			}
		})
	})

	Context("with full quarantine", func() {
		BeforeEach(func() {
			params.Phi = 1
		})

		It("grows R only through recovery from quarantine", func() {
			traj, err := epidemic.Integrate(init, params, grid)
			Expect(err).NotTo(HaveOccurred())

			dt := grid.Dt()
			for k := 1; k < traj.Len(); k++ {
				prev := traj.States[k-1]
				want := prev[epidemic.R] + dt*(params.LambdaQ*prev[epidemic.Q])
				Expect(traj.States[k][epidemic.R]).To(BeNumerically("~", want, 1e-15), "step %d", k)
			}
			Expect(traj.States[traj.Len()-1][epidemic.Q]).To(BeNumerically(">", 0))
		})
	})

	It("reproduces the instability of large steps instead of correcting it", func() {
		coarse, err := dynamo.NewTimeGrid(150, 10)
		Expect(err).NotTo(HaveOccurred())

		params.Beta = 10
		traj, err := epidemic.Integrate(init, params, coarse)
		Expect(err).NotTo(HaveOccurred())
		Expect(traj.Len()).To(Equal(16))

		negative := false
		for _, s := range traj.States {
			for _, v := range s {
				if v < 0 || math.IsNaN(v) {
					negative = true
				}
			}
		}
		Expect(negative).To(BeTrue())
	})

	It("rejects a grid with fewer than two points", func() {
		_, err := epidemic.Integrate(init, params, dynamo.TimeGrid{})
		Expect(err).To(MatchError(dynamo.ErrShortGrid))
	})

	It("rejects an initial state of the wrong size", func() {
		_, err := epidemic.Integrate(dynamo.State{1, 0, 0}, params, grid)
		Expect(err).To(MatchError(dynamo.ErrDimensionMismatch))
	})
})
