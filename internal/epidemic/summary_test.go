package epidemic_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/seiqr/internal/dynamo"
	"github.com/san-kum/seiqr/internal/epidemic"
)

var _ = Describe("Summarize", func() {
	It("matches the reference Euler baseline for the default run", func() {
		grid, err := dynamo.NewTimeGrid(epidemic.DefaultHorizon, epidemic.DefaultDt)
		Expect(err).NotTo(HaveOccurred())

		traj, err := epidemic.Integrate(epidemic.InitialState(epidemic.DefaultPopulation), epidemic.DefaultParams(), grid)
		Expect(err).NotTo(HaveOccurred())

		peak, err := epidemic.Summarize(traj)
		Expect(err).NotTo(HaveOccurred())
		Expect(peak.MaxI).To(BeNumerically("~", 0.3140222524024376, 1e-15))
		Expect(peak.Index).To(Equal(244))
		Expect(peak.Time).To(BeNumerically("~", 24.4, 1e-9))
		Expect(peak.Day()).To(Equal(24))
		Expect(peak.StatusLine()).To(Equal("max I = 31% on day 24"))
	})

	It("moves the peak later and lower as quarantine increases", func() {
		grid, err := dynamo.NewTimeGrid(epidemic.DefaultHorizon, epidemic.DefaultDt)
		Expect(err).NotTo(HaveOccurred())
		init := epidemic.InitialState(epidemic.DefaultPopulation)

		p := epidemic.DefaultParams()
		p.Phi = 0.5
		half, err := epidemic.Integrate(init, p, grid)
		Expect(err).NotTo(HaveOccurred())
		halfPeak, _ := epidemic.Summarize(half)

		p.Phi = 1
		full, err := epidemic.Integrate(init, p, grid)
		Expect(err).NotTo(HaveOccurred())
		fullPeak, _ := epidemic.Summarize(full)

		Expect(halfPeak.Index).To(Equal(266))
		Expect(halfPeak.MaxI).To(BeNumerically("~", 0.21044338218806816, 1e-15))
		Expect(fullPeak.Index).To(Equal(294))
		Expect(fullPeak.MaxI).To(BeNumerically("~", 0.1435423923540979, 1e-15))
		Expect(fullPeak.StatusLine()).To(Equal("max I = 14% on day 29"))
	})

	It("reports the first occurrence of a tied maximum", func() {
		traj := &dynamo.Trajectory{
			Times: []float64{0, 1.5, 3, 4.5},
			States: []dynamo.State{
				{0.9, 0, 0.1, 0, 0},
				{0.7, 0, 0.3, 0, 0},
				{0.6, 0, 0.3, 0.1, 0},
				{0.6, 0, 0.2, 0.1, 0.1},
			},
		}

		peak, err := epidemic.Summarize(traj)
		Expect(err).NotTo(HaveOccurred())
		Expect(peak.Index).To(Equal(1))
		Expect(peak.Time).To(Equal(1.5))
		Expect(peak.Day()).To(Equal(1))
	})

	It("ignores NaN values of I", func() {
		nan := math.NaN()
		traj := &dynamo.Trajectory{
			Times: []float64{0, 1, 2, 3},
			States: []dynamo.State{
				{0.9, 0, 0.1, 0, 0},
				{nan, nan, nan, nan, nan},
				{0.8, 0, 0.2, 0, 0},
				{nan, nan, nan, nan, nan},
			},
		}

		peak, err := epidemic.Summarize(traj)
		Expect(err).NotTo(HaveOccurred())
		Expect(peak.Index).To(Equal(2))
		Expect(peak.MaxI).To(Equal(0.2))
	})

	It("keeps the initial point when I only declines", func() {
		traj := &dynamo.Trajectory{
			Times:  []float64{0, 1},
			States: []dynamo.State{{0, 0, 0.5, 0, 0.5}, {0, 0, 0.4, 0, 0.6}},
		}

		peak, err := epidemic.Summarize(traj)
		Expect(err).NotTo(HaveOccurred())
		Expect(peak.Index).To(Equal(0))
		Expect(peak.StatusLine()).To(Equal("max I = 50% on day 0"))
	})

	It("fails on an empty trajectory", func() {
		_, err := epidemic.Summarize(&dynamo.Trajectory{})
		Expect(err).To(MatchError(dynamo.ErrEmptyTrajectory))

		_, err = epidemic.Summarize(nil)
		Expect(err).To(MatchError(dynamo.ErrEmptyTrajectory))
	})
})
