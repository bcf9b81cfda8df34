package physics_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/hookeslaw/internal/physics"
	"github.com/san-kum/hookeslaw/internal/reactive"
)

const tol = 1e-9

func expectHooke(springs ...*physics.Spring) {
	for _, s := range springs {
		f, k, x := s.AppliedForce().Get(), s.SpringConstant().Get(), s.Displacement().Get()
		ExpectWithOffset(1, f).To(BeNumerically("~", k*x, 1e-7), "F = kx")
	}
}

var _ = Describe("SingleSpringSystem", func() {
	It("exposes its spring as the equivalent spring", func() {
		sys, err := physics.NewSingleSpringSystem(physics.DefaultSpringConfig())
		Expect(err).NotTo(HaveOccurred())

		Expect(sys.Kind()).To(Equal(physics.KindSingle))
		Expect(sys.EquivalentSpring()).To(BeIdenticalTo(sys.Spring()))
		Expect(sys.Springs()).To(HaveLen(1))

		Expect(sys.EquivalentSpring().SetAppliedForce(50)).To(Succeed())
		Expect(sys.Spring().Displacement().Get()).To(BeNumerically("~", 0.25, tol))

		sys.Reset()
		Expect(sys.Spring().AppliedForce().Get()).To(BeZero())
	})

	It("rejects an invalid spring", func() {
		cfg := physics.DefaultSpringConfig()
		cfg.SpringConstant = 5
		_, err := physics.NewSingleSpringSystem(cfg)
		Expect(err).To(MatchError(physics.ErrConfiguration))
	})
})

var _ = Describe("SeriesSystem", func() {
	var sys *physics.SeriesSystem

	BeforeEach(func() {
		var err error
		sys, err = physics.NewSeriesSystem(physics.DefaultSeriesConfig())
		Expect(err).NotTo(HaveOccurred())
	})

	It("combines stiffness as 1/k = 1/k1 + 1/k2", func() {
		Expect(sys.Kind()).To(Equal(physics.KindSeries))
		Expect(sys.EquivalentSpring().SpringConstant().Get()).To(BeNumerically("~", 100, tol))
		Expect(sys.EquivalentSpring().SpringConstantRange()).To(Equal(reactive.NewRange(100.0, 300.0)))
	})

	It("carries the same force through both springs", func() {
		eq := sys.EquivalentSpring()
		Expect(eq.SetAppliedForce(50)).To(Succeed())

		Expect(sys.Top().AppliedForce().Get()).To(Equal(50.0))
		Expect(sys.Bottom().AppliedForce().Get()).To(Equal(50.0))
		Expect(sys.Top().Displacement().Get()).To(BeNumerically("~", 0.25, tol))
		Expect(sys.Bottom().Displacement().Get()).To(BeNumerically("~", 0.25, tol))
		Expect(eq.Displacement().Get()).To(BeNumerically("~", 0.5, tol))
		expectHooke(sys.Top(), sys.Bottom(), eq)
	})

	It("joins the springs end to end", func() {
		Expect(sys.EquivalentSpring().SetAppliedForce(50)).To(Succeed())

		Expect(sys.BottomLeft().Get()).To(BeNumerically("~", 1.0, tol))
		Expect(sys.BottomRight().Get()).To(BeNumerically("~", sys.EquivalentSpring().Length().Get(), tol))
	})

	It("keeps the load when a component is stiffened", func() {
		Expect(sys.EquivalentSpring().SetAppliedForce(50)).To(Succeed())
		Expect(sys.Top().SetSpringConstant(600)).To(Succeed())

		kTop, kBottom := sys.Top().SpringConstant().Get(), sys.Bottom().SpringConstant().Get()
		kEq := sys.EquivalentSpring().SpringConstant().Get()
		Expect(1 / kEq).To(BeNumerically("~", 1/kTop+1/kBottom, tol))

		Expect(sys.EquivalentSpring().AppliedForce().Get()).To(Equal(50.0))
		Expect(sys.Top().Displacement().Get()).To(BeNumerically("~", 50.0/600, tol))
		Expect(sys.Bottom().Displacement().Get()).To(BeNumerically("~", 0.25, tol))
		Expect(sys.EquivalentSpring().Displacement().Get()).To(BeNumerically("~",
			sys.Top().Displacement().Get()+sys.Bottom().Displacement().Get(), tol))
		expectHooke(sys.Top(), sys.Bottom(), sys.EquivalentSpring())
	})

	It("pulls the pair to a displacement", func() {
		eq := sys.EquivalentSpring()
		Expect(eq.SetDisplacement(0.8)).To(Succeed())

		Expect(eq.Displacement().Get()).To(Equal(0.8))
		Expect(eq.AppliedForce().Get()).To(BeNumerically("~", 80, tol))
		Expect(sys.Top().Displacement().Get()).To(BeNumerically("~", 0.4, tol))
		Expect(sys.Bottom().Displacement().Get()).To(BeNumerically("~", 0.4, tol))
	})

	It("settles the pair from a component write", func() {
		Expect(sys.Top().SetAppliedForce(30)).To(Succeed())
		Expect(sys.Bottom().AppliedForce().Get()).To(Equal(30.0))
		Expect(sys.EquivalentSpring().AppliedForce().Get()).To(Equal(30.0))

		Expect(sys.Bottom().SetDisplacement(0.1)).To(Succeed())
		Expect(sys.Bottom().Displacement().Get()).To(Equal(0.1))
		Expect(sys.Top().AppliedForce().Get()).To(BeNumerically("~", 20, tol))
		Expect(sys.EquivalentSpring().Displacement().Get()).To(BeNumerically("~", 0.2, tol))
	})

	It("derives the equivalent spring constant", func() {
		Expect(sys.EquivalentSpring().SetSpringConstant(150)).To(MatchError(physics.ErrReadOnly))
	})

	It("rejects out of range writes atomically", func() {
		Expect(sys.EquivalentSpring().SetAppliedForce(20)).To(Succeed())
		top, bottom, eq := sys.Top().Snapshot(), sys.Bottom().Snapshot(), sys.EquivalentSpring().Snapshot()

		var rerr *physics.RangeError
		Expect(sys.EquivalentSpring().SetAppliedForce(150)).To(MatchError(&rerr))
		Expect(sys.Top().SetSpringConstant(700)).To(MatchError(physics.ErrOutOfRange))

		Expect(sys.Top().Snapshot()).To(Equal(top))
		Expect(sys.Bottom().Snapshot()).To(Equal(bottom))
		Expect(sys.EquivalentSpring().Snapshot()).To(Equal(eq))
	})

	It("rejects a write from a listener while the pair settles", func() {
		var nested error
		sys.Top().Displacement().Subscribe(func(_, _ float64) {
			nested = sys.Bottom().SetAppliedForce(10)
		})

		Expect(sys.EquivalentSpring().SetAppliedForce(50)).To(Succeed())
		Expect(nested).To(MatchError(physics.ErrSettling))
		Expect(sys.Bottom().AppliedForce().Get()).To(Equal(50.0))
		Expect(sys.EquivalentSpring().Displacement().Get()).To(BeNumerically("~", 0.5, tol))
		expectHooke(sys.Top(), sys.Bottom(), sys.EquivalentSpring())
	})

	It("resets every spring", func() {
		Expect(sys.Bottom().SetSpringConstant(400)).To(Succeed())
		Expect(sys.EquivalentSpring().SetAppliedForce(-70)).To(Succeed())

		sys.Top().Reset()
		Expect(sys.Top().AppliedForce().Get()).To(BeZero())
		Expect(sys.Bottom().SpringConstant().Get()).To(Equal(200.0))
		Expect(sys.EquivalentSpring().SpringConstant().Get()).To(BeNumerically("~", 100, tol))
		Expect(sys.EquivalentSpring().Displacement().Get()).To(BeZero())
	})

	It("rejects components that cannot carry the system load", func() {
		cfg := physics.DefaultSeriesConfig()
		cfg.Top.AppliedForceRange = reactive.NewRange(-50.0, 50.0)
		_, err := physics.NewSeriesSystem(cfg)

		var cerr *physics.ConfigurationError
		Expect(err).To(MatchError(&cerr))
	})

	DescribeTable("keeps the series relations",
		func(kTop, kBottom, f float64) {
			Expect(sys.Top().SetSpringConstant(kTop)).To(Succeed())
			Expect(sys.Bottom().SetSpringConstant(kBottom)).To(Succeed())
			Expect(sys.EquivalentSpring().SetAppliedForce(f)).To(Succeed())

			kEq := sys.EquivalentSpring().SpringConstant().Get()
			Expect(1 / kEq).To(BeNumerically("~", 1/kTop+1/kBottom, tol))
			Expect(sys.Top().AppliedForce().Get()).To(Equal(f))
			Expect(sys.Bottom().AppliedForce().Get()).To(Equal(f))
			Expect(sys.EquivalentSpring().Displacement().Get()).To(BeNumerically("~",
				sys.Top().Displacement().Get()+sys.Bottom().Displacement().Get(), tol))
			expectHooke(sys.Top(), sys.Bottom(), sys.EquivalentSpring())
		},
		Entry("equal springs", 200.0, 200.0, 50.0),
		Entry("stiff top", 600.0, 200.0, 100.0),
		Entry("stiff bottom", 250.0, 575.0, -100.0),
		Entry("both stiff", 600.0, 600.0, -33.3),
	)
})

var _ = Describe("ParallelSystem", func() {
	var sys *physics.ParallelSystem

	BeforeEach(func() {
		var err error
		sys, err = physics.NewParallelSystem(physics.DefaultParallelConfig())
		Expect(err).NotTo(HaveOccurred())
	})

	It("rejects a write from a listener while the pair settles", func() {
		var nested error
		sys.EquivalentSpring().AppliedForce().Subscribe(func(_, _ float64) {
			nested = sys.Top().SetSpringConstant(300)
		})

		Expect(sys.EquivalentSpring().SetDisplacement(0.25)).To(Succeed())
		Expect(nested).To(MatchError(physics.ErrSettling))
		Expect(sys.Top().SpringConstant().Get()).To(Equal(200.0))
		Expect(sys.EquivalentSpring().AppliedForce().Get()).To(BeNumerically("~", 100, tol))
		expectHooke(sys.Top(), sys.Bottom(), sys.EquivalentSpring())
	})

	It("adds stiffness", func() {
		Expect(sys.Kind()).To(Equal(physics.KindParallel))
		Expect(sys.EquivalentSpring().SpringConstant().Get()).To(Equal(400.0))
		Expect(sys.EquivalentSpring().SpringConstantRange()).To(Equal(reactive.NewRange(200.0, 800.0)))
	})

	It("shares the displacement and splits the force", func() {
		eq := sys.EquivalentSpring()
		Expect(eq.SetDisplacement(0.25)).To(Succeed())

		Expect(sys.Top().Displacement().Get()).To(Equal(0.25))
		Expect(sys.Bottom().Displacement().Get()).To(Equal(0.25))
		Expect(sys.Top().AppliedForce().Get()).To(BeNumerically("~", 50, tol))
		Expect(sys.Bottom().AppliedForce().Get()).To(BeNumerically("~", 50, tol))
		Expect(eq.AppliedForce().Get()).To(BeNumerically("~", 100, tol))
		expectHooke(sys.Top(), sys.Bottom(), eq)
	})

	It("splits an applied force in proportion to stiffness", func() {
		Expect(sys.Bottom().SetSpringConstant(100)).To(Succeed())
		Expect(sys.EquivalentSpring().SetAppliedForce(60)).To(Succeed())

		Expect(sys.EquivalentSpring().AppliedForce().Get()).To(Equal(60.0))
		Expect(sys.EquivalentSpring().Displacement().Get()).To(BeNumerically("~", 0.2, tol))
		Expect(sys.Top().AppliedForce().Get()).To(BeNumerically("~", 40, tol))
		Expect(sys.Bottom().AppliedForce().Get()).To(BeNumerically("~", 20, tol))
	})

	It("keeps the displacement when a component is stiffened", func() {
		Expect(sys.EquivalentSpring().SetDisplacement(0.1)).To(Succeed())
		Expect(sys.Top().SetSpringConstant(400)).To(Succeed())

		Expect(sys.EquivalentSpring().Displacement().Get()).To(Equal(0.1))
		Expect(sys.EquivalentSpring().SpringConstant().Get()).To(Equal(600.0))
		Expect(sys.Top().AppliedForce().Get()).To(BeNumerically("~", 40, tol))
		Expect(sys.EquivalentSpring().AppliedForce().Get()).To(BeNumerically("~", 60, tol))
		expectHooke(sys.Top(), sys.Bottom(), sys.EquivalentSpring())
	})

	It("rejects stiffening that would overload the pair", func() {
		Expect(sys.EquivalentSpring().SetDisplacement(0.25)).To(Succeed())
		before := sys.EquivalentSpring().Snapshot()

		var rerr *physics.RangeError
		Expect(sys.Top().SetSpringConstant(400)).To(MatchError(&rerr))
		Expect(rerr.Quantity).To(Equal(physics.AppliedForce))
		Expect(sys.Top().SpringConstant().Get()).To(Equal(200.0))
		Expect(sys.EquivalentSpring().Snapshot()).To(Equal(before))
	})

	It("settles the pair from a component write", func() {
		Expect(sys.Top().SetAppliedForce(30)).To(Succeed())

		Expect(sys.Top().AppliedForce().Get()).To(Equal(30.0))
		Expect(sys.Bottom().Displacement().Get()).To(BeNumerically("~", 0.15, tol))
		Expect(sys.EquivalentSpring().AppliedForce().Get()).To(BeNumerically("~", 60, tol))
	})

	It("derives the equivalent spring constant", func() {
		Expect(sys.EquivalentSpring().SetSpringConstant(500)).To(MatchError(physics.ErrReadOnly))
	})

	It("requires shared endpoints", func() {
		cfg := physics.DefaultParallelConfig()
		cfg.Bottom.EquilibriumLength = 1.0
		_, err := physics.NewParallelSystem(cfg)
		Expect(err).To(MatchError(physics.ErrConfiguration))
	})

	It("resets every spring", func() {
		Expect(sys.Top().SetSpringConstant(300)).To(Succeed())
		Expect(sys.EquivalentSpring().SetDisplacement(-0.1)).To(Succeed())

		sys.Reset()
		Expect(sys.EquivalentSpring().SpringConstant().Get()).To(Equal(400.0))
		for _, s := range append(sys.Springs(), sys.EquivalentSpring()) {
			Expect(s.AppliedForce().Get()).To(BeZero())
			Expect(s.Displacement().Get()).To(BeZero())
		}
	})

	DescribeTable("keeps the parallel relations",
		func(kTop, kBottom, x float64) {
			Expect(sys.Top().SetSpringConstant(kTop)).To(Succeed())
			Expect(sys.Bottom().SetSpringConstant(kBottom)).To(Succeed())
			Expect(sys.EquivalentSpring().SetDisplacement(x)).To(Succeed())

			Expect(sys.EquivalentSpring().SpringConstant().Get()).To(BeNumerically("~", kTop+kBottom, tol))
			Expect(sys.Top().Displacement().Get()).To(Equal(x))
			Expect(sys.Bottom().Displacement().Get()).To(Equal(x))
			Expect(sys.Top().AppliedForce().Get() + sys.Bottom().AppliedForce().Get()).To(
				BeNumerically("~", sys.EquivalentSpring().AppliedForce().Get(), tol))
			expectHooke(sys.Top(), sys.Bottom(), sys.EquivalentSpring())
		},
		Entry("equal springs", 200.0, 200.0, 0.25),
		Entry("soft pair", 100.0, 100.0, -0.5),
		Entry("stiff pair", 400.0, 400.0, 0.125),
		Entry("uneven pair", 350.0, 120.0, -0.2),
	)
})

var _ = Describe("RoboticArm", func() {
	It("drags within the reachable range", func() {
		s, err := physics.NewSpring(physics.DefaultSpringConfig())
		Expect(err).NotTo(HaveOccurred())
		arm := physics.NewRoboticArm(s, 3)

		Expect(arm.Range().Min).To(BeNumerically("~", 1.0, tol))
		Expect(arm.Range().Max).To(BeNumerically("~", 2.0, tol))

		Expect(arm.DragTo(10)).To(Succeed())
		Expect(s.Displacement().Get()).To(BeNumerically("~", 0.5, tol))
		Expect(s.AppliedForce().Get()).To(BeNumerically("~", 100, tol))
		Expect(arm.Left().Get()).To(BeNumerically("~", 2.0, tol))

		Expect(arm.DragTo(1.3)).To(Succeed())
		Expect(s.Displacement().Get()).To(BeNumerically("~", -0.2, tol))
		Expect(arm.Right()).To(Equal(3.0))
	})

	It("pulls a series pair through its equivalent spring", func() {
		sys, err := physics.NewSeriesSystem(physics.DefaultSeriesConfig())
		Expect(err).NotTo(HaveOccurred())
		arm := physics.NewRoboticArm(sys.EquivalentSpring(), 3)

		Expect(arm.DragTo(-5)).To(Succeed())
		Expect(sys.EquivalentSpring().AppliedForce().Get()).To(BeNumerically("~", -100, tol))
		Expect(sys.Top().Displacement().Get()).To(BeNumerically("~", -0.5, tol))
		Expect(sys.BottomRight().Get()).To(BeNumerically("~", arm.Left().Get(), tol))
	})
})
