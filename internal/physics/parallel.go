package physics

import "github.com/san-kum/hookeslaw/internal/reactive"

var DefaultParallelSpringConstantRange = reactive.NewRange(100.0, 400.0) // N/m

// ParallelConfig describes two springs sharing both endpoints. The springs
// must therefore share Left and EquilibriumLength.
type ParallelConfig struct {
	Top               SpringConfig
	Bottom            SpringConfig
	AppliedForceRange reactive.Range[float64]
}

func DefaultParallelConfig() ParallelConfig {
	component := SpringConfig{
		Left:                DefaultLeft,
		EquilibriumLength:   DefaultEquilibriumLength,
		SpringConstant:      DefaultSpringConstant,
		SpringConstantRange: DefaultParallelSpringConstantRange,
		AppliedForceRange:   DefaultAppliedForceRange,
	}
	return ParallelConfig{Top: component, Bottom: component, AppliedForceRange: DefaultAppliedForceRange}
}

// ParallelSystem is two springs sharing both endpoints. Both have the same
// displacement, their forces add, and k_eq = k_top + k_bottom.
// Displacement is the shared quantity: changing a component's stiffness
// keeps the springs where they are and changes the load.
type ParallelSystem struct {
	top        *Spring
	bottom     *Spring
	equivalent *Spring
}

func NewParallelSystem(cfg ParallelConfig) (*ParallelSystem, error) {
	if err := checkSystemForceRange(cfg.AppliedForceRange, cfg.Top, cfg.Bottom); err != nil {
		return nil, err
	}
	if cfg.Top.Left != cfg.Bottom.Left || cfg.Top.EquilibriumLength != cfg.Bottom.EquilibriumLength {
		return nil, configError("bottom spring", "must share both endpoints with the top spring")
	}

	top, err := newSpring(cfg.Top)
	if err != nil {
		return nil, err
	}
	bottom, err := newSpring(cfg.Bottom)
	if err != nil {
		return nil, err
	}

	equivalent, err := newSpring(SpringConfig{
		Left:              cfg.Top.Left,
		EquilibriumLength: cfg.Top.EquilibriumLength,
		SpringConstant:    cfg.Top.SpringConstant + cfg.Bottom.SpringConstant,
		SpringConstantRange: reactive.NewRange(
			cfg.Top.SpringConstantRange.Min+cfg.Bottom.SpringConstantRange.Min,
			cfg.Top.SpringConstantRange.Max+cfg.Bottom.SpringConstantRange.Max,
		),
		AppliedForceRange: cfg.AppliedForceRange,
	})
	if err != nil {
		return nil, err
	}

	s := &ParallelSystem{top: top, bottom: bottom, equivalent: equivalent}
	r := parallelRules{s}
	top.rules, bottom.rules, equivalent.rules = r, r, r
	equivalent.settle = top.settle
	bottom.settle = top.settle
	return s, nil
}

func (s *ParallelSystem) Kind() Kind                { return KindParallel }
func (s *ParallelSystem) Top() *Spring              { return s.top }
func (s *ParallelSystem) Bottom() *Spring           { return s.bottom }
func (s *ParallelSystem) EquivalentSpring() *Spring { return s.equivalent }
func (s *ParallelSystem) Springs() []*Spring        { return []*Spring{s.top, s.bottom} }

func (s *ParallelSystem) Reset() { resetAll(s.top.settle, s.top, s.bottom, s.equivalent) }

// stretch settles all three springs at the shared displacement x. A
// non-nil pin keeps its applied force at exactly pinF instead of kx.
func (s *ParallelSystem) stretch(x, kTop, kBottom float64, pin *Spring, pinF float64) error {
	fTop, fBottom := kTop*x, kBottom*x
	switch pin {
	case s.top:
		fTop = pinF
	case s.bottom:
		fBottom = pinF
	}
	fEq := fTop + fBottom
	if pin == s.equivalent {
		fEq = pinF
	}

	return commit(
		s.top.settled(fTop, kTop, x),
		s.bottom.settled(fBottom, kBottom, x),
		s.equivalent.settled(fEq, kTop+kBottom, x),
	)
}

type parallelRules struct {
	sys *ParallelSystem
}

func (r parallelRules) constants() (float64, float64) {
	return r.sys.top.springConstant.Get(), r.sys.bottom.springConstant.Get()
}

func (r parallelRules) setAppliedForce(s *Spring, f float64) error {
	if err := expect(AppliedForce, f, s.appliedForceRange); err != nil {
		return err
	}
	kTop, kBottom := r.constants()
	x := snap(f/s.springConstant.Get(), r.sys.equivalent.displacementRange)
	return r.sys.stretch(x, kTop, kBottom, s, f)
}

func (r parallelRules) setDisplacement(s *Spring, x float64) error {
	if err := expect(Displacement, x, s.displacementRange); err != nil {
		return err
	}
	kTop, kBottom := r.constants()
	return r.sys.stretch(x, kTop, kBottom, nil, 0)
}

func (r parallelRules) setSpringConstant(s *Spring, k float64) error {
	if s == r.sys.equivalent {
		return ErrReadOnly
	}
	if err := expect(SpringConstant, k, s.springConstantRange); err != nil {
		return err
	}
	kTop, kBottom := r.constants()
	if s == r.sys.top {
		kTop = k
	} else {
		kBottom = k
	}
	// Holding x can push the total load out of range; the write is then
	// rejected as a whole.
	return r.sys.stretch(r.sys.equivalent.displacement.Get(), kTop, kBottom, nil, 0)
}

func (r parallelRules) reset() { r.sys.Reset() }
