package physics

import "github.com/san-kum/hookeslaw/internal/reactive"

var DefaultSeriesSpringConstantRange = reactive.NewRange(200.0, 600.0) // N/m

// SeriesConfig describes two springs joined end to end. AppliedForceRange
// is the range of the load carried by the pair; each component must be
// able to carry all of it.
type SeriesConfig struct {
	Top               SpringConfig
	Bottom            SpringConfig
	AppliedForceRange reactive.Range[float64]
}

func DefaultSeriesConfig() SeriesConfig {
	component := SpringConfig{
		Left:                DefaultLeft,
		EquilibriumLength:   DefaultEquilibriumLength / 2,
		SpringConstant:      DefaultSpringConstant,
		SpringConstantRange: DefaultSeriesSpringConstantRange,
		AppliedForceRange:   DefaultAppliedForceRange,
	}
	return SeriesConfig{Top: component, Bottom: component, AppliedForceRange: DefaultAppliedForceRange}
}

// SeriesSystem is two springs joined end to end. Both carry the same
// applied force, their displacements add, and 1/k_eq = 1/k_top + 1/k_bottom.
// Force is the shared quantity: changing a component's stiffness keeps the
// load and moves the springs.
type SeriesSystem struct {
	top        *Spring
	bottom     *Spring
	equivalent *Spring

	bottomRight *reactive.Derived[float64]
}

func seriesConstant(k1, k2 float64) float64 {
	return k1 * k2 / (k1 + k2)
}

func NewSeriesSystem(cfg SeriesConfig) (*SeriesSystem, error) {
	if err := checkSystemForceRange(cfg.AppliedForceRange, cfg.Top, cfg.Bottom); err != nil {
		return nil, err
	}

	// the bottom spring hangs from the free end of the top spring
	cfg.Bottom.Left = cfg.Top.Left + cfg.Top.EquilibriumLength

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
		EquilibriumLength: cfg.Top.EquilibriumLength + cfg.Bottom.EquilibriumLength,
		SpringConstant:    seriesConstant(cfg.Top.SpringConstant, cfg.Bottom.SpringConstant),
		SpringConstantRange: reactive.NewRange(
			seriesConstant(cfg.Top.SpringConstantRange.Min, cfg.Bottom.SpringConstantRange.Min),
			seriesConstant(cfg.Top.SpringConstantRange.Max, cfg.Bottom.SpringConstantRange.Max),
		),
		AppliedForceRange: cfg.AppliedForceRange,
	})
	if err != nil {
		return nil, err
	}

	s := &SeriesSystem{top: top, bottom: bottom, equivalent: equivalent}
	bottomLength := bottom.EquilibriumLength()
	s.bottomRight = reactive.Derive2(top.Length(), bottom.Displacement(), func(junction, x float64) float64 {
		return junction + bottomLength + x
	})

	r := seriesRules{s}
	top.rules, bottom.rules, equivalent.rules = r, r, r
	equivalent.settle = top.settle
	bottom.settle = top.settle
	return s, nil
}

func (s *SeriesSystem) Kind() Kind                { return KindSeries }
func (s *SeriesSystem) Top() *Spring              { return s.top }
func (s *SeriesSystem) Bottom() *Spring           { return s.bottom }
func (s *SeriesSystem) EquivalentSpring() *Spring { return s.equivalent }
func (s *SeriesSystem) Springs() []*Spring        { return []*Spring{s.top, s.bottom} }

// BottomLeft is where the top spring ends and the bottom spring begins.
func (s *SeriesSystem) BottomLeft() *reactive.Derived[float64] { return s.top.Length() }

// BottomRight is the free end of the pair, equal to the equivalent
// spring's length.
func (s *SeriesSystem) BottomRight() *reactive.Derived[float64] { return s.bottomRight }

func (s *SeriesSystem) Reset() { resetAll(s.top.settle, s.top, s.bottom, s.equivalent) }

// load settles all three springs under the shared force f. A non-nil pin
// keeps its displacement at exactly pinX instead of f/k.
func (s *SeriesSystem) load(f, kTop, kBottom float64, pin *Spring, pinX float64) error {
	xTop, xBottom := f/kTop, f/kBottom
	switch pin {
	case s.top:
		xTop = pinX
	case s.bottom:
		xBottom = pinX
	}
	xEq := xTop + xBottom
	if pin == s.equivalent {
		xEq = pinX
	}

	return commit(
		s.top.settled(f, kTop, xTop),
		s.bottom.settled(f, kBottom, xBottom),
		s.equivalent.settled(f, seriesConstant(kTop, kBottom), xEq),
	)
}

type seriesRules struct {
	sys *SeriesSystem
}

func (r seriesRules) constants() (float64, float64) {
	return r.sys.top.springConstant.Get(), r.sys.bottom.springConstant.Get()
}

func (r seriesRules) setAppliedForce(s *Spring, f float64) error {
	if err := expect(AppliedForce, f, s.appliedForceRange); err != nil {
		return err
	}
	if err := expect(AppliedForce, f, r.sys.equivalent.appliedForceRange); err != nil {
		return err
	}
	kTop, kBottom := r.constants()
	return r.sys.load(f, kTop, kBottom, nil, 0)
}

func (r seriesRules) setDisplacement(s *Spring, x float64) error {
	if err := expect(Displacement, x, s.displacementRange); err != nil {
		return err
	}
	kTop, kBottom := r.constants()
	f := snap(s.springConstant.Get()*x, r.sys.equivalent.appliedForceRange)
	return r.sys.load(f, kTop, kBottom, s, x)
}

func (r seriesRules) setSpringConstant(s *Spring, k float64) error {
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
	return r.sys.load(r.sys.equivalent.appliedForce.Get(), kTop, kBottom, nil, 0)
}

func (r seriesRules) reset() { r.sys.Reset() }

func checkSystemForceRange(system reactive.Range[float64], components ...SpringConfig) error {
	if !system.Valid() || !system.Contains(0) {
		return configError("system applied force range", "must be ordered and contain 0, got %v", system)
	}
	for i, c := range components {
		if !c.AppliedForceRange.ContainsRange(system) {
			return configError("component applied force range",
				"spring %d range %v cannot carry system range %v", i+1, c.AppliedForceRange, system)
		}
	}
	return nil
}
