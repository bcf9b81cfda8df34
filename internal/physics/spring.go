package physics

import (
	"math"

	"github.com/san-kum/hookeslaw/internal/reactive"
)

// Quantity names one of the three coupled quantities of a spring.
type Quantity string

const (
	AppliedForce   Quantity = "applied force"
	SpringConstant Quantity = "spring constant"
	Displacement   Quantity = "displacement"
)

const (
	DefaultLeft              = 0.0
	DefaultEquilibriumLength = 1.5   // m
	DefaultSpringConstant    = 200.0 // N/m
)

var (
	DefaultSpringConstantRange = reactive.NewRange(100.0, 1000.0) // N/m
	DefaultAppliedForceRange   = reactive.NewRange(-100.0, 100.0) // N
)

// relative slack allowed when a computed quantity overshoots a bound
const rangeTolerance = 1e-9

// SpringConfig holds the construction-time parameters of a Spring.
type SpringConfig struct {
	Left                float64 // x of the fixed end, m
	EquilibriumLength   float64 // length at zero displacement, m
	SpringConstant      float64 // initial k, N/m
	SpringConstantRange reactive.Range[float64]
	AppliedForceRange   reactive.Range[float64]
}

func DefaultSpringConfig() SpringConfig {
	return SpringConfig{
		Left:                DefaultLeft,
		EquilibriumLength:   DefaultEquilibriumLength,
		SpringConstant:      DefaultSpringConstant,
		SpringConstantRange: DefaultSpringConstantRange,
		AppliedForceRange:   DefaultAppliedForceRange,
	}
}

func (c SpringConfig) validate() error {
	switch {
	case !(c.EquilibriumLength > 0):
		return configError("equilibrium length", "must be > 0, got %g", c.EquilibriumLength)
	case !c.SpringConstantRange.Valid() || !(c.SpringConstantRange.Min > 0):
		return configError("spring constant range", "bounds must be > 0 and ordered, got %v", c.SpringConstantRange)
	case !c.AppliedForceRange.Valid() || !c.AppliedForceRange.Contains(0):
		return configError("applied force range", "must be ordered and contain 0, got %v", c.AppliedForceRange)
	case !c.SpringConstantRange.Contains(c.SpringConstant):
		return configError("spring constant", "%g outside %v", c.SpringConstant, c.SpringConstantRange)
	}
	return nil
}

// rules decide how a write to one spring settles the springs around it.
type rules interface {
	setAppliedForce(s *Spring, f float64) error
	setSpringConstant(s *Spring, k float64) error
	setDisplacement(s *Spring, x float64) error
	reset()
}

// Spring is an ideal linear spring obeying F = kx.
//
// F is the applied force, k the spring constant and x the displacement
// from the equilibrium position. After every setter returns, F = kx holds
// for the spring and for every spring of the system that owns it.
type Spring struct {
	left                float64
	equilibriumLength   float64
	springConstantRange reactive.Range[float64]
	appliedForceRange   reactive.Range[float64]
	displacementRange   reactive.Range[float64]

	appliedForce   *reactive.Value[float64]
	springConstant *reactive.Value[float64]
	displacement   *reactive.Value[float64]

	length          *reactive.Derived[float64]
	springForce     *reactive.Derived[float64]
	potentialEnergy *reactive.Derived[float64]

	rules  rules
	settle *settler
}

// settler serializes the setters of the springs that settle together. A
// setter called from a listener while its system is still notifying is
// rejected before it reads or writes anything.
type settler struct {
	busy bool
}

func (g *settler) run(fn func() error) error {
	if g.busy {
		return ErrSettling
	}
	g.busy = true
	defer func() { g.busy = false }()
	return fn()
}

// NewSpring creates a free spring at rest: F = 0, x = 0.
func NewSpring(cfg SpringConfig) (*Spring, error) {
	s, err := newSpring(cfg)
	if err != nil {
		return nil, err
	}
	s.rules = hookeRules{s}
	return s, nil
}

func newSpring(cfg SpringConfig) (*Spring, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	s := &Spring{
		left:                cfg.Left,
		equilibriumLength:   cfg.EquilibriumLength,
		springConstantRange: cfg.SpringConstantRange,
		appliedForceRange:   cfg.AppliedForceRange,
		settle:              &settler{},
		// widest displacement reachable at minimum stiffness, x = F/k
		displacementRange: reactive.NewRange(
			cfg.AppliedForceRange.Min/cfg.SpringConstantRange.Min,
			cfg.AppliedForceRange.Max/cfg.SpringConstantRange.Min,
		),
	}

	var err error
	if s.springConstant, err = reactive.NewValue(cfg.SpringConstant, reactive.WithRange(s.springConstantRange)); err != nil {
		return nil, err
	}
	if s.appliedForce, err = reactive.NewValue(0.0, reactive.WithRange(s.appliedForceRange)); err != nil {
		return nil, err
	}
	if s.displacement, err = reactive.NewValue(0.0, reactive.WithRange(s.displacementRange)); err != nil {
		return nil, err
	}

	equilibrium := s.EquilibriumPosition()
	s.length = reactive.Derive1(s.displacement, func(x float64) float64 {
		return equilibrium + x
	})
	s.springForce = reactive.Derive1(s.appliedForce, func(f float64) float64 {
		return -f
	})
	s.potentialEnergy = reactive.Derive2(s.springConstant, s.displacement, func(k, x float64) float64 {
		return 0.5 * k * x * x
	})

	return s, nil
}

// AppliedForce, SpringConstant and Displacement are read-only views. Writes
// go through the setters so the owning system can settle them.
func (s *Spring) AppliedForce() reactive.Source[float64]   { return s.appliedForce.ReadOnly() }
func (s *Spring) SpringConstant() reactive.Source[float64] { return s.springConstant.ReadOnly() }
func (s *Spring) Displacement() reactive.Source[float64]   { return s.displacement.ReadOnly() }

// Length is the position of the free end: equilibrium position + x.
func (s *Spring) Length() *reactive.Derived[float64] { return s.length }

// SpringForce is the reaction to the applied force, -F.
func (s *Spring) SpringForce() *reactive.Derived[float64] { return s.springForce }

// PotentialEnergy is the elastic energy stored in the spring, kx²/2.
func (s *Spring) PotentialEnergy() *reactive.Derived[float64] { return s.potentialEnergy }

func (s *Spring) SpringConstantRange() reactive.Range[float64] { return s.springConstantRange }
func (s *Spring) AppliedForceRange() reactive.Range[float64]   { return s.appliedForceRange }

// DisplacementRange is the widest displacement reachable at minimum
// stiffness. See MinDisplacement and MaxDisplacement for the live limits.
func (s *Spring) DisplacementRange() reactive.Range[float64] { return s.displacementRange }

func (s *Spring) Left() float64                { return s.left }
func (s *Spring) EquilibriumLength() float64   { return s.equilibriumLength }
func (s *Spring) EquilibriumPosition() float64 { return s.left + s.equilibriumLength }

// MinDisplacement is the smallest displacement reachable at the current
// spring constant. Used to constrain dragging.
func (s *Spring) MinDisplacement() float64 {
	return s.appliedForceRange.Min / s.springConstant.Get()
}

// MaxDisplacement is the largest displacement reachable at the current
// spring constant. Used to constrain dragging.
func (s *Spring) MaxDisplacement() float64 {
	return s.appliedForceRange.Max / s.springConstant.Get()
}

// SetAppliedForce holds k fixed and moves the spring to x = F/k.
func (s *Spring) SetAppliedForce(f float64) error {
	return s.settle.run(func() error { return s.rules.setAppliedForce(s, f) })
}

// SetSpringConstant holds F fixed and moves the spring to x = F/k.
// Springs in a system may settle differently, see SeriesSystem and
// ParallelSystem.
func (s *Spring) SetSpringConstant(k float64) error {
	return s.settle.run(func() error { return s.rules.setSpringConstant(s, k) })
}

// SetDisplacement holds k fixed and pulls the spring to x, so F = kx.
func (s *Spring) SetDisplacement(x float64) error {
	return s.settle.run(func() error { return s.rules.setDisplacement(s, x) })
}

// Reset restores the construction-time state. A spring owned by a system
// resets the whole system. Reset called from a listener while the system
// is settling does nothing.
func (s *Spring) Reset() { s.rules.reset() }

// Snapshot is a copy of every quantity of a spring at one settled state.
type Snapshot struct {
	AppliedForce    float64 `json:"applied_force"`
	SpringConstant  float64 `json:"spring_constant"`
	Displacement    float64 `json:"displacement"`
	Length          float64 `json:"length"`
	SpringForce     float64 `json:"spring_force"`
	PotentialEnergy float64 `json:"potential_energy"`
}

func (s *Spring) Snapshot() Snapshot {
	return Snapshot{
		AppliedForce:    s.appliedForce.Get(),
		SpringConstant:  s.springConstant.Get(),
		Displacement:    s.displacement.Get(),
		Length:          s.length.Get(),
		SpringForce:     s.springForce.Get(),
		PotentialEnergy: s.potentialEnergy.Get(),
	}
}

// hookeRules settle a free spring on its own.
type hookeRules struct {
	s *Spring
}

func (r hookeRules) setAppliedForce(s *Spring, f float64) error {
	if err := expect(AppliedForce, f, s.appliedForceRange); err != nil {
		return err
	}
	k := s.springConstant.Get()
	return commit(s.settled(f, k, f/k))
}

func (r hookeRules) setSpringConstant(s *Spring, k float64) error {
	if err := expect(SpringConstant, k, s.springConstantRange); err != nil {
		return err
	}
	f := s.appliedForce.Get()
	return commit(s.settled(f, k, f/k))
}

func (r hookeRules) setDisplacement(s *Spring, x float64) error {
	if err := expect(Displacement, x, s.displacementRange); err != nil {
		return err
	}
	k := s.springConstant.Get()
	return commit(s.settled(k*x, k, x))
}

func (r hookeRules) reset() {
	resetAll(r.s.settle, r.s)
}

// state is one spring's (F, k, x) awaiting commit.
type state struct {
	spring       *Spring
	force        float64
	constant     float64
	displacement float64
}

// settled builds the state for (f, k, x), snapping values that overshoot a
// bound by rounding error back onto the bound.
func (s *Spring) settled(f, k, x float64) state {
	return state{
		spring:       s,
		force:        snap(f, s.appliedForceRange),
		constant:     snap(k, s.springConstantRange),
		displacement: snap(x, s.displacementRange),
	}
}

func (st state) check() error {
	s := st.spring
	if err := expect(SpringConstant, st.constant, s.springConstantRange); err != nil {
		return err
	}
	if err := expect(AppliedForce, st.force, s.appliedForceRange); err != nil {
		return err
	}
	return expect(Displacement, st.displacement, s.displacementRange)
}

// commit validates every state, then writes them all in one batch. Each
// quantity is written exactly once, as a plain value, so no write can feed
// back into another setter.
func commit(states ...state) error {
	for _, st := range states {
		if err := st.check(); err != nil {
			return err
		}
	}

	b := reactive.NewBatch()
	for _, st := range states {
		s := st.spring
		if err := s.springConstant.Stage(b, st.constant); err != nil {
			return err
		}
		if err := s.appliedForce.Stage(b, st.force); err != nil {
			return err
		}
		if err := s.displacement.Stage(b, st.displacement); err != nil {
			return err
		}
	}
	b.Flush()
	return nil
}

// resetAll restores the initial state of springs in one batch, unless g is
// already settling a change.
func resetAll(g *settler, springs ...*Spring) {
	_ = g.run(func() error {
		b := reactive.NewBatch()
		for _, s := range springs {
			s.springConstant.ResetIn(b)
			s.appliedForce.ResetIn(b)
			s.displacement.ResetIn(b)
		}
		b.Flush()
		return nil
	})
}

func expect(q Quantity, v float64, r reactive.Range[float64]) error {
	if !r.Contains(v) {
		return &RangeError{Quantity: q, Value: v, Range: r}
	}
	return nil
}

func snap(v float64, r reactive.Range[float64]) float64 {
	tol := rangeTolerance * max(math.Abs(r.Min), math.Abs(r.Max), 1)
	switch {
	case v > r.Max && v-r.Max <= tol:
		return r.Max
	case v < r.Min && r.Min-v <= tol:
		return r.Min
	}
	return v
}
