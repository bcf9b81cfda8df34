package physics

// Kind identifies the topology of a spring system.
type Kind string

const (
	KindSingle   Kind = "single"
	KindSeries   Kind = "series"
	KindParallel Kind = "parallel"
)

// System is the contract shared by every spring arrangement. The
// equivalent spring exposes the combined behavior; Springs returns the
// component springs, which for a single spring is the spring itself.
type System interface {
	Kind() Kind
	EquivalentSpring() *Spring
	Springs() []*Spring
	Reset()
}

// SingleSpringSystem exposes one spring through the System contract.
type SingleSpringSystem struct {
	spring *Spring
}

func NewSingleSpringSystem(cfg SpringConfig) (*SingleSpringSystem, error) {
	s, err := NewSpring(cfg)
	if err != nil {
		return nil, err
	}
	return &SingleSpringSystem{spring: s}, nil
}

func (s *SingleSpringSystem) Kind() Kind { return KindSingle }

func (s *SingleSpringSystem) Spring() *Spring { return s.spring }

// EquivalentSpring is the spring itself.
func (s *SingleSpringSystem) EquivalentSpring() *Spring { return s.spring }

func (s *SingleSpringSystem) Springs() []*Spring { return []*Spring{s.spring} }

func (s *SingleSpringSystem) Reset() { s.spring.Reset() }
