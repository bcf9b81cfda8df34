package scene

import (
	"errors"
	"fmt"
	"slices"

	"github.com/san-kum/hookeslaw/internal/config"
	"github.com/san-kum/hookeslaw/internal/physics"
	"github.com/san-kum/hookeslaw/internal/reactive"
)

var (
	ErrUnknownScene  = errors.New("scene: unknown scene")
	ErrUnknownTarget = errors.New("scene: unknown target")
)

// Scene is one screen of the simulation: the systems it shows, the
// controls that go with them, and the view properties the user toggles.
type Scene interface {
	Name() string
	// Systems returns the systems currently on screen.
	Systems() []physics.System
	// Arms returns the robotic arm of each system in Systems.
	Arms() []*physics.RoboticArm
	// Target resolves a user-facing name to the spring it controls. The
	// empty name selects the scene's primary spring.
	Target(name string) (*physics.Spring, error)
	Visibility() *Visibility
	Reset()
}

type factory func(cfg *config.Config) (Scene, error)

var registry = map[string]factory{
	"intro":   func(cfg *config.Config) (Scene, error) { return NewIntro(cfg) },
	"systems": func(cfg *config.Config) (Scene, error) { return NewSystems(cfg) },
	"energy":  func(cfg *config.Config) (Scene, error) { return NewEnergy(cfg) },
}

// New builds the named scene. A nil cfg uses the defaults.
func New(name string, cfg *config.Config) (Scene, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownScene, name)
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return f(cfg)
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Visibility holds the on/off state of the optional overlays on a screen.
type Visibility struct {
	AppliedForceVector  *reactive.Value[bool]
	SpringForceVector   *reactive.Value[bool]
	DisplacementVector  *reactive.Value[bool]
	EquilibriumPosition *reactive.Value[bool]
	Values              *reactive.Value[bool]
}

func newVisibility(d config.DisplayConfig) *Visibility {
	return &Visibility{
		AppliedForceVector:  flag(d.VectorsVisible),
		SpringForceVector:   flag(d.VectorsVisible),
		DisplacementVector:  flag(d.VectorsVisible),
		EquilibriumPosition: flag(d.VectorsVisible),
		Values:              flag(d.ValuesVisible),
	}
}

func (v *Visibility) Reset() {
	b := reactive.NewBatch()
	v.AppliedForceVector.ResetIn(b)
	v.SpringForceVector.ResetIn(b)
	v.DisplacementVector.ResetIn(b)
	v.EquilibriumPosition.ResetIn(b)
	v.Values.ResetIn(b)
	b.Flush()
}

// flag and choice build values whose initial state is valid by
// construction, so the error can only be a programming mistake.
func flag(initial bool) *reactive.Value[bool] {
	v, err := reactive.NewValue(initial)
	if err != nil {
		panic(err)
	}
	return v
}

func choice[T comparable](initial T, valid ...T) *reactive.Value[T] {
	v, err := reactive.NewValue(initial, reactive.WithValidValues(valid...))
	if err != nil {
		panic(err)
	}
	return v
}

func armFor(s *physics.Spring) *physics.RoboticArm {
	return physics.NewRoboticArm(s, s.EquilibriumPosition()+s.DisplacementRange().Max+config.DefaultArmOffset)
}
