package scene

import (
	"fmt"

	"github.com/san-kum/hookeslaw/internal/config"
	"github.com/san-kum/hookeslaw/internal/physics"
	"github.com/san-kum/hookeslaw/internal/reactive"
)

const (
	GraphBar   = "bar"
	GraphForce = "force"
)

// Energy shows a single soft spring with the work stored in it.
type Energy struct {
	System *physics.SingleSpringSystem

	// Graph selects the energy bar graph or the force plot.
	Graph        *reactive.Value[string]
	GraphVisible *reactive.Value[bool]

	arm        *physics.RoboticArm
	visibility *Visibility
}

func NewEnergy(cfg *config.Config) (*Energy, error) {
	sys, err := physics.NewSingleSpringSystem(cfg.Energy.Physics())
	if err != nil {
		return nil, fmt.Errorf("energy system: %w", err)
	}
	return &Energy{
		System:       sys,
		Graph:        choice(GraphBar, GraphBar, GraphForce),
		GraphVisible: flag(true),
		arm:          armFor(sys.Spring()),
		visibility:   newVisibility(cfg.Display),
	}, nil
}

func (s *Energy) Name() string                { return "energy" }
func (s *Energy) Visibility() *Visibility     { return s.visibility }
func (s *Energy) Systems() []physics.System   { return []physics.System{s.System} }
func (s *Energy) Arms() []*physics.RoboticArm { return []*physics.RoboticArm{s.arm} }

func (s *Energy) Target(name string) (*physics.Spring, error) {
	if name != "" {
		return nil, fmt.Errorf("%w: %q (energy has a single spring)", ErrUnknownTarget, name)
	}
	return s.System.Spring(), nil
}

func (s *Energy) Reset() {
	s.Graph.Reset()
	s.GraphVisible.Reset()
	s.visibility.Reset()
	s.System.Reset()
}
