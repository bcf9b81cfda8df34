package scene

import (
	"fmt"

	"github.com/san-kum/hookeslaw/internal/config"
	"github.com/san-kum/hookeslaw/internal/physics"
	"github.com/san-kum/hookeslaw/internal/reactive"
)

// Intro shows one or two independent single springs side by side so their
// stiffness can be compared.
type Intro struct {
	NumberOfSystems *reactive.Value[int]
	System1         *physics.SingleSpringSystem
	System2         *physics.SingleSpringSystem

	arms       [2]*physics.RoboticArm
	visibility *Visibility
}

func NewIntro(cfg *config.Config) (*Intro, error) {
	s1, err := physics.NewSingleSpringSystem(cfg.Intro.Physics())
	if err != nil {
		return nil, fmt.Errorf("intro system 1: %w", err)
	}
	s2, err := physics.NewSingleSpringSystem(cfg.Intro.Physics())
	if err != nil {
		return nil, fmt.Errorf("intro system 2: %w", err)
	}

	return &Intro{
		NumberOfSystems: choice(1, 1, 2),
		System1:         s1,
		System2:         s2,
		arms:            [2]*physics.RoboticArm{armFor(s1.Spring()), armFor(s2.Spring())},
		visibility:      newVisibility(cfg.Display),
	}, nil
}

func (s *Intro) Name() string            { return "intro" }
func (s *Intro) Visibility() *Visibility { return s.visibility }

func (s *Intro) Systems() []physics.System {
	if s.NumberOfSystems.Get() == 2 {
		return []physics.System{s.System1, s.System2}
	}
	return []physics.System{s.System1}
}

func (s *Intro) Arms() []*physics.RoboticArm {
	return s.arms[:s.NumberOfSystems.Get()]
}

// Target accepts "1" or "2". The second system can be targeted while
// hidden; it keeps its state for when it is shown again.
func (s *Intro) Target(name string) (*physics.Spring, error) {
	switch name {
	case "", "1":
		return s.System1.Spring(), nil
	case "2":
		return s.System2.Spring(), nil
	}
	return nil, fmt.Errorf("%w: %q (want 1 or 2)", ErrUnknownTarget, name)
}

func (s *Intro) Reset() {
	s.NumberOfSystems.Reset()
	s.visibility.Reset()
	s.System1.Reset()
	s.System2.Reset()
}
