package scene

import (
	"fmt"

	"github.com/san-kum/hookeslaw/internal/config"
	"github.com/san-kum/hookeslaw/internal/physics"
	"github.com/san-kum/hookeslaw/internal/reactive"
)

const (
	ConfigurationSeries   = "series"
	ConfigurationParallel = "parallel"

	RepresentationTotal      = "total"
	RepresentationComponents = "components"
)

// Systems shows a series or a parallel pair of springs, one at a time.
// Both systems stay alive while hidden, so switching back restores the
// last state.
type Systems struct {
	Series   *physics.SeriesSystem
	Parallel *physics.ParallelSystem

	Configuration             *reactive.Value[string]
	SpringForceRepresentation *reactive.Value[string]

	seriesArm   *physics.RoboticArm
	parallelArm *physics.RoboticArm
	visibility  *Visibility
}

func NewSystems(cfg *config.Config) (*Systems, error) {
	series, err := physics.NewSeriesSystem(cfg.Series.SeriesPhysics())
	if err != nil {
		return nil, fmt.Errorf("series system: %w", err)
	}
	parallel, err := physics.NewParallelSystem(cfg.Parallel.ParallelPhysics())
	if err != nil {
		return nil, fmt.Errorf("parallel system: %w", err)
	}
	configuration, err := reactive.NewValue(cfg.Systems.Configuration,
		reactive.WithValidValues(ConfigurationSeries, ConfigurationParallel))
	if err != nil {
		return nil, fmt.Errorf("systems configuration: %w", err)
	}
	representation, err := reactive.NewValue(cfg.Systems.SpringForceRepresentation,
		reactive.WithValidValues(RepresentationTotal, RepresentationComponents))
	if err != nil {
		return nil, fmt.Errorf("spring force representation: %w", err)
	}

	return &Systems{
		Series:                    series,
		Parallel:                  parallel,
		Configuration:             configuration,
		SpringForceRepresentation: representation,
		seriesArm:                 armFor(series.EquivalentSpring()),
		parallelArm:               armFor(parallel.EquivalentSpring()),
		visibility:                newVisibility(cfg.Display),
	}, nil
}

func (s *Systems) Name() string            { return "systems" }
func (s *Systems) Visibility() *Visibility { return s.visibility }

// Active returns the system selected by Configuration.
func (s *Systems) Active() physics.System {
	if s.Configuration.Get() == ConfigurationSeries {
		return s.Series
	}
	return s.Parallel
}

func (s *Systems) Systems() []physics.System { return []physics.System{s.Active()} }

func (s *Systems) Arms() []*physics.RoboticArm {
	if s.Configuration.Get() == ConfigurationSeries {
		return []*physics.RoboticArm{s.seriesArm}
	}
	return []*physics.RoboticArm{s.parallelArm}
}

// Target accepts "equivalent", "top" or "bottom" within the active system.
func (s *Systems) Target(name string) (*physics.Spring, error) {
	active := s.Active()
	switch name {
	case "", "equivalent":
		return active.EquivalentSpring(), nil
	case "top":
		return active.Springs()[0], nil
	case "bottom":
		return active.Springs()[1], nil
	}
	return nil, fmt.Errorf("%w: %q (want equivalent, top or bottom)", ErrUnknownTarget, name)
}

// Toggle switches between the series and parallel configurations.
func (s *Systems) Toggle() error {
	next := ConfigurationSeries
	if s.Configuration.Get() == ConfigurationSeries {
		next = ConfigurationParallel
	}
	return s.Configuration.Set(next)
}

func (s *Systems) Reset() {
	s.Configuration.Reset()
	s.SpringForceRepresentation.Reset()
	s.visibility.Reset()
	s.Series.Reset()
	s.Parallel.Reset()
}
