package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/hookeslaw/internal/config"
	"github.com/san-kum/hookeslaw/internal/physics"
	"github.com/san-kum/hookeslaw/internal/reactive"
)

func TestNew(t *testing.T) {
	for _, name := range Names() {
		s, err := New(name, nil)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if s.Name() != name {
			t.Errorf("expected name %s, got %s", name, s.Name())
		}
		if len(s.Systems()) != len(s.Arms()) {
			t.Errorf("%s: %d systems but %d arms", name, len(s.Systems()), len(s.Arms()))
		}
	}

	if _, err := New("pendulum", nil); !errors.Is(err, ErrUnknownScene) {
		t.Errorf("expected ErrUnknownScene, got %v", err)
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Energy.SpringConstant = 50

	_, err := New("energy", cfg)
	if !errors.Is(err, physics.ErrConfiguration) {
		t.Errorf("expected ErrConfiguration, got %v", err)
	}
}

func TestIntroNumberOfSystems(t *testing.T) {
	s, _ := NewIntro(config.DefaultConfig())

	if got := len(s.Systems()); got != 1 {
		t.Fatalf("expected 1 system, got %d", got)
	}
	if err := s.NumberOfSystems.Set(2); err != nil {
		t.Fatalf("set 2: %v", err)
	}
	if got := len(s.Systems()); got != 2 {
		t.Errorf("expected 2 systems, got %d", got)
	}
	if got := len(s.Arms()); got != 2 {
		t.Errorf("expected 2 arms, got %d", got)
	}
	if err := s.NumberOfSystems.Set(3); !errors.Is(err, reactive.ErrInvalidValue) {
		t.Errorf("expected ErrInvalidValue, got %v", err)
	}
}

func TestIntroSystemsAreIndependent(t *testing.T) {
	s, _ := NewIntro(config.DefaultConfig())

	if err := s.System1.Spring().SetAppliedForce(50); err != nil {
		t.Fatalf("set force: %v", err)
	}
	if got := s.System2.Spring().AppliedForce().Get(); got != 0 {
		t.Errorf("system 2 moved to %v", got)
	}
}

func TestIntroTarget(t *testing.T) {
	s, _ := NewIntro(config.DefaultConfig())

	tests := []struct {
		name string
		want *physics.Spring
	}{
		{"", s.System1.Spring()},
		{"1", s.System1.Spring()},
		{"2", s.System2.Spring()},
	}
	for _, tt := range tests {
		got, err := s.Target(tt.name)
		if err != nil || got != tt.want {
			t.Errorf("target %q: got %p, %v", tt.name, got, err)
		}
	}
	if _, err := s.Target("3"); !errors.Is(err, ErrUnknownTarget) {
		t.Errorf("expected ErrUnknownTarget, got %v", err)
	}
}

func TestIntroReset(t *testing.T) {
	s, _ := NewIntro(config.DefaultConfig())
	_ = s.NumberOfSystems.Set(2)
	_ = s.Visibility().Values.Set(true)
	_ = s.System2.Spring().SetSpringConstant(500)
	_ = s.System2.Spring().SetAppliedForce(-40)

	s.Reset()

	if s.NumberOfSystems.Get() != 1 {
		t.Errorf("expected 1 system after reset, got %d", s.NumberOfSystems.Get())
	}
	if s.Visibility().Values.Get() {
		t.Error("values still visible after reset")
	}
	spring := s.System2.Spring()
	if spring.SpringConstant().Get() != physics.DefaultSpringConstant || spring.AppliedForce().Get() != 0 {
		t.Errorf("system 2 not reset: %+v", spring.Snapshot())
	}
}

func TestSystemsConfiguration(t *testing.T) {
	s, _ := NewSystems(config.DefaultConfig())

	if s.Active() != physics.System(s.Parallel) {
		t.Fatal("expected parallel by default")
	}
	if err := s.Toggle(); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if s.Active() != physics.System(s.Series) {
		t.Error("expected series after toggle")
	}
	if err := s.Configuration.Set("mixed"); !errors.Is(err, reactive.ErrInvalidValue) {
		t.Errorf("expected ErrInvalidValue, got %v", err)
	}
	if err := s.SpringForceRepresentation.Set(RepresentationComponents); err != nil {
		t.Errorf("set representation: %v", err)
	}
}

func TestSystemsRejectsUnknownConfiguration(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Systems.Configuration = "mixed"
	if _, err := NewSystems(cfg); !errors.Is(err, reactive.ErrInvalidValue) {
		t.Errorf("expected ErrInvalidValue, got %v", err)
	}
}

func TestSystemsConfigurationFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Systems.Configuration = "series"
	cfg.Systems.SpringForceRepresentation = "components"
	cfg.Sweep.Quantity = "displacement"
	s, _ := NewSystems(cfg)

	if s.Configuration.Get() != ConfigurationSeries {
		t.Errorf("expected series, got %s", s.Configuration.Get())
	}
	if s.SpringForceRepresentation.Get() != RepresentationComponents {
		t.Errorf("expected components, got %s", s.SpringForceRepresentation.Get())
	}
	_ = s.Toggle()
	s.Reset()
	if s.Configuration.Get() != ConfigurationSeries {
		t.Errorf("reset should restore series, got %s", s.Configuration.Get())
	}
}

func TestSystemsTarget(t *testing.T) {
	s, _ := NewSystems(config.DefaultConfig())

	top, err := s.Target("top")
	if err != nil || top != s.Parallel.Top() {
		t.Errorf("expected parallel top, got %p, %v", top, err)
	}
	_ = s.Toggle()
	eq, err := s.Target("")
	if err != nil || eq != s.Series.EquivalentSpring() {
		t.Errorf("expected series equivalent, got %p, %v", eq, err)
	}
	bottom, _ := s.Target("bottom")
	if bottom != s.Series.Bottom() {
		t.Error("expected series bottom")
	}
	if _, err := s.Target("left"); !errors.Is(err, ErrUnknownTarget) {
		t.Errorf("expected ErrUnknownTarget, got %v", err)
	}
}

func TestSystemsKeepHiddenState(t *testing.T) {
	s, _ := NewSystems(config.DefaultConfig())

	if err := s.Parallel.EquivalentSpring().SetAppliedForce(80); err != nil {
		t.Fatalf("set force: %v", err)
	}
	_ = s.Toggle()
	_ = s.Toggle()
	if got := s.Parallel.EquivalentSpring().AppliedForce().Get(); got != 80 {
		t.Errorf("expected 80 N kept, got %v", got)
	}

	s.Reset()
	if got := s.Parallel.EquivalentSpring().Displacement().Get(); got != 0 {
		t.Errorf("expected 0 m after reset, got %v", got)
	}
}

func TestEnergy(t *testing.T) {
	s, _ := NewEnergy(config.DefaultConfig())
	spring := s.System.Spring()

	if spring.SpringConstant().Get() != 100 {
		t.Fatalf("expected soft spring, got %v", spring.SpringConstant().Get())
	}
	if r := spring.DisplacementRange(); r.Min != -1 || r.Max != 1 {
		t.Errorf("expected displacement range [-1, 1], got %v", r)
	}
	if err := spring.SetDisplacement(0.6); err != nil {
		t.Fatalf("set displacement: %v", err)
	}
	if e := spring.PotentialEnergy().Get(); math.Abs(e-18) > 1e-9 {
		t.Errorf("expected 18 J, got %v", e)
	}
	if err := spring.SetSpringConstant(500); !errors.Is(err, physics.ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange above 400 N/m, got %v", err)
	}

	_ = s.Graph.Set(GraphForce)
	s.Reset()
	if s.Graph.Get() != GraphBar || spring.PotentialEnergy().Get() != 0 {
		t.Error("energy scene not reset")
	}
}

func TestArmsFollowSprings(t *testing.T) {
	s, _ := NewEnergy(config.DefaultConfig())
	arm := s.Arms()[0]
	spring := s.System.Spring()

	if arm.Right() <= spring.EquilibriumPosition()+spring.DisplacementRange().Max {
		t.Errorf("arm base %v overlaps the reachable range", arm.Right())
	}
	if err := arm.DragTo(2.0); err != nil {
		t.Fatalf("drag: %v", err)
	}
	if got := arm.Left().Get(); math.Abs(got-2.0) > 1e-9 {
		t.Errorf("expected grip at 2.0, got %v", got)
	}
}
