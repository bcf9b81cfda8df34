package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/hookeslaw/internal/physics"
	"github.com/san-kum/hookeslaw/internal/reactive"
)

const (
	DefaultScene      = "intro"
	DefaultSteps      = 21
	DefaultQuantity   = "force"
	DefaultFrameRate  = 30
	DefaultEnergyKMax = 400.0
	DefaultEnergyK    = 100.0
	DefaultArmOffset  = 0.5 // m beyond the reachable range

	DefaultConfiguration  = "parallel"
	DefaultRepresentation = "total"

	AppliedForceDelta   = 1.0   // N per arrow step
	SpringConstantDelta = 10.0  // N/m per arrow step
	DisplacementDelta   = 0.001 // m per arrow step
)

var validate = validator.New()

type Config struct {
	Scene    string        `yaml:"scene" validate:"oneof=intro systems energy"`
	Intro    SpringConfig  `yaml:"intro"`
	Series   SystemConfig  `yaml:"series"`
	Parallel SystemConfig  `yaml:"parallel"`
	Energy   SpringConfig  `yaml:"energy"`
	Systems  SystemsConfig `yaml:"systems"`
	Sweep    SweepConfig   `yaml:"sweep"`
	Display  DisplayConfig `yaml:"display"`
}

type RangeConfig struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max" validate:"gtefield=Min"`
}

type SpringConfig struct {
	Left                float64     `yaml:"left"`
	EquilibriumLength   float64     `yaml:"equilibrium_length" validate:"gt=0"`
	SpringConstant      float64     `yaml:"spring_constant" validate:"gt=0"`
	SpringConstantRange RangeConfig `yaml:"spring_constant_range"`
	AppliedForceRange   RangeConfig `yaml:"applied_force_range"`
}

type SystemConfig struct {
	Top               SpringConfig `yaml:"top"`
	Bottom            SpringConfig `yaml:"bottom"`
	AppliedForceRange RangeConfig  `yaml:"applied_force_range"`
}

// SystemsConfig sets the starting view of the systems scene.
type SystemsConfig struct {
	Configuration             string `yaml:"configuration" validate:"oneof=series parallel"`
	SpringForceRepresentation string `yaml:"spring_force_representation" validate:"oneof=total components"`
}

type SweepConfig struct {
	Quantity string `yaml:"quantity" validate:"oneof=force displacement constant"`
	Steps    int    `yaml:"steps" validate:"gte=2,lte=10000"`
}

type DisplayConfig struct {
	ValuesVisible  bool   `yaml:"values_visible"`
	VectorsVisible bool   `yaml:"vectors_visible"`
	FrameRate      int    `yaml:"frame_rate" validate:"gte=1,lte=120"`
	Theme          string `yaml:"theme" validate:"omitempty,oneof=lab retro minimal"`
}

func fromRange(r reactive.Range[float64]) RangeConfig {
	return RangeConfig{Min: r.Min, Max: r.Max}
}

func fromSpring(c physics.SpringConfig) SpringConfig {
	return SpringConfig{
		Left:                c.Left,
		EquilibriumLength:   c.EquilibriumLength,
		SpringConstant:      c.SpringConstant,
		SpringConstantRange: fromRange(c.SpringConstantRange),
		AppliedForceRange:   fromRange(c.AppliedForceRange),
	}
}

func DefaultConfig() *Config {
	series := physics.DefaultSeriesConfig()
	parallel := physics.DefaultParallelConfig()

	energy := physics.DefaultSpringConfig()
	energy.SpringConstant = DefaultEnergyK
	energy.SpringConstantRange = reactive.NewRange(physics.DefaultSpringConstantRange.Min, DefaultEnergyKMax)

	return &Config{
		Scene: DefaultScene,
		Intro: fromSpring(physics.DefaultSpringConfig()),
		Series: SystemConfig{
			Top:               fromSpring(series.Top),
			Bottom:            fromSpring(series.Bottom),
			AppliedForceRange: fromRange(series.AppliedForceRange),
		},
		Parallel: SystemConfig{
			Top:               fromSpring(parallel.Top),
			Bottom:            fromSpring(parallel.Bottom),
			AppliedForceRange: fromRange(parallel.AppliedForceRange),
		},
		Energy: fromSpring(energy),
		Systems: SystemsConfig{
			Configuration:             DefaultConfiguration,
			SpringForceRepresentation: DefaultRepresentation,
		},
		Sweep: SweepConfig{
			Quantity: DefaultQuantity,
			Steps:    DefaultSteps,
		},
		Display: DisplayConfig{
			FrameRate: DefaultFrameRate,
		},
	}
}

// Validate checks field constraints. Physical consistency, such as an
// initial spring constant inside its range, is checked when the springs
// are built.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (r RangeConfig) Range() reactive.Range[float64] {
	return reactive.NewRange(r.Min, r.Max)
}

func (s SpringConfig) Physics() physics.SpringConfig {
	return physics.SpringConfig{
		Left:                s.Left,
		EquilibriumLength:   s.EquilibriumLength,
		SpringConstant:      s.SpringConstant,
		SpringConstantRange: s.SpringConstantRange.Range(),
		AppliedForceRange:   s.AppliedForceRange.Range(),
	}
}

func (s SystemConfig) SeriesPhysics() physics.SeriesConfig {
	return physics.SeriesConfig{
		Top:               s.Top.Physics(),
		Bottom:            s.Bottom.Physics(),
		AppliedForceRange: s.AppliedForceRange.Range(),
	}
}

func (s SystemConfig) ParallelPhysics() physics.ParallelConfig {
	return physics.ParallelConfig{
		Top:               s.Top.Physics(),
		Bottom:            s.Bottom.Physics(),
		AppliedForceRange: s.AppliedForceRange.Range(),
	}
}
